package booking

import "time"

const dateLayout = "2006-01-02"

type BookingDetails struct {
	ID                  int64     `json:"id"`
	Status              string    `json:"status"`
	StartDate           time.Time `json:"start_date"`
	EndDate             time.Time `json:"end_date"`
	Nights              int       `json:"nights"`
	Price               float64   `json:"price"`
	TotalPrice          float64   `json:"total_price"`
	SourceNegotiationID *int64    `json:"source_negotiation_id,omitempty"`

	RoomID   int64  `json:"room_id"`
	RoomName string `json:"room_name"`

	HotelID   int64  `json:"hotel_id"`
	HotelName string `json:"hotel_name"`
}

type DateRange struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}
