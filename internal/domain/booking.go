package domain

import "time"

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is produced by an accepted negotiation. Price is the nightly price
// actually charged; TotalPrice covers the whole stay.
type Booking struct {
	ID                  int64         `json:"id" gorm:"primaryKey"`
	RoomID              int64         `json:"room_id" gorm:"index:idx_bookings_room_dates;not null"`
	UserID              int64         `json:"user_id" gorm:"index;not null"`
	SourceNegotiationID *int64        `json:"source_negotiation_id,omitempty" gorm:"uniqueIndex"`
	StartDate           time.Time     `json:"start_date" gorm:"index:idx_bookings_room_dates;not null"`
	EndDate             time.Time     `json:"end_date" gorm:"index:idx_bookings_room_dates;not null"`
	Price               float64       `json:"price" gorm:"type:decimal(10,2);not null"`
	TotalPrice          float64       `json:"total_price" gorm:"type:decimal(12,2);not null"`
	Status              BookingStatus `json:"status" gorm:"size:16;not null;default:'confirmed'"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
	CancelledAt         *time.Time    `json:"cancelled_at,omitempty"`

	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}

func (Booking) TableName() string { return "bookings" }
