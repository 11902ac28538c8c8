package negotiation

import (
	"time"

	"hotelbook/internal/domain"
	"hotelbook/internal/pkg/pricing"
	"hotelbook/internal/repository"
)

const dateLayout = "2006-01-02"

type ProposeRequest struct {
	RoomID    int64    `json:"room_id" binding:"required" validate:"required,gt=0"`
	StartDate string   `json:"start_date" binding:"required" validate:"required,datetime=2006-01-02"`
	EndDate   string   `json:"end_date" binding:"required" validate:"required,datetime=2006-01-02"`
	Price     *float64 `json:"price" binding:"required" validate:"required,gte=0"`
}

type UpdateRequest struct {
	Status       string   `json:"status" binding:"required" validate:"required,oneof=accepted rejected countered cancelled"`
	CounterPrice *float64 `json:"counter_price,omitempty" validate:"omitempty,gte=0"`
}

type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type RoomSummary struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type HotelSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NegotiationView is a negotiation as returned by the API, with the derived
// discount and stay total against the room's listed price.
type NegotiationView struct {
	ID         int64                    `json:"id"`
	UserID     int64                    `json:"user_id"`
	RoomID     int64                    `json:"room_id"`
	GuestPrice float64                  `json:"guest_price"`
	Price      float64                  `json:"price"`
	Status     domain.NegotiationStatus `json:"status"`
	StartDate  string                   `json:"start_date"`
	EndDate    string                   `json:"end_date"`
	CreatedAt  time.Time                `json:"created_at"`
	UpdatedAt  time.Time                `json:"updated_at"`

	DiscountPercent int     `json:"discount_percent"`
	Nights          int     `json:"nights"`
	Total           float64 `json:"total"`

	// AllowedActions is what the requesting party may do next.
	AllowedActions []domain.NegotiationAction `json:"allowed_actions"`

	User  *UserSummary  `json:"user,omitempty"`
	Room  *RoomSummary  `json:"room,omitempty"`
	Hotel *HotelSummary `json:"hotel,omitempty"`
}

type ListResult struct {
	Items  []NegotiationView `json:"items"`
	Total  int64             `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

type TransitionResponse struct {
	Negotiation NegotiationView `json:"negotiation"`
	Booking     *BookingView    `json:"booking,omitempty"`
}

type BookingView struct {
	ID         int64   `json:"id"`
	RoomID     int64   `json:"room_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Price      float64 `json:"price"`
	TotalPrice float64 `json:"total_price"`
	Status     string  `json:"status"`
}

func newView(n *domain.Negotiation, room *domain.Room) NegotiationView {
	q := pricing.NewQuote(room.Price, n.Price, n.StartDate, n.EndDate)
	v := NegotiationView{
		ID:              n.ID,
		UserID:          n.UserID,
		RoomID:          n.RoomID,
		GuestPrice:      n.GuestPrice,
		Price:           n.Price,
		Status:          n.Status,
		StartDate:       n.StartDate.Format(dateLayout),
		EndDate:         n.EndDate.Format(dateLayout),
		CreatedAt:       n.CreatedAt,
		UpdatedAt:       n.UpdatedAt,
		DiscountPercent: q.DiscountPercent,
		Nights:          q.Nights,
		Total:           q.Total,
		Room:            &RoomSummary{ID: room.ID, Name: room.Name, Price: room.Price},
	}
	if room.Hotel != nil {
		v.Hotel = &HotelSummary{ID: room.Hotel.ID, Name: room.Hotel.Name}
	}
	return v
}

func viewFromRow(r repository.NegotiationRow) NegotiationView {
	q := pricing.NewQuote(r.RoomPrice, r.Price, r.StartDate, r.EndDate)
	return NegotiationView{
		ID:              r.ID,
		UserID:          r.UserID,
		RoomID:          r.RoomID,
		GuestPrice:      r.GuestPrice,
		Price:           r.Price,
		Status:          domain.NegotiationStatus(r.Status),
		StartDate:       r.StartDate.Format(dateLayout),
		EndDate:         r.EndDate.Format(dateLayout),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		DiscountPercent: q.DiscountPercent,
		Nights:          q.Nights,
		Total:           q.Total,
		User:            &UserSummary{ID: r.UserID, Name: r.UserName, Email: r.UserEmail},
		Room:            &RoomSummary{ID: r.RoomID, Name: r.RoomName, Price: r.RoomPrice},
		Hotel:           &HotelSummary{ID: r.HotelID, Name: r.HotelName},
	}
}

func (v *NegotiationView) forViewer(role domain.UserRole) {
	v.AllowedActions = AllowedActions(v.Status, role)
}

func newTransitionResponse(res *Result, viewer domain.UserRole) TransitionResponse {
	out := TransitionResponse{Negotiation: newView(res.Negotiation, res.Room)}
	out.Negotiation.forViewer(viewer)
	if b := res.Booking; b != nil {
		out.Booking = &BookingView{
			ID:         b.ID,
			RoomID:     b.RoomID,
			StartDate:  b.StartDate.Format(dateLayout),
			EndDate:    b.EndDate.Format(dateLayout),
			Price:      b.Price,
			TotalPrice: b.TotalPrice,
			Status:     string(b.Status),
		}
	}
	return out
}
