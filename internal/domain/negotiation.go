package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NegotiationStatus string

const (
	NegotiationPending   NegotiationStatus = "pending"
	NegotiationCountered NegotiationStatus = "countered"
	NegotiationAccepted  NegotiationStatus = "accepted"
	NegotiationRejected  NegotiationStatus = "rejected"
	NegotiationCancelled NegotiationStatus = "cancelled"
)

// NegotiationStatuses lists every status in lifecycle order.
var NegotiationStatuses = []NegotiationStatus{
	NegotiationPending,
	NegotiationCountered,
	NegotiationAccepted,
	NegotiationRejected,
	NegotiationCancelled,
}

func (s NegotiationStatus) IsValid() bool {
	switch s {
	case NegotiationPending, NegotiationCountered, NegotiationAccepted, NegotiationRejected, NegotiationCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is permitted.
func (s NegotiationStatus) IsTerminal() bool {
	return s == NegotiationAccepted || s == NegotiationRejected || s == NegotiationCancelled
}

// IsActive reports whether the negotiation still awaits an answer.
func (s NegotiationStatus) IsActive() bool {
	return s == NegotiationPending || s == NegotiationCountered
}

func (s NegotiationStatus) String() string { return string(s) }

func ParseNegotiationStatus(s string) (NegotiationStatus, error) {
	status := NegotiationStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid negotiation status: %q", s)
	}
	return status, nil
}

// NegotiationAction is a verb applied to a negotiation by a guest or a host.
type NegotiationAction string

const (
	ActionPropose       NegotiationAction = "propose"
	ActionAccept        NegotiationAction = "accept"
	ActionReject        NegotiationAction = "reject"
	ActionCounter       NegotiationAction = "counter"
	ActionCancel        NegotiationAction = "cancel"
	ActionAcceptCounter NegotiationAction = "accept_counter"
)

// Negotiation is a guest's request for a discounted nightly price on a room
// and date range. RoomID, UserID, GuestPrice and the dates never change after
// creation; Price follows the latest offer.
type Negotiation struct {
	ID         int64             `json:"id" gorm:"primaryKey"`
	UserID     int64             `json:"user_id" gorm:"index;not null"`
	RoomID     int64             `json:"room_id" gorm:"index;not null"`
	GuestPrice float64           `json:"guest_price" gorm:"type:decimal(10,2);not null"`
	Price      float64           `json:"price" gorm:"type:decimal(10,2);not null"`
	Status     NegotiationStatus `json:"status" gorm:"size:16;index;not null"`
	StartDate  time.Time         `json:"start_date" gorm:"not null"`
	EndDate    time.Time         `json:"end_date" gorm:"not null"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at" gorm:"index"`
}

func (Negotiation) TableName() string { return "negotiations" }

// NegotiationEvent is one row of a negotiation's append-only history.
type NegotiationEvent struct {
	ID            uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	NegotiationID int64             `json:"negotiation_id" gorm:"index;not null"`
	ActorID       int64             `json:"actor_id" gorm:"not null"`
	ActorRole     UserRole          `json:"actor_role" gorm:"size:16;not null"`
	Action        NegotiationAction `json:"action" gorm:"size:32;not null"`
	FromStatus    NegotiationStatus `json:"from_status,omitempty" gorm:"size:16"`
	ToStatus      NegotiationStatus `json:"to_status" gorm:"size:16;not null"`
	Price         float64           `json:"price" gorm:"type:decimal(10,2)"`
	BookingID     *int64            `json:"booking_id,omitempty"`
	CreatedAt     time.Time         `json:"created_at" gorm:"autoCreateTime"`
}

func (NegotiationEvent) TableName() string { return "negotiation_events" }

func (e *NegotiationEvent) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
