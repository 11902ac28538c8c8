package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"hotelbook/internal/domain"
	"hotelbook/internal/pkg/pricing"
	"hotelbook/internal/repository"
)

const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

// Materializer turns an accepted negotiation into its booking.
type Materializer struct {
	log *logrus.Logger
}

func NewMaterializer(log *logrus.Logger) *Materializer {
	return &Materializer{log: log}
}

// Materialize creates the booking for n at n's final price. n must already
// carry status accepted; the caller persists that status in the same
// transaction, so an ErrConflict here rolls both back. Calling it again for
// the same negotiation returns the existing booking.
func (m *Materializer) Materialize(ctx context.Context, store Store, n *domain.Negotiation) (*domain.Booking, error) {
	if n.Status != domain.NegotiationAccepted {
		return nil, ErrNotAccepted
	}
	if !n.EndDate.After(n.StartDate) {
		return nil, fmt.Errorf("%w: end date must be after start date", ErrValidation)
	}

	existing, err := store.GetBySourceNegotiation(ctx, n.ID)
	switch {
	case err == nil:
		return existing, nil
	case !repository.IsNotFound(err):
		return nil, err
	}

	busy, err := store.HasOverlap(ctx, n.RoomID, n.StartDate, n.EndDate)
	if err != nil {
		return nil, err
	}
	if busy {
		m.log.WithFields(logrus.Fields{
			"negotiation_id": n.ID,
			"room_id":        n.RoomID,
		}).Info("booking conflict: room already booked for requested dates")
		return nil, ErrConflict
	}

	source := n.ID
	b := &domain.Booking{
		RoomID:              n.RoomID,
		UserID:              n.UserID,
		SourceNegotiationID: &source,
		StartDate:           n.StartDate,
		EndDate:             n.EndDate,
		Price:               n.Price,
		TotalPrice:          pricing.TotalForStay(n.Price, pricing.StayDurationNights(n.StartDate, n.EndDate)),
		Status:              domain.BookingConfirmed,
	}

	if err := store.Create(ctx, b); err != nil {
		if isConflictError(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	m.log.WithFields(logrus.Fields{
		"negotiation_id": n.ID,
		"booking_id":     b.ID,
		"room_id":        b.RoomID,
		"price":          b.Price,
	}).Info("booking materialized")
	return b, nil
}

func isConflictError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgExclusionViolation || pgErr.Code == pgUniqueViolation
	}
	return repository.IsUniqueConstraintError(err)
}
