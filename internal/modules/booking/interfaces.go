package booking

import (
	"context"
	"time"

	"hotelbook/internal/domain"
	"hotelbook/internal/repository"
)

// Store is the booking persistence the materializer writes through. It is
// normally bound to the transaction that also moves the negotiation.
type Store interface {
	GetBySourceNegotiation(ctx context.Context, negotiationID int64) (*domain.Booking, error)
	HasOverlap(ctx context.Context, roomID int64, start, end time.Time) (bool, error)
	Create(ctx context.Context, b *domain.Booking) error
}

// BookingRepository defines the read operations used by the service
type BookingRepository interface {
	GetBusyRangesForRoom(ctx context.Context, roomID int64, from, to time.Time) ([]repository.BusyRange, error)
	GetUserBookingsWithDetails(ctx context.Context, userID int64, limit, offset int) ([]repository.UserBookingDetails, error)
}
