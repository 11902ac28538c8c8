package booking

import (
	"context"
	"time"

	"hotelbook/internal/pkg/pricing"
)

// maxBusyWindow bounds how far a busy-range query may reach.
const maxBusyWindow = 366 * 24 * time.Hour

type Service struct {
	bookings BookingRepository
}

func NewService(bookings BookingRepository) *Service {
	return &Service{bookings: bookings}
}

// GetBusyRanges returns the booked stays of a room intersecting [from, to).
// Dates are "2006-01-02"; an empty to means 30 days after from.
func (s *Service) GetBusyRanges(ctx context.Context, roomID int64, fromStr, toStr string) ([]DateRange, error) {
	from, err := time.Parse(dateLayout, fromStr)
	if err != nil {
		return nil, ErrValidation
	}
	to := from.AddDate(0, 0, 30)
	if toStr != "" {
		to, err = time.Parse(dateLayout, toStr)
		if err != nil {
			return nil, ErrValidation
		}
	}
	if !to.After(from) || to.Sub(from) > maxBusyWindow {
		return nil, ErrValidation
	}

	rows, err := s.bookings.GetBusyRangesForRoom(ctx, roomID, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]DateRange, 0, len(rows))
	for _, r := range rows {
		out = append(out, DateRange{Start: r.Start, End: r.End})
	}
	return out, nil
}

func (s *Service) GetMyBookings(ctx context.Context, userID int64, limit, offset int) ([]BookingDetails, error) {
	rows, err := s.bookings.GetUserBookingsWithDetails(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	out := make([]BookingDetails, 0, len(rows))
	for _, r := range rows {
		out = append(out, BookingDetails{
			ID:                  r.ID,
			Status:              r.Status,
			StartDate:           r.StartDate,
			EndDate:             r.EndDate,
			Nights:              pricing.StayDurationNights(r.StartDate, r.EndDate),
			Price:               r.Price,
			TotalPrice:          r.TotalPrice,
			SourceNegotiationID: r.SourceNegotiationID,
			RoomID:              r.RoomID,
			RoomName:            r.RoomName,
			HotelID:             r.HotelID,
			HotelName:           r.HotelName,
		})
	}
	return out, nil
}
