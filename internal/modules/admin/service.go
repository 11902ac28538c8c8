package admin

import (
	"context"
	"errors"
	"math"

	"hotelbook/internal/domain"
)

var ErrInvalidRole = errors.New("invalid role filter")

type Service struct {
	users UserRepository
	stats StatsRepository
}

func NewService(users UserRepository, stats StatsRepository) *Service {
	return &Service{users: users, stats: stats}
}

// -------------------- Statistics --------------------

func (s *Service) GetStats(ctx context.Context) (*PlatformStats, error) {
	out := &PlatformStats{}
	var err error

	if out.UsersByRole, err = s.stats.CountByColumn(ctx, &domain.User{}, "role"); err != nil {
		return nil, err
	}
	if out.Hotels, err = s.stats.Count(ctx, &domain.Hotel{}); err != nil {
		return nil, err
	}
	if out.Rooms, err = s.stats.Count(ctx, &domain.Room{}); err != nil {
		return nil, err
	}
	if out.NegotiationsByStatus, err = s.stats.CountByColumn(ctx, &domain.Negotiation{}, "status"); err != nil {
		return nil, err
	}
	if out.Bookings, err = s.stats.CountByColumn(ctx, &domain.Booking{}, "status"); err != nil {
		return nil, err
	}
	if out.ConfirmedRevenue, err = s.stats.ConfirmedRevenue(ctx); err != nil {
		return nil, err
	}

	out.AcceptanceRate = acceptanceRate(out.NegotiationsByStatus)
	return out, nil
}

func acceptanceRate(byStatus map[string]int64) int {
	accepted := byStatus[string(domain.NegotiationAccepted)]
	resolved := accepted +
		byStatus[string(domain.NegotiationRejected)] +
		byStatus[string(domain.NegotiationCancelled)]
	if resolved == 0 {
		return 0
	}
	return int(math.Round(float64(accepted) / float64(resolved) * 100))
}

// -------------------- Users --------------------

func (s *Service) GetUsers(ctx context.Context, role string, page, limit int) ([]UserListItem, int64, error) {
	r := domain.UserRole(role)
	if role != "" && !r.IsValid() {
		return nil, 0, ErrInvalidRole
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	users, total, err := s.users.List(ctx, r, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}

	items := make([]UserListItem, 0, len(users))
	for _, u := range users {
		items = append(items, UserListItem{ID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role)})
	}
	return items, total, nil
}
