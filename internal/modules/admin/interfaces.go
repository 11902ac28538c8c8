package admin

import (
	"context"

	"hotelbook/internal/domain"
)

type UserRepository interface {
	List(ctx context.Context, role domain.UserRole, limit, offset int) ([]domain.User, int64, error)
}

type StatsRepository interface {
	Count(ctx context.Context, model interface{}) (int64, error)
	CountByColumn(ctx context.Context, model interface{}, column string) (map[string]int64, error)
	ConfirmedRevenue(ctx context.Context) (float64, error)
}
