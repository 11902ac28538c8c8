package repository

import (
	"context"

	"gorm.io/gorm"

	"hotelbook/internal/domain"
)

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

type statusCount struct {
	Status string
	Count  int64
}

// CountByColumn groups model rows by column, e.g. users by role.
func (r *StatsRepository) CountByColumn(ctx context.Context, model interface{}, column string) (map[string]int64, error) {
	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(model).
		Select(column + " AS status, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

func (r *StatsRepository) Count(ctx context.Context, model interface{}) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(model).Count(&n).Error
	return n, err
}

// ConfirmedRevenue sums total_price over live bookings.
func (r *StatsRepository) ConfirmedRevenue(ctx context.Context) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("status = ?", domain.BookingConfirmed).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&sum).Error
	return sum, err
}
