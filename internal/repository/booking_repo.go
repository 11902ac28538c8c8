package repository

import (
	"context"
	"time"

	"hotelbook/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// GetBySourceNegotiation returns the booking materialized from a negotiation,
// or gorm.ErrRecordNotFound.
func (r *BookingRepository) GetBySourceNegotiation(ctx context.Context, negotiationID int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Where("source_negotiation_id = ?", negotiationID).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// HasOverlap reports whether a live booking on roomID intersects the
// half-open range [start, end). A stay checking out on day D does not
// collide with one checking in on D.
func (r *BookingRepository) HasOverlap(ctx context.Context, roomID int64, start, end time.Time) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("room_id = ?", roomID).
		Where("status <> ?", string(domain.BookingCancelled)).
		Where("start_date < ? AND end_date > ?", end, start).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

type BusyRange struct {
	Start time.Time `gorm:"column:start_date" json:"start_date"`
	End   time.Time `gorm:"column:end_date" json:"end_date"`
}

func (r *BookingRepository) GetBusyRangesForRoom(ctx context.Context, roomID int64, from, to time.Time) ([]BusyRange, error) {
	var rows []BusyRange
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Select("start_date, end_date").
		Where("room_id = ?", roomID).
		Where("status <> ?", string(domain.BookingCancelled)).
		Where("start_date < ? AND end_date > ?", to, from).
		Order("start_date").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type UserBookingDetails struct {
	ID                  int64     `gorm:"column:id"`
	Status              string    `gorm:"column:status"`
	StartDate           time.Time `gorm:"column:start_date"`
	EndDate             time.Time `gorm:"column:end_date"`
	Price               float64   `gorm:"column:price"`
	TotalPrice          float64   `gorm:"column:total_price"`
	SourceNegotiationID *int64    `gorm:"column:source_negotiation_id"`

	RoomID   int64  `gorm:"column:room_id"`
	RoomName string `gorm:"column:room_name"`

	HotelID   int64  `gorm:"column:hotel_id"`
	HotelName string `gorm:"column:hotel_name"`
}

func (r *BookingRepository) GetUserBookingsWithDetails(ctx context.Context, userID int64, limit, offset int) ([]UserBookingDetails, error) {
	limit, offset = ClampPage(limit, offset)

	var rows []UserBookingDetails
	q := `
SELECT
  b.id,
  b.status,
  b.start_date,
  b.end_date,
  b.price,
  b.total_price,
  b.source_negotiation_id,
  b.room_id,
  rm.name AS room_name,
  h.id AS hotel_id,
  h.name AS hotel_name
FROM bookings b
JOIN rooms rm ON rm.id = b.room_id
JOIN hotels h ON h.id = rm.hotel_id
WHERE b.user_id = ?
ORDER BY b.start_date DESC, b.id DESC
LIMIT ? OFFSET ?
`
	tx := r.db.WithContext(ctx).Raw(q, userID, limit, offset).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}
