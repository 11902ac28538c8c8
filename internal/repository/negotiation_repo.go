package repository

import (
	"context"
	"time"

	"hotelbook/internal/domain"

	"gorm.io/gorm"
)

type NegotiationRepository struct {
	db *gorm.DB
}

func NewNegotiationRepository(db *gorm.DB) *NegotiationRepository {
	return &NegotiationRepository{db: db}
}

func (r *NegotiationRepository) Create(ctx context.Context, n *domain.Negotiation) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NegotiationRepository) GetByID(ctx context.Context, id int64) (*domain.Negotiation, error) {
	var n domain.Negotiation
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// CompareAndSwap writes n's status, price and updated_at only if the stored
// status still equals expected. It returns ErrConcurrentUpdate otherwise.
func (r *NegotiationRepository) CompareAndSwap(ctx context.Context, n *domain.Negotiation, expected domain.NegotiationStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Negotiation{}).
		Where("id = ? AND status = ?", n.ID, string(expected)).
		Updates(map[string]interface{}{
			"status":     string(n.Status),
			"price":      n.Price,
			"updated_at": n.UpdatedAt,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrConcurrentUpdate
	}
	return nil
}

func (r *NegotiationRepository) AddEvent(ctx context.Context, e *domain.NegotiationEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *NegotiationRepository) ListEvents(ctx context.Context, negotiationID int64) ([]domain.NegotiationEvent, error) {
	var events []domain.NegotiationEvent
	err := r.db.WithContext(ctx).
		Where("negotiation_id = ?", negotiationID).
		Order("created_at, id").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// NegotiationFilters scopes a listing. Zero-valued ids are ignored; an empty
// Statuses slice means every status.
type NegotiationFilters struct {
	UserID   int64
	RoomID   int64
	HotelID  int64
	Statuses []domain.NegotiationStatus
	Limit    int
	Offset   int
}

// NegotiationRow is a negotiation joined with its guest, room and hotel.
type NegotiationRow struct {
	ID         int64     `gorm:"column:id"`
	UserID     int64     `gorm:"column:user_id"`
	RoomID     int64     `gorm:"column:room_id"`
	GuestPrice float64   `gorm:"column:guest_price"`
	Price      float64   `gorm:"column:price"`
	Status     string    `gorm:"column:status"`
	StartDate  time.Time `gorm:"column:start_date"`
	EndDate    time.Time `gorm:"column:end_date"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`

	UserName  string `gorm:"column:user_name"`
	UserEmail string `gorm:"column:user_email"`

	RoomName  string  `gorm:"column:room_name"`
	RoomPrice float64 `gorm:"column:room_price"`

	HotelID      int64  `gorm:"column:hotel_id"`
	HotelName    string `gorm:"column:hotel_name"`
	HotelOwnerID int64  `gorm:"column:hotel_owner_id"`
}

const negotiationRowColumns = `
  n.id,
  n.user_id,
  n.room_id,
  n.guest_price,
  n.price,
  n.status,
  n.start_date,
  n.end_date,
  n.created_at,
  n.updated_at,
  u.name AS user_name,
  u.email AS user_email,
  rm.name AS room_name,
  rm.price AS room_price,
  h.id AS hotel_id,
  h.name AS hotel_name,
  h.owner_id AS hotel_owner_id`

func (r *NegotiationRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("negotiations n").
		Joins("JOIN users u ON u.id = n.user_id").
		Joins("JOIN rooms rm ON rm.id = n.room_id").
		Joins("JOIN hotels h ON h.id = rm.hotel_id")
}

// GetRow loads one negotiation with its guest, room and hotel, or
// gorm.ErrRecordNotFound.
func (r *NegotiationRepository) GetRow(ctx context.Context, id int64) (*NegotiationRow, error) {
	var rows []NegotiationRow
	err := r.joined(ctx).
		Select(negotiationRowColumns).
		Where("n.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

// List returns matching rows ordered by most recently updated first, plus the
// unpaginated total.
func (r *NegotiationRepository) List(ctx context.Context, f NegotiationFilters) ([]NegotiationRow, int64, error) {
	limit, offset := ClampPage(f.Limit, f.Offset)

	q := r.joined(ctx)
	if f.UserID > 0 {
		q = q.Where("n.user_id = ?", f.UserID)
	}
	if f.RoomID > 0 {
		q = q.Where("n.room_id = ?", f.RoomID)
	}
	if f.HotelID > 0 {
		q = q.Where("rm.hotel_id = ?", f.HotelID)
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, 0, len(f.Statuses))
		for _, s := range f.Statuses {
			statuses = append(statuses, string(s))
		}
		q = q.Where("n.status IN ?", statuses)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []NegotiationRow
	err := q.Select(negotiationRowColumns).
		Order("n.updated_at DESC, n.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
