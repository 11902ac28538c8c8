package repository

import (
	"context"

	"hotelbook/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HotelRepository struct {
	db *gorm.DB
}

func NewHotelRepository(db *gorm.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

type HotelFilters struct {
	City    string
	OwnerID int64
	Limit   int
	Offset  int
}

func (r *HotelRepository) Create(ctx context.Context, h *domain.Hotel) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *HotelRepository) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	var h domain.Hotel
	if err := r.db.WithContext(ctx).First(&h, id).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

// List returns hotels matching f together with the unpaginated total.
func (r *HotelRepository) List(ctx context.Context, f HotelFilters) ([]domain.Hotel, int64, error) {
	limit, offset := ClampPage(f.Limit, f.Offset)

	q := r.db.WithContext(ctx).Model(&domain.Hotel{})
	if f.City != "" {
		q = q.Where("LOWER(city) = LOWER(?)", f.City)
	}
	if f.OwnerID > 0 {
		q = q.Where("owner_id = ?", f.OwnerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var hotels []domain.Hotel
	if err := q.Order("id").Limit(limit).Offset(offset).Find(&hotels).Error; err != nil {
		return nil, 0, err
	}
	return hotels, total, nil
}

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

// GetByID loads the room with its hotel.
func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	if err := r.db.WithContext(ctx).Preload("Hotel").First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// LockByID loads the room with its hotel and, on databases that support it,
// holds a row lock until the surrounding transaction ends. Booking writes for
// one room are serialized through this lock.
func (r *RoomRepository) LockByID(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, id).Error
	if err != nil {
		return nil, err
	}

	var hotel domain.Hotel
	if err := r.db.WithContext(ctx).First(&hotel, room.HotelID).Error; err != nil {
		return nil, err
	}
	room.Hotel = &hotel
	return &room, nil
}

func (r *RoomRepository) ListByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.WithContext(ctx).
		Where("hotel_id = ?", hotelID).
		Order("price, id").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).
		Model(&domain.Room{}).
		Where("id = ?", room.ID).
		Updates(map[string]interface{}{
			"name":        room.Name,
			"description": room.Description,
			"capacity":    room.Capacity,
			"price":       room.Price,
		}).Error
}
