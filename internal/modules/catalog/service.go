package catalog

import (
	"context"
	"errors"

	"hotelbook/internal/domain"
	"hotelbook/internal/repository"
)

var (
	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = errors.New("not found")
)

type Service struct {
	hotels *repository.HotelRepository
	rooms  *repository.RoomRepository
}

func NewService(hotels *repository.HotelRepository, rooms *repository.RoomRepository) *Service {
	return &Service{hotels: hotels, rooms: rooms}
}

/* ---------- HOTEL ---------- */

func (s *Service) CreateHotel(ctx context.Context, actor domain.Actor, req CreateHotelRequest) (*domain.Hotel, error) {
	if !actor.ActsAsHost() {
		return nil, ErrForbidden
	}

	hotel := &domain.Hotel{
		OwnerID:     actor.UserID,
		Name:        req.Name,
		City:        req.City,
		Address:     req.Address,
		Description: req.Description,
	}
	if err := s.hotels.Create(ctx, hotel); err != nil {
		return nil, err
	}
	return hotel, nil
}

func (s *Service) ListHotels(ctx context.Context, f repository.HotelFilters) ([]domain.Hotel, int64, error) {
	return s.hotels.List(ctx, f)
}

// GetHotel returns the hotel with its rooms.
func (s *Service) GetHotel(ctx context.Context, id int64) (*domain.Hotel, error) {
	hotel, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	rooms, err := s.rooms.ListByHotel(ctx, id)
	if err != nil {
		return nil, err
	}
	hotel.Rooms = rooms
	return hotel, nil
}

/* ---------- ROOM ---------- */

func (s *Service) CreateRoom(ctx context.Context, actor domain.Actor, hotelID int64, req RoomRequest) (*domain.Room, error) {
	hotel, err := s.hotels.GetByID(ctx, hotelID)
	if err != nil {
		return nil, notFound(err)
	}
	if !canManage(actor, hotel) {
		return nil, ErrForbidden
	}

	room := &domain.Room{
		HotelID:     hotel.ID,
		Name:        req.Name,
		Description: req.Description,
		Capacity:    capacityOrDefault(req.Capacity),
		Price:       req.Price,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// UpdateRoom changes the listed price and description. Negotiations already
// open keep the bounds they were created with; new counters use the new price.
func (s *Service) UpdateRoom(ctx context.Context, actor domain.Actor, roomID int64, req RoomRequest) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, notFound(err)
	}
	if room.Hotel == nil || !canManage(actor, room.Hotel) {
		return nil, ErrForbidden
	}

	room.Name = req.Name
	room.Description = req.Description
	room.Capacity = capacityOrDefault(req.Capacity)
	room.Price = req.Price
	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return room, nil
}

func (s *Service) ListRooms(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	if _, err := s.hotels.GetByID(ctx, hotelID); err != nil {
		return nil, notFound(err)
	}
	return s.rooms.ListByHotel(ctx, hotelID)
}

func canManage(actor domain.Actor, hotel *domain.Hotel) bool {
	return actor.IsAdmin() || (actor.Role == domain.RoleHost && hotel.OwnerID == actor.UserID)
}

func capacityOrDefault(c int) int {
	if c <= 0 {
		return 1
	}
	return c
}

func notFound(err error) error {
	if repository.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}
