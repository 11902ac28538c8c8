package negotiation

import (
	"context"
	"fmt"
	"strings"

	"hotelbook/internal/domain"
	"hotelbook/internal/repository"
)

const (
	FilterAll      = "all"
	FilterActive   = "active"
	FilterResolved = "resolved"
)

// ParseStatusFilter turns a status query value into the statuses it selects.
// "all" and "" select everything (nil).
func ParseStatusFilter(raw string) ([]domain.NegotiationStatus, error) {
	switch v := strings.ToLower(strings.TrimSpace(raw)); v {
	case "", FilterAll:
		return nil, nil
	case FilterActive:
		return []domain.NegotiationStatus{domain.NegotiationPending, domain.NegotiationCountered}, nil
	case FilterResolved:
		return []domain.NegotiationStatus{domain.NegotiationAccepted, domain.NegotiationRejected, domain.NegotiationCancelled}, nil
	default:
		s, err := domain.ParseNegotiationStatus(v)
		if err != nil {
			return nil, fmt.Errorf("%w: unknown status filter %q", ErrValidation, raw)
		}
		return []domain.NegotiationStatus{s}, nil
	}
}

type ListParams struct {
	Status string
	Limit  int
	Offset int
}

// Get returns one negotiation to its guest, the hotel's owner or an admin.
func (s *Service) Get(ctx context.Context, actor domain.Actor, id int64) (*NegotiationView, error) {
	row, err := repository.NewNegotiationRepository(s.db).GetRow(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("%w: negotiation %d", ErrNotFound, id)
		}
		return nil, err
	}
	if !actor.IsAdmin() && row.UserID != actor.UserID && row.HotelOwnerID != actor.UserID {
		return nil, fmt.Errorf("%w: not a party to negotiation %d", ErrForbidden, id)
	}
	v := viewFromRow(*row)
	v.forViewer(actor.Role)
	return &v, nil
}

// ListByUser lists a guest's own negotiations.
func (s *Service) ListByUser(ctx context.Context, actor domain.Actor, userID int64, p ListParams) (*ListResult, error) {
	if !actor.IsAdmin() && actor.UserID != userID {
		return nil, fmt.Errorf("%w: cannot list another user's negotiations", ErrForbidden)
	}
	return s.list(ctx, actor, repository.NegotiationFilters{UserID: userID}, p)
}

// ListByHotel lists negotiations across every room of a hotel.
func (s *Service) ListByHotel(ctx context.Context, actor domain.Actor, hotelID int64, p ListParams) (*ListResult, error) {
	hotel, err := repository.NewHotelRepository(s.db).GetByID(ctx, hotelID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("%w: hotel %d", ErrNotFound, hotelID)
		}
		return nil, err
	}
	if !actor.IsAdmin() && hotel.OwnerID != actor.UserID {
		return nil, fmt.Errorf("%w: not the owner of hotel %d", ErrForbidden, hotelID)
	}
	return s.list(ctx, actor, repository.NegotiationFilters{HotelID: hotelID}, p)
}

func (s *Service) ListByRoom(ctx context.Context, actor domain.Actor, roomID int64, p ListParams) (*ListResult, error) {
	room, err := repository.NewRoomRepository(s.db).GetByID(ctx, roomID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("%w: room %d", ErrNotFound, roomID)
		}
		return nil, err
	}
	if !actor.IsAdmin() && (room.Hotel == nil || room.Hotel.OwnerID != actor.UserID) {
		return nil, fmt.Errorf("%w: not the owner of room %d", ErrForbidden, roomID)
	}
	return s.list(ctx, actor, repository.NegotiationFilters{RoomID: roomID}, p)
}

func (s *Service) list(ctx context.Context, actor domain.Actor, f repository.NegotiationFilters, p ListParams) (*ListResult, error) {
	statuses, err := ParseStatusFilter(p.Status)
	if err != nil {
		return nil, err
	}
	f.Statuses = statuses
	f.Limit, f.Offset = p.Limit, p.Offset

	rows, total, err := repository.NewNegotiationRepository(s.db).List(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]NegotiationView, 0, len(rows))
	for _, r := range rows {
		v := viewFromRow(r)
		v.forViewer(actor.Role)
		items = append(items, v)
	}
	limit, offset := repository.ClampPage(p.Limit, p.Offset)
	return &ListResult{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}
