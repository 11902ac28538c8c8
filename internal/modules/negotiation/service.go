package negotiation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hotelbook/internal/domain"
	"hotelbook/internal/modules/booking"
	"hotelbook/internal/repository"
)

// Notifier is told about every committed negotiation change. Failures are
// logged, never returned to the acting party.
type Notifier interface {
	NegotiationChanged(ctx context.Context, n *domain.Negotiation, room *domain.Room, actor domain.Actor, action domain.NegotiationAction) error
}

type Options struct {
	// StrictCounterBounds keeps host counters within [guest price, room price].
	StrictCounterBounds bool
	// Now defaults to time.Now.
	Now func() time.Time
}

type Service struct {
	db           *gorm.DB
	materializer *booking.Materializer
	notifier     Notifier
	log          *logrus.Logger

	strictCounter bool
	now           func() time.Time
}

func NewService(db *gorm.DB, materializer *booking.Materializer, notifier Notifier, log *logrus.Logger, opts Options) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		db:            db,
		materializer:  materializer,
		notifier:      notifier,
		log:           log,
		strictCounter: opts.StrictCounterBounds,
		now:           now,
	}
}

type ProposeInput struct {
	RoomID    int64
	StartDate time.Time
	EndDate   time.Time
	Price     float64
}

// Result is the outcome of a committed transition. Booking is set only when
// the negotiation reached accepted.
type Result struct {
	Negotiation *domain.Negotiation
	Room        *domain.Room
	Booking     *domain.Booking
}

// Propose opens a pending negotiation on behalf of a guest.
func (s *Service) Propose(ctx context.Context, actor domain.Actor, in ProposeInput) (*Result, error) {
	if actor.Role != domain.RoleGuest {
		return nil, fmt.Errorf("%w: only guests can propose a price", ErrForbidden)
	}
	if in.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if !in.EndDate.After(in.StartDate) {
		return nil, fmt.Errorf("%w: end_date must be after start_date", ErrValidation)
	}
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if in.StartDate.Before(today) {
		return nil, fmt.Errorf("%w: start_date is in the past", ErrValidation)
	}

	var res Result
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repository.NewUserRepository(tx).GetByID(ctx, actor.UserID); err != nil {
			if repository.IsNotFound(err) {
				return fmt.Errorf("%w: %w: user %d", ErrValidation, ErrNotFound, actor.UserID)
			}
			return err
		}

		room, err := repository.NewRoomRepository(tx).GetByID(ctx, in.RoomID)
		if err != nil {
			if repository.IsNotFound(err) {
				return fmt.Errorf("%w: %w: room %d", ErrValidation, ErrNotFound, in.RoomID)
			}
			return err
		}
		if in.Price > room.Price {
			return fmt.Errorf("%w: price %.2f exceeds room price %.2f", ErrValidation, in.Price, room.Price)
		}

		n := &domain.Negotiation{
			UserID:     actor.UserID,
			RoomID:     room.ID,
			GuestPrice: in.Price,
			Price:      in.Price,
			Status:     domain.NegotiationPending,
			StartDate:  in.StartDate,
			EndDate:    in.EndDate,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		repo := repository.NewNegotiationRepository(tx)
		if err := repo.Create(ctx, n); err != nil {
			return err
		}
		if err := repo.AddEvent(ctx, &domain.NegotiationEvent{
			NegotiationID: n.ID,
			ActorID:       actor.UserID,
			ActorRole:     actor.Role,
			Action:        domain.ActionPropose,
			ToStatus:      n.Status,
			Price:         n.Price,
			CreatedAt:     now,
		}); err != nil {
			return err
		}

		res = Result{Negotiation: n, Room: room}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"negotiation_id": res.Negotiation.ID,
		"room_id":        res.Room.ID,
		"actor_id":       actor.UserID,
		"price":          res.Negotiation.Price,
	}).Info("negotiation proposed")
	s.notify(ctx, &res, actor, domain.ActionPropose)
	return &res, nil
}

func (s *Service) Accept(ctx context.Context, actor domain.Actor, id int64) (*Result, error) {
	return s.apply(ctx, actor, id, domain.ActionAccept, nil)
}

func (s *Service) Reject(ctx context.Context, actor domain.Actor, id int64) (*Result, error) {
	return s.apply(ctx, actor, id, domain.ActionReject, nil)
}

func (s *Service) Counter(ctx context.Context, actor domain.Actor, id int64, price float64) (*Result, error) {
	return s.apply(ctx, actor, id, domain.ActionCounter, &price)
}

func (s *Service) Cancel(ctx context.Context, actor domain.Actor, id int64) (*Result, error) {
	return s.apply(ctx, actor, id, domain.ActionCancel, nil)
}

func (s *Service) AcceptCounter(ctx context.Context, actor domain.Actor, id int64) (*Result, error) {
	return s.apply(ctx, actor, id, domain.ActionAcceptCounter, nil)
}

type UpdateInput struct {
	Status       string
	CounterPrice *float64
}

// Update maps a requested target status to the action the actor's role
// performs to reach it.
func (s *Service) Update(ctx context.Context, actor domain.Actor, id int64, in UpdateInput) (*Result, error) {
	target, err := domain.ParseNegotiationStatus(in.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	switch target {
	case domain.NegotiationAccepted:
		if actor.Role == domain.RoleGuest {
			return s.AcceptCounter(ctx, actor, id)
		}
		return s.Accept(ctx, actor, id)
	case domain.NegotiationRejected:
		return s.Reject(ctx, actor, id)
	case domain.NegotiationCountered:
		if in.CounterPrice == nil {
			return nil, fmt.Errorf("%w: counter_price is required", ErrValidation)
		}
		return s.Counter(ctx, actor, id, *in.CounterPrice)
	case domain.NegotiationCancelled:
		return s.Cancel(ctx, actor, id)
	default:
		return nil, fmt.Errorf("%w: a negotiation cannot be moved back to %s", ErrInvalidTransition, target)
	}
}

func (s *Service) apply(ctx context.Context, actor domain.Actor, id int64, action domain.NegotiationAction, counter *float64) (*Result, error) {
	var res Result
	var from domain.NegotiationStatus

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repository.NewNegotiationRepository(tx)
		n, err := repo.GetByID(ctx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				return fmt.Errorf("%w: negotiation %d", ErrNotFound, id)
			}
			return err
		}

		rooms := repository.NewRoomRepository(tx)
		var room *domain.Room
		if action == domain.ActionAccept || action == domain.ActionAcceptCounter {
			room, err = rooms.LockByID(ctx, n.RoomID)
		} else {
			room, err = rooms.GetByID(ctx, n.RoomID)
		}
		if err != nil {
			if repository.IsNotFound(err) {
				return fmt.Errorf("%w: room %d", ErrNotFound, n.RoomID)
			}
			return err
		}

		if err := authorize(actor, n, room); err != nil {
			return err
		}

		to, err := Transition(n.Status, actor.Role, action)
		if err != nil {
			return err
		}

		if counter != nil {
			if err := s.checkCounter(*counter, n, room); err != nil {
				return err
			}
			n.Price = *counter
		}

		from = n.Status
		n.Status = to
		n.UpdatedAt = s.now().UTC()
		if err := repo.CompareAndSwap(ctx, n, from); err != nil {
			if errors.Is(err, repository.ErrConcurrentUpdate) {
				return fmt.Errorf("%w: negotiation %d is no longer %s", ErrStaleState, n.ID, from)
			}
			return err
		}

		event := &domain.NegotiationEvent{
			NegotiationID: n.ID,
			ActorID:       actor.UserID,
			ActorRole:     actor.Role,
			Action:        action,
			FromStatus:    from,
			ToStatus:      to,
			Price:         n.Price,
			CreatedAt:     n.UpdatedAt,
		}

		if to == domain.NegotiationAccepted {
			b, err := s.materializer.Materialize(ctx, repository.NewBookingRepository(tx), n)
			if err != nil {
				return err
			}
			res.Booking = b
			event.BookingID = &b.ID
		}

		if err := repo.AddEvent(ctx, event); err != nil {
			return err
		}

		res.Negotiation = n
		res.Room = room
		return nil
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"negotiation_id": id,
			"action":         action,
			"actor_id":       actor.UserID,
		}).WithError(err).Debug("negotiation transition refused")
		return nil, err
	}

	fields := logrus.Fields{
		"negotiation_id": id,
		"action":         action,
		"actor_id":       actor.UserID,
		"from":           from,
		"to":             res.Negotiation.Status,
		"price":          res.Negotiation.Price,
	}
	if res.Booking != nil {
		fields["booking_id"] = res.Booking.ID
	}
	s.log.WithFields(fields).Info("negotiation transitioned")

	s.notify(ctx, &res, actor, action)
	return &res, nil
}

func (s *Service) checkCounter(price float64, n *domain.Negotiation, room *domain.Room) error {
	lower := 0.0
	if s.strictCounter {
		lower = n.GuestPrice
	}
	if price < lower || price > room.Price {
		return fmt.Errorf("%w: counter price must be between %.2f and %.2f", ErrValidation, lower, room.Price)
	}
	return nil
}

// authorize checks that actor is a party to n: its guest, or the owner of
// the room's hotel. Admins may act for any hotel.
func authorize(actor domain.Actor, n *domain.Negotiation, room *domain.Room) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleGuest:
		if n.UserID == actor.UserID {
			return nil
		}
	case domain.RoleHost:
		if room.Hotel != nil && room.Hotel.OwnerID == actor.UserID {
			return nil
		}
	}
	return fmt.Errorf("%w: not a party to negotiation %d", ErrForbidden, n.ID)
}

func (s *Service) notify(ctx context.Context, res *Result, actor domain.Actor, action domain.NegotiationAction) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NegotiationChanged(ctx, res.Negotiation, res.Room, actor, action); err != nil {
		s.log.WithFields(logrus.Fields{
			"negotiation_id": res.Negotiation.ID,
			"action":         action,
		}).WithError(err).Warn("failed to notify negotiation change")
	}
}

// History returns the negotiation's events, oldest first.
func (s *Service) History(ctx context.Context, actor domain.Actor, id int64) ([]domain.NegotiationEvent, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}
	return repository.NewNegotiationRepository(s.db).ListEvents(ctx, id)
}
