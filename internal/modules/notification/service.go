package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"hotelbook/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, int64, error)
	MarkAsRead(ctx context.Context, id, userID int64, at time.Time) error
	MarkAllAsRead(ctx context.Context, userID int64, at time.Time) error
}

type Service struct {
	repo Repository
	hub  *Hub
	log  *logrus.Logger
}

func NewService(repo Repository, hub *Hub, log *logrus.Logger) *Service {
	return &Service{repo: repo, hub: hub, log: log}
}

type negotiationData struct {
	NegotiationID int64                    `json:"negotiation_id"`
	RoomID        int64                    `json:"room_id"`
	HotelID       int64                    `json:"hotel_id"`
	Status        domain.NegotiationStatus `json:"status"`
	Price         float64                  `json:"price"`
	ActorID       int64                    `json:"actor_id"`
}

// NegotiationChanged stores a notification for the counterparty of actor and
// pushes it over the websocket if they are online. Admin actions notify
// both the guest and the hotel owner.
func (s *Service) NegotiationChanged(ctx context.Context, n *domain.Negotiation, room *domain.Room, actor domain.Actor, action domain.NegotiationAction) error {
	var ownerID int64
	if room.Hotel != nil {
		ownerID = room.Hotel.OwnerID
	}

	var recipients []int64
	switch {
	case actor.IsAdmin():
		recipients = []int64{n.UserID, ownerID}
	case actor.Role == domain.RoleGuest:
		recipients = []int64{ownerID}
	default:
		recipients = []int64{n.UserID}
	}

	data, err := json.Marshal(negotiationData{
		NegotiationID: n.ID,
		RoomID:        room.ID,
		HotelID:       room.HotelID,
		Status:        n.Status,
		Price:         n.Price,
		ActorID:       actor.UserID,
	})
	if err != nil {
		return err
	}

	typ, title := describe(n, action)
	message := fmt.Sprintf("%s, %s to %s, %.2f per night",
		room.Name, n.StartDate.Format("2006-01-02"), n.EndDate.Format("2006-01-02"), n.Price)

	for _, uid := range recipients {
		if uid == 0 || uid == actor.UserID {
			continue
		}
		notif := &domain.Notification{
			UserID:  uid,
			Type:    typ,
			Title:   title,
			Message: message,
			Data:    data,
		}
		if err := s.repo.Create(ctx, notif); err != nil {
			return err
		}
		if s.hub != nil && s.hub.SendToUser(uid, &Event{Type: EventNotification, Payload: notif}) {
			s.log.WithFields(logrus.Fields{
				"user_id":        uid,
				"negotiation_id": n.ID,
			}).Debug("notification pushed")
		}
	}
	return nil
}

func describe(n *domain.Negotiation, action domain.NegotiationAction) (domain.NotificationType, string) {
	switch action {
	case domain.ActionPropose:
		return domain.NotifNegotiationProposed, "New price proposal"
	case domain.ActionCounter:
		return domain.NotifNegotiationCountered, "Host sent a counter-offer"
	}

	switch n.Status {
	case domain.NegotiationAccepted:
		return domain.NotifNegotiationAccepted, "Negotiation accepted, booking confirmed"
	case domain.NegotiationRejected:
		return domain.NotifNegotiationRejected, "Proposal rejected"
	default:
		return domain.NotifNegotiationCancelled, "Negotiation cancelled"
	}
}

func (s *Service) GetUserNotifications(ctx context.Context, userID int64, limit int) ([]domain.Notification, int64, error) {
	return s.repo.ListByUser(ctx, userID, limit)
}

func (s *Service) MarkAsRead(ctx context.Context, id, userID int64) error {
	return s.repo.MarkAsRead(ctx, id, userID, time.Now().UTC())
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllAsRead(ctx, userID, time.Now().UTC())
}
