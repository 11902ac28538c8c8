package notification

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbook/internal/database/dbtest"
	"hotelbook/internal/domain"
	"hotelbook/internal/pkg/logger"
	"hotelbook/internal/repository"
)

func testNegotiation() (*domain.Negotiation, *domain.Room) {
	room := &domain.Room{ID: 4, HotelID: 2, Name: "Suite", Price: 200, Hotel: &domain.Hotel{ID: 2, OwnerID: 20}}
	n := &domain.Negotiation{
		ID:        1,
		UserID:    10,
		RoomID:    4,
		Price:     150,
		Status:    domain.NegotiationPending,
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
	}
	return n, room
}

func TestService_NegotiationChanged_Recipients(t *testing.T) {
	db := dbtest.New(t)
	svc := NewService(repository.NewNotificationRepository(db), NewHub(), logger.Discard())
	ctx := context.Background()
	n, room := testNegotiation()

	require.NoError(t, svc.NegotiationChanged(ctx, n, room, domain.Actor{UserID: 10, Role: domain.RoleGuest}, domain.ActionPropose))

	hostList, unread, err := svc.GetUserNotifications(ctx, 20, 10)
	require.NoError(t, err)
	require.Len(t, hostList, 1)
	assert.Equal(t, int64(1), unread)
	assert.Equal(t, domain.NotifNegotiationProposed, hostList[0].Type)
	assert.Contains(t, hostList[0].Message, "2024-06-01")

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(hostList[0].Data, &data))
	assert.Equal(t, float64(1), data["negotiation_id"])

	guestList, _, err := svc.GetUserNotifications(ctx, 10, 10)
	require.NoError(t, err)
	assert.Empty(t, guestList, "actor is not notified of their own action")

	n.Status = domain.NegotiationCountered
	n.Price = 170
	require.NoError(t, svc.NegotiationChanged(ctx, n, room, domain.Actor{UserID: 20, Role: domain.RoleHost}, domain.ActionCounter))

	guestList, _, err = svc.GetUserNotifications(ctx, 10, 10)
	require.NoError(t, err)
	require.Len(t, guestList, 1)
	assert.Equal(t, domain.NotifNegotiationCountered, guestList[0].Type)
}

func TestService_NegotiationChanged_AdminNotifiesBothSides(t *testing.T) {
	db := dbtest.New(t)
	svc := NewService(repository.NewNotificationRepository(db), nil, logger.Discard())
	ctx := context.Background()
	n, room := testNegotiation()
	n.Status = domain.NegotiationRejected

	require.NoError(t, svc.NegotiationChanged(ctx, n, room, domain.Actor{UserID: 99, Role: domain.RoleAdmin}, domain.ActionReject))

	for _, uid := range []int64{10, 20} {
		list, _, err := svc.GetUserNotifications(ctx, uid, 10)
		require.NoError(t, err)
		require.Len(t, list, 1, "user %d", uid)
		assert.Equal(t, domain.NotifNegotiationRejected, list[0].Type)
	}
}

func TestService_MarkAsRead(t *testing.T) {
	db := dbtest.New(t)
	svc := NewService(repository.NewNotificationRepository(db), nil, logger.Discard())
	ctx := context.Background()
	n, room := testNegotiation()

	require.NoError(t, svc.NegotiationChanged(ctx, n, room, domain.Actor{UserID: 10, Role: domain.RoleGuest}, domain.ActionPropose))
	list, _, err := svc.GetUserNotifications(ctx, 20, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)

	assert.Error(t, svc.MarkAsRead(ctx, list[0].ID, 10), "someone else's notification")
	require.NoError(t, svc.MarkAsRead(ctx, list[0].ID, 20))

	list, unread, err := svc.GetUserNotifications(ctx, 20, 10)
	require.NoError(t, err)
	assert.Zero(t, unread)
	assert.True(t, list[0].IsRead)
	assert.NotNil(t, list[0].ReadAt)
}

func TestDescribe(t *testing.T) {
	n, _ := testNegotiation()

	typ, _ := describe(n, domain.ActionPropose)
	assert.Equal(t, domain.NotifNegotiationProposed, typ)

	n.Status = domain.NegotiationAccepted
	typ, _ = describe(n, domain.ActionAcceptCounter)
	assert.Equal(t, domain.NotifNegotiationAccepted, typ)

	n.Status = domain.NegotiationCancelled
	typ, _ = describe(n, domain.ActionReject)
	assert.Equal(t, domain.NotifNegotiationCancelled, typ)
}
