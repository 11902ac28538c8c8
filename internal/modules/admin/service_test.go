package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbook/internal/database/dbtest"
	"hotelbook/internal/domain"
	"hotelbook/internal/repository"
)

func TestAcceptanceRate(t *testing.T) {
	assert.Equal(t, 0, acceptanceRate(nil))
	assert.Equal(t, 0, acceptanceRate(map[string]int64{"pending": 4}))
	assert.Equal(t, 50, acceptanceRate(map[string]int64{"accepted": 2, "rejected": 1, "cancelled": 1, "pending": 9}))
	assert.Equal(t, 67, acceptanceRate(map[string]int64{"accepted": 2, "rejected": 1}))
}

func TestGetStats(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	host := &domain.User{Email: "h@x", PasswordHash: "x", Role: domain.RoleHost}
	guest := &domain.User{Email: "g@x", PasswordHash: "x", Role: domain.RoleGuest}
	require.NoError(t, db.Create(host).Error)
	require.NoError(t, db.Create(guest).Error)

	hotel := &domain.Hotel{OwnerID: host.ID, Name: "H", City: "C"}
	require.NoError(t, db.Create(hotel).Error)
	room := &domain.Room{HotelID: hotel.ID, Name: "R", Price: 100, Capacity: 1}
	require.NoError(t, db.Create(room).Error)

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, st := range []domain.NegotiationStatus{domain.NegotiationAccepted, domain.NegotiationRejected, domain.NegotiationPending} {
		require.NoError(t, db.Create(&domain.Negotiation{
			UserID: guest.ID, RoomID: room.ID, GuestPrice: 80, Price: 80, Status: st,
			StartDate: start, EndDate: start.AddDate(0, 0, 2),
		}).Error)
	}
	require.NoError(t, db.Create(&domain.Booking{
		RoomID: room.ID, UserID: guest.ID, StartDate: start, EndDate: start.AddDate(0, 0, 2),
		Price: 80, TotalPrice: 160, Status: domain.BookingConfirmed,
	}).Error)
	require.NoError(t, db.Create(&domain.Booking{
		RoomID: room.ID, UserID: guest.ID, StartDate: start.AddDate(0, 1, 0), EndDate: start.AddDate(0, 1, 1),
		Price: 100, TotalPrice: 100, Status: domain.BookingCancelled,
	}).Error)

	svc := NewService(repository.NewUserRepository(db), repository.NewStatsRepository(db))
	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.UsersByRole["host"])
	assert.Equal(t, int64(1), stats.UsersByRole["guest"])
	assert.Equal(t, int64(1), stats.Hotels)
	assert.Equal(t, int64(1), stats.Rooms)
	assert.Equal(t, int64(1), stats.NegotiationsByStatus["pending"])
	assert.Equal(t, int64(1), stats.Bookings["confirmed"])
	assert.Equal(t, 160.0, stats.ConfirmedRevenue)
	assert.Equal(t, 50, stats.AcceptanceRate)
}

func TestGetUsers(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	for i, role := range []domain.UserRole{domain.RoleGuest, domain.RoleGuest, domain.RoleHost} {
		require.NoError(t, db.Create(&domain.User{
			Email: string(role) + string(rune('a'+i)) + "@x", PasswordHash: "x", Role: role,
		}).Error)
	}

	svc := NewService(repository.NewUserRepository(db), repository.NewStatsRepository(db))

	users, total, err := svc.GetUsers(ctx, "guest", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 2)

	users, total, err = svc.GetUsers(ctx, "", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, users, 2)

	_, _, err = svc.GetUsers(ctx, "superuser", 1, 20)
	assert.ErrorIs(t, err, ErrInvalidRole)
}
