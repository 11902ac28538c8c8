package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotelbook/internal/database/dbtest"
	"hotelbook/internal/domain"
)

func seedNegotiation(t *testing.T, db *gorm.DB) *domain.Negotiation {
	t.Helper()
	guest := &domain.User{Email: "g@example.com", PasswordHash: "x", Role: domain.RoleGuest, Name: "G"}
	host := &domain.User{Email: "h@example.com", PasswordHash: "x", Role: domain.RoleHost, Name: "H"}
	require.NoError(t, db.Create(guest).Error)
	require.NoError(t, db.Create(host).Error)
	hotel := &domain.Hotel{OwnerID: host.ID, Name: "Inn"}
	require.NoError(t, db.Create(hotel).Error)
	room := &domain.Room{HotelID: hotel.ID, Name: "Twin", Price: 120}
	require.NoError(t, db.Create(room).Error)

	n := &domain.Negotiation{
		UserID:     guest.ID,
		RoomID:     room.ID,
		GuestPrice: 100,
		Price:      100,
		Status:     domain.NegotiationPending,
		StartDate:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, NewNegotiationRepository(db).Create(context.Background(), n))
	return n
}

func TestNegotiationRepository_CompareAndSwap(t *testing.T) {
	db := dbtest.New(t)
	repo := NewNegotiationRepository(db)
	ctx := context.Background()
	n := seedNegotiation(t, db)

	n.Status = domain.NegotiationCountered
	n.Price = 110
	n.UpdatedAt = time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.CompareAndSwap(ctx, n, domain.NegotiationPending))

	stale := *n
	stale.Status = domain.NegotiationAccepted
	err := repo.CompareAndSwap(ctx, &stale, domain.NegotiationPending)
	assert.ErrorIs(t, err, ErrConcurrentUpdate)

	stored, err := repo.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.NegotiationCountered, stored.Status)
	assert.Equal(t, 110.0, stored.Price)
	assert.Equal(t, 100.0, stored.GuestPrice)
}

func TestNegotiationRepository_GetRow(t *testing.T) {
	db := dbtest.New(t)
	repo := NewNegotiationRepository(db)
	n := seedNegotiation(t, db)

	row, err := repo.GetRow(context.Background(), n.ID)
	require.NoError(t, err)
	assert.Equal(t, "g@example.com", row.UserEmail)
	assert.Equal(t, "Twin", row.RoomName)
	assert.Equal(t, 120.0, row.RoomPrice)
	assert.Equal(t, "Inn", row.HotelName)
	assert.NotZero(t, row.HotelOwnerID)

	_, err = repo.GetRow(context.Background(), n.ID+100)
	assert.True(t, IsNotFound(err))
}

func TestClampPage(t *testing.T) {
	l, o := ClampPage(0, -3)
	assert.Equal(t, 20, l)
	assert.Equal(t, 0, o)

	l, _ = ClampPage(500, 0)
	assert.Equal(t, 100, l)

	l, o = ClampPage(5, 10)
	assert.Equal(t, 5, l)
	assert.Equal(t, 10, o)
}
