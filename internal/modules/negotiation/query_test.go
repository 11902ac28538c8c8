package negotiation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbook/internal/domain"
)

func TestParseStatusFilter(t *testing.T) {
	all, err := ParseStatusFilter("")
	require.NoError(t, err)
	assert.Nil(t, all)

	all, err = ParseStatusFilter("all")
	require.NoError(t, err)
	assert.Nil(t, all)

	active, err := ParseStatusFilter("Active")
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.NegotiationStatus{domain.NegotiationPending, domain.NegotiationCountered}, active)

	resolved, err := ParseStatusFilter("resolved")
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.NegotiationStatus{domain.NegotiationAccepted, domain.NegotiationRejected, domain.NegotiationCancelled}, resolved)

	single, err := ParseStatusFilter("countered")
	require.NoError(t, err)
	assert.Equal(t, []domain.NegotiationStatus{domain.NegotiationCountered}, single)

	_, err = ParseStatusFilter("expired")
	assert.ErrorIs(t, err, ErrValidation)
}

// seedListing leaves the guest with one pending, one countered, one accepted
// and one cancelled negotiation, updated in that order of creation.
func seedListing(t *testing.T, f *fixture) map[domain.NegotiationStatus]int64 {
	t.Helper()
	ctx := context.Background()
	ids := map[domain.NegotiationStatus]int64{}

	n := f.propose(t, f.guest, 150, day(2024, 6, 1), day(2024, 6, 4))
	ids[domain.NegotiationPending] = n.ID

	n = f.propose(t, f.guest, 150, day(2024, 7, 1), day(2024, 7, 4))
	_, err := f.svc.Counter(ctx, f.host, n.ID, 180)
	require.NoError(t, err)
	ids[domain.NegotiationCountered] = n.ID

	n = f.propose(t, f.guest, 160, day(2024, 8, 1), day(2024, 8, 4))
	_, err = f.svc.Accept(ctx, f.host, n.ID)
	require.NoError(t, err)
	ids[domain.NegotiationAccepted] = n.ID

	n = f.propose(t, f.guest, 120, day(2024, 9, 1), day(2024, 9, 4))
	_, err = f.svc.Cancel(ctx, f.guest, n.ID)
	require.NoError(t, err)
	ids[domain.NegotiationCancelled] = n.ID

	f.propose(t, f.guest2, 190, day(2024, 6, 10), day(2024, 6, 12))
	return ids
}

func TestListByUser(t *testing.T) {
	f := newFixture(t, true)
	ids := seedListing(t, f)
	ctx := context.Background()

	res, err := f.svc.ListByUser(ctx, f.guest, f.guest.UserID, ListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Total)
	assert.Equal(t, 20, res.Limit)
	require.Len(t, res.Items, 4)
	assert.Equal(t, ids[domain.NegotiationCancelled], res.Items[0].ID, "most recently updated first")
	for i := 1; i < len(res.Items); i++ {
		assert.False(t, res.Items[i].UpdatedAt.After(res.Items[i-1].UpdatedAt))
	}

	first := res.Items[0]
	require.NotNil(t, first.User)
	assert.Equal(t, "guest@example.com", first.User.Email)
	require.NotNil(t, first.Room)
	assert.Equal(t, 200.0, first.Room.Price)
	require.NotNil(t, first.Hotel)
	assert.Equal(t, "Seaside", first.Hotel.Name)
	assert.Equal(t, 40, first.DiscountPercent)
	assert.Equal(t, 3, first.Nights)
	assert.Equal(t, 360.0, first.Total)

	res, err = f.svc.ListByUser(ctx, f.guest, f.guest.UserID, ListParams{Status: "active"})
	require.NoError(t, err)
	got := []int64{}
	for _, it := range res.Items {
		got = append(got, it.ID)
	}
	assert.ElementsMatch(t, []int64{ids[domain.NegotiationPending], ids[domain.NegotiationCountered]}, got)

	res, err = f.svc.ListByUser(ctx, f.guest, f.guest.UserID, ListParams{Status: "resolved"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	res, err = f.svc.ListByUser(ctx, f.guest, f.guest.UserID, ListParams{Status: "countered"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 180.0, res.Items[0].Price)
	assert.Equal(t, 150.0, res.Items[0].GuestPrice)

	res, err = f.svc.ListByUser(ctx, f.guest, f.guest.UserID, ListParams{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Total)
	assert.Len(t, res.Items, 2)

	_, err = f.svc.ListByUser(ctx, f.guest2, f.guest.UserID, ListParams{})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.ListByUser(ctx, f.guest, f.guest.UserID, ListParams{Status: "nope"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListByHotelAndRoom(t *testing.T) {
	f := newFixture(t, true)
	seedListing(t, f)
	ctx := context.Background()

	res, err := f.svc.ListByHotel(ctx, f.host, f.hotel.ID, ListParams{Status: "all"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.Total)

	res, err = f.svc.ListByRoom(ctx, f.host, f.room.ID, ListParams{Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	res, err = f.svc.ListByHotel(ctx, f.admin, f.hotel.ID, ListParams{Status: "accepted"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)

	_, err = f.svc.ListByHotel(ctx, f.otherHost, f.hotel.ID, ListParams{})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.ListByRoom(ctx, f.guest, f.room.ID, ListParams{})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.ListByHotel(ctx, f.host, 9999, ListParams{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.ListByRoom(ctx, f.host, 9999, ListParams{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet(t *testing.T) {
	f := newFixture(t, true)
	n := f.propose(t, f.guest, 150, day(2024, 6, 1), day(2024, 6, 4))

	for _, actor := range []domain.Actor{f.guest, f.host, f.admin} {
		v, err := f.svc.Get(context.Background(), actor, n.ID)
		require.NoError(t, err)
		assert.Equal(t, n.ID, v.ID)
		assert.Equal(t, 25, v.DiscountPercent)
	}
}

func TestGet_AllowedActionsFollowViewer(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	n := f.propose(t, f.guest, 150, day(2024, 6, 1), day(2024, 6, 4))

	v, err := f.svc.Get(ctx, f.host, n.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.NegotiationAction{domain.ActionAccept, domain.ActionReject, domain.ActionCounter}, v.AllowedActions)

	v, err = f.svc.Get(ctx, f.guest, n.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.NegotiationAction{domain.ActionCancel}, v.AllowedActions)

	_, err = f.svc.Reject(ctx, f.host, n.ID)
	require.NoError(t, err)

	list, err := f.svc.ListByUser(ctx, f.guest, f.guest.UserID, ListParams{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.NotNil(t, list.Items[0].AllowedActions)
	assert.Empty(t, list.Items[0].AllowedActions, "terminal negotiations offer nothing")
}
