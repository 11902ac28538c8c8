package negotiation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbook/internal/domain"
)

func TestTransition_Table(t *testing.T) {
	cases := []struct {
		from   domain.NegotiationStatus
		role   domain.UserRole
		action domain.NegotiationAction
		want   domain.NegotiationStatus
	}{
		{domain.NegotiationPending, domain.RoleHost, domain.ActionAccept, domain.NegotiationAccepted},
		{domain.NegotiationPending, domain.RoleHost, domain.ActionReject, domain.NegotiationRejected},
		{domain.NegotiationPending, domain.RoleHost, domain.ActionCounter, domain.NegotiationCountered},
		{domain.NegotiationPending, domain.RoleGuest, domain.ActionCancel, domain.NegotiationCancelled},
		{domain.NegotiationCountered, domain.RoleGuest, domain.ActionAcceptCounter, domain.NegotiationAccepted},
		{domain.NegotiationCountered, domain.RoleGuest, domain.ActionReject, domain.NegotiationCancelled},
		{domain.NegotiationCountered, domain.RoleGuest, domain.ActionCancel, domain.NegotiationCancelled},
		{domain.NegotiationPending, domain.RoleAdmin, domain.ActionAccept, domain.NegotiationAccepted},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"/"+string(tc.role)+"/"+string(tc.action), func(t *testing.T) {
			got, err := Transition(tc.from, tc.role, tc.action)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTransition_WrongRoleIsForbidden(t *testing.T) {
	cases := []struct {
		from   domain.NegotiationStatus
		role   domain.UserRole
		action domain.NegotiationAction
	}{
		{domain.NegotiationPending, domain.RoleGuest, domain.ActionAccept},
		{domain.NegotiationPending, domain.RoleGuest, domain.ActionReject},
		{domain.NegotiationPending, domain.RoleGuest, domain.ActionCounter},
		{domain.NegotiationPending, domain.RoleHost, domain.ActionCancel},
		{domain.NegotiationCountered, domain.RoleHost, domain.ActionAcceptCounter},
		{domain.NegotiationCountered, domain.RoleHost, domain.ActionReject},
		{domain.NegotiationCountered, domain.RoleAdmin, domain.ActionCancel},
	}

	for _, tc := range cases {
		_, err := Transition(tc.from, tc.role, tc.action)
		assert.ErrorIs(t, err, ErrForbidden, "%s/%s/%s", tc.from, tc.role, tc.action)
	}
}

// Accepting belongs to whoever received the latest offer; the other side is
// refused as the wrong party, whichever accept verb it used.
func TestTransition_AcceptByWrongPartyIsForbidden(t *testing.T) {
	cases := []struct {
		from   domain.NegotiationStatus
		role   domain.UserRole
		action domain.NegotiationAction
	}{
		{domain.NegotiationPending, domain.RoleGuest, domain.ActionAcceptCounter},
		{domain.NegotiationPending, domain.RoleGuest, domain.ActionAccept},
		{domain.NegotiationCountered, domain.RoleHost, domain.ActionAccept},
		{domain.NegotiationCountered, domain.RoleAdmin, domain.ActionAccept},
		{domain.NegotiationCountered, domain.RoleHost, domain.ActionAcceptCounter},
	}
	for _, tc := range cases {
		_, err := Transition(tc.from, tc.role, tc.action)
		assert.ErrorIs(t, err, ErrForbidden, "%s/%s/%s", tc.from, tc.role, tc.action)
		assert.NotErrorIs(t, err, ErrInvalidTransition)
	}
}

func TestTransition_UnlistedIsInvalid(t *testing.T) {
	_, err := Transition(domain.NegotiationCountered, domain.RoleHost, domain.ActionCounter)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = Transition(domain.NegotiationCountered, domain.RoleGuest, domain.ActionCounter)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = Transition(domain.NegotiationPending, domain.RoleGuest, domain.ActionPropose)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransition_TerminalStatesRejectEverything(t *testing.T) {
	actions := []domain.NegotiationAction{
		domain.ActionPropose,
		domain.ActionAccept,
		domain.ActionReject,
		domain.ActionCounter,
		domain.ActionCancel,
		domain.ActionAcceptCounter,
	}
	roles := []domain.UserRole{domain.RoleGuest, domain.RoleHost, domain.RoleAdmin}

	for _, from := range domain.NegotiationStatuses {
		if !from.IsTerminal() {
			continue
		}
		for _, role := range roles {
			for _, a := range actions {
				_, err := Transition(from, role, a)
				assert.ErrorIs(t, err, ErrInvalidTransition, "%s/%s/%s", from, role, a)
			}
		}
	}
}

func TestTransition_NeverReachesPending(t *testing.T) {
	for k, to := range transitions {
		assert.NotEqual(t, domain.NegotiationPending, to, "%v", k)
		assert.True(t, to.IsValid())
	}
}

func TestAllowedActions(t *testing.T) {
	assert.ElementsMatch(t,
		[]domain.NegotiationAction{domain.ActionAccept, domain.ActionReject, domain.ActionCounter},
		AllowedActions(domain.NegotiationPending, domain.RoleHost))
	assert.ElementsMatch(t,
		[]domain.NegotiationAction{domain.ActionCancel},
		AllowedActions(domain.NegotiationPending, domain.RoleGuest))
	assert.ElementsMatch(t,
		[]domain.NegotiationAction{domain.ActionReject, domain.ActionCancel, domain.ActionAcceptCounter},
		AllowedActions(domain.NegotiationCountered, domain.RoleGuest))
	assert.Empty(t, AllowedActions(domain.NegotiationCountered, domain.RoleHost))
	assert.Empty(t, AllowedActions(domain.NegotiationAccepted, domain.RoleAdmin))
}
