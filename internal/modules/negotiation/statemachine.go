package negotiation

import (
	"fmt"

	"hotelbook/internal/domain"
)

type transitionKey struct {
	from   domain.NegotiationStatus
	role   domain.UserRole
	action domain.NegotiationAction
}

// transitions is the complete table of legal moves. Admins are mapped to the
// host role before lookup.
var transitions = map[transitionKey]domain.NegotiationStatus{
	{domain.NegotiationPending, domain.RoleHost, domain.ActionAccept}:  domain.NegotiationAccepted,
	{domain.NegotiationPending, domain.RoleHost, domain.ActionReject}:  domain.NegotiationRejected,
	{domain.NegotiationPending, domain.RoleHost, domain.ActionCounter}: domain.NegotiationCountered,
	{domain.NegotiationPending, domain.RoleGuest, domain.ActionCancel}: domain.NegotiationCancelled,

	{domain.NegotiationCountered, domain.RoleGuest, domain.ActionAcceptCounter}: domain.NegotiationAccepted,
	{domain.NegotiationCountered, domain.RoleGuest, domain.ActionReject}:        domain.NegotiationCancelled,
	{domain.NegotiationCountered, domain.RoleGuest, domain.ActionCancel}:        domain.NegotiationCancelled,
}

// counterparts pairs actions that reach the same status from opposite sides.
// A guest "accepting" a pending proposal is attempting the host's accept.
var counterparts = map[domain.NegotiationAction]domain.NegotiationAction{
	domain.ActionAccept:        domain.ActionAcceptCounter,
	domain.ActionAcceptCounter: domain.ActionAccept,
}

// Transition returns the status reached when role applies action to a
// negotiation in from. It fails with ErrInvalidTransition when from is
// terminal or the action is not defined there, and with ErrForbidden when
// the action exists for from but belongs to the other party.
func Transition(from domain.NegotiationStatus, role domain.UserRole, action domain.NegotiationAction) (domain.NegotiationStatus, error) {
	if from.IsTerminal() {
		return "", fmt.Errorf("%w: negotiation is already %s", ErrInvalidTransition, from)
	}

	role = tableRole(role)
	if to, ok := transitions[transitionKey{from, role, action}]; ok {
		return to, nil
	}
	if _, ok := transitions[transitionKey{from, otherRole(role), action}]; ok {
		return "", fmt.Errorf("%w: %s cannot %s a %s negotiation", ErrForbidden, role, action, from)
	}
	if peer, ok := counterparts[action]; ok {
		if _, ok := transitions[transitionKey{from, otherRole(role), peer}]; ok {
			return "", fmt.Errorf("%w: only the %s can accept a %s negotiation", ErrForbidden, otherRole(role), from)
		}
	}
	return "", fmt.Errorf("%w: cannot %s a %s negotiation", ErrInvalidTransition, action, from)
}

// AllowedActions lists what role may do next on a negotiation in from.
func AllowedActions(from domain.NegotiationStatus, role domain.UserRole) []domain.NegotiationAction {
	role = tableRole(role)
	out := make([]domain.NegotiationAction, 0, 3)
	for _, a := range []domain.NegotiationAction{
		domain.ActionAccept,
		domain.ActionReject,
		domain.ActionCounter,
		domain.ActionCancel,
		domain.ActionAcceptCounter,
	} {
		if _, ok := transitions[transitionKey{from, role, a}]; ok {
			out = append(out, a)
		}
	}
	return out
}

func tableRole(r domain.UserRole) domain.UserRole {
	if r == domain.RoleAdmin {
		return domain.RoleHost
	}
	return r
}

func otherRole(r domain.UserRole) domain.UserRole {
	if r == domain.RoleHost {
		return domain.RoleGuest
	}
	return domain.RoleHost
}
