package tui

import (
	"github.com/mediview-health/mediview/internal/session"
	"github.com/mediview-health/mediview/pkg/domain"
)

// view identifies a routed screen. The dashboards are guarded; everything
// else is public.
type view int

const (
	viewLanding view = iota
	viewLogin
	viewSignup
	viewAdmin
	viewStaff
	viewPatient
)

// guarded reports whether v requires a live session.
func guarded(v view) bool {
	switch v {
	case viewAdmin, viewStaff, viewPatient:
		return true
	default:
		return false
	}
}

// admit evaluates one navigation attempt against the current session and
// returns the view that actually renders. Unauthenticated visitors are sent
// to the login view in place of the guarded target; the target is never
// recorded anywhere, so no back navigation can reach it. When a non-empty
// allowed set is given, an authenticated visitor whose role is outside the
// set is also turned away — to login, never to another role's view.
//
// admit holds no state: it re-reads the store on every call. This is a
// usability convenience, not a security boundary; the server still enforces
// authorization on every API call.
func admit(st session.Store, target view, allowed ...domain.Role) view {
	if !guarded(target) {
		return target
	}
	if !session.IsAuthenticated(st) {
		return viewLogin
	}
	if len(allowed) == 0 {
		return target
	}
	role := session.CurrentRole(st)
	for _, r := range allowed {
		if r == role {
			return target
		}
	}
	return viewLogin
}

// allowedRoles returns the role set a guarded view admits.
func allowedRoles(v view) []domain.Role {
	switch v {
	case viewAdmin:
		return []domain.Role{domain.RoleAdmin}
	case viewStaff:
		return []domain.Role{domain.RoleStaff}
	case viewPatient:
		return []domain.Role{domain.RolePatient}
	default:
		return nil
	}
}

// dashboardFor selects the role-specific dashboard. The switch is exhaustive
// over the closed role set; RoleUnknown (or any value outside the set) falls
// through to the login view so a malformed claim never lands on a privileged
// screen.
func dashboardFor(role domain.Role) view {
	switch role {
	case domain.RoleAdmin:
		return viewAdmin
	case domain.RoleStaff:
		return viewStaff
	case domain.RolePatient:
		return viewPatient
	default:
		return viewLogin
	}
}

// showBack reports whether the shell renders the back affordance.
// Suppressed on the landing root and the dashboard roots; presentational
// policy only.
func showBack(v view, authed bool) bool {
	if !authed {
		return false
	}
	switch v {
	case viewLanding, viewAdmin, viewStaff, viewPatient:
		return false
	default:
		return true
	}
}
