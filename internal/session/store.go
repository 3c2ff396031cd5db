// Package session owns the persisted client session: an opaque bearer token
// issued by the auth service and the role claim that selects which dashboard
// the TUI renders. The store is the single source of truth; everything else
// (gate, dispatcher, shell) only reads it through the query functions.
package session

import "github.com/mediview-health/mediview/pkg/domain"

// Session is the persisted authenticated state. The token is never parsed or
// verified client-side; an expired token looks present until a guarded API
// call fails.
type Session struct {
	Token string      `json:"token"`
	Role  domain.Role `json:"role"`
}

// Store holds the current session across restarts of the client.
//
// Stores are injected, never ambient: the login and signup flows are the only
// writers of Save, the shell's logout action is the only other caller of
// Clear, and every other component reads live through Read.
type Store interface {
	// Save persists token and role together, overwriting any prior session.
	Save(token string, role domain.Role) error

	// Clear removes the session. Clearing an empty store is a no-op.
	Clear() error

	// Read returns the persisted session. ok is false when no session
	// exists or the backing storage cannot be read — storage trouble
	// degrades to "no session" rather than surfacing an error.
	Read() (Session, bool)
}

// IsAuthenticated reports whether the store holds a live session. Purely
// local and synchronous; no server round-trip.
func IsAuthenticated(st Store) bool {
	sess, ok := st.Read()
	return ok && sess.Token != ""
}

// CurrentRole returns the stored role claim, or RoleUnknown when the session
// is absent or carries an unrecognized role.
func CurrentRole(st Store) domain.Role {
	sess, ok := st.Read()
	if !ok {
		return domain.RoleUnknown
	}
	if !sess.Role.Known() {
		return domain.RoleUnknown
	}
	return sess.Role
}
