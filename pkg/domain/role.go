package domain

// Role classifies an authenticated identity. The set is closed: the server
// only ever issues these three values, and anything else collapses to
// RoleUnknown so a malformed claim can never select a privileged view.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleStaff   Role = "STAFF"
	RolePatient Role = "PATIENT"

	// RoleUnknown marks an absent or unrecognized role claim.
	RoleUnknown Role = ""
)

// KnownRoles lists the roles a visitor may sign up as, in display order.
var KnownRoles = []Role{RoleAdmin, RoleStaff, RolePatient}

// ParseRole maps a raw role claim to a known Role. Unrecognized input
// returns RoleUnknown rather than passing the raw string through.
func ParseRole(raw string) Role {
	switch Role(raw) {
	case RoleAdmin:
		return RoleAdmin
	case RoleStaff:
		return RoleStaff
	case RolePatient:
		return RolePatient
	default:
		return RoleUnknown
	}
}

// Known reports whether r is one of the recognized role values.
func (r Role) Known() bool {
	return r == RoleAdmin || r == RoleStaff || r == RolePatient
}

// Label returns the human-readable form used in headers and dashboard links.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleStaff:
		return "Staff"
	case RolePatient:
		return "Patient"
	default:
		return "Guest"
	}
}
