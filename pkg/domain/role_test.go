package domain

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw  string
		want Role
	}{
		{"ADMIN", RoleAdmin},
		{"STAFF", RoleStaff},
		{"PATIENT", RolePatient},
		{"", RoleUnknown},
		{"SUPERUSER", RoleUnknown},
		{"admin", RoleUnknown}, // claims are case-sensitive
		{"Staff", RoleUnknown},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			if got := ParseRole(tc.raw); got != tc.want {
				t.Errorf("ParseRole(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestRoleKnown(t *testing.T) {
	for _, r := range KnownRoles {
		if !r.Known() {
			t.Errorf("expected %q to be known", r)
		}
	}
	if RoleUnknown.Known() {
		t.Error("RoleUnknown must not be known")
	}
	if Role("SUPERUSER").Known() {
		t.Error("unlisted role must not be known")
	}
}

func TestRoleLabel(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleAdmin, "Admin"},
		{RoleStaff, "Staff"},
		{RolePatient, "Patient"},
		{RoleUnknown, "Guest"},
	}
	for _, tc := range tests {
		if got := tc.role.Label(); got != tc.want {
			t.Errorf("Label(%q) = %q, want %q", tc.role, got, tc.want)
		}
	}
}
