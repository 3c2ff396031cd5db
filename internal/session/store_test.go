package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mediview-health/mediview/pkg/domain"
)

// stores returns one of each Store implementation, file-backed in a temp dir.
func stores(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		"mem":  NewMemStore(),
		"file": NewFileStore(filepath.Join(t.TempDir(), "session.json"), nil),
	}
}

func TestSaveReadConsistency(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, role := range domain.KnownRoles {
				if err := st.Save("tok-"+string(role), role); err != nil {
					t.Fatalf("Save(%q) error: %v", role, err)
				}
				if !IsAuthenticated(st) {
					t.Errorf("IsAuthenticated = false after Save(%q)", role)
				}
				if got := CurrentRole(st); got != role {
					t.Errorf("CurrentRole = %q, want %q", got, role)
				}
				sess, ok := st.Read()
				if !ok {
					t.Fatal("Read reported absent after Save")
				}
				if sess.Token != "tok-"+string(role) {
					t.Errorf("Token = %q, want %q", sess.Token, "tok-"+string(role))
				}
			}
		})
	}
}

func TestClearIdempotent(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := st.Save("tok123", domain.RoleStaff); err != nil {
				t.Fatalf("Save error: %v", err)
			}
			for i := 0; i < 2; i++ {
				if err := st.Clear(); err != nil {
					t.Fatalf("Clear #%d error: %v", i+1, err)
				}
				if IsAuthenticated(st) {
					t.Errorf("IsAuthenticated = true after Clear #%d", i+1)
				}
			}
		})
	}
}

func TestEmptyStoreIsAbsent(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok := st.Read(); ok {
				t.Error("Read reported present on empty store")
			}
			if IsAuthenticated(st) {
				t.Error("IsAuthenticated = true on empty store")
			}
			if got := CurrentRole(st); got != domain.RoleUnknown {
				t.Errorf("CurrentRole = %q on empty store, want RoleUnknown", got)
			}
		})
	}
}

func TestUnrecognizedRoleReadsAsUnknown(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := st.Save("tok123", domain.Role("SUPERUSER")); err != nil {
				t.Fatalf("Save error: %v", err)
			}
			// Token present, role unidentifiable — still authenticated,
			// never silently granted a default role.
			if !IsAuthenticated(st) {
				t.Error("IsAuthenticated = false with token present")
			}
			if got := CurrentRole(st); got != domain.RoleUnknown {
				t.Errorf("CurrentRole = %q, want RoleUnknown", got)
			}
		})
	}
}

func TestSaveOverwritesPriorSession(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := st.Save("old", domain.RoleAdmin); err != nil {
				t.Fatalf("Save error: %v", err)
			}
			if err := st.Save("new", domain.RolePatient); err != nil {
				t.Fatalf("Save error: %v", err)
			}
			sess, ok := st.Read()
			if !ok {
				t.Fatal("Read reported absent")
			}
			if sess.Token != "new" || sess.Role != domain.RolePatient {
				t.Errorf("Read = %+v, want token=new role=PATIENT", sess)
			}
		})
	}
}

func TestFileStoreCorruptFileIsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	st := NewFileStore(path, nil)
	if _, ok := st.Read(); ok {
		t.Error("Read reported present for corrupt file")
	}
	if IsAuthenticated(st) {
		t.Error("IsAuthenticated = true for corrupt file")
	}
}

func TestFileStoreEmptyTokenIsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(`{"token":"","role":"ADMIN"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	st := NewFileStore(path, nil)
	if IsAuthenticated(st) {
		t.Error("IsAuthenticated = true with empty token")
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	st := NewFileStore(path, nil)
	if err := st.Save("tok123", domain.RoleStaff); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	// A fresh store over the same file sees the session — the reload case.
	reopened := NewFileStore(path, nil)
	if !IsAuthenticated(reopened) {
		t.Error("IsAuthenticated = false after reopen")
	}
	if got := CurrentRole(reopened); got != domain.RoleStaff {
		t.Errorf("CurrentRole = %q after reopen, want STAFF", got)
	}
}

func TestFileStoreNoStrayStageFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")
	st := NewFileStore(path, nil)
	if err := st.Save("tok123", domain.RoleAdmin); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("stage file left behind after Save")
	}
}
