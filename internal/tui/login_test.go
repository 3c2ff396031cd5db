package tui

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mediview-health/mediview/pkg/client"
	"github.com/mediview-health/mediview/pkg/domain"
)

func TestLoginSubmitRequiresFields(t *testing.T) {
	m := newLoginModel(client.New("http://mediview.test", ""))
	m, cmd := m.submit()
	if cmd != nil {
		t.Error("expected no network command for an empty form")
	}
	if m.errMsg == "" {
		t.Error("expected inline error for empty form")
	}
}

func TestLoginTypingAndFocus(t *testing.T) {
	m := newLoginModel(client.New("http://mediview.test", ""))

	for _, r := range "dr@x.org" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if m.fields[fieldLoginEmail] != "dr@x.org" {
		t.Errorf("email field = %q, want %q", m.fields[fieldLoginEmail], "dr@x.org")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != fieldLoginPassword {
		t.Errorf("focus = %d after tab, want password field", m.focus)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	if m.fields[fieldLoginPassword] != "s" {
		t.Errorf("password field = %q, want %q", m.fields[fieldLoginPassword], "s")
	}
}

func TestLoginPasswordMasked(t *testing.T) {
	m := newLoginModel(client.New("http://mediview.test", ""))
	m.fields[fieldLoginPassword] = "secret"
	out := m.View()
	if strings.Contains(out, "secret") {
		t.Error("password rendered in clear text")
	}
	if !strings.Contains(out, "••••••") {
		t.Error("expected masked password dots")
	}
}

func TestLoginStaleResultDropped(t *testing.T) {
	m := newLoginModel(client.New("http://mediview.test", ""))
	m.submitting = true
	m.attempt = 2

	// A result from attempt 1 arrives after the user re-submitted.
	m, cmd := m.Update(loginResultMsg{attempt: 1, err: errors.New("boom")})
	if cmd != nil {
		t.Error("stale result must produce no command")
	}
	if m.errMsg != "" {
		t.Errorf("stale result set errMsg = %q", m.errMsg)
	}
	if !m.submitting {
		t.Error("stale result cleared submitting state")
	}
}

func TestLoginResultAfterNavigationDropped(t *testing.T) {
	// Navigating away resets the form (submitting=false); a late response
	// must not resurrect the attempt.
	m := newLoginModel(client.New("http://mediview.test", ""))
	m, cmd := m.Update(loginResultMsg{attempt: 0, token: "tok", role: domain.RoleStaff})
	if cmd != nil {
		t.Error("result without an in-flight attempt must be dropped")
	}
}

func TestLoginFailureMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"credentials rejected", &client.HTTPError{StatusCode: 401, Message: "bad credentials"}, "not recognized"},
		{"server error", &client.HTTPError{StatusCode: 500, Message: "oops"}, "rejected"},
		{"network", errors.New("dial tcp: connection refused"), "cannot reach"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newLoginModel(client.New("http://mediview.test", ""))
			m.submitting = true
			m.attempt = 1
			m, _ = m.Update(loginResultMsg{attempt: 1, err: tc.err})
			if m.submitting {
				t.Error("still submitting after result")
			}
			if !strings.Contains(m.errMsg, tc.want) {
				t.Errorf("errMsg = %q, want it to contain %q", m.errMsg, tc.want)
			}
		})
	}
}

func TestLoginSuccessEmitsLoggedIn(t *testing.T) {
	m := newLoginModel(client.New("http://mediview.test", ""))
	m.submitting = true
	m.attempt = 1

	m, cmd := m.Update(loginResultMsg{attempt: 1, token: "tok123", role: domain.RoleStaff})
	if cmd == nil {
		t.Fatal("expected command carrying loggedInMsg")
	}
	msg, ok := cmd().(loggedInMsg)
	if !ok {
		t.Fatalf("cmd yielded %T, want loggedInMsg", cmd())
	}
	if msg.token != "tok123" || msg.role != domain.RoleStaff {
		t.Errorf("loggedInMsg = %+v", msg)
	}
	_ = m
}

func TestLoginFullFlowAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			json.NewEncoder(w).Encode(map[string]string{"token": "tok123"}) //nolint:errcheck
		case "/api/profile":
			if r.Header.Get("Authorization") != "Bearer tok123" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(domain.User{Name: "Dr. Osei", Role: domain.RoleStaff}) //nolint:errcheck
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	m := newLoginModel(client.New(srv.URL, ""))
	m.fields[fieldLoginEmail] = "dr@x.org"
	m.fields[fieldLoginPassword] = "hunter22"

	m, cmd := m.submit()
	if cmd == nil {
		t.Fatal("expected network command")
	}
	if !m.submitting {
		t.Error("expected submitting state during request")
	}

	res, ok := cmd().(loginResultMsg)
	if !ok {
		t.Fatalf("cmd yielded %T, want loginResultMsg", res)
	}
	if res.err != nil {
		t.Fatalf("login flow error: %v", res.err)
	}
	if res.token != "tok123" || res.role != domain.RoleStaff {
		t.Errorf("result = %+v, want token=tok123 role=STAFF", res)
	}
}
