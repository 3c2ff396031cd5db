package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mediview-health/mediview/pkg/client"
	"github.com/mediview-health/mediview/pkg/domain"
)

type loginField int

const (
	fieldLoginEmail loginField = iota
	fieldLoginPassword
	numLoginFields
)

// loggedInMsg reports a fully completed authentication: the token and the
// role claim are both known. The shell is the one who persists it.
type loggedInMsg struct {
	token string
	role  domain.Role
}

// loginResultMsg carries the outcome of one login attempt. attempt ties the
// response to the submission that produced it; a result whose attempt no
// longer matches is stale (the user re-submitted or navigated away) and is
// dropped.
type loginResultMsg struct {
	attempt int
	token   string
	role    domain.Role
	err     error
}

type loginModel struct {
	client     *client.Client
	fields     [numLoginFields]string
	focus      loginField
	submitting bool
	attempt    int
	errMsg     string
}

func newLoginModel(c *client.Client) loginModel {
	return loginModel{client: c}
}

func (m loginModel) Init() tea.Cmd {
	return nil
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		if msg.attempt != m.attempt || !m.submitting {
			// Stale response from an abandoned attempt.
			return m, nil
		}
		m.submitting = false
		if msg.err != nil {
			m.errMsg = authErrMessage(msg.err)
			return m, nil
		}
		return m, func() tea.Msg {
			return loggedInMsg{token: msg.token, role: msg.role}
		}

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m loginModel) updateKeys(msg tea.KeyMsg) (loginModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.errMsg = ""

	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % numLoginFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numLoginFields) % numLoginFields
	case "enter":
		if m.focus == fieldLoginPassword {
			return m.submit()
		}
		m.focus = (m.focus + 1) % numLoginFields
	default:
		f := &m.fields[m.focus]
		*f = editRune(*f, msg.String())
	}
	return m, nil
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	email := strings.TrimSpace(m.fields[fieldLoginEmail])
	password := m.fields[fieldLoginPassword]

	if email == "" || password == "" {
		m.errMsg = "email and password are required"
		return m, nil
	}

	m.submitting = true
	m.attempt++
	attempt := m.attempt
	c := m.client

	return m, func() tea.Msg {
		ctx := context.Background()
		token, err := c.Login(ctx, email, password)
		if err != nil {
			return loginResultMsg{attempt: attempt, err: err}
		}
		// The auth response carries only the token; the role claim comes
		// from the profile, fetched with the fresh token.
		profile, err := c.WithToken(token).GetProfile(ctx)
		if err != nil {
			return loginResultMsg{attempt: attempt, err: err}
		}
		return loginResultMsg{attempt: attempt, token: token, role: profile.Role}
	}
}

func (m loginModel) View() string {
	var b strings.Builder

	b.WriteString("\n " + selectedStyle.Render("Log in") + "\n\n")
	b.WriteString(" " + renderFormField("email", m.fields[fieldLoginEmail], m.focus == fieldLoginEmail, false) + "\n")
	b.WriteString(" " + renderFormField("password", m.fields[fieldLoginPassword], m.focus == fieldLoginPassword, true) + "\n")

	b.WriteString("\n")
	if m.submitting {
		b.WriteString(" " + dimStyle.Render("logging in...") + "\n")
	} else if m.errMsg != "" {
		b.WriteString(" " + warnStyle.Render(m.errMsg) + "\n")
	}

	return b.String()
}

// authErrMessage maps an auth call failure to the inline form message.
// Server rejection and network trouble read differently; neither is retried.
func authErrMessage(err error) string {
	if client.IsStatus(err, 401) || client.IsStatus(err, 403) {
		return "email or password not recognized"
	}
	if client.IsRejected(err) {
		return "request rejected: " + err.Error()
	}
	return "cannot reach the server — check your connection and try again"
}
