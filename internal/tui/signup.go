package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"

	"github.com/mediview-health/mediview/pkg/client"
	"github.com/mediview-health/mediview/pkg/domain"
)

type signupField int

const (
	fieldName signupField = iota
	fieldEmail
	fieldAddress
	fieldDateOfBirth
	fieldPassword
	fieldRole
	numSignupFields
)

var validate = validator.New()

// signupResultMsg carries the outcome of one signup attempt, with the same
// stale-attempt guard as login.
type signupResultMsg struct {
	attempt int
	token   string
	role    domain.Role
	err     error
}

type signupModel struct {
	client     *client.Client
	fields     [numSignupFields]string
	fieldErrs  map[signupField]string
	focus      signupField
	submitting bool
	attempt    int
	errMsg     string
}

func newSignupModel(c *client.Client) signupModel {
	m := signupModel{client: c, fieldErrs: map[signupField]string{}}
	m.fields[fieldRole] = string(domain.RolePatient)
	return m
}

func (m signupModel) Init() tea.Cmd {
	return nil
}

func (m signupModel) Update(msg tea.Msg) (signupModel, tea.Cmd) {
	switch msg := msg.(type) {
	case signupResultMsg:
		if msg.attempt != m.attempt || !m.submitting {
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

func (m signupModel) updateKeys(msg tea.KeyMsg) (signupModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.errMsg = ""

	switch msg.String() {
	case "ctrl+s":
		return m.submit()
	case "tab", "down":
		m.focus = (m.focus + 1) % numSignupFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numSignupFields) % numSignupFields
	case "enter":
		if m.focus == fieldRole {
			return m.submit()
		}
		m.focus = (m.focus + 1) % numSignupFields
	default:
		key := msg.String()
		if m.focus == fieldRole {
			// Role is a closed choice: cycle with h/l, never typed.
			if key == "h" || key == "l" {
				m.fields[fieldRole] = string(cycleRole(domain.Role(m.fields[fieldRole]), key == "l"))
			}
			return m, nil
		}
		f := &m.fields[m.focus]
		*f = editRune(*f, key)
		delete(m.fieldErrs, m.focus)
	}
	return m, nil
}

// cycleRole steps through KnownRoles in display order.
func cycleRole(current domain.Role, forward bool) domain.Role {
	idx := 0
	for i, r := range domain.KnownRoles {
		if r == current {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(domain.KnownRoles)
	} else {
		idx = (idx - 1 + len(domain.KnownRoles)) % len(domain.KnownRoles)
	}
	return domain.KnownRoles[idx]
}

func (m signupModel) submit() (signupModel, tea.Cmd) {
	req := client.SignupRequest{
		Email:          strings.TrimSpace(m.fields[fieldEmail]),
		Name:           strings.TrimSpace(m.fields[fieldName]),
		Address:        strings.TrimSpace(m.fields[fieldAddress]),
		DateOfBirth:    strings.TrimSpace(m.fields[fieldDateOfBirth]),
		RegisteredDate: time.Now().Format("2006-01-02"),
		Password:       m.fields[fieldPassword],
		Role:           m.fields[fieldRole],
	}

	// Validate before any network traffic; a rejected form never leaves
	// the client.
	m.fieldErrs = map[signupField]string{}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				f, msg := signupFieldError(fe)
				m.fieldErrs[f] = msg
			}
			m.errMsg = "fix the highlighted fields"
			return m, nil
		}
		m.errMsg = err.Error()
		return m, nil
	}

	m.submitting = true
	m.attempt++
	attempt := m.attempt
	c := m.client

	return m, func() tea.Msg {
		token, err := c.SignupAndLogin(context.Background(), req)
		if err != nil {
			return signupResultMsg{attempt: attempt, err: err}
		}
		// Signup chose the role on the form, so no profile round-trip
		// is needed before persisting.
		return signupResultMsg{attempt: attempt, token: token, role: domain.ParseRole(req.Role)}
	}
}

// signupFieldError maps a validator failure to the form field and its
// inline message.
func signupFieldError(fe validator.FieldError) (signupField, string) {
	field := map[string]signupField{
		"Name":        fieldName,
		"Email":       fieldEmail,
		"Address":     fieldAddress,
		"DateOfBirth": fieldDateOfBirth,
		"Password":    fieldPassword,
		"Role":        fieldRole,
	}[fe.StructField()]

	var msg string
	switch fe.Tag() {
	case "required":
		msg = "required"
	case "email":
		msg = "must be a valid email address"
	case "datetime":
		msg = "must be YYYY-MM-DD"
	case "min":
		msg = fmt.Sprintf("at least %s characters", fe.Param())
	case "oneof":
		msg = "must be one of ADMIN, STAFF, PATIENT"
	default:
		msg = fe.Tag()
	}
	return field, msg
}

func (m signupModel) View() string {
	var b strings.Builder

	b.WriteString("\n " + selectedStyle.Render("Sign up") + "\n\n")

	labels := [numSignupFields]string{"name", "email", "address", "date of birth", "password", "role"}
	for i := signupField(0); i < numSignupFields; i++ {
		if i == fieldRole {
			cursor := " "
			style := metaStyle
			if m.focus == i {
				cursor = ">"
				style = selectedStyle
			}
			role := domain.Role(m.fields[fieldRole])
			fmt.Fprintf(&b, " %s %s: %s  %s\n",
				cursor, style.Render(fmt.Sprintf("%-16s", labels[i])),
				RoleStyle(role).Render(role.Label()), metaStyle.Render("(h/l to cycle)"))
		} else {
			b.WriteString(" " + renderFormField(labels[i], m.fields[i], m.focus == i, i == fieldPassword) + "\n")
		}
		if msg, ok := m.fieldErrs[i]; ok {
			b.WriteString("      " + warnStyle.Render(msg) + "\n")
		}
	}

	b.WriteString("\n")
	if m.submitting {
		b.WriteString(" " + dimStyle.Render("creating account...") + "\n")
	} else if m.errMsg != "" {
		b.WriteString(" " + warnStyle.Render(m.errMsg) + "\n")
	} else {
		b.WriteString(" " + metaStyle.Render("ctrl+s to submit") + "\n")
	}

	return b.String()
}
