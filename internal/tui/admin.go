package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mediview-health/mediview/pkg/client"
	"github.com/mediview-health/mediview/pkg/domain"
)

type usersLoadedMsg struct {
	users []domain.User
	err   error
}

// adminModel is the admin dashboard: every registered account, with role
// and registration details.
type adminModel struct {
	client  *client.Client
	users   []domain.User
	cursor  int
	loading bool
	err     string
	width   int
	height  int
}

func newAdminModel(c *client.Client) adminModel {
	return adminModel{client: c, loading: true}
}

func (m adminModel) Init() tea.Cmd {
	return m.load()
}

func (m adminModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		users, err := c.ListUsers(context.Background(), pageSize, 0)
		return usersLoadedMsg{users: users, err: err}
	}
}

func (m adminModel) Update(msg tea.Msg) (adminModel, tea.Cmd) {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.users = msg.users
			m.err = ""
			if m.cursor >= len(m.users) {
				m.cursor = 0
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.users)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "r":
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m adminModel) View() string {
	if m.loading && len(m.users) == 0 {
		return " " + dimStyle.Render("loading accounts...")
	}
	if m.err != "" {
		return " " + warnStyle.Render("error: "+m.err)
	}
	if len(m.users) == 0 {
		return " " + dimStyle.Render("no accounts registered")
	}

	var b strings.Builder
	fmt.Fprintf(&b, " %s %s\n\n",
		selectedStyle.Render("Accounts"),
		metaStyle.Render(fmt.Sprintf("(%d)", len(m.users))))

	maxRows := m.height - 3
	if maxRows < 5 {
		maxRows = 10
	}
	for i, u := range m.users {
		if i >= maxRows {
			b.WriteString(" " + metaStyle.Render(fmt.Sprintf("... and %d more", len(m.users)-i)) + "\n")
			break
		}
		cursor := "  "
		nameStyle := normalStyle
		if i == m.cursor {
			cursor = "> "
			nameStyle = selectedStyle
		}
		registered := u.RegisteredDate
		if registered == "" && !u.CreatedAt.IsZero() {
			registered = u.CreatedAt.Format("2006-01-02")
		}
		fmt.Fprintf(&b, " %s%s  %s  %s  %s\n",
			cursor,
			nameStyle.Render(fmt.Sprintf("%-20s", truncStr(u.Name, 20))),
			dimStyle.Render(fmt.Sprintf("%-26s", truncStr(u.Email, 26))),
			RoleBadge(u.Role),
			metaStyle.Render(registered))
	}
	return b.String()
}
