package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mediview-health/mediview/internal/session"
)

// gotoMsg asks the shell to navigate to a view. Navigation always goes
// through the admission gate in App.navigate.
type gotoMsg struct {
	target view
}

// openDashboardMsg asks the shell to open the role-appropriate dashboard.
type openDashboardMsg struct{}

// landingModel is the public entry screen.
type landingModel struct {
	store  session.Store
	width  int
	height int
}

func newLandingModel(st session.Store) landingModel {
	return landingModel{store: st}
}

func (m landingModel) Init() tea.Cmd {
	return nil
}

func (m landingModel) Update(msg tea.Msg) (landingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "l":
			return m, func() tea.Msg { return gotoMsg{target: viewLogin} }
		case "s":
			if !session.IsAuthenticated(m.store) {
				return m, func() tea.Msg { return gotoMsg{target: viewSignup} }
			}
		case "d", "enter":
			if session.IsAuthenticated(m.store) {
				return m, func() tea.Msg { return openDashboardMsg{} }
			}
		}
	}
	return m, nil
}

func (m landingModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(" " + normalStyle.Render("Clinical imaging, one place.") + "\n\n")
	b.WriteString(" " + dimStyle.Render("Studies, reports and patient records from your imaging") + "\n")
	b.WriteString(" " + dimStyle.Render("service, without leaving the terminal.") + "\n\n")

	if session.IsAuthenticated(m.store) {
		role := session.CurrentRole(m.store)
		b.WriteString(" " + accentStyle.Render("●") + " " +
			normalStyle.Render("signed in as ") + RoleStyle(role).Render(role.Label()) + "\n\n")
		b.WriteString(" " + dimStyle.Render("press d to open your dashboard") + "\n")
	} else {
		b.WriteString(" " + metaStyle.Render("log in to see your studies, or sign up for an account") + "\n")
	}

	return b.String()
}
