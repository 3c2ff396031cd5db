// Package tui is the MediView terminal UI: a navigation shell composed
// around routed screens, with every transition to a guarded screen passing
// through the session admission gate.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/mediview-health/mediview/internal/session"
	"github.com/mediview-health/mediview/pkg/client"
	"github.com/mediview-health/mediview/pkg/domain"
)

// logoutMsg asks the shell to clear the session and return to the landing
// screen.
type logoutMsg struct{}

// profileLoadedMsg carries the authenticated user's profile for the header.
type profileLoadedMsg struct {
	user *domain.User
	err  error
}

// App is the root Bubbletea model: the shell chrome plus the routed screens.
// It recomputes authentication and role from the store on every render and
// is the only component that mutates the store outside the auth flows
// (logout).
type App struct {
	client *client.Client
	store  session.Store
	log    *zap.Logger

	view    view
	landing landingModel
	login   loginModel
	signup  signupModel
	admin   adminModel
	staff   staffModel
	patient patientModel

	profile *domain.User
	width   int
	height  int
	frame   int // logo shimmer animation frame
}

// NewApp creates the shell. The initial screen is the role dashboard when a
// session is already persisted, the landing screen otherwise.
func NewApp(c *client.Client, st session.Store, log *zap.Logger) App {
	if log == nil {
		log = zap.NewNop()
	}
	a := App{
		client:  c,
		store:   st,
		log:     log,
		view:    viewLanding,
		landing: newLandingModel(st),
		login:   newLoginModel(c),
		signup:  newSignupModel(c),
		admin:   newAdminModel(c),
		staff:   newStaffModel(c),
		patient: newPatientModel(c),
	}
	if session.IsAuthenticated(st) {
		target := dashboardFor(session.CurrentRole(st))
		a.view = admit(st, target, allowedRoles(target)...)
	}
	return a
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{shimmerTickCmd(), a.viewInit(a.view)}
	if session.IsAuthenticated(a.store) {
		cmds = append(cmds, a.loadProfile())
	}
	return tea.Batch(cmds...)
}

func (a App) loadProfile() tea.Cmd {
	c := a.client
	return func() tea.Msg {
		u, err := c.GetProfile(context.Background())
		return profileLoadedMsg{user: u, err: err}
	}
}

// viewInit returns the entry command for a screen.
func (a App) viewInit(v view) tea.Cmd {
	switch v {
	case viewAdmin:
		return a.admin.Init()
	case viewStaff:
		return a.staff.Init()
	case viewPatient:
		return a.patient.Init()
	default:
		return nil
	}
}

// navigate runs one navigation attempt through the admission gate and
// switches to whatever screen the gate admits. Form screens are rebuilt on
// entry so credentials never linger between visits.
func (a App) navigate(target view) (App, tea.Cmd) {
	next := admit(a.store, target, allowedRoles(target)...)
	if next != target {
		a.log.Debug("navigation redirected to login", zap.Int("target", int(target)))
	}
	switch next {
	case viewLogin:
		a.login = newLoginModel(a.client)
	case viewSignup:
		a.signup = newSignupModel(a.client)
	}
	a.view = next
	return a, a.viewInit(next)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + nav(1) + help(1) = 4 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		a.landing, _ = a.landing.Update(bodyMsg)
		a.admin, _ = a.admin.Update(bodyMsg)
		a.staff, _ = a.staff.Update(bodyMsg)
		a.patient, _ = a.patient.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case gotoMsg:
		return a.navigate(msg.target)

	case openDashboardMsg:
		return a.navigate(dashboardFor(session.CurrentRole(a.store)))

	case loggedInMsg:
		if err := a.store.Save(msg.token, msg.role); err != nil {
			// Storage trouble degrades to "no session": stay on login
			// rather than entering a half-authenticated state.
			a.log.Warn("session save failed", zap.Error(err))
			a.login = newLoginModel(a.client)
			a.login.errMsg = "could not store the session — please try again"
			a.view = viewLogin
			return a, nil
		}
		a.client.SetToken(msg.token)
		a.log.Info("logged in", zap.String("role", string(msg.role)))
		next, cmd := a.navigate(dashboardFor(session.CurrentRole(a.store)))
		return next, tea.Batch(cmd, next.loadProfile())

	case logoutMsg:
		if err := a.store.Clear(); err != nil {
			a.log.Warn("session clear failed", zap.Error(err))
		}
		a.client.SetToken("")
		a.profile = nil
		a.log.Info("logged out")
		return a.navigate(viewLanding)

	case profileLoadedMsg:
		if msg.err == nil && msg.user != nil {
			a.profile = msg.user
		}
		return a, nil

	case tea.KeyMsg:
		if !a.isEditing() {
			switch msg.String() {
			case "q", "ctrl+c":
				return a, tea.Quit
			case "x":
				if session.IsAuthenticated(a.store) {
					return a, func() tea.Msg { return logoutMsg{} }
				}
			}
		} else if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if msg.String() == "esc" {
			switch a.view {
			case viewLogin, viewSignup:
				return a.navigate(viewLanding)
			}
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewLanding:
		a.landing, cmd = a.landing.Update(msg)
	case viewLogin:
		a.login, cmd = a.login.Update(msg)
	case viewSignup:
		a.signup, cmd = a.signup.Update(msg)
	case viewAdmin:
		a.admin, cmd = a.admin.Update(msg)
	case viewStaff:
		a.staff, cmd = a.staff.Update(msg)
	case viewPatient:
		a.patient, cmd = a.patient.Update(msg)
	}
	return a, cmd
}

// isEditing reports whether the active screen consumes printable keys.
func (a App) isEditing() bool {
	switch a.view {
	case viewLogin, viewSignup:
		return true
	default:
		return false
	}
}

// viewTitle names the current screen for the nav line.
func (a App) viewTitle() string {
	switch a.view {
	case viewLanding:
		return "Welcome"
	case viewLogin:
		return "Log in"
	case viewSignup:
		return "Sign up"
	case viewAdmin:
		return "Admin dashboard"
	case viewStaff:
		return "Staff dashboard"
	case viewPatient:
		return "Patient dashboard"
	default:
		return ""
	}
}

func (a App) View() string {
	authed := session.IsAuthenticated(a.store)
	role := session.CurrentRole(a.store)

	// Header: centered shimmer wordmark + identity line
	logo := renderShimmerLogo(a.frame)
	logoWidth := lipgloss.Width(logo)
	logoPad := (a.width - logoWidth) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo

	var identity string
	if authed {
		parts := []string{RoleStyle(role).Render(role.Label())}
		if a.profile != nil && a.profile.Name != "" {
			parts = append(parts, a.profile.Name)
		}
		identity = metaStyle.Render(strings.Join(parts, " · "))
	} else {
		identity = metaStyle.Render("clinical image management")
	}
	idWidth := lipgloss.Width(identity)
	idPad := (a.width - idWidth) / 2
	if idPad < 0 {
		idPad = 0
	}
	header += "\n" + strings.Repeat(" ", idPad) + identity

	// Nav line: screen title, back affordance when applicable
	nav := " " + accentStyle.Render(a.viewTitle())
	if showBack(a.view, authed) {
		nav += "  " + metaStyle.Render("‹ esc back")
	}

	// Body
	var body string
	switch a.view {
	case viewLanding:
		body = a.landing.View()
	case viewLogin:
		body = a.login.View()
	case viewSignup:
		body = a.signup.View()
	case viewAdmin:
		body = a.admin.View()
	case viewStaff:
		body = a.staff.View()
	case viewPatient:
		body = a.patient.View()
	}

	// Help bar: session-appropriate primary actions
	var help string
	switch a.view {
	case viewLanding:
		if authed {
			help = " " + helpEntry("d", role.Label()+" dashboard") + "  " + helpEntry("x", "logout") + "  " + helpEntry("q", "quit")
		} else {
			help = " " + helpEntry("l", "login") + "  " + helpEntry("s", "signup") + "  " + helpEntry("q", "quit")
		}
	case viewLogin:
		help = " " + helpEntry("tab", "next") + "  " + helpEntry("enter", "submit") + "  " + helpEntry("esc", "back")
	case viewSignup:
		help = " " + helpEntry("tab", "next") + "  " + helpEntry("h/l", "role") + "  " + helpEntry("ctrl+s", "submit") + "  " + helpEntry("esc", "back")
	case viewAdmin:
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("r", "reload") + "  " + helpEntry("x", "logout") + "  " + helpEntry("q", "quit")
	case viewStaff:
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("m", "modality") + "  " + helpEntry("c", "copy link") + "  " + helpEntry("o", "open") + "  " + helpEntry("x", "logout") + "  " + helpEntry("q", "quit")
	case viewPatient:
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("c", "copy link") + "  " + helpEntry("o", "open") + "  " + helpEntry("x", "logout") + "  " + helpEntry("q", "quit")
	}

	// Chrome budget: header(2) + nav(1) + help(1) = 4 lines + body
	chrome := 4
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, nav, body, help)
}
