package tui

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mediview-health/mediview/pkg/domain"
)

// Shimmer animation for the MEDIVIEW wordmark.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "M E D I V I E W" as a slow wave of cyan light,
// deep ocean teal (#0e3440) -> bright scan cyan (#3ecce4). No hue drift.
func renderShimmerLogo(frame int) string {
	const text = "MEDIVIEW"
	n := len(text)

	var out string

	t := float64(frame)

	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		// One smooth wave advancing through the text
		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)

		// Slow breathing tide
		tide := math.Sin(t*0.035) * 0.12
		b = b*0.75 + tide + 0.18

		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		// Deep:   (14, 52, 64)   #0e3440
		// Bright: (62, 204, 228) #3ecce4
		r := clampByte(14 + b*(62-14))
		g := clampByte(52 + b*(204-52))
		bl := clampByte(64 + b*(228-64))

		color := fmt.Sprintf("#%02X%02X%02X", r, g, bl)

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(color))
		out += s.Render(string(text[i]))

		if i < n-1 {
			out += "  "
		}
	}

	return out
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	// Base styles — neutral slate palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Accent / action styles
	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3ecce4"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ade80"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060"))

	// Role colors — one per dashboard
	roleColors = map[domain.Role]lipgloss.Color{
		domain.RoleAdmin:   lipgloss.Color("#c084e0"),
		domain.RoleStaff:   lipgloss.Color("#3ecce4"),
		domain.RolePatient: lipgloss.Color("#4ade80"),
	}

	// Modality colors — loosely follow viewer conventions
	modalityColors = map[string]lipgloss.Color{
		"CT": lipgloss.Color("#60a0e0"),
		"MR": lipgloss.Color("#c084e0"),
		"XR": lipgloss.Color("#d4a844"),
		"US": lipgloss.Color("#4ade80"),
		"MG": lipgloss.Color("#f0944a"),
		"NM": lipgloss.Color("#3ecce4"),
		"PT": lipgloss.Color("#e06060"),
	}

	// Study status colors
	statusColors = map[string]lipgloss.Color{
		"pending":  lipgloss.Color("#d4a844"),
		"reported": lipgloss.Color("#4ade80"),
		"archived": lipgloss.Color("#606878"),
	}
)

// RoleStyle returns a bold style colored for the given role.
func RoleStyle(role domain.Role) lipgloss.Style {
	if c, ok := roleColors[role]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#8890a0")).Bold(true)
}

// RoleBadge returns a short colored badge string for a role, e.g. "[STAFF]".
func RoleBadge(role domain.Role) string {
	if !role.Known() {
		return ""
	}
	return RoleStyle(role).Render("[" + string(role) + "]")
}

// ModalityStyle returns a bold style colored for the given modality code.
func ModalityStyle(code string) lipgloss.Style {
	if c, ok := modalityColors[code]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#606878")).Bold(true)
}

// statusStyle returns a style for the given study status.
func statusStyle(status string) lipgloss.Style {
	if c, ok := statusColors[status]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#8890a0"))
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}
