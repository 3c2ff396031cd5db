package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mediview-health/mediview/internal/browser"
	"github.com/mediview-health/mediview/pkg/client"
	"github.com/mediview-health/mediview/pkg/domain"
)

type studiesLoadedMsg struct {
	studies []domain.ImagingStudy
	err     error
}

// staffModel is the staff dashboard: imaging studies across all patients,
// with an optional modality filter.
type staffModel struct {
	client    *client.Client
	studies   []domain.ImagingStudy
	modality  string // "" means all
	cursor    int
	loading   bool
	err       string
	statusMsg string
	width     int
	height    int
}

func newStaffModel(c *client.Client) staffModel {
	return staffModel{client: c, loading: true}
}

func (m staffModel) Init() tea.Cmd {
	return m.load()
}

func (m staffModel) load() tea.Cmd {
	c := m.client
	modality := m.modality
	return func() tea.Msg {
		studies, err := c.ListStudies(context.Background(), modality, pageSize, 0)
		return studiesLoadedMsg{studies: studies, err: err}
	}
}

func (m staffModel) Update(msg tea.Msg) (staffModel, tea.Cmd) {
	switch msg := msg.(type) {
	case studiesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.studies = msg.studies
			m.err = ""
			if m.cursor >= len(m.studies) {
				m.cursor = 0
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		m.statusMsg = ""
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.studies)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "m":
			m.modality = nextModality(m.modality)
			m.loading = true
			return m, m.load()
		case "r":
			m.loading = true
			return m, m.load()
		case "c":
			if s, ok := m.selected(); ok {
				if err := clipboard.WriteAll(m.client.StudyViewerURL(s)); err != nil {
					m.statusMsg = "copy failed"
				} else {
					m.statusMsg = "viewer link copied"
				}
			}
		case "o":
			if s, ok := m.selected(); ok {
				browser.Open(m.client.StudyViewerURL(s)) //nolint:errcheck // best-effort browser open
				m.statusMsg = "opening viewer"
			}
		}
	}
	return m, nil
}

func (m staffModel) selected() (domain.ImagingStudy, bool) {
	if m.cursor < 0 || m.cursor >= len(m.studies) {
		return domain.ImagingStudy{}, false
	}
	return m.studies[m.cursor], true
}

// nextModality cycles "" -> CT -> MR -> ... -> "".
func nextModality(current string) string {
	if current == "" {
		return domain.ValidModalities[0]
	}
	for i, mod := range domain.ValidModalities {
		if mod == current {
			if i == len(domain.ValidModalities)-1 {
				return ""
			}
			return domain.ValidModalities[i+1]
		}
	}
	return ""
}

func (m staffModel) View() string {
	if m.loading && len(m.studies) == 0 {
		return " " + dimStyle.Render("loading studies...")
	}
	if m.err != "" {
		return " " + warnStyle.Render("error: "+m.err)
	}

	var b strings.Builder
	filter := "all modalities"
	if m.modality != "" {
		filter = ModalityStyle(m.modality).Render(m.modality)
	} else {
		filter = metaStyle.Render(filter)
	}
	fmt.Fprintf(&b, " %s %s  %s\n\n",
		selectedStyle.Render("Studies"),
		metaStyle.Render(fmt.Sprintf("(%d)", len(m.studies))),
		filter)

	if len(m.studies) == 0 {
		b.WriteString(" " + dimStyle.Render("no studies match") + "\n")
		return b.String()
	}

	maxRows := m.height - 4
	if maxRows < 5 {
		maxRows = 10
	}
	for i, s := range m.studies {
		if i >= maxRows {
			b.WriteString(" " + metaStyle.Render(fmt.Sprintf("... and %d more", len(m.studies)-i)) + "\n")
			break
		}
		b.WriteString(" " + studyRow(s, true, i == m.cursor) + "\n")
	}

	if m.statusMsg != "" {
		b.WriteString("\n " + okStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}
