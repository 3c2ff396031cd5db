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

type myStudiesLoadedMsg struct {
	studies []domain.ImagingStudy
	err     error
}

// patientModel is the patient dashboard: the visitor's own imaging studies.
type patientModel struct {
	client    *client.Client
	studies   []domain.ImagingStudy
	cursor    int
	loading   bool
	err       string
	statusMsg string
	width     int
	height    int
}

func newPatientModel(c *client.Client) patientModel {
	return patientModel{client: c, loading: true}
}

func (m patientModel) Init() tea.Cmd {
	return m.load()
}

func (m patientModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		studies, err := c.MyStudies(context.Background(), pageSize, 0)
		return myStudiesLoadedMsg{studies: studies, err: err}
	}
}

func (m patientModel) Update(msg tea.Msg) (patientModel, tea.Cmd) {
	switch msg := msg.(type) {
	case myStudiesLoadedMsg:
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

func (m patientModel) selected() (domain.ImagingStudy, bool) {
	if m.cursor < 0 || m.cursor >= len(m.studies) {
		return domain.ImagingStudy{}, false
	}
	return m.studies[m.cursor], true
}

func (m patientModel) View() string {
	if m.loading && len(m.studies) == 0 {
		return " " + dimStyle.Render("loading your studies...")
	}
	if m.err != "" {
		return " " + warnStyle.Render("error: "+m.err)
	}
	if len(m.studies) == 0 {
		return " " + dimStyle.Render("no imaging studies on file")
	}

	var b strings.Builder
	fmt.Fprintf(&b, " %s %s\n\n",
		selectedStyle.Render("My studies"),
		metaStyle.Render(fmt.Sprintf("(%d)", len(m.studies))))

	maxRows := m.height - 4
	if maxRows < 5 {
		maxRows = 10
	}
	for i, s := range m.studies {
		if i >= maxRows {
			b.WriteString(" " + metaStyle.Render(fmt.Sprintf("... and %d more", len(m.studies)-i)) + "\n")
			break
		}
		b.WriteString(" " + studyRow(s, false, i == m.cursor) + "\n")
	}

	if m.statusMsg != "" {
		b.WriteString("\n " + okStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}
