package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mediview-health/mediview/pkg/domain"
)

// pageSize is the default number of items fetched per API call.
const pageSize = 50

// maxInputLen is the maximum number of runes allowed in form inputs.
const maxInputLen = 200

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware) and single printable characters.
// Returns the text unchanged for non-printable keys (enter, esc, etc.).
// Input is clamped to maxInputLen runes.
func editRune(text string, key string) string {
	switch key {
	case "backspace":
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	default:
		if utf8.RuneCountInString(key) == 1 {
			if utf8.RuneCountInString(text) >= maxInputLen {
				return text
			}
			return text + key
		}
		return text
	}
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

// formatTime renders a relative timestamp for list displays.
func formatTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// renderFormField renders one labelled line of a form. Secret fields are
// masked; the focused field shows a block cursor.
func renderFormField(label, value string, focused, secret bool) string {
	cursor := " "
	style := metaStyle
	if focused {
		cursor = ">"
		style = selectedStyle
	}
	display := value
	if secret {
		display = strings.Repeat("•", utf8.RuneCountInString(value))
	}
	if focused {
		display += "█"
	}
	return fmt.Sprintf("%s %s: %s", cursor, style.Render(fmt.Sprintf("%-16s", label)), display)
}

// studyRow renders one imaging study line for the dashboard lists.
func studyRow(s domain.ImagingStudy, showPatient, selected bool) string {
	cursor := "  "
	nameStyle := normalStyle
	if selected {
		cursor = "> "
		nameStyle = selectedStyle
	}

	parts := []string{ModalityStyle(s.Modality).Render(fmt.Sprintf("%-2s", s.Modality))}
	if showPatient && s.PatientName != "" {
		parts = append(parts, nameStyle.Render(fmt.Sprintf("%-20s", truncStr(s.PatientName, 20))))
	}
	desc := s.Description
	if desc == "" {
		desc = s.BodyPart
	}
	parts = append(parts, nameStyle.Render(truncStr(desc, 32)))
	parts = append(parts, statusStyle(s.Status).Render(s.Status))
	parts = append(parts, dimStyle.Render(fmt.Sprintf("%d img", s.ImageCount)))
	parts = append(parts, metaStyle.Render(formatTime(s.CapturedAt)))

	return cursor + strings.Join(parts, "  ")
}
