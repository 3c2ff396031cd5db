package tui

import (
	"strings"
	"testing"
	"time"
)

func TestEditRune(t *testing.T) {
	tests := []struct {
		name string
		text string
		key  string
		want string
	}{
		{"append", "ab", "c", "abc"},
		{"backspace", "abc", "backspace", "ab"},
		{"backspace empty", "", "backspace", ""},
		{"multi-rune key ignored", "ab", "enter", "ab"},
		{"unicode backspace", "café", "backspace", "caf"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := editRune(tc.text, tc.key); got != tc.want {
				t.Errorf("editRune(%q, %q) = %q, want %q", tc.text, tc.key, got, tc.want)
			}
		})
	}
}

func TestEditRuneClampsLength(t *testing.T) {
	long := strings.Repeat("a", maxInputLen)
	if got := editRune(long, "b"); got != long {
		t.Error("input grew past maxInputLen")
	}
}

func TestTruncStr(t *testing.T) {
	if got := truncStr("short", 10); got != "short" {
		t.Errorf("truncStr = %q, want unchanged", got)
	}
	got := truncStr("a very long description indeed", 10)
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncStr = %q, want ellipsis suffix", got)
	}
}

func TestTruncateToHeight(t *testing.T) {
	s := "1\n2\n3\n4\n"
	if got := truncateToHeight(s, 2); got != "1\n2\n" {
		t.Errorf("truncateToHeight = %q", got)
	}
	if got := truncateToHeight(s, 0); got != s {
		t.Errorf("truncateToHeight with 0 = %q, want unchanged", got)
	}
}

func TestFormatTime(t *testing.T) {
	if got := formatTime(time.Now()); got != "just now" {
		t.Errorf("formatTime(now) = %q", got)
	}
	if got := formatTime(time.Now().Add(-3 * time.Hour)); got != "3h ago" {
		t.Errorf("formatTime(-3h) = %q", got)
	}
	if got := formatTime(time.Now().Add(-50 * time.Hour)); got != "2d ago" {
		t.Errorf("formatTime(-50h) = %q", got)
	}
}

func TestRenderFormFieldMasksSecret(t *testing.T) {
	out := renderFormField("password", "hunter22", false, true)
	if strings.Contains(out, "hunter22") {
		t.Error("secret value rendered in clear text")
	}
	if !strings.Contains(out, "••••••••") {
		t.Errorf("expected mask dots, got %q", out)
	}
}
