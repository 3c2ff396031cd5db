package main

import (
	"testing"
)

func TestAPIURLDefault(t *testing.T) {
	t.Setenv("MEDIVIEW_API_URL", "")
	if got := apiURL(); got != "https://api.mediview.health" {
		t.Errorf("apiURL() = %q, want production default", got)
	}
}

func TestAPIURLOverride(t *testing.T) {
	t.Setenv("MEDIVIEW_API_URL", "http://localhost:8080")
	if got := apiURL(); got != "http://localhost:8080" {
		t.Errorf("apiURL() = %q, want override", got)
	}
}

func TestDebugEnabled(t *testing.T) {
	tests := []struct {
		val  string
		want bool
	}{
		{"", false},
		{"0", false},
		{"false", false},
		{"1", true},
		{"true", true},
		{"yes", true},
	}
	for _, tc := range tests {
		t.Run("val="+tc.val, func(t *testing.T) {
			t.Setenv("MEDIVIEW_DEBUG", tc.val)
			if got := debugEnabled(); got != tc.want {
				t.Errorf("debugEnabled() with %q = %v, want %v", tc.val, got, tc.want)
			}
		})
	}
}
