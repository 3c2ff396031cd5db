package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mediview-health/mediview/internal/logging"
	"github.com/mediview-health/mediview/internal/session"
	"github.com/mediview-health/mediview/internal/tui"
	"github.com/mediview-health/mediview/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// apiURL returns the API base URL, overridable for staging and tests.
func apiURL() string {
	if u := os.Getenv("MEDIVIEW_API_URL"); u != "" {
		return u
	}
	return "https://api.mediview.health"
}

// debugEnabled reports whether file-backed debug logging was requested.
func debugEnabled() bool {
	switch os.Getenv("MEDIVIEW_DEBUG") {
	case "", "0", "false":
		return false
	}
	return true
}

func run() error {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("mediview " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "logout":
			return runLogout()
		default:
			printHelp()
			return fmt.Errorf("unknown command %q", os.Args[1])
		}
	}

	log, err := buildLogger()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	storePath, err := session.DefaultPath()
	if err != nil {
		return err
	}
	store := session.NewFileStore(storePath, log)

	token := ""
	if sess, ok := store.Read(); ok {
		token = sess.Token
	}
	c := client.New(apiURL(), token)
	c.SetLogger(log)

	app := tui.NewApp(c, store, log)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func buildLogger() (*zap.Logger, error) {
	if !debugEnabled() {
		return zap.NewNop(), nil
	}
	path, err := logging.DefaultPath()
	if err != nil {
		return nil, err
	}
	return logging.New(true, path)
}

// runLogout drops the stored session without starting the TUI.
func runLogout() error {
	path, err := session.DefaultPath()
	if err != nil {
		return err
	}
	store := session.NewFileStore(path, nil)
	if _, ok := store.Read(); !ok {
		fmt.Println("No active session.")
		return nil
	}
	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func printHelp() {
	fmt.Print(`mediview - clinical image management in the terminal

Usage:
  mediview              Launch the interactive client
  mediview logout       Drop the stored session
  mediview version      Print the version
  mediview help         Show this help

Environment:
  MEDIVIEW_API_URL      Override the API base URL
  MEDIVIEW_DEBUG        Write a debug log to ~/.mediview/debug.log
`)
}
