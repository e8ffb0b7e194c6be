package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"slackgraph/internal/adapters/sqlite"
	"slackgraph/internal/adapters/tui"
	"slackgraph/internal/config"
	"slackgraph/internal/logging"
)

func main() {
	_ = godotenv.Load()

	if err := logging.Init(config.Env()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	mirror, err := sqlite.Open(config.MirrorPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer mirror.Close()

	app := tui.NewApp(mirror)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
