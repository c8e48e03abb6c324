package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dc404/weathermap/internal/nws"
	"github.com/dc404/weathermap/internal/scheduler"
	"github.com/dc404/weathermap/internal/settings"
	"github.com/dc404/weathermap/internal/ui"
)

func main() {
	settingsPath := flag.String("settings", settings.DefaultPath, "Path to the settings file")
	flag.Parse()

	snap, alerts := settings.Load(*settingsPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engine := scheduler.New(nws.NewClient(), snap, alerts)
	go engine.Run(ctx)
	engine.TriggerNow()

	p := tea.NewProgram(ui.NewModel(engine, snap, alerts, *settingsPath), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}
