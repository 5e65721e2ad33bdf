package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/akern/plantrack/internal/app"
	"github.com/akern/plantrack/internal/board"
	"github.com/akern/plantrack/internal/model"
	"github.com/akern/plantrack/internal/plan"
	"github.com/akern/plantrack/internal/session"
	"github.com/akern/plantrack/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to the config file")
	planPath := flag.String("plan", "", "path to the floor plan image (overrides config)")
	flag.Parse()

	if err := run(*configPath, *planPath); err != nil {
		fmt.Fprintf(os.Stderr, "plantrack: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, planPath string) error {
	if configPath == "" {
		configPath = model.DefaultConfigPath()
	}
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if planPath != "" {
		cfg.Plan.ImagePath = planPath
	}
	if cfg.Plan.ImagePath == "" {
		return fmt.Errorf("no floor plan image configured; pass -plan or set plan.image_path")
	}

	natural, err := plan.NaturalSize(cfg.Plan.ImagePath)
	if err != nil {
		return fmt.Errorf("reading floor plan %s: %w", cfg.Plan.ImagePath, err)
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	st, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	sess := session.New(st)
	b := board.New(st)

	program := tea.NewProgram(app.New(sess, b, natural, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}
