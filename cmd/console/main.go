package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/scamshield/scamshield/internal/config"
	"github.com/scamshield/scamshield/internal/content"
	"github.com/scamshield/scamshield/internal/services"
	"github.com/scamshield/scamshield/internal/storage"
	"github.com/scamshield/scamshield/pkg/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns stdout; keep logging quiet and on stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	repo, err := content.Load(cfg.DataDir, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load content: %v\n", err)
		os.Exit(1)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to resolve home directory: %v\n", err)
		os.Exit(1)
	}
	appDir := filepath.Join(home, ".scamshield")

	store, err := storage.NewSQLiteProgressStore(filepath.Join(appDir, "progress.db"), log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open progress store: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = store.Close()
	}()

	deviceID, err := loadOrCreateDeviceID(filepath.Join(appDir, "device_id"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize device identity: %v\n", err)
		os.Exit(1)
	}

	progressService := services.NewProgressService(store, repo, cfg.PointsPerScenario, log)
	engine := session.NewEngine(progressService.ForDevice(deviceID))
	revealCfg := session.RevealConfig{
		DwellTime:           cfg.DwellTime,
		VisibilityThreshold: cfg.VisibilityThreshold,
	}

	ctx := context.Background()
	reader := os.Stdin

	for {
		summary := progressService.Summary(ctx, deviceID)
		fmt.Printf("\nScamShield — score %d, %d/%d scenarios (%d%%)\n\n",
			summary.Score, summary.CompletedCount, summary.TotalCount, summary.Percentage)

		scenarios := repo.ListScenarios()
		for i, s := range scenarios {
			marker := " "
			if progressService.IsCompleted(ctx, deviceID, s.ID) {
				marker = "✓"
			}
			fmt.Printf("  %d [%s] %s — %s\n", i+1, marker, s.Title, s.Description)
		}
		fmt.Print("\nSelect a scenario by number (r to reset progress, q to quit): ")

		var choice string
		if _, err := fmt.Fscan(reader, &choice); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read input: %v\n", err)
			os.Exit(1)
		}
		choice = strings.TrimSpace(choice)

		switch choice {
		case "q", "Q":
			return
		case "r", "R":
			if err := progressService.Reset(ctx, deviceID); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to reset progress: %v\n", err)
			}
			continue
		}

		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > len(scenarios) {
			fmt.Println("Invalid selection")
			continue
		}

		controller := session.NewController(engine, revealCfg)
		if err := controller.StartAttempt(scenarios[n-1]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start scenario: %v\n", err)
			continue
		}

		p := tea.NewProgram(NewConsoleUI(controller), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
			os.Exit(1)
		}
	}
}

// loadOrCreateDeviceID reads the stable device identity, minting a UUID on
// first run.
func loadOrCreateDeviceID(path string) (string, error) {
	if data, err := os.ReadFile(path); err == nil {
		id := strings.TrimSpace(string(data))
		if id != "" {
			return id, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create app directory: %w", err)
	}
	id := uuid.NewString()
	if err := os.WriteFile(path, []byte(id+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("failed to write device id: %w", err)
	}
	return id, nil
}
