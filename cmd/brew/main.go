package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"brewbuddy/internal/config"
	"brewbuddy/internal/db"
	"brewbuddy/internal/model"
	"brewbuddy/internal/repository"
	"brewbuddy/internal/service"
	"brewbuddy/internal/settings"
	"brewbuddy/internal/tui"
)

// serviceStore adapts the brewprint service onto the wizard's store
// interface. The empty user ID selects the trusted local single-user mode.
type serviceStore struct {
	brewprints *service.BrewprintService
}

func (s *serviceStore) Brewprints(ctx context.Context) ([]model.Brewprint, error) {
	brewprints, apiErr := s.brewprints.List(ctx, "")
	if apiErr != nil {
		return nil, errors.New(apiErr.Message)
	}
	// Archived recipes stay queryable over the API but are not offered for
	// a new brew.
	active := brewprints[:0]
	for _, bp := range brewprints {
		if bp.Status != model.StatusArchived {
			active = append(active, bp)
		}
	}
	return active, nil
}

func (s *serviceStore) SaveResult(ctx context.Context, brewprintID string, input tui.ResultInput) error {
	_, apiErr := s.brewprints.SubmitResult(ctx, "", brewprintID, service.ResultInput{
		Rating:          input.Rating,
		Notes:           input.Notes,
		TDSPercent:      input.TDSPercent,
		ExtractionYield: input.ExtractionYield,
		DurationSeconds: input.DurationSeconds,
	})
	if apiErr != nil {
		return errors.New(apiErr.Message)
	}
	return nil
}

func main() {
	cfg := config.Load()

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	prefsStore := settings.NewStore(cfg.SettingsPath)
	prefs, err := prefsStore.Load()
	if err != nil {
		// Corrupt settings fall back to defaults; brewing beats config purity.
		fmt.Fprintf(os.Stderr, "settings: %v, using defaults\n", err)
	}

	store := &serviceStore{
		brewprints: service.NewBrewprintService(repository.NewBrewprintRepository(database)),
	}

	// KeepScreenOn renders inline so the finished session stays in the
	// scrollback after exit; otherwise the wizard takes the alternate screen.
	var opts []tea.ProgramOption
	if !prefs.KeepScreenOn {
		opts = append(opts, tea.WithAltScreen())
	}

	program := tea.NewProgram(tui.New(store, prefsStore, prefs), opts...)
	if _, err := program.Run(); err != nil {
		log.Fatalf("run ui: %v", err)
	}
}
