package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/jaskseq/internal/config"
	"github.com/jask/jaskseq/internal/database"
	"github.com/jask/jaskseq/internal/database/repository"
	"github.com/jask/jaskseq/internal/generate"
	"github.com/jask/jaskseq/internal/seqfile"
	"github.com/jask/jaskseq/internal/service"
	"github.com/jask/jaskseq/internal/transform"
	"github.com/jask/jaskseq/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Sequence.Path), 0o755); err != nil {
		log.Fatalf("mkdir sequence dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.Path, "internal/database/migrations"); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	meta := seqfile.MetaDefaults{
		Author:   cfg.Editor.Author,
		GridMode: cfg.Editor.Grid,
		PropType: cfg.Editor.Prop,
	}

	// repositories and services
	seqRepo := repository.NewSequenceRepo(db)
	store := seqfile.NewStore(cfg.Sequence.Path, meta)
	library := &service.Library{Sequences: seqRepo, Meta: meta}
	maintenance := &service.MaintenanceService{DB: db}

	dataset := generate.NewDataset()
	freeform := generate.NewFreeform(dataset, time.Now().UnixNano())
	transformer := transform.NewTransformer(freeform)

	p := tea.NewProgram(tui.New(ctx, cfg, tui.Deps{
		Store:       store,
		Library:     library,
		Maintenance: maintenance,
		Dataset:     dataset,
		Transformer: transformer,
		Logger:      log.Default(),
	}), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
