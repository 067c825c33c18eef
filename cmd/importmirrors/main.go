// Command importmirrors loads location mirror snapshots from an xlsx
// workbook into the mirror_records table. Each sheet named after a mirror
// location replaces every record stored for that location.
//
// Usage: go run ./cmd/importmirrors -file mirrors.xlsx [-only garage,showroom_floor_1] [-dry-run]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"dealerops/internal/config"
	"dealerops/internal/domain"
	"dealerops/internal/logging"
	"dealerops/internal/mirrorimport"
	"dealerops/internal/repository/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	path := flag.String("file", "", "path to the xlsx workbook")
	only := flag.String("only", "", "comma-separated mirror locations to import (default: all sheets)")
	dryRun := flag.Bool("dry-run", false, "parse and report without writing")
	flag.Parse()

	if *path == "" {
		flag.Usage()
		return fmt.Errorf("-file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	wanted, err := parseLocations(*only)
	if err != nil {
		return err
	}

	f, err := os.Open(*path)
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	snap, err := mirrorimport.ReadWorkbook(f)
	if err != nil {
		return err
	}
	for _, sheet := range snap.Skipped {
		logger.Warn("skipping sheet with no matching mirror location", zap.String("sheet", sheet))
	}

	locations := make([]domain.MirrorLocation, 0, len(snap.Locations))
	for loc := range snap.Locations {
		if len(wanted) == 0 || wanted[loc] {
			locations = append(locations, loc)
		}
	}
	sort.Slice(locations, func(i, j int) bool { return locations[i] < locations[j] })

	if *dryRun {
		for _, loc := range locations {
			logger.Info("dry run", zap.String("location", string(loc)), zap.Int("records", len(snap.Locations[loc])))
		}
		return nil
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	store := postgres.NewMirrorRepo(db)
	ctx := context.Background()
	for _, loc := range locations {
		records := snap.Locations[loc]
		if err := store.ReplaceLocation(ctx, loc, records); err != nil {
			return fmt.Errorf("import %s: %w", loc, err)
		}
		logger.Info("mirror imported", zap.String("location", string(loc)), zap.Int("records", len(records)))
	}
	return nil
}

func parseLocations(list string) (map[domain.MirrorLocation]bool, error) {
	wanted := make(map[domain.MirrorLocation]bool)
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		loc, ok := mirrorimport.LocationForSheet(name)
		if !ok {
			return nil, fmt.Errorf("unknown mirror location %q", name)
		}
		wanted[loc] = true
	}
	return wanted, nil
}
