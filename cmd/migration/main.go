// Command migration applies schema migrations and seeds the tournament
// tables from JSON exports.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/riskibarqy/tournament-dashboard/internal/app"
	"github.com/riskibarqy/tournament-dashboard/internal/config"
	"github.com/riskibarqy/tournament-dashboard/internal/infrastructure/datasource/jsonfile"
	"github.com/riskibarqy/tournament-dashboard/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/tournament-dashboard/internal/platform/logging"
)

type migrateFunc func(m *migrate.Migrate, args []string, logger *logging.Logger) error

var migrateCommands = map[string]migrateFunc{
	"up":      runUp,
	"down":    runDown,
	"version": runVersion,
	"force":   runForce,
	"goto":    runGoto,
	"migrate": runGoto,
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 2
	}
	name := strings.ToLower(strings.TrimSpace(args[0]))
	migrateCmd, isMigrate := migrateCommands[name]
	if !isMigrate && name != "seed" {
		printUsage()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}
	if strings.TrimSpace(cfg.DBURL) == "" {
		fmt.Fprintln(os.Stderr, "DB_URL is required")
		return 1
	}

	logger := logging.NewJSON(cfg.LogLevel).Named("migration")
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	if name == "seed" {
		err = runSeed(cfg, logger, args[1:])
	} else {
		err = withMigrator(cfg, logger, func(m *migrate.Migrate) error {
			return migrateCmd(m, args[1:], logger)
		})
	}
	if err != nil {
		logger.Error("command failed", "command", name, "error", err)
		return 1
	}
	return 0
}

func withMigrator(cfg config.Config, logger *logging.Logger, fn func(*migrate.Migrate) error) error {
	dir, err := findMigrationsDir(os.Getenv("MIGRATIONS_DIR"), "./db/migrations", "/app/db/migrations")
	if err != nil {
		return err
	}

	source := "file://" + filepath.ToSlash(dir)
	m, err := migrate.New(source, app.DSN(cfg))
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err := errors.Join(srcErr, dbErr); err != nil {
			logger.Warn("close migrator", "error", err)
		}
	}()

	logger.Info("migration source", "source", source)
	return fn(m)
}

func runUp(m *migrate.Migrate, _ []string, logger *logging.Logger) error {
	if err := ignoreNoChange(m.Up(), logger); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	logger.Info("migrations applied")
	return nil
}

func runDown(m *migrate.Migrate, args []string, logger *logging.Logger) error {
	steps, err := parseSteps(args)
	if err != nil {
		return err
	}
	if err := ignoreNoChange(m.Steps(-steps), logger); err != nil {
		return fmt.Errorf("migrate down %d: %w", steps, err)
	}
	logger.Info("migrations rolled back", "steps", steps)
	return nil
}

func runVersion(m *migrate.Migrate, _ []string, _ *logging.Logger) error {
	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		fmt.Println("version: none")
		fmt.Println("dirty: false")
		return nil
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	}
	fmt.Printf("version: %d\ndirty: %t\n", version, dirty)
	return nil
}

func runForce(m *migrate.Migrate, args []string, logger *logging.Logger) error {
	if len(args) == 0 {
		return errors.New("force requires a version argument")
	}
	version, err := parseVersion(args[0])
	if err != nil {
		return err
	}
	if err := m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	logger.Info("forced migration version", "version", version)
	return nil
}

func runGoto(m *migrate.Migrate, args []string, logger *logging.Logger) error {
	if len(args) == 0 {
		return errors.New("goto requires a target version argument")
	}
	target, err := parseTarget(args[0])
	if err != nil {
		return err
	}
	if err := ignoreNoChange(m.Migrate(target), logger); err != nil {
		return fmt.Errorf("migrate to %d: %w", target, err)
	}
	logger.Info("migrated", "version", target)
	return nil
}

// runSeed loads the JSON exports from a directory and replaces the
// tournament tables with them.
func runSeed(cfg config.Config, logger *logging.Logger, args []string) error {
	dir := cfg.DataDir
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		dir = strings.TrimSpace(args[0])
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	data, err := jsonfile.NewSource(dir, logger.Named("jsonfile")).Load(ctx)
	if err != nil {
		return fmt.Errorf("load dataset from %s: %w", dir, err)
	}

	db, err := app.OpenDB(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	if err := postgres.NewDatasetWriter(db).Replace(ctx, data); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}

	logger.Info("dataset seeded",
		"dir", dir,
		"version", data.Version,
		"teams", len(data.Teams),
		"fixtures", len(data.Fixtures),
		"players", len(data.Players),
		"venues", len(data.Venues),
		"stages", len(data.Stages),
	)
	return nil
}

func ignoreNoChange(err error, logger *logging.Logger) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0, got %d", steps)
	}
	return steps, nil
}

// parseVersion reads a version for Force, which takes a signed int.
func parseVersion(raw string) (int, error) {
	version, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if version < 0 {
		return 0, fmt.Errorf("version must be >= 0, got %d", version)
	}
	return version, nil
}

func parseTarget(raw string) (uint, error) {
	target, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 0)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(target), nil
}

// findMigrationsDir returns the first candidate that is an existing
// directory. Empty candidates are skipped.
func findMigrationsDir(candidates ...string) (string, error) {
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migration directory not found in %v", candidates)
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, `usage: %[1]s <up|down|version|force|goto|seed> [args]
examples:
  %[1]s up
  %[1]s down 1
  %[1]s version
  %[1]s force 1760572800
  %[1]s goto 1760572800
  %[1]s seed ./data
`, name)
}
