package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/kabukiran/agriaid/internal/config"
	"github.com/kabukiran/agriaid/internal/logger"
)

const defaultMigrationsPath = "migrations"

func main() {
	var migrationsPath string
	flag.StringVar(&migrationsPath, "path", defaultMigrationsPath, "Path to migrations directory")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Server.Env)

	absPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		log.Fatal("Failed to resolve migrations path", err, nil)
	}

	// golang-migrate selects its database driver by URL scheme; the pgx/v5
	// driver registers as pgx5.
	dsn := strings.Replace(cfg.Database.URL(), "postgres://", "pgx5://", 1)

	m, err := migrate.New("file://"+absPath, dsn)
	if err != nil {
		log.Fatal("Failed to create migrator", err, map[string]interface{}{
			"migrations_path": absPath,
		})
	}
	defer m.Close()

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "step":
		if len(args) < 2 {
			log.Fatal("Step count required. Usage: migrate step <n>", nil, nil)
		}
		var n int
		n, err = strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid step count", err, map[string]interface{}{"value": args[1]})
		}
		err = m.Steps(n)
	case "force":
		if len(args) < 2 {
			log.Fatal("Version required. Usage: migrate force <version>", nil, nil)
		}
		var v int
		v, err = strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid version number", err, map[string]interface{}{"value": args[1]})
		}
		log.Warn("Forcing migration version", map[string]interface{}{"version": v})
		err = m.Force(v)
	case "version":
		version, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			log.Info("No migrations applied", nil)
			return
		}
		if verr != nil {
			log.Fatal("Failed to get version", verr, nil)
		}
		log.Info("Current migration version", map[string]interface{}{
			"version": version,
			"dirty":   dirty,
		})
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("No migrations to apply", nil)
		return
	}
	if err != nil {
		log.Fatal("Migration failed", err, map[string]interface{}{"command": command})
	}

	log.Info("Migration complete", map[string]interface{}{"command": command})
}

func printUsage() {
	fmt.Println(`AgriAid Database Migration Tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up               Apply all pending migrations
  down             Roll back all migrations
  step <n>         Apply n migrations (positive=up, negative=down)
  version          Show current migration version
  force <version>  Force set migration version (use with caution)

Flags:
  -path string     Path to migrations directory (default: ./migrations)

Environment Variables:
  DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME`)
}
