// main is the entry point of the rosterkit application.
//
// STARTUP SEQUENCE:
//  1. Load configuration (YAML file, env vars, or built-in defaults)
//  2. Initialise the logger
//  3. Open the storage backend selected by storage.driver
//  4. Load the roster into the in-memory store (empty on any failure)
//  5. Run the interactive shell until the operator exits
//
// RUNNING:
//
//	go run ./cmd/rosterkit --config=config/local.yaml
//
// or with no config at all (defaults to students.xlsx in the working
// directory):
//
//	go run ./cmd/rosterkit
package main

import (
	"log/slog"
	"os"

	"github.com/rosterkit/rosterkit/internal/config"
	"github.com/rosterkit/rosterkit/internal/roster"
	"github.com/rosterkit/rosterkit/internal/shell"
	"github.com/rosterkit/rosterkit/internal/storage"
	"github.com/rosterkit/rosterkit/internal/storage/sqlite"
	"github.com/rosterkit/rosterkit/internal/storage/xlsx"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("starting rosterkit",
		slog.String("env", cfg.Env),
		slog.String("driver", cfg.Storage.Driver),
		slog.String("path", cfg.Storage.Path),
	)

	// The store only sees the storage.Storage interface; which file
	// format sits behind it is decided here and nowhere else.
	var st storage.Storage
	switch cfg.Storage.Driver {
	case "xlsx":
		st = xlsx.New(cfg)
	case "sqlite":
		db, err := sqlite.New(cfg)
		if err != nil {
			// The one fatal path: a backend that cannot even be
			// constructed. A missing or corrupt roster FILE is not
			// fatal — that is handled inside roster.New.
			log.Error("failed to initialise storage",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer db.Close()
		st = db
	default:
		log.Error("unknown storage driver",
			slog.String("driver", cfg.Storage.Driver))
		os.Exit(1)
	}

	store := roster.New(st, log)

	log.Info("roster loaded", slog.Int("students", store.Len()))

	sh := shell.New(os.Stdin, os.Stdout, store, log)
	if err := sh.Run(); err != nil {
		log.Error("shell terminated", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// setupLogger returns a *slog.Logger configured for the given
// environment: human-readable text in dev, JSON elsewhere, with INFO
// as the production floor.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
