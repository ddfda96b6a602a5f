// Package config handles loading and parsing application configuration.
// It supports three sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//  3. Built-in defaults, each overridable by its own env variable
//
// The parsed values are returned as a *Config pointer so the struct is
// shared by reference rather than copied everywhere.
package config

import (
	"flag"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
//
// Unlike a server that must refuse to start on missing config, a local
// roster tool should run bare: every key has an env-default, so no
// config file is required at all.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// Storage is embedded (not a pointer) so its fields are accessible
	// directly on Config: cfg.Storage.Path
	Storage `yaml:"storage"`
}

// Storage holds settings for the persistence backend.
// Nested under storage: in the YAML file.
type Storage struct {
	// Driver selects the backend: "xlsx" (spreadsheet file) or "sqlite".
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"xlsx"`

	// Path is the filesystem path of the roster file
	// (.xlsx workbook or .db file, depending on Driver).
	Path string `yaml:"path" env:"STORAGE_PATH" env-default:"students.xlsx"`

	// Sheet is the worksheet name used by the xlsx driver.
	Sheet string `yaml:"sheet" env:"STORAGE_SHEET" env-default:"Roster"`
}

// MustLoad reads, validates, and returns the application config.
//
// The name follows the Go convention: functions prefixed with "Must"
// are allowed to fatal on failure. Callers do not need to check a
// returned error — if this function returns, the config is valid.
func MustLoad() *Config {
	var configPath string

	// Source 1: environment variable. The standard way to pass config
	// in a container or CI environment.
	configPath = os.Getenv("CONFIG_PATH")

	// Source 2: command-line flag, for local runs:
	//   rosterkit --config=config/local.yaml
	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	var cfg Config

	// Source 3: no path given — fall back to env vars and defaults.
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read config from environment: %s", err.Error())
		}
		return &cfg
	}

	// A path was given explicitly, so a missing or unreadable file is
	// an operator mistake worth stopping for — unlike the roster file,
	// which is allowed to be absent.
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	// cleanenv.ReadConfig reads the YAML file, populates the struct,
	// and applies any env:"..." overrides on top.
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err.Error())
	}

	return &cfg
}
