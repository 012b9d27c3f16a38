// Package config loads the engine's runtime configuration: the
// storage root directory Parquet table names resolve against, and the
// logging verbosity, from flags with an optional YAML overlay — the
// same flag-first, file-optional pattern the teacher's main.go used
// for its sort-chunk-size flag, generalized and given a YAML escape
// hatch for settings that don't fit comfortably on a command line.
package config

import (
	"flag"
	"os"

	"gopkg.in/yaml.v2"
)

// Config holds everything the REPL needs before it can plan and run a
// query.
type Config struct {
	// Root is the directory table names in FROM are resolved against
	// (spec.md §6). Defaults to the current working directory.
	Root string `yaml:"root"`

	// LogLevel is a logrus level name ("debug", "info", "warn", "error").
	LogLevel string `yaml:"log_level"`

	// Prompt is the REPL's prompt string (spec.md §6's ">> " default).
	Prompt string `yaml:"prompt"`
}

// defaults returns the configuration used when neither a flag nor a
// config file overrides a field.
func defaults() Config {
	return Config{
		Root:     ".",
		LogLevel: "info",
		Prompt:   ">> ",
	}
}

// Load builds a Config from args (normally os.Args[1:]): it first
// applies an optional YAML file (-config, default ".parqlaprc" if
// present in the working directory), then flags, so a flag passed on
// the command line always wins over the file.
func Load(args []string) (Config, error) {
	cfg := defaults()

	fs := flag.NewFlagSet("parqlap", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a YAML config file (defaults to .parqlaprc if present)")
	root := fs.String("root", "", "directory table names are resolved against")
	logLevel := fs.String("log-level", "", "logrus level: debug, info, warn, error")
	prompt := fs.String("prompt", "", "REPL prompt string")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	path := *configPath
	if path == "" {
		path = ".parqlaprc"
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	}

	if *root != "" {
		cfg.Root = *root
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *prompt != "" {
		cfg.Prompt = *prompt
	}

	return cfg, nil
}
