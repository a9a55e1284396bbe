// Package config reads settings from an optional .env file and the environment.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/yumyai/orthoxml/logger"
)

const (
	EnvLogLevel     = "ORTHOXML_LOG_LEVEL"
	EnvXrefTag      = "ORTHOXML_XREF_TAG"
	EnvStrictScores = "ORTHOXML_STRICT_SCORES"
	EnvWorkers      = "ORTHOXML_WORKERS"
)

const DefaultXrefTag = "protId"

type Config struct {
	LogLevel     zapcore.Level
	XrefTag      string
	StrictScores bool
	Workers      int

	// Notes says which settings fell back to a default. The logger is not
	// up yet while loading, so the caller logs them.
	Notes []string
}

// Load reads .env from the working directory if present, then the environment.
func Load() Config {
	var notes []string
	if err := godotenv.Load(); err != nil {
		notes = append(notes, "No .env found, using local environment")
	}
	cfg := FromEnv(os.Getenv)
	cfg.Notes = append(notes, cfg.Notes...)
	return cfg
}

func FromEnv(getenv func(string) string) Config {
	cfg := Config{
		LogLevel: zapcore.InfoLevel,
		XrefTag:  DefaultXrefTag,
		Workers:  runtime.GOMAXPROCS(0),
	}
	note := func(format string, args ...any) {
		cfg.Notes = append(cfg.Notes, fmt.Sprintf(format, args...))
	}

	if v := getenv(EnvLogLevel); v == "" {
		note("No local environment (%s), using default value (%s)", EnvLogLevel, cfg.LogLevel)
	} else if lvl, err := logger.ParseLevel(v); err != nil {
		note("Invalid %s=%q, using default value (%s)", EnvLogLevel, v, cfg.LogLevel)
	} else {
		cfg.LogLevel = lvl
	}

	if v := getenv(EnvXrefTag); v == "" {
		note("No local environment (%s), using default value (%s)", EnvXrefTag, cfg.XrefTag)
	} else {
		cfg.XrefTag = v
	}

	if v := getenv(EnvStrictScores); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			note("Invalid %s=%q, using default value (false)", EnvStrictScores, v)
		}
		cfg.StrictScores = b
	}

	if v := getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			note("Invalid %s=%q, using default value (%d)", EnvWorkers, v, cfg.Workers)
		} else {
			cfg.Workers = n
		}
	}
	return cfg
}
