package main

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	prettypdf "github.com/prettypdf/go-prettypdf"
)

// Environment variables read by the command.
const (
	envConfig  = "PRETTYPDF_CONFIG"
	envTimeout = "PRETTYPDF_TIMEOUT"
	envPrefix  = "PRETTYPDF_"
)

// knownEnvVars lists valid PRETTYPDF_* variables, to catch typos.
var knownEnvVars = map[string]bool{
	envConfig:  true,
	envTimeout: true,
}

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string
	// NewConverter builds the conversion backend.
	NewConverter func(opts ...prettypdf.Option) (Converter, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		NewConverter: func(opts ...prettypdf.Option) (Converter, error) {
			return prettypdf.NewConverter(opts...)
		},
	}
}

// warnUnknownEnvVars logs PRETTYPDF_* variables the command does not read,
// such as PRETTYPDF_TIMOUT.
func warnUnknownEnvVars(env *Environment, logger *slog.Logger) {
	for _, kv := range env.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}
