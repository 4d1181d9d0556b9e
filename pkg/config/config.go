// Package config holds the settings of the mpamhelper tool.
//
// Values are read from the environment, which may be seeded from a .env
// file. Command line flags override them.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by FromEnv.
const (
	EnvVerifyChecksum = "MPAM_VERIFY_CHECKSUM"
	EnvPartial        = "MPAM_PARTIAL"
	EnvXZPath         = "MPAM_XZ_PATH"
	EnvQuiet          = "MPAM_QUIET"
)

type Config struct {
	// VerifyChecksum rejects tables whose byte sum is not zero.
	VerifyChecksum bool

	// Partial keeps the nodes read before a malformed node instead of
	// failing.
	Partial bool

	// XZPath is the system xz command used to encode xz data.
	XZPath string

	// Quiet drops informational log lines.
	Quiet bool
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{XZPath: "xz"}
}

// Load reads the given .env files into the environment, without overriding
// variables that are already set, and then returns FromEnv. Files that do
// not exist are skipped.
func Load(files ...string) (Config, error) {
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return Config{}, fmt.Errorf("loading %v: %w", existing, err)
		}
	}
	return FromEnv()
}

// FromEnv returns Default overridden by the MPAM_* environment variables.
func FromEnv() (Config, error) {
	cfg := Default()
	var err error
	if cfg.VerifyChecksum, err = envBool(EnvVerifyChecksum, cfg.VerifyChecksum); err != nil {
		return Config{}, err
	}
	if cfg.Partial, err = envBool(EnvPartial, cfg.Partial); err != nil {
		return Config{}, err
	}
	if cfg.Quiet, err = envBool(EnvQuiet, cfg.Quiet); err != nil {
		return Config{}, err
	}
	if v, ok := os.LookupEnv(EnvXZPath); ok {
		cfg.XZPath = v
	}
	return cfg, nil
}

func envBool(name string, def bool) (bool, error) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%s=%q: %w", name, v, err)
	}
	return b, nil
}
