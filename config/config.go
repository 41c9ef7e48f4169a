// Package config loads the teller settings from the environment.
// A .env file is read first when present, variables already set win.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/etnz/teller"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store kinds.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// DefaultSnapshot returns the snapshot name used when none is configured.
func DefaultSnapshot(store string) string {
	if store == StoreSQLite {
		return "teller.db"
	}
	return "teller.json"
}

// Config holds the settings of the tlr command.
type Config struct {
	Snapshot     string `env:"TELLER_SNAPSHOT"`
	Store        string `env:"TELLER_STORE" envDefault:"file"`
	Currency     string `env:"TELLER_CURRENCY" envDefault:"BRL"`
	SeedFile     string `env:"TELLER_SEED_FILE"`
	User         string `env:"TELLER_USER"`
	Password     string `env:"TELLER_PASSWORD"`
	Debug        bool   `env:"TELLER_DEBUG"`
	ResetCorrupt bool   `env:"TELLER_RESET_CORRUPT"`
}

// Load reads the configuration from environment variables.
// It loads the .env file of the current directory if there is one, or the
// file given in envPath, which must then exist.
//
// An unset snapshot stays empty until ApplyDefaults, so that it can follow a
// store kind changed after loading.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	var c Config
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	c.Currency = strings.ToUpper(strings.TrimSpace(c.Currency))
	return &c, nil
}

// ApplyDefaults fills the settings whose default depends on others.
func (c *Config) ApplyDefaults() {
	if strings.TrimSpace(c.Snapshot) == "" {
		c.Snapshot = DefaultSnapshot(c.Store)
	}
}

// Validate checks the values that cannot be checked by parsing.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Snapshot) == "" {
		errs = append(errs, errors.New("TELLER_SNAPSHOT is required"))
	}
	switch c.Store {
	case StoreFile, StoreSQLite:
	default:
		errs = append(errs, fmt.Errorf("TELLER_STORE must be %q or %q, got %q", StoreFile, StoreSQLite, c.Store))
	}
	if !teller.KnownCurrency(c.Currency) {
		errs = append(errs, fmt.Errorf("TELLER_CURRENCY: unknown currency %q", c.Currency))
	}
	return errors.Join(errs...)
}

// LoadPolicy returns the policy for a corrupt snapshot.
func (c *Config) LoadPolicy() teller.LoadPolicy {
	if c.ResetCorrupt {
		return teller.ResetOnCorrupt
	}
	return teller.FailOnCorrupt
}

// SeedUsers returns the users of a new ledger: the content of SeedFile or
// the default users if there is none.
func (c *Config) SeedUsers() ([]teller.User, error) {
	if c.SeedFile == "" {
		return teller.DefaultUsers(), nil
	}
	return LoadSeedUsers(c.SeedFile)
}

type seedFile struct {
	Users []teller.User `yaml:"users"`
}

// LoadSeedUsers reads a YAML file with a top level "users" list.
func LoadSeedUsers(path string) ([]teller.User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %q: %w", path, err)
	}
	if len(f.Users) == 0 {
		return nil, fmt.Errorf("seed file %q has no users", path)
	}
	for _, u := range f.Users {
		if err := u.Validate(); err != nil {
			return nil, fmt.Errorf("seed file %q: user %q: %w", path, u.Login, err)
		}
	}
	return f.Users, nil
}
