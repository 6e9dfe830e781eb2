// Package config loads the handful of knobs this core recognizes: whether
// to run in synchronous mode, the (currently unused) backup-worker ratio,
// and the deployment shape (worker count, table names) needed to bring up
// the single-process demo in cmd/multiverso-server.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds every knob this core's server construction and demo
// entrypoint recognize.
type Config struct {
	// Sync selects the synchronous (vector-clock-coordinated) server when
	// true, and the stateless async pass-through otherwise. Defaults to
	// false.
	Sync bool `toml:"sync"`

	// BackupWorkerRatio is the percentage of backup workers reserved for
	// straggler mitigation. It is parsed and validated here but never
	// read by server.Sync: the shedding policy it was meant to enable
	// (dropping the slowest BackupWorkerRatio% of workers per phase) was
	// never implemented in the system this core is modeled on, and is
	// out of scope here too. Defaults to 0.
	BackupWorkerRatio int `toml:"backup_worker_ratio"`

	// NumWorkers is the fixed number of training workers this shard
	// coordinates. Required; the worker set cannot change after a
	// server is constructed.
	NumWorkers int `toml:"num_workers"`

	// ServerID identifies this shard among its peers, for logging.
	ServerID int `toml:"server_id"`

	// Tables names the tables to register, in registration order; the
	// id assigned to Tables[i] is i.
	Tables []string `toml:"tables"`
}

// Default returns a Config with every field at its documented default.
func Default() Config {
	return Config{}
}

// Load reads and parses a TOML config file at path, returning the result
// of overlaying it on Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports an error if cfg's values are individually out of
// range. It does not and cannot check cross-process invariants like "every
// shard agrees on NumWorkers" — that's a deployment concern.
func (c Config) Validate() error {
	if c.NumWorkers <= 0 {
		return fmt.Errorf("config: num_workers must be positive, got %d", c.NumWorkers)
	}
	if c.BackupWorkerRatio < 0 || c.BackupWorkerRatio > 100 {
		return fmt.Errorf("config: backup_worker_ratio must be in [0, 100], got %d", c.BackupWorkerRatio)
	}
	return nil
}
