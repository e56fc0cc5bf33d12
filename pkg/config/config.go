// Modshelf GOG Store
// Copyright (c) 2026 The Modshelf Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Modshelf GOG Store.
//
// Modshelf GOG Store is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Modshelf GOG Store is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Modshelf GOG Store.  If not, see <http://www.gnu.org/licenses/>.

// Package config loads and stores the application's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/modshelf/gogstore/pkg/helpers/syncutil"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

const (
	SchemaVersion = 1
	AppName       = "gogstore"
	CfgEnv        = "GOGSTORE_CFG"
	CfgFile       = "config.toml"
	LogFile       = "gogstore.log"
)

// Values is the full on-disk configuration schema.
type Values struct {
	Stores       Stores `toml:"stores,omitempty"`
	ConfigSchema int    `toml:"config_schema"`
	DebugLogging bool   `toml:"debug_logging"`
}

// Stores configures store providers.
type Stores struct {
	Default []StoresDefault `toml:"default,omitempty"`
}

// StoresDefault overrides detection defaults for one store provider.
type StoresDefault struct {
	// Store is the provider id the override applies to, e.g. "gog".
	Store string `toml:"store"`
	// InstallDir overrides client install path detection. The path is still
	// checked for existence before it is used.
	InstallDir string `toml:"install_dir,omitempty"`
}

// Instance is a mutex-guarded view of the loaded configuration.
type Instance struct {
	cfgPath  string
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

// BaseDefaults are the starting values for a fresh configuration.
var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
}

// NewConfig loads the config file from configDir, creating it with defaults
// if it does not exist. The GOGSTORE_CFG env var overrides the file path.
//
//nolint:gocritic // config struct copied for immutability
func NewConfig(configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	log.Debug().Msgf("env config path: %s", cfgPath)

	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	cfg := Instance{
		mu:       syncutil.RWMutex{},
		cfgPath:  cfgPath,
		vals:     defaults,
		defaults: defaults,
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		log.Info().Msg("saving new default config to disk")

		err := os.MkdirAll(filepath.Dir(cfgPath), 0o750)
		if err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		err = cfg.Save()
		if err != nil {
			return nil, err
		}
	}

	err := cfg.Load()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Load re-reads the config file from disk.
func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	if _, err := os.Stat(c.cfgPath); err != nil {
		return fmt.Errorf("failed to stat config file: %w", err)
	}

	data, err := os.ReadFile(c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then unmarshal file values on top, so fields not
	// present in the file retain their default values.
	newVals := c.defaults
	err = toml.Unmarshal(data, &newVals)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			newVals.ConfigSchema,
			SchemaVersion,
		)
		return errors.New("schema version mismatch")
	}

	c.vals = newVals
	return nil
}

// Save writes the current values back to the config file.
func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	c.vals.ConfigSchema = SchemaVersion

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DebugLogging reports whether debug-level logging is enabled.
func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

// SetDebugLogging toggles debug-level logging.
func (c *Instance) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DebugLogging = enabled
}

// LookupStoreDefaults returns the configured overrides for a store provider,
// matched case-insensitively by store id.
func (c *Instance) LookupStoreDefaults(storeID string) (StoresDefault, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, def := range c.vals.Stores.Default {
		if strings.EqualFold(def.Store, storeID) {
			return def, true
		}
	}
	return StoresDefault{}, false
}
