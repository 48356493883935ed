// Zaparoo Launch
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Launch.
//
// Zaparoo Launch is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Launch is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Launch.  If not, see <http://www.gnu.org/licenses/>.

// Package config holds the settings of the wrapper itself. Launch templates
// and hooks live in gameconfig.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ZaparooProject/zaparoo-launch/pkg/helpers/syncutil"
)

const (
	SchemaVersion = 1
	CfgEnv        = "ZAPAROO_LAUNCH_CFG"
)

var ErrSchemaMismatch = errors.New("schema version mismatch")

type Values struct {
	Steam        Steam     `toml:"steam,omitempty"`
	Editor       Editor    `toml:"editor"`
	Telemetry    Telemetry `toml:"telemetry"`
	Launch       Launch    `toml:"launch"`
	ConfigSchema int       `toml:"config_schema"`
	DebugLogging bool      `toml:"debug_logging"`
}

type Editor struct {
	Theme string `toml:"theme" validate:"oneof=default high_contrast dracula nord gruvbox monogreen"`
	// Show opens the editor before every launch started from a terminal.
	Show  bool `toml:"show"`
	Mouse bool `toml:"mouse"`
}

type Launch struct {
	HistoryRetentionDays int  `toml:"history_retention_days" validate:"gte=0"`
	LogOutput            bool `toml:"log_output"`
	Notifications        bool `toml:"notifications"`
	History              bool `toml:"history"`
}

type Steam struct {
	InstallDir string `toml:"install_dir,omitempty"`
}

type Telemetry struct {
	DSN            string `toml:"dsn,omitempty" validate:"omitempty,url"`
	ErrorReporting bool   `toml:"error_reporting"`
}

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Editor: Editor{
		Theme: "default",
		Show:  true,
		Mouse: true,
	},
	Launch: Launch{
		Notifications:        true,
		History:              true,
		HistoryRetentionDays: 90,
	},
}

type Instance struct {
	cfgPath  string
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

// NewConfig loads config.toml from configDir, creating it from defaults if
// it doesn't exist yet. The CfgEnv environment variable overrides the path.
//
//nolint:gocritic // config struct copied for immutability
func NewConfig(configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	log.Debug().Msgf("env config path: %s", cfgPath)

	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	cfg := Instance{
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

// Path returns the location of the config file.
func (c *Instance) Path() string {
	return c.cfgPath
}

func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := os.ReadFile(c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Fields missing from the file keep their default values.
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
		return ErrSchemaMismatch
	}

	if err := Validate(&newVals); err != nil {
		return err
	}

	c.vals = newVals
	return nil
}

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

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DebugLogging = enabled
	if enabled {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func (c *Instance) EditorShow() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Editor.Show
}

func (c *Instance) EditorTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Editor.Theme
}

// SetEditorTheme changes the editor theme. Unknown theme names are
// rejected.
func (c *Instance) SetEditorTheme(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.vals
	next.Editor.Theme = name
	if err := Validate(&next); err != nil {
		return err
	}
	c.vals = next
	return nil
}

func (c *Instance) EditorMouse() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Editor.Mouse
}

func (c *Instance) LogOutput() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Launch.LogOutput
}

func (c *Instance) Notifications() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Launch.Notifications
}

func (c *Instance) HistoryEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Launch.History
}

// HistoryRetention is how long launch history is kept. Zero keeps it
// forever.
func (c *Instance) HistoryRetention() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.vals.Launch.HistoryRetentionDays) * 24 * time.Hour
}

// SteamInstallDir returns the configured Steam directory, or an empty
// string to auto-detect it.
func (c *Instance) SteamInstallDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Steam.InstallDir
}

func (c *Instance) ErrorReporting() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Telemetry.ErrorReporting
}

func (c *Instance) TelemetryDSN() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Telemetry.DSN
}
