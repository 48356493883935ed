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

// Package migrate imports configs written by stl-rs, the YAML based tool
// this wrapper replaces, into the TOML config store.
package migrate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/ZaparooProject/zaparoo-launch/pkg/config"
	"github.com/ZaparooProject/zaparoo-launch/pkg/gameconfig"
)

const (
	LegacyGlobalFile = "global_config.yaml"
	LegacyGamesDir   = "game_configs"
)

type LegacyOption struct {
	Placeholder string `yaml:"placeholder"`
	ReplaceWith string `yaml:"replace_with"`
	Enabled     bool   `yaml:"enabled"`
}

type LegacyConfig struct {
	LaunchCommand string         `yaml:"placeholder_launch_command"`
	Options       []LegacyOption `yaml:"placeholder_map"`
	AppID         uint32         `yaml:"appid"`
}

// Report lists what a migration imported.
type Report struct {
	Games   []string
	Skipped []string
	Global  bool
}

// LegacyDirs returns the directories stl-rs may have written to. It used
// $XDG_CONFIG_HOME directly when set, and ~/.config/stl-rs otherwise.
func LegacyDirs() []string {
	dirs := []string{filepath.Join(xdg.ConfigHome, config.LegacyDirName)}
	if env := os.Getenv("XDG_CONFIG_HOME"); env != "" {
		dirs = append(dirs, env)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", config.LegacyDirName))
	}

	seen := make(map[string]bool, len(dirs))
	out := dirs[:0]
	for _, d := range dirs {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}

// FindLegacyDir returns the first legacy directory holding a global config.
func FindLegacyDir(afs afero.Fs) (string, bool) {
	for _, dir := range LegacyDirs() {
		if ok, _ := afero.Exists(afs, filepath.Join(dir, LegacyGlobalFile)); ok {
			return dir, true
		}
	}
	return "", false
}

func LoadLegacy(afs afero.Fs, path string) (LegacyConfig, error) {
	data, err := afero.ReadFile(afs, path)
	if err != nil {
		return LegacyConfig{}, fmt.Errorf("failed to read legacy config: %w", err)
	}

	var lc LegacyConfig
	if err := yaml.Unmarshal(data, &lc); err != nil {
		return LegacyConfig{}, fmt.Errorf("failed to parse legacy config %s: %w", path, err)
	}
	return lc, nil
}

// ToConfig converts a legacy config. The old format had no record of user
// edits, so when global is given, anything that differs from it is marked
// as modified to keep later merges from overwriting it.
func (lc *LegacyConfig) ToConfig(global *LegacyConfig) gameconfig.Config {
	cfg := gameconfig.Config{
		ConfigSchema:   gameconfig.SchemaVersion,
		LaunchTemplate: lc.LaunchCommand,
		Options:        make([]gameconfig.Option, 0, len(lc.Options)),
	}
	if lc.AppID != 0 {
		cfg.AppID = strconv.FormatUint(uint64(lc.AppID), 10)
	}

	if global != nil && lc.LaunchCommand != global.LaunchCommand {
		cfg.TemplateModified = true
	}

	for _, o := range lc.Options {
		opt := gameconfig.Option{
			Token:       o.Placeholder,
			Replacement: o.ReplaceWith,
			Enabled:     o.Enabled,
		}
		if global != nil {
			opt.Modified = !global.hasOption(o.Placeholder, o.ReplaceWith)
		}
		cfg.Options = append(cfg.Options, opt)
	}

	return cfg
}

func (lc *LegacyConfig) hasOption(placeholder, replaceWith string) bool {
	for _, o := range lc.Options {
		if o.Placeholder == placeholder {
			return o.ReplaceWith == replaceWith
		}
	}
	return false
}

// Required reports whether legacyDir has configs and the store has none.
func Required(afs afero.Fs, legacyDir string, store *gameconfig.Store) bool {
	if store.Exists(gameconfig.GlobalKey) {
		return false
	}
	ok, err := afero.Exists(afs, filepath.Join(legacyDir, LegacyGlobalFile))
	return err == nil && ok
}

// Migrate imports the legacy global config and every legacy game config
// into store. Configs already present in the store are never overwritten.
func Migrate(afs afero.Fs, legacyDir string, store *gameconfig.Store) (Report, error) {
	var report Report

	globalPath := filepath.Join(legacyDir, LegacyGlobalFile)
	legacyGlobal, err := LoadLegacy(afs, globalPath)
	if err != nil {
		return report, err
	}

	if store.Exists(gameconfig.GlobalKey) {
		log.Info().Msg("global config already exists, not importing legacy global config")
		report.Skipped = append(report.Skipped, globalPath)
	} else {
		cfg := legacyGlobal.ToConfig(nil)
		cfg.AppID = ""
		if err := store.Save(gameconfig.GlobalKey, &cfg); err != nil {
			return report, err
		}
		report.Global = true
	}

	entries, err := afero.ReadDir(afs, filepath.Join(legacyDir, LegacyGamesDir))
	if errors.Is(err, fs.ErrNotExist) {
		return report, nil
	} else if err != nil {
		return report, fmt.Errorf("failed to read legacy game configs: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(legacyDir, LegacyGamesDir, e.Name())
		appID := strings.TrimSuffix(e.Name(), ".yaml")

		if !gameconfig.ValidAppID(appID) || store.Exists(appID) {
			report.Skipped = append(report.Skipped, path)
			continue
		}

		lc, err := LoadLegacy(afs, path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("skipping unreadable legacy game config")
			report.Skipped = append(report.Skipped, path)
			continue
		}

		cfg := lc.ToConfig(&legacyGlobal)
		if err := store.Save(appID, &cfg); err != nil {
			return report, err
		}
		report.Games = append(report.Games, appID)
	}

	log.Info().
		Bool("global", report.Global).
		Int("games", len(report.Games)).
		Int("skipped", len(report.Skipped)).
		Msg("imported legacy configs")
	return report, nil
}
