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

package gameconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/gofrs/flock"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	// GlobalKey is the store key of the global config.
	GlobalKey  = ""
	GlobalFile = "global.toml"
	GamesDir   = "games"
)

var (
	ErrNotFound   = errors.New("config not found")
	ErrCorrupt    = errors.New("config is corrupt")
	ErrInvalidKey = errors.New("invalid config key")
)

// SaveError is returned when a config could not be written to disk.
type SaveError struct {
	Err  error
	Path string
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("failed to save config %s: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

// Store persists configs as TOML files: the global config in global.toml and
// one file per game in games/<appid>.toml.
type Store struct {
	fs   afero.Fs
	dir  string
	lock bool
}

// NewStore creates a store on the OS filesystem rooted at dir. Saves are
// guarded by a lock file so two launches can't interleave writes.
func NewStore(dir string) *Store {
	return &Store{
		fs:   afero.NewOsFs(),
		dir:  dir,
		lock: true,
	}
}

// NewStoreWithFs creates a store on a custom filesystem. This is useful for
// testing.
func NewStoreWithFs(afs afero.Fs, dir string) *Store {
	_, isOS := afs.(*afero.OsFs)
	return &Store{
		fs:   afs,
		dir:  dir,
		lock: isOS,
	}
}

// Dir returns the root directory of the store.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file path for a store key. Game keys must be Steam app
// ids, which are always decimal.
func (s *Store) Path(key string) (string, error) {
	if key == GlobalKey {
		return filepath.Join(s.dir, GlobalFile), nil
	}
	if !ValidAppID(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.dir, GamesDir, key+".toml"), nil
}

// ValidAppID reports whether id is a non-empty string of decimal digits.
func ValidAppID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Exists reports whether a config has been saved under key.
func (s *Store) Exists(key string) bool {
	path, err := s.Path(key)
	if err != nil {
		return false
	}
	ok, err := afero.Exists(s.fs, path)
	return err == nil && ok
}

// Load reads the config saved under key. It returns an error wrapping
// ErrNotFound if nothing was saved and ErrCorrupt if the file can't be
// parsed or has no launch_command key. An empty launch_command is kept.
func (s *Store) Load(key string) (Config, error) {
	path, err := s.Path(key)
	if err != nil {
		return Config{}, err
	}

	data, err := afero.ReadFile(s.fs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	} else if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrCorrupt, path, err)
	}

	var keys struct {
		LaunchTemplate *string `toml:"launch_command"`
	}
	if err := toml.Unmarshal(data, &keys); err != nil || keys.LaunchTemplate == nil {
		return Config{}, fmt.Errorf("%w: %s: missing launch_command", ErrCorrupt, path)
	}

	switch cfg.ConfigSchema {
	case 0:
		cfg.ConfigSchema = SchemaVersion
	case SchemaVersion:
	default:
		return Config{}, fmt.Errorf(
			"%w: %s: schema version %d, expecting %d",
			ErrCorrupt, path, cfg.ConfigSchema, SchemaVersion,
		)
	}

	cfg.AppID = key
	return cfg, nil
}

// Save writes cfg under key. The file is written to a temporary path and
// renamed into place, so readers see either the old or the new config.
func (s *Store) Save(key string, cfg *Config) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}

	out := cfg.Clone()
	out.AppID = key
	out.ConfigSchema = SchemaVersion

	data, err := toml.Marshal(&out)
	if err != nil {
		return &SaveError{Path: path, Err: fmt.Errorf("failed to marshal config: %w", err)}
	}

	if err := s.fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return &SaveError{Path: path, Err: fmt.Errorf("failed to create config directory: %w", err)}
	}

	if s.lock {
		fl := flock.New(path + ".lock")
		if err := fl.Lock(); err != nil {
			return &SaveError{Path: path, Err: fmt.Errorf("failed to acquire lock: %w", err)}
		}
		defer func() {
			if err := fl.Unlock(); err != nil {
				log.Warn().Err(err).Str("path", path).Msg("failed to release config lock")
			}
		}()
	}

	tmpPath := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmpPath, data, 0o600); err != nil {
		return &SaveError{Path: path, Err: fmt.Errorf("failed to write temp file: %w", err)}
	}

	if err := s.fs.Rename(tmpPath, path); err != nil {
		_ = s.fs.Remove(tmpPath)
		return &SaveError{Path: path, Err: fmt.Errorf("failed to rename temp file: %w", err)}
	}

	log.Debug().Str("path", path).Msg("saved config")
	return nil
}

// LoadOrCreateGlobal loads the global config, falling back to Default when
// none has been saved yet. The default is written to disk on a best-effort
// basis.
func (s *Store) LoadOrCreateGlobal() (Config, error) {
	cfg, err := s.Load(GlobalKey)
	if err == nil {
		return cfg, nil
	} else if !errors.Is(err, ErrNotFound) {
		return Config{}, err
	}

	log.Info().Msg("saving new default global config to disk")
	cfg = Default()
	if err := s.Save(GlobalKey, &cfg); err != nil {
		log.Warn().Err(err).Msg("failed to save default global config")
	}
	return cfg, nil
}

// LoadOrCreateGame loads the config for appID. A game seen for the first
// time gets a copy of global, which is saved as its initial state.
func (s *Store) LoadOrCreateGame(appID string, global *Config) (Config, error) {
	cfg, err := s.Load(appID)
	if err == nil {
		return cfg, nil
	} else if !errors.Is(err, ErrNotFound) {
		return Config{}, err
	}

	log.Info().Str("appid", appID).Msg("creating game config from global config")
	cfg = global.Clone()
	cfg.AppID = appID
	if err := s.Save(appID, &cfg); err != nil {
		log.Warn().Err(err).Str("appid", appID).Msg("failed to save new game config")
	}
	return cfg, nil
}

// ListGames returns the app ids of all saved game configs.
func (s *Store) ListGames() ([]string, error) {
	entries, err := afero.ReadDir(s.fs, filepath.Join(s.dir, GamesDir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read games directory: %w", err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".toml" {
			continue
		}
		id := e.Name()[:len(e.Name())-len(".toml")]
		if ValidAppID(id) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
