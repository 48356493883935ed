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

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/ZaparooProject/zaparoo-launch/internal/telemetry"
	"github.com/ZaparooProject/zaparoo-launch/pkg/config"
	"github.com/ZaparooProject/zaparoo-launch/pkg/config/migrate"
	"github.com/ZaparooProject/zaparoo-launch/pkg/gameconfig"
	"github.com/ZaparooProject/zaparoo-launch/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-launch/pkg/platforms/shared/steam"
	"github.com/ZaparooProject/zaparoo-launch/pkg/ui/tui"
)

type rootFlags struct {
	configDir string
	appID     string
	debug     bool
	verbose   bool
}

// app is the state shared by all commands once the settings are loaded.
type app struct {
	cfg   *config.Instance
	store *gameconfig.Store
	fs    afero.Fs
	dirs  helpers.Dirs
}

func setup(env *Env, flags *rootFlags) (*app, error) {
	dirs := helpers.ResolveDirs(flags.configDir)
	if err := dirs.Ensure(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	if env.Logging {
		var writers []io.Writer
		if flags.verbose {
			writers = append(writers, helpers.ConsoleWriter(env.Stderr))
		}
		if err := helpers.InitLogging(dirs.LogDir(), writers...); err != nil {
			return nil, fmt.Errorf("failed to set up logging: %w", err)
		}
	}

	cfg, err := config.NewConfig(dirs.Config, config.BaseDefaults)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	cfg.SetDebugLogging(flags.debug || cfg.DebugLogging())

	log.Info().Msgf("version: %s", config.AppVersion)
	log.Debug().Msgf("config dir: %s, data dir: %s", dirs.Config, dirs.Data)

	err = telemetry.Init(telemetry.Options{
		Enabled:    cfg.ErrorReporting(),
		DSN:        cfg.TelemetryDSN(),
		AppVersion: config.AppVersion,
	})
	if err != nil {
		log.Warn().Err(err).Msg("error reporting unavailable")
	}

	return &app{
		cfg:   cfg,
		fs:    afero.NewOsFs(),
		store: gameconfig.NewStore(dirs.Config),
		dirs:  dirs,
	}, nil
}

// importLegacy imports the YAML configs of the tool this one replaces the
// first time it runs.
func (a *app) importLegacy() {
	legacyDir, ok := migrate.FindLegacyDir(a.fs)
	if !ok || !migrate.Required(a.fs, legacyDir, a.store) {
		return
	}

	log.Info().Str("dir", legacyDir).Msg("importing legacy configs")
	if _, err := migrate.Migrate(a.fs, legacyDir, a.store); err != nil {
		log.Error().Err(err).Msg("failed to import legacy configs")
	}
}

// loadConfigs returns handles for the global config and the config of
// appID. An empty appID only loads the global config. Legacy configs are
// imported first if nothing was saved yet. Corrupt files are never
// replaced: the user has to fix or delete them.
func (a *app) loadConfigs(appID string) (global, game *gameconfig.Handle, err error) {
	a.importLegacy()

	globalCfg, err := a.store.LoadOrCreateGlobal()
	if err != nil {
		return nil, nil, a.configError(gameconfig.GlobalKey, err)
	}
	global = gameconfig.NewHandle(&globalCfg)

	if appID == "" {
		return global, nil, nil
	}

	gameCfg, err := a.store.LoadOrCreateGame(appID, &globalCfg)
	if err != nil {
		return nil, nil, a.configError(appID, err)
	}
	return global, gameconfig.NewHandle(&gameCfg), nil
}

func (a *app) configError(key string, err error) error {
	if errors.Is(err, gameconfig.ErrCorrupt) {
		path, _ := a.store.Path(key)
		log.Error().Err(err).Str("path", path).Msg("config file is corrupt, fix or delete it")
		return fmt.Errorf("config file %s is corrupt: %w", path, err)
	}
	return err
}

func (a *app) lookupGame(appID string) steam.Game {
	return steam.LookupGame(steam.FindSteamDir(a.cfg.SteamInstallDir()), appID)
}

func (a *app) editorOptions() tui.Options {
	return tui.Options{
		Theme: a.cfg.EditorTheme(),
		Mouse: a.cfg.EditorMouse(),
	}
}

func (a *app) close() {
	telemetry.Close()
}
