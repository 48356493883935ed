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
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ZaparooProject/zaparoo-launch/pkg/database/history"
	"github.com/ZaparooProject/zaparoo-launch/pkg/launch"
	"github.com/ZaparooProject/zaparoo-launch/pkg/notify"
	"github.com/ZaparooProject/zaparoo-launch/pkg/ui/tui"
)

func runLaunch(ctx context.Context, env *Env, flags *rootFlags, args []string) error {
	raw, err := commandArgs(args)
	if err != nil {
		return err
	}
	appID, err := resolveAppID(flags.appID, args)
	if err != nil {
		return err
	}

	a, err := setup(env, flags)
	if err != nil {
		return err
	}
	defer a.close()

	log.Info().Str("appid", appID).Msgf("launch command: %s", raw)

	global, game, err := a.loadConfigs(appID)
	if err != nil {
		return err
	}
	info := a.lookupGame(appID)

	cancelled := false
	if a.cfg.EditorShow() && env.Interactive != nil && env.Interactive() {
		s := tui.NewSession(a.store, game, global, info, raw)
		cancelled, err = env.RunEditor(s, a.editorOptions())
		if err != nil {
			log.Error().Err(err).Msg("editor failed, launching with current config")
			cancelled = false
		}
	}

	notifier := env.Notifier
	if notifier == nil {
		var closeNotifier func()
		notifier, closeNotifier = notify.New(a.cfg.Notifications())
		defer closeNotifier()
	}

	opts := []launch.Option{
		launch.WithNotifier(notifier),
		launch.WithOutputDir(a.dirs.GameLogDir()),
	}
	if db := a.openHistory(); db != nil {
		defer func() {
			if err := db.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close history database")
			}
		}()
		opts = append(opts, launch.WithHistory(db))
	}

	ctx, stop := signalContext(ctx)
	defer stop()

	req := &launch.Request{
		RawCommand: raw,
		GameName:   info.DisplayName(),
		Config:     game.Snapshot(),
		Cancelled:  cancelled,
		OutputLog:  a.cfg.LogOutput(),
	}
	result := launch.NewOrchestrator(env.Exec, opts...).Run(ctx, req)

	if result.MainErr != nil {
		return &ExitError{
			Code: ExitFailure,
			Err:  fmt.Errorf("failed to launch %s: %w", req.GameName, result.MainErr),
		}
	}
	return nil
}

// openHistory opens the launch history and drops entries past the retention
// period. History is optional, so failures only disable it.
func (a *app) openHistory() *history.DB {
	if !a.cfg.HistoryEnabled() {
		return nil
	}

	db, err := history.Open(a.dirs.HistoryFile())
	if err != nil {
		log.Warn().Err(err).Msg("launch history unavailable")
		return nil
	}

	if retention := a.cfg.HistoryRetention(); retention > 0 {
		cutoff := time.Now().Add(-retention)
		if n, err := db.Cleanup(cutoff); err != nil {
			log.Warn().Err(err).Msg("failed to clean up launch history")
		} else if n > 0 {
			log.Debug().Int("removed", n).Msg("cleaned up launch history")
		}
	}

	return db
}
