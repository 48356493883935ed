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
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZaparooProject/zaparoo-launch/pkg/config"
	"github.com/ZaparooProject/zaparoo-launch/pkg/config/migrate"
	"github.com/ZaparooProject/zaparoo-launch/pkg/database/history"
	"github.com/ZaparooProject/zaparoo-launch/pkg/gameconfig"
	"github.com/ZaparooProject/zaparoo-launch/pkg/platforms/shared/steam"
	"github.com/ZaparooProject/zaparoo-launch/pkg/ui/tui"
)

var ErrNoTerminal = errors.New("the editor needs a terminal")

func newRenderCmd(env *Env, flags *rootFlags) *cobra.Command {
	var useGlobal bool

	cmd := &cobra.Command{
		Use:   "render [flags] <launch command>",
		Short: "Print the command a launch would run, without running it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := commandArgs(args)
			if err != nil {
				return err
			}

			appID := ""
			if !useGlobal {
				appID, err = resolveAppID(flags.appID, args)
				if err != nil {
					return err
				}
			}

			a, err := setup(env, flags)
			if err != nil {
				return err
			}
			defer a.close()

			global, game, err := a.loadConfigs(appID)
			if err != nil {
				return err
			}
			subject := global
			if game != nil {
				subject = game
			}

			cfg := subject.Snapshot()
			for _, issue := range cfg.Lint() {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", issue)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cfg.Render(raw))
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.appID, "appid", "", "Steam app id, instead of the AppId= argument")
	cmd.Flags().BoolVar(&useGlobal, "global", false, "render with the global config")
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func newEditCmd(env *Env, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [appid]",
		Short: "Edit a game's config, or the global config, without launching",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			appID := ""
			if len(args) == 1 {
				appID = args[0]
				if !gameconfig.ValidAppID(appID) {
					return fmt.Errorf("%w: invalid app id %q", ErrMalformedInput, appID)
				}
			}
			if env.Interactive == nil || !env.Interactive() {
				return ErrNoTerminal
			}

			a, err := setup(env, flags)
			if err != nil {
				return err
			}
			defer a.close()

			global, game, err := a.loadConfigs(appID)
			if err != nil {
				return err
			}

			info := steam.Game{}
			if appID != "" {
				info = a.lookupGame(appID)
			}

			s := tui.NewSession(a.store, game, global, info, gameconfig.CommandPlaceholder)
			_, err = env.RunEditor(s, a.editorOptions())
			if err != nil {
				return fmt.Errorf("editor failed: %w", err)
			}
			return nil
		},
	}
}

func newHistoryCmd(env *Env, flags *rootFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [appid]",
		Short: "List recent launches",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID := ""
			if len(args) == 1 {
				appID = args[0]
			}

			a, err := setup(env, flags)
			if err != nil {
				return err
			}
			defer a.close()

			db, err := history.Open(a.dirs.HistoryFile())
			if err != nil {
				return fmt.Errorf("failed to open launch history: %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			entries, err := db.Recent(appID, limit)
			if err != nil {
				return err //nolint:wrapcheck // already wrapped by history
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No launches recorded.")
				return nil
			}

			return printHistory(cmd, entries)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of launches to show, 0 for all")

	return cmd
}

func printHistory(cmd *cobra.Command, entries []history.Entry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "STARTED\tAPPID\tGAME\tDURATION\tEXIT\tRESULT")
	for i := range entries {
		e := &entries[i]
		result := "ok"
		switch {
		case e.Error != "":
			result = "failed to start"
		case e.HookFailures > 0:
			result = fmt.Sprintf("%d hook failures", e.HookFailures)
		}
		exit := "-"
		if e.ExitCode >= 0 {
			exit = strconv.Itoa(e.ExitCode)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.StartTime.Local().Format(time.DateTime),
			e.AppID,
			e.GameName,
			e.Duration().Round(time.Second),
			exit,
			result,
		)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

func newMigrateCmd(env *Env, flags *rootFlags) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Import configs from the YAML based " + config.LegacyDirName + " tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(env, flags)
			if err != nil {
				return err
			}
			defer a.close()

			legacyDir := from
			if legacyDir == "" {
				var ok bool
				legacyDir, ok = migrate.FindLegacyDir(a.fs)
				if !ok {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No legacy configs found.")
					return nil
				}
			}

			report, err := migrate.Migrate(a.fs, legacyDir, a.store)
			if err != nil {
				return fmt.Errorf("failed to import from %s: %w", legacyDir, err)
			}

			out := cmd.OutOrStdout()
			if report.Global {
				_, _ = fmt.Fprintln(out, "Imported global config.")
			}
			for _, id := range report.Games {
				_, _ = fmt.Fprintf(out, "Imported game config %s.\n", id)
			}
			for _, path := range report.Skipped {
				_, _ = fmt.Fprintf(out, "Skipped %s.\n", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "legacy config directory (default: auto-detect)")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", config.AppName, config.AppVersion)
		},
	}
}
