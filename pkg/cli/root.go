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
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ZaparooProject/zaparoo-launch/pkg/config"
	"github.com/ZaparooProject/zaparoo-launch/pkg/gameconfig"
)

// NewRootCmd builds the command tree. Without a subcommand the arguments
// are the game's launch command.
func NewRootCmd(env *Env) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   config.AppName + " [flags] <launch command>",
		Short: "Steam launch wrapper with per-game launch templates and hooks",
		Long: "Zaparoo Launch wraps a Steam game's launch command. Set the game's launch\n" +
			"options to \"" + config.AppName + " %command%\" to edit the launch template,\n" +
			"placeholders and pre-launch and post-exit commands before the game starts.",
		Version:       config.AppVersion,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return fmt.Errorf("%w: no launch command given", ErrMalformedInput)
			}
			return runLaunch(cmd.Context(), env, flags, args)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetOut(env.Stdout)
	cmd.SetErr(env.Stderr)

	cmd.PersistentFlags().StringVar(&flags.configDir, "config-dir", "",
		"directory for configs, logs and history (default XDG directories)")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "also log to stderr")

	cmd.Flags().StringVar(&flags.appID, "appid", "", "Steam app id, instead of the AppId= argument")
	// Flags after the first argument belong to the game.
	cmd.Flags().SetInterspersed(false)

	cmd.AddCommand(
		newRenderCmd(env, flags),
		newEditCmd(env, flags),
		newHistoryCmd(env, flags),
		newMigrateCmd(env, flags),
		newVersionCmd(),
	)

	return cmd
}

// Execute runs the command line with args, not including the program name.
func Execute(ctx context.Context, env *Env, args []string) error {
	cmd := NewRootCmd(env)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// Main is the entry point shared by the platform binaries.
func Main() error {
	return Execute(context.Background(), DefaultEnv(), os.Args[1:])
}

// resolveAppID returns the app id from the flag, or parsed from the
// launch command's arguments.
func resolveAppID(flagValue string, args []string) (string, error) {
	if flagValue == "" {
		return ParseAppID(strings.Join(args, " "))
	}
	if !gameconfig.ValidAppID(flagValue) {
		return "", fmt.Errorf("%w: invalid app id %q", ErrMalformedInput, flagValue)
	}
	return flagValue, nil
}

func signalContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}

func commandArgs(args []string) (string, error) {
	raw := JoinCommand(args)
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("%w: empty launch command", ErrMalformedInput)
	}
	return raw, nil
}
