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
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/ZaparooProject/zaparoo-launch/pkg/helpers/command"
	"github.com/ZaparooProject/zaparoo-launch/pkg/notify"
	"github.com/ZaparooProject/zaparoo-launch/pkg/ui/tui"
)

// Env is everything the commands need from the outside world.
type Env struct {
	Exec   command.Executor
	Stdout io.Writer
	Stderr io.Writer
	// Interactive reports whether the editor can be shown.
	Interactive func() bool
	RunEditor   func(s *tui.Session, opts tui.Options) (bool, error)
	// Notifier overrides the notifier picked from the settings.
	Notifier notify.Notifier
	// Logging sets up the global logger. Off in tests.
	Logging bool
}

// DefaultEnv runs real processes and only shows the editor when stdin and
// stdout are both terminals.
func DefaultEnv() *Env {
	return &Env{
		Exec:   &command.RealExecutor{},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Interactive: func() bool {
			return isTerminal(os.Stdin) && isTerminal(os.Stdout)
		},
		RunEditor: tui.Run,
		Logging:   true,
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
