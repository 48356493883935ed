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

package launch

import "fmt"

// State is a step of a launch.
type State int

const (
	Idle State = iota
	RunningPreLaunch
	RunningMain
	RunningPostExit
	Done
	// Cancelled is only reachable before the main command starts.
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case RunningPreLaunch:
		return "pre-launch"
	case RunningMain:
		return "main"
	case RunningPostExit:
		return "post-exit"
	case Done:
		return "done"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether no further transitions can happen.
func (s State) Terminal() bool {
	return s == Done || s == Cancelled
}

// SpawnError is returned when a command could not be started at all. A
// command that starts and exits non-zero is not a spawn error.
type SpawnError struct {
	Err     error
	Command string
	Stage   State
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start %s command %q: %v", e.Stage, e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}
