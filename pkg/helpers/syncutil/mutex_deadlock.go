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

//go:build deadlock

// Package syncutil wraps the sync mutexes so deadlock detection can be
// switched on at build time with -tags=deadlock.
package syncutil

import (
	"time"

	deadlock "github.com/sasha-s/go-deadlock"
)

// DeadlockEnabled reports whether this build detects deadlocks.
const DeadlockEnabled = true

func init() {
	// Config locks are only held for edits and merges, never across a
	// process launch, so anything longer than this is a bug.
	deadlock.Opts.DeadlockTimeout = 10 * time.Second
}

// Mutex guards state that has no read-mostly access pattern.
type Mutex struct {
	deadlock.Mutex
}

// RWMutex guards configs shared between the editor and the launcher.
type RWMutex struct {
	deadlock.RWMutex
}
