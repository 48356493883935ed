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

package tui

import (
	"testing"
	"time"

	"github.com/rivo/tview"

	"github.com/ZaparooProject/zaparoo-launch/pkg/helpers/syncutil"
)

const waitTimeout = 2 * time.Second

// TestAppRunner runs a tview app on a simulation screen in the background.
type TestAppRunner struct {
	app     *tview.Application
	screen  *TestScreen
	done    chan struct{}
	stopMu  syncutil.Mutex
	stopped bool
}

func NewTestAppRunner(t *testing.T, width, height int) *TestAppRunner {
	t.Helper()

	screen := NewTestScreen(t, width, height)
	app := tview.NewApplication()
	app.SetScreen(screen.SimulationScreen)

	r := &TestAppRunner{
		app:    app,
		screen: screen,
		done:   make(chan struct{}),
	}
	t.Cleanup(r.Stop)
	return r
}

// Start runs the app in a goroutine with the given root primitive.
func (r *TestAppRunner) Start(root tview.Primitive) {
	r.app.SetRoot(root, true)
	go func() {
		defer close(r.done)
		_ = r.app.Run()
		r.stopMu.Lock()
		r.stopped = true
		r.stopMu.Unlock()
	}()
	time.Sleep(20 * time.Millisecond)
}

// Stop stops the app if it is still running and waits for it to exit.
func (r *TestAppRunner) Stop() {
	if !r.IsStopped() {
		r.app.Stop()
	}
	select {
	case <-r.done:
	case <-time.After(waitTimeout):
	}
}

func (r *TestAppRunner) Screen() *TestScreen {
	return r.screen
}

func (r *TestAppRunner) App() *tview.Application {
	return r.app
}

func (r *TestAppRunner) IsStopped() bool {
	r.stopMu.Lock()
	defer r.stopMu.Unlock()
	return r.stopped
}

// WaitForCondition polls condition until it holds or the timeout passes.
func (*TestAppRunner) WaitForCondition(condition func() bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

// WaitForText redraws until text appears on screen.
func (r *TestAppRunner) WaitForText(text string, timeout time.Duration) bool {
	return r.WaitForCondition(func() bool {
		r.app.Draw()
		time.Sleep(5 * time.Millisecond)
		return r.screen.ContainsText(text)
	}, timeout)
}
