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
	"errors"
	"fmt"

	"github.com/ZaparooProject/zaparoo-launch/pkg/gameconfig"
	"github.com/ZaparooProject/zaparoo-launch/pkg/helpers/syncutil"
	"github.com/ZaparooProject/zaparoo-launch/pkg/platforms/shared/steam"
)

// ErrNoGame is returned for game scope edits when only the global config is
// open.
var ErrNoGame = errors.New("no game config open")

// Scope selects which config an edit applies to.
type Scope int

const (
	ScopeGame Scope = iota
	ScopeGlobal
)

func (s Scope) String() string {
	if s == ScopeGlobal {
		return "Global"
	}
	return "Game"
}

// Session holds the configs being edited and every edit the editor can make
// to them. The tview layer only maps rows and buttons to Session calls.
type Session struct {
	store      *gameconfig.Store
	game       *gameconfig.Handle
	global     *gameconfig.Handle
	info       steam.Game
	rawCommand string
	mu         syncutil.Mutex
	finished   bool
	cancelled  bool
}

// NewSession creates an editing session. game may be nil to edit only the
// global config. rawCommand is used for the launch preview.
func NewSession(
	store *gameconfig.Store,
	game, global *gameconfig.Handle,
	info steam.Game,
	rawCommand string,
) *Session {
	return &Session{
		store:      store,
		game:       game,
		global:     global,
		info:       info,
		rawCommand: rawCommand,
	}
}

func (s *Session) Game() steam.Game {
	return s.info
}

// HasGame reports whether a game config is open.
func (s *Session) HasGame() bool {
	return s.game != nil
}

func (s *Session) handle(scope Scope) (*gameconfig.Handle, error) {
	if scope == ScopeGlobal {
		return s.global, nil
	}
	if s.game == nil {
		return nil, ErrNoGame
	}
	return s.game, nil
}

// Config returns a copy of the config in scope.
func (s *Session) Config(scope Scope) (gameconfig.Config, error) {
	h, err := s.handle(scope)
	if err != nil {
		return gameconfig.Config{}, err
	}
	return h.Snapshot(), nil
}

func (s *Session) update(scope Scope, fn func(c *gameconfig.Config) error) error {
	h, err := s.handle(scope)
	if err != nil {
		return err
	}
	return h.Update(fn) //nolint:wrapcheck // errors come from gameconfig edits
}

func (s *Session) SetTemplate(scope Scope, template string) error {
	return s.update(scope, func(c *gameconfig.Config) error {
		if c.LaunchTemplate != template {
			c.SetTemplate(template)
		}
		return nil
	})
}

// AddOption appends an empty option and returns its index.
func (s *Session) AddOption(scope Scope) (int, error) {
	var i int
	err := s.update(scope, func(c *gameconfig.Config) error {
		i = c.AddOption()
		return nil
	})
	return i, err
}

func (s *Session) RemoveOption(scope Scope, i int) error {
	return s.update(scope, func(c *gameconfig.Config) error {
		return c.RemoveOption(i)
	})
}

func (s *Session) SetOptionText(scope Scope, i int, token, replacement string) error {
	return s.update(scope, func(c *gameconfig.Config) error {
		return c.SetOptionText(i, token, replacement)
	})
}

func (s *Session) ToggleOption(scope Scope, i int) error {
	return s.update(scope, func(c *gameconfig.Config) error {
		if i < 0 || i >= len(c.Options) {
			return fmt.Errorf("option %d: %w", i, gameconfig.ErrIndexOutOfRange)
		}
		return c.SetOptionEnabled(i, !c.Options[i].Enabled)
	})
}

// AddCommand appends an empty hook command and returns its index.
func (s *Session) AddCommand(scope Scope, list gameconfig.CommandList) (int, error) {
	var i int
	err := s.update(scope, func(c *gameconfig.Config) error {
		i = c.AddCommand(list)
		return nil
	})
	return i, err
}

func (s *Session) RemoveCommand(scope Scope, list gameconfig.CommandList, i int) error {
	return s.update(scope, func(c *gameconfig.Config) error {
		return c.RemoveCommand(list, i)
	})
}

func (s *Session) SetCommandText(scope Scope, list gameconfig.CommandList, i int, command string) error {
	return s.update(scope, func(c *gameconfig.Config) error {
		return c.SetCommandText(list, i, command)
	})
}

func (s *Session) ToggleCommand(scope Scope, list gameconfig.CommandList, i int) error {
	return s.update(scope, func(c *gameconfig.Config) error {
		cmds := *c.Commands(list)
		if i < 0 || i >= len(cmds) {
			return fmt.Errorf("%s command %d: %w", list, i, gameconfig.ErrIndexOutOfRange)
		}
		return c.SetCommandEnabled(list, i, !cmds[i].Enabled)
	})
}

// MergeGlobal merges the global config into the game config.
func (s *Session) MergeGlobal() error {
	if s.game == nil {
		return ErrNoGame
	}
	s.game.MergeFrom(s.global)
	return nil
}

// Save writes the config in scope to the store. A *gameconfig.SaveError is
// returned as is for the editor to show.
func (s *Session) Save(scope Scope) error {
	h, err := s.handle(scope)
	if err != nil {
		return err
	}
	cfg := h.Snapshot()
	key := gameconfig.GlobalKey
	if scope == ScopeGame {
		key = cfg.AppID
	}
	return s.store.Save(key, &cfg) //nolint:wrapcheck // SaveError is the documented type
}

// Preview renders the game's launch command, or the global one when no game
// is open.
func (s *Session) Preview() string {
	scope := ScopeGame
	if s.game == nil {
		scope = ScopeGlobal
	}
	cfg, _ := s.Config(scope)
	return cfg.Render(s.rawCommand)
}

// Lint reports shell syntax problems in the config in scope.
func (s *Session) Lint(scope Scope) []gameconfig.Issue {
	cfg, err := s.Config(scope)
	if err != nil {
		return nil
	}
	return cfg.Lint()
}

// Launch ends the session and lets the launch go ahead.
func (s *Session) Launch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finished = true
	s.cancelled = false
}

// Cancel ends the session and cancels the launch.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finished = true
	s.cancelled = true
}

// Finished reports whether Launch or Cancel was called.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

// Cancelled reports whether the launch was cancelled. Closing the editor
// without confirming the launch counts as cancelling it.
func (s *Session) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.finished || s.cancelled
}
