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

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZaparooProject/zaparoo-launch/pkg/gameconfig"
	"github.com/ZaparooProject/zaparoo-launch/pkg/platforms/shared/steam"
)

const testConfigDir = "/config"

func newTestSession(t *testing.T, withGame bool) (*Session, *gameconfig.Store) {
	t.Helper()

	store := gameconfig.NewStoreWithFs(afero.NewMemMapFs(), testConfigDir)
	global := gameconfig.Default()
	var game *gameconfig.Handle
	if withGame {
		cfg := global.Clone()
		cfg.AppID = "570"
		game = gameconfig.NewHandle(&cfg)
	}
	info := steam.Game{AppID: "570", Name: "Dota 2"}
	return NewSession(store, game, gameconfig.NewHandle(&global), info, "/games/dota.sh"), store
}

func TestSession_OptionEdits(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t, true)

	require.NoError(t, s.ToggleOption(ScopeGame, 0))
	require.NoError(t, s.SetOptionText(ScopeGame, 1, "%vk%", "vk "))
	i, err := s.AddOption(ScopeGame)
	require.NoError(t, err)
	assert.Equal(t, 3, i)
	require.NoError(t, s.RemoveOption(ScopeGame, 2))

	game, err := s.Config(ScopeGame)
	require.NoError(t, err)
	require.Len(t, game.Options, 3)
	assert.True(t, game.Options[0].Enabled)
	assert.False(t, game.Options[0].Modified)
	assert.Equal(t, "%vk%", game.Options[1].Token)
	assert.True(t, game.Options[1].Modified)

	global, err := s.Config(ScopeGlobal)
	require.NoError(t, err)
	assert.Equal(t, gameconfig.Default(), global, "game edits must not touch the global config")
}

func TestSession_CommandEdits(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t, true)

	i, err := s.AddCommand(ScopeGlobal, gameconfig.PostExit)
	require.NoError(t, err)
	require.NoError(t, s.SetCommandText(ScopeGlobal, gameconfig.PostExit, i, "echo bye"))
	require.NoError(t, s.ToggleCommand(ScopeGlobal, gameconfig.PostExit, i))

	global, err := s.Config(ScopeGlobal)
	require.NoError(t, err)
	assert.Equal(t, []gameconfig.Command{{Command: "echo bye", Enabled: true, Modified: true}}, global.PostExit)

	require.NoError(t, s.RemoveCommand(ScopeGlobal, gameconfig.PostExit, 0))
	require.ErrorIs(t, s.ToggleCommand(ScopeGlobal, gameconfig.PostExit, 0), gameconfig.ErrIndexOutOfRange)
	require.ErrorIs(t, s.ToggleOption(ScopeGlobal, 9), gameconfig.ErrIndexOutOfRange)
}

func TestSession_SetTemplate(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t, true)
	before, err := s.Config(ScopeGame)
	require.NoError(t, err)

	require.NoError(t, s.SetTemplate(ScopeGame, before.LaunchTemplate))
	cfg, err := s.Config(ScopeGame)
	require.NoError(t, err)
	assert.False(t, cfg.TemplateModified, "unchanged text is not an edit")

	require.NoError(t, s.SetTemplate(ScopeGame, "gamemoderun %command%"))
	cfg, err = s.Config(ScopeGame)
	require.NoError(t, err)
	assert.True(t, cfg.TemplateModified)
	assert.Equal(t, "gamemoderun /games/dota.sh", s.Preview())
}

func TestSession_MergeGlobal(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t, true)
	require.NoError(t, s.SetOptionText(ScopeGame, 0, "%mangohud%", "LOCAL "))
	require.NoError(t, s.SetOptionText(ScopeGlobal, 0, "%mangohud%", "GLOBAL "))
	require.NoError(t, s.SetTemplate(ScopeGlobal, "new %command%"))

	require.NoError(t, s.MergeGlobal())

	game, err := s.Config(ScopeGame)
	require.NoError(t, err)
	assert.Equal(t, "new %command%", game.LaunchTemplate)
	assert.Equal(t, "LOCAL ", game.Options[0].Replacement)
	assert.Len(t, game.Options, 4, "modified global option is appended")
}

func TestSession_Save(t *testing.T) {
	t.Parallel()

	s, store := newTestSession(t, true)
	require.NoError(t, s.ToggleOption(ScopeGame, 0))

	require.NoError(t, s.Save(ScopeGame))
	require.NoError(t, s.Save(ScopeGlobal))

	saved, err := store.Load("570")
	require.NoError(t, err)
	assert.True(t, saved.Options[0].Enabled)
	assert.True(t, store.Exists(gameconfig.GlobalKey))
}

func TestSession_SaveErrorIsReturned(t *testing.T) {
	t.Parallel()

	store := gameconfig.NewStoreWithFs(afero.NewReadOnlyFs(afero.NewMemMapFs()), testConfigDir)
	global := gameconfig.Default()
	s := NewSession(store, nil, gameconfig.NewHandle(&global), steam.Game{}, "")

	err := s.Save(ScopeGlobal)

	var saveErr *gameconfig.SaveError
	require.ErrorAs(t, err, &saveErr)
}

func TestSession_GlobalOnly(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t, false)

	assert.False(t, s.HasGame())
	assert.Equal(t, "Dota 2", s.Game().DisplayName())
	_, err := s.Config(ScopeGame)
	require.ErrorIs(t, err, ErrNoGame)
	require.ErrorIs(t, s.ToggleOption(ScopeGame, 0), ErrNoGame)
	require.ErrorIs(t, s.MergeGlobal(), ErrNoGame)
	require.ErrorIs(t, s.Save(ScopeGame), ErrNoGame)
	assert.Equal(t, " /games/dota.sh", s.Preview())
}

func TestSession_Lint(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t, true)
	assert.Empty(t, s.Lint(ScopeGame))

	require.NoError(t, s.SetTemplate(ScopeGame, `echo "unterminated %command%`))
	issues := s.Lint(ScopeGame)
	require.Len(t, issues, 1)
	assert.Equal(t, "launch command", issues[0].Where)
}

func TestSession_LaunchAndCancel(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t, true)
	assert.False(t, s.Finished())
	assert.True(t, s.Cancelled(), "closing without confirming cancels")

	s.Cancel()
	assert.True(t, s.Finished())
	assert.True(t, s.Cancelled())

	s.Launch()
	assert.False(t, s.Cancelled())
}
