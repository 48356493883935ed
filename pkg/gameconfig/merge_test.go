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

package gameconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestMergeFrom_Template(t *testing.T) {
	t.Parallel()

	t.Run("unmodified_template_is_adopted", func(t *testing.T) {
		t.Parallel()

		game := Config{AppID: "10", LaunchTemplate: "old %command%"}
		global := Config{LaunchTemplate: "new %command%"}

		game.MergeFrom(&global)

		assert.Equal(t, "new %command%", game.LaunchTemplate)
		assert.False(t, game.TemplateModified)
	})

	t.Run("modified_template_is_kept", func(t *testing.T) {
		t.Parallel()

		game := Config{AppID: "10", LaunchTemplate: "mine %command%", TemplateModified: true}
		global := Config{LaunchTemplate: "new %command%"}

		game.MergeFrom(&global)

		assert.Equal(t, "mine %command%", game.LaunchTemplate)
		assert.True(t, game.TemplateModified)
	})
}

func TestMergeFrom_Options(t *testing.T) {
	t.Parallel()

	t.Run("user_modified_option_is_not_overwritten", func(t *testing.T) {
		t.Parallel()

		game := Config{Options: []Option{{Token: "%x%", Replacement: "LOCAL", Modified: true}}}
		global := Config{Options: []Option{{Token: "%x%", Replacement: "GLOBAL"}}}

		game.MergeFrom(&global)

		require.NotEmpty(t, game.Options)
		assert.Equal(t, "LOCAL", game.Options[0].Replacement)
		assert.True(t, game.Options[0].Modified)
	})

	t.Run("unmodified_option_adopts_global_value", func(t *testing.T) {
		t.Parallel()

		game := Config{Options: []Option{{Token: "%x%", Replacement: "OLD", Enabled: true}}}
		global := Config{Options: []Option{{Token: "%x%", Replacement: "NEW", Enabled: false}}}

		game.MergeFrom(&global)

		require.Len(t, game.Options, 1)
		assert.Equal(t, "NEW", game.Options[0].Replacement)
		assert.True(t, game.Options[0].Enabled, "enabled flag belongs to the game")
		assert.False(t, game.Options[0].Modified)
	})

	t.Run("missing_option_is_appended", func(t *testing.T) {
		t.Parallel()

		game := Config{Options: []Option{{Token: "%a%", Replacement: "A"}}}
		globalOpt := Option{Token: "%b%", Replacement: "B", Enabled: true, Modified: true}
		global := Config{Options: []Option{globalOpt}}

		game.MergeFrom(&global)

		require.Len(t, game.Options, 2)
		assert.Equal(t, globalOpt, game.Options[1])
	})

	t.Run("option_appended_when_all_matches_modified", func(t *testing.T) {
		t.Parallel()

		game := Config{Options: []Option{
			{Token: "%x%", Replacement: "L1", Modified: true},
			{Token: "%x%", Replacement: "L2", Modified: true},
		}}
		global := Config{Options: []Option{{Token: "%x%", Replacement: "G"}}}

		game.MergeFrom(&global)

		require.Len(t, game.Options, 3)
		assert.Equal(t, "L1", game.Options[0].Replacement)
		assert.Equal(t, "L2", game.Options[1].Replacement)
		assert.Equal(t, "G", game.Options[2].Replacement)
	})

	t.Run("only_first_unmodified_match_is_updated", func(t *testing.T) {
		t.Parallel()

		game := Config{Options: []Option{
			{Token: "%x%", Replacement: "L0", Modified: true},
			{Token: "%x%", Replacement: "L1"},
			{Token: "%x%", Replacement: "L2"},
		}}
		global := Config{Options: []Option{{Token: "%x%", Replacement: "G"}}}

		game.MergeFrom(&global)

		require.Len(t, game.Options, 3)
		assert.Equal(t, "L0", game.Options[0].Replacement)
		assert.Equal(t, "G", game.Options[1].Replacement)
		assert.Equal(t, "L2", game.Options[2].Replacement)
	})

	t.Run("appended_entries_take_part_in_search", func(t *testing.T) {
		t.Parallel()

		game := Config{}
		global := Config{Options: []Option{
			{Token: "%x%", Replacement: "G1", Enabled: true},
			{Token: "%x%", Replacement: "G2"},
		}}

		game.MergeFrom(&global)

		require.Len(t, game.Options, 1)
		assert.Equal(t, "G2", game.Options[0].Replacement)
		assert.True(t, game.Options[0].Enabled)
	})

	t.Run("appended_options_keep_global_order", func(t *testing.T) {
		t.Parallel()

		game := Config{Options: []Option{{Token: "%local%", Replacement: "L", Modified: true}}}
		global := Config{Options: []Option{
			{Token: "%a%", Replacement: "A"},
			{Token: "%b%", Replacement: "B"},
		}}

		game.MergeFrom(&global)

		require.Len(t, game.Options, 3)
		assert.Equal(t, "%local%", game.Options[0].Token)
		assert.Equal(t, "%a%", game.Options[1].Token)
		assert.Equal(t, "%b%", game.Options[2].Token)
	})

	t.Run("global_is_not_modified", func(t *testing.T) {
		t.Parallel()

		game := Config{Options: []Option{{Token: "%x%", Replacement: "OLD"}}}
		global := Default()
		before := global.Clone()

		game.MergeFrom(&global)
		game.Options[0].Replacement = "changed"

		assert.Equal(t, before, global)
	})
}

func TestMergeFrom_CommandsUntouched(t *testing.T) {
	t.Parallel()

	game := Config{PreLaunch: []Command{{Command: "echo game", Enabled: true}}}
	global := Config{
		PreLaunch: []Command{{Command: "echo global", Enabled: true}},
		PostExit:  []Command{{Command: "echo bye", Enabled: true}},
	}

	game.MergeFrom(&global)

	assert.Equal(t, []Command{{Command: "echo game", Enabled: true}}, game.PreLaunch)
	assert.Empty(t, game.PostExit)
}

// TestPropertyMergeIdempotent verifies a second merge with the same global
// config changes nothing. Global options are unmodified here: a modified
// global option is appended as a modified copy, which no later merge can
// match, so every merge appends it again.
func TestPropertyMergeIdempotent(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		game := Config{
			LaunchTemplate:   rapid.StringMatching(`[a-z %]{0,12}`).Draw(t, "gameTemplate"),
			TemplateModified: rapid.Bool().Draw(t, "templateModified"),
			Options:          optionsGen().Draw(t, "gameOptions"),
		}
		global := Config{
			LaunchTemplate: rapid.StringMatching(`[a-z %]{0,12}`).Draw(t, "globalTemplate"),
			Options:        optionsGen().Draw(t, "globalOptions"),
		}
		for i := range global.Options {
			global.Options[i].Modified = false
		}

		game.MergeFrom(&global)
		once := game.Clone()
		game.MergeFrom(&global)

		if len(once.Options) != len(game.Options) {
			t.Fatalf("option count changed: %d -> %d", len(once.Options), len(game.Options))
		}
		for i := range once.Options {
			if once.Options[i] != game.Options[i] {
				t.Fatalf("option %d changed: %+v -> %+v", i, once.Options[i], game.Options[i])
			}
		}
		if once.LaunchTemplate != game.LaunchTemplate {
			t.Fatalf("template changed: %q -> %q", once.LaunchTemplate, game.LaunchTemplate)
		}
	})
}

// TestPropertyMergeKeepsModifiedOptions verifies user modified options
// survive a merge untouched and in place.
func TestPropertyMergeKeepsModifiedOptions(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		game := Config{Options: optionsGen().Draw(t, "gameOptions")}
		global := Config{Options: optionsGen().Draw(t, "globalOptions")}
		before := game.Clone()

		game.MergeFrom(&global)

		if len(game.Options) < len(before.Options) {
			t.Fatalf("merge removed options")
		}
		for i, opt := range before.Options {
			if opt.Modified && game.Options[i] != opt {
				t.Fatalf("modified option %d changed: %+v -> %+v", i, opt, game.Options[i])
			}
		}
	})
}
