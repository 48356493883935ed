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
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// Tokens are lowercase words between percent signs. Replacements and filler
// never contain '%' or lowercase letters, so no substitution can create a
// new token occurrence.
func tokenGen() *rapid.Generator[string] {
	return rapid.StringMatching(`%[a-z]{1,6}%`)
}

func optionsGen() *rapid.Generator[[]Option] {
	return rapid.SliceOfN(rapid.Custom(func(t *rapid.T) Option {
		return Option{
			Token:       tokenGen().Draw(t, "token"),
			Replacement: rapid.StringMatching(`[A-Z0-9 ]{0,8}`).Draw(t, "replacement"),
			Enabled:     rapid.Bool().Draw(t, "enabled"),
			Modified:    rapid.Bool().Draw(t, "modified"),
		}
	}), 0, 6)
}

// templateFrom builds a template out of the option tokens and filler text.
func templateFrom(t *rapid.T, opts []Option, label string) string {
	parts := rapid.SliceOfN(rapid.Custom(func(t *rapid.T) string {
		if len(opts) > 0 && rapid.Bool().Draw(t, "useToken") {
			return opts[rapid.IntRange(0, len(opts)-1).Draw(t, "tokenIndex")].Token
		}
		return rapid.StringMatching(`[A-Z ]{0,4}`).Draw(t, "filler")
	}), 0, 8).Draw(t, label)
	return strings.Join(parts, "")
}

// TestPropertyRenderRemovesAllMarkers verifies no option token and no
// command marker survive rendering.
func TestPropertyRenderRemovesAllMarkers(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		opts := optionsGen().Draw(t, "options")
		cfg := Config{
			LaunchTemplate: templateFrom(t, opts, "before") + CommandPlaceholder + templateFrom(t, opts, "after"),
			Options:        opts,
		}
		raw := rapid.StringMatching(`[A-Z0-9 ./=-]{0,20}`).Draw(t, "raw")

		out := cfg.Render(raw)

		if strings.Contains(out, CommandPlaceholder) {
			t.Fatalf("command marker left in %q", out)
		}
		for _, opt := range opts {
			if strings.Contains(out, opt.Token) {
				t.Fatalf("token %q left in %q", opt.Token, out)
			}
		}
	})
}

// TestPropertyRenderSplicesRawCommand verifies the raw command lands where
// the marker was, between the rendered text around it.
func TestPropertyRenderSplicesRawCommand(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		opts := optionsGen().Draw(t, "options")
		before := templateFrom(t, opts, "before")
		after := templateFrom(t, opts, "after")
		raw := rapid.StringMatching(`[A-Z0-9 ./=-]{0,20}`).Draw(t, "raw")

		full := Config{LaunchTemplate: before + CommandPlaceholder + after, Options: opts}
		head := Config{LaunchTemplate: before, Options: opts}
		tail := Config{LaunchTemplate: after, Options: opts}

		want := head.Render("") + raw + tail.Render("")
		if got := full.Render(raw); got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})
}

// TestPropertyRenderDeterministic verifies rendering is a pure function.
func TestPropertyRenderDeterministic(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		opts := optionsGen().Draw(t, "options")
		cfg := Config{LaunchTemplate: templateFrom(t, opts, "template"), Options: opts}
		raw := rapid.String().Draw(t, "raw")

		if a, b := cfg.Render(raw), cfg.Render(raw); a != b {
			t.Fatalf("non-deterministic: %q vs %q", a, b)
		}
	})
}
