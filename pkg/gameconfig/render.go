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

import "strings"

// Render builds the final shell command line from the launch template.
//
// Options are applied in list order, one forward pass each: an enabled
// option replaces its token with the replacement text, a disabled option
// removes the token. Replacement text is not re-scanned by earlier options.
// Finally every %command% marker is replaced with raw, verbatim and
// unquoted. An option with an empty token does nothing.
func (c *Config) Render(raw string) string {
	out := c.LaunchTemplate
	for _, opt := range c.Options {
		if opt.Token == "" {
			continue
		}
		replacement := ""
		if opt.Enabled {
			replacement = opt.Replacement
		}
		out = strings.ReplaceAll(out, opt.Token, replacement)
	}
	return strings.ReplaceAll(out, CommandPlaceholder, raw)
}
