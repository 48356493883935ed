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

import "slices"

// MergeFrom adopts values from the global config for every field of c the
// user has not modified.
//
// The launch template is replaced unless TemplateModified is set. For each
// global option, the first unmodified option in c with the same token gets
// the global token and replacement (its own flags are kept); if there is
// none, a copy of the global option is appended. Entries appended earlier in
// the same merge take part in the search. Hook command lists are never
// merged.
func (c *Config) MergeFrom(global *Config) {
	if !c.TemplateModified {
		c.LaunchTemplate = global.LaunchTemplate
	}

	for _, g := range global.Options {
		i := slices.IndexFunc(c.Options, func(o Option) bool {
			return !o.Modified && o.Token == g.Token
		})
		if i < 0 {
			c.Options = append(c.Options, g)
			continue
		}
		c.Options[i].Token = g.Token
		c.Options[i].Replacement = g.Replacement
	}
}
