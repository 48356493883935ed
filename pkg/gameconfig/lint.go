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
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// lintCommand stands in for the raw Steam command when checking templates.
const lintCommand = "true"

// Issue is a shell syntax problem found in part of a config.
type Issue struct {
	Err   error
	Where string
}

func (i Issue) String() string {
	return i.Where + ": " + i.Err.Error()
}

// CheckShell parses script as a bash command line without running it.
func CheckShell(script string) error {
	parser := syntax.NewParser(
		syntax.Variant(syntax.LangBash),
		syntax.KeepComments(false),
	)
	if _, err := parser.Parse(strings.NewReader(script), ""); err != nil {
		return fmt.Errorf("invalid shell syntax: %w", err)
	}
	return nil
}

// Lint checks the rendered launch template and every enabled hook command
// for shell syntax errors. Problems are reported, never fixed.
func (c *Config) Lint() []Issue {
	var issues []Issue

	if err := CheckShell(c.Render(lintCommand)); err != nil {
		issues = append(issues, Issue{Where: "launch command", Err: err})
	}

	for _, list := range []CommandList{PreLaunch, PostExit} {
		for i, cmd := range *c.Commands(list) {
			if !cmd.Enabled {
				continue
			}
			if err := CheckShell(cmd.Command); err != nil {
				issues = append(issues, Issue{
					Where: fmt.Sprintf("%s command %d", list, i+1),
					Err:   err,
				})
			}
		}
	}

	return issues
}
