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

// Package gameconfig holds the launch configuration model shared by the
// global and per-game scopes: the launch command template, its placeholder
// options and the pre-launch/post-exit hook commands.
package gameconfig

import (
	"errors"
	"fmt"
	"slices"
)

const (
	SchemaVersion = 1
	// CommandPlaceholder marks where the raw launch command from Steam is
	// spliced into the launch template.
	CommandPlaceholder = "%command%"
)

var ErrIndexOutOfRange = errors.New("index out of range")

// Option is a single placeholder substitution rule.
type Option struct {
	Token       string `toml:"placeholder"`
	Replacement string `toml:"replace_with"`
	Enabled     bool   `toml:"enabled"`
	// Modified is set once the user edits the option and stops a merge from
	// the global config overwriting it.
	Modified bool `toml:"modified"`
}

// Command is a hook shell command run before launch or after exit.
type Command struct {
	Command  string `toml:"command"`
	Enabled  bool   `toml:"enabled"`
	Modified bool   `toml:"modified"`
}

// CommandList selects one of the two hook lists of a Config.
type CommandList int

const (
	PreLaunch CommandList = iota
	PostExit
)

func (l CommandList) String() string {
	switch l {
	case PreLaunch:
		return "pre-launch"
	case PostExit:
		return "post-exit"
	default:
		return fmt.Sprintf("CommandList(%d)", int(l))
	}
}

// Config is a launch configuration. The global config has an empty AppID.
type Config struct {
	AppID            string    `toml:"appid,omitempty"`
	LaunchTemplate   string    `toml:"launch_command"`
	Options          []Option  `toml:"placeholders,omitempty"`
	PreLaunch        []Command `toml:"pre_launch,omitempty"`
	PostExit         []Command `toml:"post_exit,omitempty"`
	ConfigSchema     int       `toml:"config_schema"`
	TemplateModified bool      `toml:"launch_command_modified"`
}

// Default returns the built-in global config used when none exists on disk.
func Default() Config {
	return Config{
		ConfigSchema:   SchemaVersion,
		LaunchTemplate: "%mangohud%%obs-vkcapture%%obs-glcapture% " + CommandPlaceholder,
		Options: []Option{
			{Token: "%mangohud%", Replacement: "mangohud "},
			{Token: "%obs-vkcapture%", Replacement: "obs-vkcapture "},
			{Token: "%obs-glcapture%", Replacement: "obs-glcapture "},
		},
	}
}

// IsGlobal reports whether c is the global config.
func (c *Config) IsGlobal() bool {
	return c.AppID == ""
}

// Clone returns a deep copy of c.
func (c *Config) Clone() Config {
	clone := *c
	clone.Options = slices.Clone(c.Options)
	clone.PreLaunch = slices.Clone(c.PreLaunch)
	clone.PostExit = slices.Clone(c.PostExit)
	return clone
}

// Commands returns a pointer to the selected hook list.
func (c *Config) Commands(list CommandList) *[]Command {
	if list == PostExit {
		return &c.PostExit
	}
	return &c.PreLaunch
}

// SetTemplate replaces the launch template and marks it as user modified.
func (c *Config) SetTemplate(template string) {
	c.LaunchTemplate = template
	c.TemplateModified = true
}

// AddOption appends an empty, disabled option and returns its index.
func (c *Config) AddOption() int {
	c.Options = append(c.Options, Option{})
	return len(c.Options) - 1
}

func (c *Config) RemoveOption(i int) error {
	if i < 0 || i >= len(c.Options) {
		return fmt.Errorf("remove option %d: %w", i, ErrIndexOutOfRange)
	}
	c.Options = slices.Delete(c.Options, i, i+1)
	return nil
}

// SetOptionText edits the token and replacement of an option. Text edits
// always mark the option as user modified.
func (c *Config) SetOptionText(i int, token, replacement string) error {
	if i < 0 || i >= len(c.Options) {
		return fmt.Errorf("edit option %d: %w", i, ErrIndexOutOfRange)
	}
	opt := &c.Options[i]
	if opt.Token == token && opt.Replacement == replacement {
		return nil
	}
	opt.Token = token
	opt.Replacement = replacement
	opt.Modified = true
	return nil
}

func (c *Config) SetOptionEnabled(i int, enabled bool) error {
	if i < 0 || i >= len(c.Options) {
		return fmt.Errorf("toggle option %d: %w", i, ErrIndexOutOfRange)
	}
	c.Options[i].Enabled = enabled
	return nil
}

// AddCommand appends an empty, disabled hook command and returns its index.
func (c *Config) AddCommand(list CommandList) int {
	cmds := c.Commands(list)
	*cmds = append(*cmds, Command{})
	return len(*cmds) - 1
}

func (c *Config) RemoveCommand(list CommandList, i int) error {
	cmds := c.Commands(list)
	if i < 0 || i >= len(*cmds) {
		return fmt.Errorf("remove %s command %d: %w", list, i, ErrIndexOutOfRange)
	}
	*cmds = slices.Delete(*cmds, i, i+1)
	return nil
}

func (c *Config) SetCommandText(list CommandList, i int, command string) error {
	cmds := *c.Commands(list)
	if i < 0 || i >= len(cmds) {
		return fmt.Errorf("edit %s command %d: %w", list, i, ErrIndexOutOfRange)
	}
	if cmds[i].Command == command {
		return nil
	}
	cmds[i].Command = command
	cmds[i].Modified = true
	return nil
}

func (c *Config) SetCommandEnabled(list CommandList, i int, enabled bool) error {
	cmds := *c.Commands(list)
	if i < 0 || i >= len(cmds) {
		return fmt.Errorf("toggle %s command %d: %w", list, i, ErrIndexOutOfRange)
	}
	cmds[i].Enabled = enabled
	return nil
}

// EnabledCommands returns the enabled entries of a hook list in order.
func (c *Config) EnabledCommands(list CommandList) []Command {
	var enabled []Command
	for _, cmd := range *c.Commands(list) {
		if cmd.Enabled {
			enabled = append(enabled, cmd)
		}
	}
	return enabled
}
