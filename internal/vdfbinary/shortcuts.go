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

package vdfbinary

import (
	"errors"
	"io"
	"strconv"
)

// Shortcut is a non-Steam game added to the Steam library.
type Shortcut struct {
	AppName       string
	Exe           string
	StartDir      string
	LaunchOptions string
	AppID         uint32
	IsHidden      bool
}

// ParseShortcuts parses Steam's shortcuts.vdf. Only the app id and name are
// required; tools like EmuDeck and Lutris leave out most other fields.
func ParseShortcuts(r io.Reader) ([]Shortcut, error) {
	root, err := Parse(r)
	if err != nil {
		return nil, err
	}

	entries, ok := root.GetMap("shortcuts")
	if !ok {
		return nil, errors.New("could not find 'shortcuts' in parsed vdf")
	}

	shortcuts := make([]Shortcut, 0, len(entries))
	for i := range len(entries) {
		s, ok := entries[strconv.Itoa(i)]
		if !ok {
			return nil, errors.New("shortcuts list is not indexed sequentially")
		}

		appID, ok := s.GetUint("appid")
		if !ok {
			return nil, errors.New("shortcut " + strconv.Itoa(i) + " has no appid")
		}
		appName, ok := s.GetString("AppName")
		if !ok {
			return nil, errors.New("shortcut " + strconv.Itoa(i) + " has no AppName")
		}

		exe, _ := s.GetString("Exe")
		startDir, _ := s.GetString("StartDir")
		launchOptions, _ := s.GetString("LaunchOptions")
		hidden, _ := s.GetBool("IsHidden")

		shortcuts = append(shortcuts, Shortcut{
			AppID:         appID,
			AppName:       appName,
			Exe:           exe,
			StartDir:      startDir,
			LaunchOptions: launchOptions,
			IsHidden:      hidden,
		})
	}

	return shortcuts, nil
}

// FindShortcut returns the shortcut with the given app id.
func FindShortcut(shortcuts []Shortcut, appID uint32) (Shortcut, bool) {
	for _, s := range shortcuts {
		if s.AppID == appID {
			return s, true
		}
	}
	return Shortcut{}, false
}
