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

package steam

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/ZaparooProject/zaparoo-launch/internal/vdfbinary"
)

// ShortcutFiles returns the shortcuts.vdf file of every Steam user.
func ShortcutFiles(steamDir string) []string {
	files, err := filepath.Glob(filepath.Join(steamDir, "userdata", "*", "config", "shortcuts.vdf"))
	if err != nil {
		return nil
	}
	return files
}

// FindShortcut looks up a non-Steam game by its app id in every user's
// shortcuts.
func FindShortcut(steamDir, appID string) (vdfbinary.Shortcut, bool) {
	id, err := strconv.ParseUint(appID, 10, 32)
	if err != nil {
		return vdfbinary.Shortcut{}, false
	}

	for _, path := range ShortcutFiles(steamDir) {
		shortcuts, err := readShortcuts(path)
		if err != nil {
			log.Warn().Err(err).Msgf("failed to read shortcuts: %s", path)
			continue
		}
		if s, ok := vdfbinary.FindShortcut(shortcuts, uint32(id)); ok {
			return s, true
		}
	}
	return vdfbinary.Shortcut{}, false
}

func readShortcuts(path string) ([]vdfbinary.Shortcut, error) {
	//nolint:gosec // Safe: reads Steam shortcuts files
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open shortcuts: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing shortcuts.vdf")
		}
	}()

	shortcuts, err := vdfbinary.ParseShortcuts(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse shortcuts: %w", err)
	}
	return shortcuts, nil
}
