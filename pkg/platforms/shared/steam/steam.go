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

// Package steam reads the local Steam installation for game metadata: the
// game's name from app manifests or non-Steam shortcuts, and its artwork
// from the library cache.
package steam

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// FlatpakSteamID is the Flatpak app ID for Steam.
const FlatpakSteamID = "com.valvesoftware.Steam"

// EnvSteamDir is set by Steam for games it launches on some platforms.
const EnvSteamDir = "STEAM_COMPAT_CLIENT_INSTALL_PATH"

// SteamDirCandidates returns the usual Steam root directories on Linux,
// in the order they are checked.
func SteamDirCandidates(home string) []string {
	return []string{
		filepath.Join(home, ".steam", "steam"),
		filepath.Join(home, ".local", "share", "Steam"),
		filepath.Join(home, ".var", "app", FlatpakSteamID, ".steam", "steam"),
		filepath.Join(home, "snap", "steam", "common", ".steam", "steam"),
		"/usr/games/steam",
		"/opt/steam",
	}
}

// FindSteamDir locates the Steam root directory. A configured directory
// wins when it exists, then the directory Steam reports in the environment,
// then the usual install locations. Returns "" when nothing is found.
func FindSteamDir(configured string) string {
	if configured != "" {
		if isDir(configured) {
			log.Debug().Msgf("using user-configured Steam directory: %s", configured)
			return configured
		}
		log.Warn().Msgf("user-configured Steam directory not found: %s", configured)
	}

	if env := os.Getenv(EnvSteamDir); env != "" && isDir(env) {
		log.Debug().Msgf("using Steam directory from environment: %s", env)
		return env
	}

	home, err := os.UserHomeDir()
	if err != nil {
		log.Warn().Err(err).Msg("failed to get user home directory")
		return ""
	}

	for _, path := range SteamDirCandidates(home) {
		if isDir(path) {
			log.Debug().Msgf("found Steam installation: %s", path)
			return path
		}
	}

	log.Debug().Msg("Steam installation not found")
	return ""
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
