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
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// AppInfo contains metadata for a Steam app from its manifest.
type AppInfo struct {
	AppID      string
	Name       string
	InstallDir string
	// LibraryDir is the steamapps directory holding the manifest.
	LibraryDir string
}

// ReadAppManifest reads appmanifest_<appid>.acf from a steamapps directory.
func ReadAppManifest(steamAppsDir, appID string) (AppInfo, bool) {
	manifestPath := filepath.Join(steamAppsDir, "appmanifest_"+appID+".acf")

	m, err := readTextVDF(manifestPath)
	if err != nil {
		log.Debug().Err(err).Str("appid", appID).Msg("failed to read app manifest")
		return AppInfo{}, false
	}

	appState, ok := m["appstate"].(map[string]any)
	if !ok {
		log.Warn().Str("appid", appID).Msg("AppState not found in manifest")
		return AppInfo{}, false
	}

	name, ok := appState["name"].(string)
	if !ok || name == "" {
		log.Warn().Str("appid", appID).Msg("name not found in manifest")
		return AppInfo{}, false
	}

	installDir, _ := appState["installdir"].(string) //nolint:revive // installdir is optional

	return AppInfo{
		AppID:      appID,
		Name:       name,
		InstallDir: installDir,
		LibraryDir: steamAppsDir,
	}, true
}

// FindSteamAppsDir finds the steamapps directory of a Steam root directory.
func FindSteamAppsDir(steamDir string) string {
	candidates := []string{
		"steamapps",
		"SteamApps",
		"steam/steamapps",
	}

	for _, candidate := range candidates {
		path := filepath.Join(steamDir, candidate)
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}

	return filepath.Join(steamDir, "steamapps")
}

// forEachSteamLibrary calls fn with the steamapps directory of every library
// that may hold appID, starting with the main one. Libraries that list their
// apps and don't list appID are skipped. Stops when fn returns true.
func forEachSteamLibrary(mainSteamAppsDir, appID string, fn func(steamAppsDir string) bool) {
	if fn(mainSteamAppsDir) {
		return
	}

	m, err := readTextVDF(filepath.Join(mainSteamAppsDir, "libraryfolders.vdf"))
	if err != nil {
		log.Debug().Err(err).Msg("no extra steam libraries")
		return
	}

	lfs, ok := m["libraryfolders"].(map[string]any)
	if !ok {
		return
	}

	for _, v := range lfs {
		ls, ok := v.(map[string]any)
		if !ok {
			continue
		}

		if apps, ok := ls["apps"].(map[string]any); ok {
			if _, hasApp := apps[appID]; !hasApp {
				continue
			}
		}

		libraryPath, ok := ls["path"].(string)
		if !ok {
			continue
		}

		dir := filepath.Join(libraryPath, "steamapps")
		if filepath.Clean(dir) == filepath.Clean(mainSteamAppsDir) {
			continue
		}
		if fn(dir) {
			return
		}
	}
}

// FindAppManifest searches every Steam library for the app's manifest.
func FindAppManifest(steamDir, appID string) (AppInfo, bool) {
	var result AppInfo
	var found bool
	forEachSteamLibrary(FindSteamAppsDir(steamDir), appID, func(dir string) bool {
		result, found = ReadAppManifest(dir, appID)
		return found
	})
	return result, found
}

// InstallPath returns the full path of the game's install directory.
func (a AppInfo) InstallPath() string {
	if a.InstallDir == "" || a.LibraryDir == "" {
		return ""
	}
	return filepath.Join(a.LibraryDir, "common", a.InstallDir)
}
