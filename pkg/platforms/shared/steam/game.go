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

// Artwork holds the paths of a game's cached library images. Missing images
// are left empty.
type Artwork struct {
	Header string
	Logo   string
	Hero   string
}

// Game is what the editor shows about the game being launched.
type Game struct {
	AppID string
	Name  string
	// InstallPath is empty for non-Steam games.
	InstallPath string
	Artwork     Artwork
	NonSteam    bool
}

// DisplayName returns the game name, or a generic one with the app id.
func (g Game) DisplayName() string {
	if g.Name != "" {
		return g.Name
	}
	return "Steam Game " + g.AppID
}

// LookupGame collects what is known about appID in the Steam directory.
// Steam apps are looked up in the library manifests first, then the non-Steam
// shortcuts. With no Steam directory only the app id is set.
func LookupGame(steamDir, appID string) Game {
	game := Game{AppID: appID}
	if steamDir == "" || appID == "" {
		return game
	}

	if info, ok := FindAppManifest(steamDir, appID); ok {
		game.Name = info.Name
		game.InstallPath = info.InstallPath()
	} else if s, ok := FindShortcut(steamDir, appID); ok {
		game.Name = s.AppName
		game.NonSteam = true
	} else {
		log.Debug().Str("appid", appID).Msg("game not found in steam libraries")
	}

	game.Artwork = FindArtwork(steamDir, appID)
	return game
}

// FindArtwork looks for the game's images in Steam's library cache. Both the
// flat layout (<appid>_header.jpg) and the per-app directory layout
// (<appid>/header.jpg) are checked.
func FindArtwork(steamDir, appID string) Artwork {
	cache := filepath.Join(steamDir, "appcache", "librarycache")
	find := func(flat, nested string) string {
		for _, p := range []string{
			filepath.Join(cache, appID+"_"+flat),
			filepath.Join(cache, appID, nested),
		} {
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
		return ""
	}

	return Artwork{
		Header: find("header.jpg", "header.jpg"),
		Logo:   find("logo.png", "logo.png"),
		Hero:   find("library_hero.jpg", "library_hero.jpg"),
	}
}
