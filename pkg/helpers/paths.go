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

package helpers

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"

	"github.com/ZaparooProject/zaparoo-launch/pkg/config"
)

const (
	// DirEnv overrides the config and data directories, mostly for tests
	// and portable installs.
	DirEnv = "ZAPAROO_LAUNCH_DIR"
	// UserDir is the portable install directory next to the executable.
	UserDir     = "user"
	LogsDir     = "logs"
	GameLogsDir = "games"
)

// Dirs is where the wrapper keeps its files.
type Dirs struct {
	Config string
	Data   string
}

// LogDir holds the wrapper's own log.
func (d Dirs) LogDir() string {
	return filepath.Join(d.Data, LogsDir)
}

// GameLogDir holds the per-game output logs of launched commands.
func (d Dirs) GameLogDir() string {
	return filepath.Join(d.Data, LogsDir, GameLogsDir)
}

func (d Dirs) HistoryFile() string {
	return filepath.Join(d.Data, config.HistoryFile)
}

// Ensure creates the directories if they don't exist yet.
func (d Dirs) Ensure() error {
	for _, dir := range []string{d.Config, d.LogDir(), d.GameLogDir()} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return err //nolint:wrapcheck // path is in the error
		}
	}
	return nil
}

var (
	userDirOnce        sync.Once
	userDirCache       string
	userDirCacheExists bool
)

// HasUserDir checks for a "user" directory next to the executable. If it
// exists it holds everything, for a portable install. The result is cached.
func HasUserDir() (string, bool) {
	userDirOnce.Do(func() {
		exe, err := os.Executable()
		if err != nil {
			return
		}

		userDir := filepath.Join(filepath.Dir(exe), UserDir)
		info, err := os.Stat(userDir)
		if err != nil || !info.IsDir() {
			return
		}

		userDirCache = userDir
		userDirCacheExists = true
	})

	return userDirCache, userDirCacheExists
}

// ResolveDirs picks the config and data directories. In order: override
// (the --config-dir flag), DirEnv, a portable user dir and finally the XDG
// base directories. An explicit directory holds both config and data.
func ResolveDirs(override string) Dirs {
	if override == "" {
		override = os.Getenv(DirEnv)
	}
	if override == "" {
		if v, ok := HasUserDir(); ok {
			override = v
		}
	}
	if override != "" {
		return Dirs{Config: override, Data: override}
	}

	return Dirs{
		Config: filepath.Join(xdg.ConfigHome, config.AppName),
		Data:   filepath.Join(xdg.DataHome, config.AppName),
	}
}
