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

package launch

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	outputLogMaxSize    = 5 // megabytes
	outputLogMaxBackups = 3
)

// OutputLogPath returns where the main command output of a game is kept.
func OutputLogPath(dir, appID string) string {
	if appID == "" {
		appID = "global"
	}
	return filepath.Join(dir, appID+".log")
}

// openOutputLog returns a rotating log for the main command's stdout and
// stderr.
func openOutputLog(dir, appID string) (*lumberjack.Logger, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create output log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   OutputLogPath(dir, appID),
		MaxSize:    outputLogMaxSize,
		MaxBackups: outputLogMaxBackups,
	}, nil
}
