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

// Package cli is the command line of the wrapper. Steam runs it from a
// game's launch options as:
//
//	zaparoo-launch %command%
//
// Everything after the wrapper's own flags is the command Steam wanted to
// run.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/ZaparooProject/zaparoo-launch/pkg/gameconfig"
)

const (
	ExitFailure   = 1
	ExitMalformed = 2

	appIDKey = "AppId="
)

var ErrMalformedInput = errors.New("malformed launch command")

// ExitError is an error with a specific process exit status.
type ExitError struct {
	Err  error
	Code int
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit status for an error returned by
// Execute.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, ErrMalformedInput) {
		return ExitMalformed
	}
	return ExitFailure
}

// ParseAppID finds the Steam app id in a launch command. Steam always adds
// an AppId=<id> argument to the reaper it launches games with; the value
// runs up to the next space and must be all digits.
func ParseAppID(raw string) (string, error) {
	i := strings.Index(raw, appIDKey)
	if i < 0 {
		return "", fmt.Errorf("%w: no %s argument", ErrMalformedInput, appIDKey)
	}

	value := raw[i+len(appIDKey):]
	if end := strings.IndexByte(value, ' '); end >= 0 {
		value = value[:end]
	}

	if !gameconfig.ValidAppID(value) {
		return "", fmt.Errorf("%w: invalid app id %q", ErrMalformedInput, value)
	}
	return value, nil
}

// JoinCommand turns the wrapper's arguments back into a shell command line.
// A single argument is taken as a complete command line. Otherwise each
// argument is quoted as needed for a POSIX sh, so paths with spaces survive
// the shell.
func JoinCommand(args []string) string {
	if len(args) == 1 {
		return args[0]
	}

	words := make([]string, 0, len(args))
	for _, arg := range args {
		quoted, err := syntax.Quote(arg, syntax.LangPOSIX)
		if err != nil {
			// POSIX has no escapes for control characters, but single
			// quotes keep them literal.
			quoted = "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
		}
		words = append(words, quoted)
	}
	return strings.Join(words, " ")
}
