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

// Package vdfbinary parses Valve's binary VDF format, as used by Steam's
// shortcuts.vdf.
//
// Based on github.com/TimDeve/valve-vdf-binary (MIT).
package vdfbinary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	markerMap         byte = 0x00
	markerString      byte = 0x01
	markerNumber      byte = 0x02
	markerEndOfMap    byte = 0x08
	markerEndOfString byte = 0x00
)

var (
	ErrEmptyVDF     = errors.New("vdf is empty")
	ErrNotBinaryVDF = errors.New("vdf is not binary, it may be a text vdf")
	ErrCorruptedVDF = errors.New("vdf ended early, file may be corrupted")
)

// Parse reads a binary VDF document. Keys are lowercased, since Valve
// treats them case-insensitively.
func Parse(r io.Reader) (Value, error) {
	buf := bufio.NewReader(r)

	peek, err := buf.Peek(1)
	if errors.Is(err, io.EOF) {
		return Value{}, ErrEmptyVDF
	} else if err != nil {
		return Value{}, fmt.Errorf("peek error: %w", err)
	}

	switch peek[0] {
	case markerMap, markerString, markerNumber, markerEndOfMap:
	default:
		return Value{}, ErrNotBinaryVDF
	}

	m, err := parseMap(buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return Value{}, ErrCorruptedVDF
	}
	return m, err
}

func parseMap(buf *bufio.Reader) (Value, error) {
	m := make(Map)

	for {
		kind, err := buf.ReadByte()
		if err != nil {
			return Value{}, fmt.Errorf("read byte error: %w", err)
		}
		if kind == markerEndOfMap {
			break
		}

		key, err := parseString(buf)
		if err != nil {
			return Value{}, err
		}

		var value Value
		switch kind {
		case markerMap:
			value, err = parseMap(buf)
		case markerNumber:
			value, err = parseNumber(buf)
		case markerString:
			var s string
			s, err = parseString(buf)
			value = Value{v: s}
		default:
			err = fmt.Errorf("unexpected byte 0x%02x, file may be corrupted", kind)
		}
		if err != nil {
			return Value{}, err
		}

		m[strings.ToLower(key)] = value
	}

	return Value{v: m}, nil
}

func parseNumber(buf *bufio.Reader) (Value, error) {
	var b [4]byte
	if _, err := io.ReadFull(buf, b[:]); err != nil {
		return Value{}, fmt.Errorf("read number error: %w", err)
	}
	return Value{v: binary.LittleEndian.Uint32(b[:])}, nil
}

func parseString(buf *bufio.Reader) (string, error) {
	s, err := buf.ReadString(markerEndOfString)
	if err != nil {
		return "", fmt.Errorf("read string error: %w", err)
	}
	return s[:len(s)-1], nil
}
