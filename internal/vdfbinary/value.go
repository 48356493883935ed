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

import "strings"

// Map is a VDF object. Keys are lowercase.
type Map map[string]Value

// Value is a string, a uint32 or a Map.
type Value struct {
	v any
}

func (v Value) AsMap() (Map, bool) {
	m, ok := v.v.(Map)
	return m, ok
}

func (v Value) AsString() (string, bool) {
	s, ok := v.v.(string)
	return s, ok
}

func (v Value) AsUint() (uint32, bool) {
	n, ok := v.v.(uint32)
	return n, ok
}

func (v Value) get(key string) (Value, bool) {
	m, ok := v.AsMap()
	if !ok {
		return Value{}, false
	}
	child, ok := m[strings.ToLower(key)]
	return child, ok
}

func (v Value) GetMap(key string) (Map, bool) {
	child, ok := v.get(key)
	if !ok {
		return nil, false
	}
	return child.AsMap()
}

func (v Value) GetString(key string) (string, bool) {
	child, ok := v.get(key)
	if !ok {
		return "", false
	}
	return child.AsString()
}

func (v Value) GetUint(key string) (uint32, bool) {
	child, ok := v.get(key)
	if !ok {
		return 0, false
	}
	return child.AsUint()
}

// GetBool reads a number stored as a flag.
func (v Value) GetBool(key string) (bool, bool) {
	n, ok := v.GetUint(key)
	return n != 0, ok
}
