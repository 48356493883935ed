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

package tui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"
)

// TestScreen wraps a SimulationScreen with helpers for driving the editor.
type TestScreen struct {
	tcell.SimulationScreen
}

func NewTestScreen(t *testing.T, width, height int) *TestScreen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NotNil(t, sim, "failed to create simulation screen")
	require.NoError(t, sim.Init(), "failed to initialize simulation screen")
	sim.SetSize(width, height)
	return &TestScreen{SimulationScreen: sim}
}

func (s *TestScreen) InjectEnter()     { s.InjectKey(tcell.KeyEnter, 0, tcell.ModNone) }
func (s *TestScreen) InjectEscape()    { s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone) }
func (s *TestScreen) InjectTab()       { s.InjectKey(tcell.KeyTab, 0, tcell.ModNone) }
func (s *TestScreen) InjectArrowDown() { s.InjectKey(tcell.KeyDown, 0, tcell.ModNone) }
func (s *TestScreen) InjectRight()     { s.InjectKey(tcell.KeyRight, 0, tcell.ModNone) }
func (s *TestScreen) InjectDelete()    { s.InjectKey(tcell.KeyDelete, 0, tcell.ModNone) }
func (s *TestScreen) InjectRune(r rune) {
	s.InjectKey(tcell.KeyRune, r, tcell.ModNone)
}

func (s *TestScreen) InjectString(str string) {
	for _, r := range str {
		s.InjectRune(r)
	}
}

// GetScreenText returns all screen content, one line per row.
func (s *TestScreen) GetScreenText() string {
	cells, width, height := s.GetContents()
	var sb strings.Builder
	for y := range height {
		for x := range width {
			cell := cells[y*width+x]
			if len(cell.Runes) > 0 {
				sb.WriteRune(cell.Runes[0])
			} else {
				sb.WriteRune(' ')
			}
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}

func (s *TestScreen) ContainsText(text string) bool {
	return strings.Contains(s.GetScreenText(), text)
}
