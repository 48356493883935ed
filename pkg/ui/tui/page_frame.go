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

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// PageFrame is the editor's page layout: a breadcrumb title in the top
// border, the main content, a help line, a button bar and key hints in the
// bottom border.
type PageFrame struct {
	content tview.Primitive
	*tview.Box
	helpText  *tview.TextView
	buttonBar *ButtonBar
	app       *tview.Application
	onEscape  func()
	hints     []rune
}

// hintRunes turns "a | b" into runes with '|' drawn as a border line.
func hintRunes(hints string) []rune {
	runes := []rune(hints)
	for i, r := range runes {
		if r == '|' {
			runes[i] = tcell.RuneVLine
		}
	}
	return runes
}

func NewPageFrame(app *tview.Application) *PageFrame {
	pf := &PageFrame{
		Box: tview.NewBox(),
		app: app,
	}
	pf.SetBorder(true)

	pf.helpText = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	return pf
}

// SetTitle sets the page title from breadcrumb segments, for example
// SetTitle("Zaparoo Launch", "Dota 2") shows " Zaparoo Launch > Dota 2 ".
func (pf *PageFrame) SetTitle(path ...string) *PageFrame {
	pf.Box.SetTitle(" " + strings.Join(path, " > ") + " ")
	return pf
}

func (pf *PageFrame) SetContent(content tview.Primitive) *PageFrame {
	pf.content = content
	return pf
}

func (pf *PageFrame) SetHelpText(text string) *PageFrame {
	pf.helpText.SetText(text)
	return pf
}

// SetHints sets the key hints drawn in the bottom border.
func (pf *PageFrame) SetHints(hints string) *PageFrame {
	pf.hints = hintRunes(hints)
	return pf
}

// SetButtonBar sets the button bar at the bottom of the frame. Up from the
// bar returns focus to the content.
func (pf *PageFrame) SetButtonBar(bar *ButtonBar) *PageFrame {
	pf.buttonBar = bar
	bar.SetOnUp(pf.FocusContent)
	return pf
}

func (pf *PageFrame) SetOnEscape(fn func()) *PageFrame {
	pf.onEscape = fn
	return pf
}

func (pf *PageFrame) Draw(screen tcell.Screen) {
	pf.DrawForSubclass(screen, pf)

	x, y, width, height := pf.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	helpHeight := 1
	buttonHeight := 0
	if pf.buttonBar != nil {
		buttonHeight = 1
	}
	contentHeight := max(height-helpHeight-buttonHeight, 1)

	if pf.content != nil {
		pf.content.SetRect(x, y, width, contentHeight)
		pf.content.Draw(screen)
	}

	pf.helpText.SetRect(x, y+contentHeight, width, helpHeight)
	pf.helpText.Draw(screen)

	if pf.buttonBar != nil {
		pf.buttonBar.SetRect(x, y+contentHeight+helpHeight, width, buttonHeight)
		pf.buttonBar.Draw(screen)
	}

	pf.drawBottomHints(screen)
}

func (pf *PageFrame) drawBottomHints(screen tcell.Screen) {
	outerX, outerY, outerWidth, outerHeight := pf.GetRect()
	if len(pf.hints) == 0 || outerWidth <= 4 || outerHeight <= 2 {
		return
	}

	bottomY := outerY + outerHeight - 1
	hints := pf.hints
	if len(hints) > outerWidth-4 {
		hints = hints[:outerWidth-4]
	}
	startX := outerX + (outerWidth-len(hints))/2

	t := CurrentTheme()
	style := tcell.StyleDefault.
		Foreground(t.BorderColor).
		Background(t.PrimitiveBackgroundColor)

	for i := startX - 1; i < startX+len(hints)+1; i++ {
		screen.SetContent(i, bottomY, ' ', nil, style)
	}
	for i, r := range hints {
		screen.SetContent(startX+i, bottomY, r, nil, style)
	}
}

func (pf *PageFrame) Focus(delegate func(p tview.Primitive)) {
	if pf.content != nil {
		delegate(pf.content)
	} else if pf.buttonBar != nil {
		delegate(pf.buttonBar)
	}
}

func (pf *PageFrame) HasFocus() bool {
	if pf.content != nil && pf.content.HasFocus() {
		return true
	}
	return pf.buttonBar != nil && pf.buttonBar.HasFocus()
}

func (pf *PageFrame) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return pf.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		if event.Key() == tcell.KeyEscape && pf.onEscape != nil {
			pf.onEscape()
			return
		}

		if pf.content != nil && pf.content.HasFocus() {
			if handler := pf.content.InputHandler(); handler != nil {
				handler(event, setFocus)
			}
			return
		}

		if pf.buttonBar != nil && pf.buttonBar.HasFocus() {
			if handler := pf.buttonBar.InputHandler(); handler != nil {
				handler(event, setFocus)
			}
		}
	})
}

func (pf *PageFrame) MouseHandler() func(
	action tview.MouseAction,
	event *tcell.EventMouse,
	setFocus func(p tview.Primitive),
) (consumed bool, capture tview.Primitive) {
	return pf.WrapMouseHandler(func(
		action tview.MouseAction,
		event *tcell.EventMouse,
		setFocus func(p tview.Primitive),
	) (consumed bool, capture tview.Primitive) {
		if pf.buttonBar != nil && pf.buttonBar.InRect(event.Position()) {
			return pf.buttonBar.MouseHandler()(action, event, setFocus)
		}
		if pf.content != nil {
			if handler := pf.content.MouseHandler(); handler != nil {
				return handler(action, event, setFocus)
			}
		}
		return false, nil
	})
}

func (pf *PageFrame) FocusContent() {
	if pf.content != nil && pf.app != nil {
		pf.app.SetFocus(pf.content)
	}
}

func (pf *PageFrame) FocusButtonBar() {
	if pf.buttonBar != nil && pf.app != nil {
		pf.app.SetFocus(pf.buttonBar)
	}
}
