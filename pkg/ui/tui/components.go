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
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func setupInputFieldFocus(field *tview.InputField) *tview.InputField {
	field.SetFieldBackgroundColor(CurrentTheme().FieldUnfocusedBg)
	field.SetFocusFunc(func() {
		field.SetFieldBackgroundColor(CurrentTheme().FieldFocusedBg)
	})
	field.SetBlurFunc(func() {
		field.SetFieldBackgroundColor(CurrentTheme().FieldUnfocusedBg)
	})
	return field
}

// formatToggleRow renders a row with a checkbox. Disabled rows are dimmed.
func formatToggleRow(enabled bool, label string, selected bool) string {
	t := CurrentTheme()
	checkbox := "[ ]"
	textColor := t.DisabledColorName
	if enabled {
		checkbox = "[*]"
		textColor = t.TextColorName
	}
	label = tview.Escape(label)
	if selected {
		return fmt.Sprintf("[%s:%s]%s [%s:%s]%s[-:%s]",
			t.AccentColorName, t.BgColorName, tview.Escape(checkbox),
			t.HighlightFgName, t.HighlightBgName, label, t.BgColorName)
	}
	return fmt.Sprintf("[%s:%s]%s [%s:%s]%s[-:-]",
		t.AccentColorName, t.BgColorName, tview.Escape(checkbox),
		textColor, t.BgColorName, label)
}

// formatActionRow renders a row without a checkbox.
func formatActionRow(label string, selected bool) string {
	t := CurrentTheme()
	label = tview.Escape(label)
	if selected {
		return fmt.Sprintf("[%s:%s]- [%s:%s]%s[-:%s]",
			t.AccentColorName, t.BgColorName,
			t.HighlightFgName, t.HighlightBgName, label, t.BgColorName)
	}
	return fmt.Sprintf("[%s:%s]- [%s:%s]%s[-:-]",
		t.AccentColorName, t.BgColorName,
		t.TextColorName, t.BgColorName, label)
}

// ButtonBar is a horizontal bar of buttons with arrow key navigation.
type ButtonBar struct {
	*tview.Box
	app          *tview.Application
	onEscape     func()
	onUp         func()
	helpCallback func(string)
	buttons      []*tview.Button
	helpTexts    []string
	focusedIndex int
}

func NewButtonBar(app *tview.Application) *ButtonBar {
	return &ButtonBar{
		Box: tview.NewBox(),
		app: app,
	}
}

// AddButton adds a button with help text shown while it is focused.
func (bb *ButtonBar) AddButton(label, helpText string, action func()) *ButtonBar {
	btn := tview.NewButton(label).SetSelectedFunc(action)
	bb.buttons = append(bb.buttons, btn)
	bb.helpTexts = append(bb.helpTexts, helpText)
	return bb
}

func (bb *ButtonBar) SetHelpCallback(fn func(string)) *ButtonBar {
	bb.helpCallback = fn
	return bb
}

func (bb *ButtonBar) triggerHelp() {
	if bb.helpCallback != nil && bb.focusedIndex < len(bb.helpTexts) {
		bb.helpCallback(bb.helpTexts[bb.focusedIndex])
	}
}

func (bb *ButtonBar) SetOnEscape(fn func()) *ButtonBar {
	bb.onEscape = fn
	return bb
}

// SetOnUp sets what Up and Down do, normally returning focus to the content.
func (bb *ButtonBar) SetOnUp(fn func()) *ButtonBar {
	bb.onUp = fn
	return bb
}

// SetButtonLabel updates the label of the button at index.
func (bb *ButtonBar) SetButtonLabel(index int, label string) {
	if index >= 0 && index < len(bb.buttons) {
		bb.buttons[index].SetLabel(label)
	}
}

func (bb *ButtonBar) Draw(screen tcell.Screen) {
	bb.DrawForSubclass(screen, bb)

	x, y, width, _ := bb.GetInnerRect()
	if len(bb.buttons) == 0 || width <= 0 {
		return
	}

	spacing := 1
	totalSpacing := spacing * (len(bb.buttons) - 1)
	buttonWidth := max((width-totalSpacing)/len(bb.buttons), 6)

	hasFocus := bb.HasFocus()
	currentX := x
	for i, btn := range bb.buttons {
		btnWidth := min(buttonWidth, x+width-currentX)
		if btnWidth <= 0 {
			break
		}
		btn.SetRect(currentX, y, btnWidth, 1)
		if hasFocus && i == bb.focusedIndex {
			btn.Focus(func(_ tview.Primitive) {})
		} else {
			btn.Blur()
		}
		btn.Draw(screen)
		currentX += btnWidth + spacing
	}
}

func (bb *ButtonBar) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return bb.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		if len(bb.buttons) == 0 {
			return
		}

		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyBacktab:
			bb.focusedIndex = (bb.focusedIndex - 1 + len(bb.buttons)) % len(bb.buttons)
			bb.triggerHelp()
		case tcell.KeyRight:
			bb.focusedIndex = (bb.focusedIndex + 1) % len(bb.buttons)
			bb.triggerHelp()
		case tcell.KeyTab:
			if bb.focusedIndex == len(bb.buttons)-1 && bb.onUp != nil {
				bb.onUp()
			} else {
				bb.focusedIndex = (bb.focusedIndex + 1) % len(bb.buttons)
				bb.triggerHelp()
			}
		case tcell.KeyUp, tcell.KeyDown:
			if bb.onUp != nil {
				bb.onUp()
			}
		case tcell.KeyEnter:
			if handler := bb.buttons[bb.focusedIndex].InputHandler(); handler != nil {
				handler(event, setFocus)
			}
		case tcell.KeyEscape:
			if bb.onEscape != nil {
				bb.onEscape()
			}
		default:
		}
	})
}

func (bb *ButtonBar) MouseHandler() func(
	action tview.MouseAction,
	event *tcell.EventMouse,
	setFocus func(p tview.Primitive),
) (consumed bool, capture tview.Primitive) {
	return bb.WrapMouseHandler(func(
		action tview.MouseAction,
		event *tcell.EventMouse,
		setFocus func(p tview.Primitive),
	) (consumed bool, capture tview.Primitive) {
		if action != tview.MouseLeftClick {
			return false, nil
		}
		for i, btn := range bb.buttons {
			if !btn.InRect(event.Position()) {
				continue
			}
			bb.focusedIndex = i
			bb.triggerHelp()
			setFocus(bb)
			if handler := btn.MouseHandler(); handler != nil {
				return handler(action, event, setFocus)
			}
			return true, nil
		}
		return false, nil
	})
}

func (bb *ButtonBar) Focus(delegate func(p tview.Primitive)) {
	bb.Box.Focus(delegate)
	bb.triggerHelp()
}
