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

// Package tui is the launch editor shown before a game starts: the game's
// launch template, placeholder options and hook commands, for either the
// game or the global config.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"github.com/ZaparooProject/zaparoo-launch/pkg/gameconfig"
)

const (
	PageEditor  = "editor"
	PageEditRow = "edit_row"
	PageMessage = "message"
)

const editorHints = "Space: Toggle | Enter: Edit | Del: Remove | Tab: Buttons | ESC: Cancel"

type rowKind int

const (
	rowTemplate rowKind = iota
	rowOption
	rowAddOption
	rowCommand
	rowAddCommand
)

// row maps a list item to the part of the config it shows.
type row struct {
	label   string
	kind    rowKind
	list    gameconfig.CommandList
	index   int
	enabled bool
}

func (r row) toggleable() bool {
	return r.kind == rowOption || r.kind == rowCommand
}

// buildRows lists the rows for a config, in display order.
func buildRows(cfg *gameconfig.Config) []row {
	rows := []row{{kind: rowTemplate, label: "Launch: " + cfg.LaunchTemplate}}

	for i, opt := range cfg.Options {
		label := fmt.Sprintf("Placeholder %s = %q", opt.Token, opt.Replacement)
		if opt.Modified {
			label += " *"
		}
		rows = append(rows, row{kind: rowOption, index: i, enabled: opt.Enabled, label: label})
	}
	rows = append(rows, row{kind: rowAddOption, label: "Add placeholder"})

	for _, list := range []gameconfig.CommandList{gameconfig.PreLaunch, gameconfig.PostExit} {
		for i, cmd := range *cfg.Commands(list) {
			rows = append(rows, row{
				kind:    rowCommand,
				list:    list,
				index:   i,
				enabled: cmd.Enabled,
				label:   list.String() + ": " + cmd.Command,
			})
		}
		rows = append(rows, row{kind: rowAddCommand, list: list, label: "Add " + list.String() + " command"})
	}

	return rows
}

// Editor is the tview front end of a Session.
type Editor struct {
	app        *tview.Application
	session    *Session
	pages      *tview.Pages
	frame      *PageFrame
	list       *tview.List
	info       *tview.TextView
	buttons    *ButtonBar
	rows       []row
	scope      Scope
	rebuilding bool
}

// Button indexes in the button bar.
const (
	buttonLaunch = iota
	buttonSave
	buttonMerge
	buttonScope
	buttonCancel
)

func NewEditor(app *tview.Application, s *Session) *Editor {
	e := &Editor{
		app:     app,
		session: s,
		pages:   tview.NewPages(),
	}
	if !s.HasGame() {
		e.scope = ScopeGlobal
	}

	e.info = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true)

	e.list = tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(false).
		SetSelectedStyle(tcell.StyleDefault).
		SetMainTextStyle(tcell.StyleDefault)
	e.list.SetChangedFunc(func(index int, _, _ string, _ rune) {
		e.renderRows(index)
	})
	e.list.SetSelectedFunc(func(index int, _, _ string, _ rune) {
		e.activate(index)
	})
	e.list.SetFocusFunc(func() { e.renderRows(e.list.GetCurrentItem()) })
	e.list.SetBlurFunc(func() { e.renderRows(-1) })
	e.list.SetInputCapture(e.listInput)

	content := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(e.info, 6, 0, false).
		AddItem(e.list, 0, 1, true)

	e.frame = NewPageFrame(app).
		SetTitle("Zaparoo Launch", s.Game().DisplayName()).
		SetHints(editorHints).
		SetContent(content).
		SetOnEscape(e.cancel)

	e.buttons = NewButtonBar(app).
		AddButton("Launch", "Start the game with the settings shown", e.launch).
		AddButton("Save", "Save the config being edited", e.save).
		AddButton("Merge", "Bring global changes into this game's config", e.merge).
		AddButton("Scope", "Switch between the game and global config", e.toggleScope).
		AddButton("Cancel", "Don't start the game", e.cancel).
		SetHelpCallback(func(help string) { e.frame.SetHelpText(help) }).
		SetOnEscape(e.cancel)
	e.frame.SetButtonBar(e.buttons)

	e.pages.AddPage(PageEditor, e.frame, true, true)
	e.refresh()
	return e
}

// Root is the primitive to run the editor in.
func (e *Editor) Root() tview.Primitive {
	return e.pages
}

func (e *Editor) Scope() Scope {
	return e.scope
}

// SetScope switches the config being edited.
func (e *Editor) SetScope(scope Scope) {
	if scope == ScopeGame && !e.session.HasGame() {
		return
	}
	e.scope = scope
	e.list.SetCurrentItem(0)
	e.refresh()
}

// refresh rebuilds the rows and the info box from the current config.
func (e *Editor) refresh() {
	cfg, err := e.session.Config(e.scope)
	if err != nil {
		log.Error().Err(err).Msg("failed to read config for editor")
		return
	}

	current := e.list.GetCurrentItem()
	e.rows = buildRows(&cfg)

	e.rebuilding = true
	e.list.Clear()
	for range e.rows {
		e.list.AddItem("", "", 0, nil)
	}
	e.rebuilding = false
	e.list.SetCurrentItem(min(current, len(e.rows)-1))
	if e.list.HasFocus() {
		e.renderRows(e.list.GetCurrentItem())
	} else {
		e.renderRows(-1)
	}

	e.buttons.SetButtonLabel(buttonScope, "Scope: "+e.scope.String())
	e.info.SetText(e.infoText())
}

func (e *Editor) renderRows(selected int) {
	if e.rebuilding {
		return
	}
	count := min(len(e.rows), e.list.GetItemCount())
	for i := range count {
		r := e.rows[i]
		sel := i == selected
		var text string
		if r.toggleable() {
			text = formatToggleRow(r.enabled, r.label, sel)
		} else {
			text = formatActionRow(r.label, sel)
		}
		e.list.SetItemText(i, text, "")
	}
}

func (e *Editor) infoText() string {
	t := CurrentTheme()
	game := e.session.Game()

	var sb strings.Builder
	if e.session.HasGame() {
		fmt.Fprintf(&sb, "[%s]%s[-] (%s)", t.AccentColorName, tview.Escape(game.DisplayName()), game.AppID)
		if game.NonSteam {
			sb.WriteString(" non-Steam")
		}
	} else {
		fmt.Fprintf(&sb, "[%s]Global config[-]", t.AccentColorName)
	}
	fmt.Fprintf(&sb, "\nEditing: %s config", strings.ToLower(e.scope.String()))
	fmt.Fprintf(&sb, "\nRuns: %s", tview.Escape(e.session.Preview()))

	if issues := e.session.Lint(e.scope); len(issues) > 0 {
		fmt.Fprintf(&sb, "\n[%s]%s[-]", t.ErrorColorName, tview.Escape(issues[0].String()))
		if len(issues) > 1 {
			fmt.Fprintf(&sb, " (+%d more)", len(issues)-1)
		}
	}

	if art := game.Artwork; art.Header != "" || art.Logo != "" {
		fmt.Fprintf(&sb, "\nArt: %s", tview.Escape(strings.TrimSpace(art.Header+" "+art.Logo)))
	}
	return sb.String()
}

func (e *Editor) currentRow() (row, bool) {
	i := e.list.GetCurrentItem()
	if i < 0 || i >= len(e.rows) {
		return row{}, false
	}
	return e.rows[i], true
}

func (e *Editor) listInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyTab:
		e.frame.FocusButtonBar()
		return nil
	case tcell.KeyDown:
		if e.list.GetCurrentItem() == e.list.GetItemCount()-1 {
			e.frame.FocusButtonBar()
			return nil
		}
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		e.removeCurrent()
		return nil
	case tcell.KeyRune:
		if event.Rune() == ' ' {
			e.toggleCurrent()
			return nil
		}
	default:
	}
	return event
}

func (e *Editor) toggleCurrent() {
	r, ok := e.currentRow()
	if !ok || !r.toggleable() {
		return
	}
	var err error
	if r.kind == rowOption {
		err = e.session.ToggleOption(e.scope, r.index)
	} else {
		err = e.session.ToggleCommand(e.scope, r.list, r.index)
	}
	e.afterEdit(err)
}

func (e *Editor) removeCurrent() {
	r, ok := e.currentRow()
	if !ok || !r.toggleable() {
		return
	}
	var err error
	if r.kind == rowOption {
		err = e.session.RemoveOption(e.scope, r.index)
	} else {
		err = e.session.RemoveCommand(e.scope, r.list, r.index)
	}
	e.afterEdit(err)
}

func (e *Editor) afterEdit(err error) {
	if err != nil {
		e.showMessage("Edit failed", err.Error())
	}
	e.refresh()
}

// activate handles Enter on a row.
func (e *Editor) activate(index int) {
	if index < 0 || index >= len(e.rows) {
		return
	}
	r := e.rows[index]

	switch r.kind {
	case rowAddOption:
		i, err := e.session.AddOption(e.scope)
		if err != nil {
			e.afterEdit(err)
			return
		}
		e.refresh()
		e.editOption(i)
	case rowAddCommand:
		i, err := e.session.AddCommand(e.scope, r.list)
		if err != nil {
			e.afterEdit(err)
			return
		}
		e.refresh()
		e.editCommand(r.list, i)
	case rowTemplate:
		e.editTemplate()
	case rowOption:
		e.editOption(r.index)
	case rowCommand:
		e.editCommand(r.list, r.index)
	}
}

func (e *Editor) editTemplate() {
	cfg, err := e.session.Config(e.scope)
	if err != nil {
		return
	}
	form := e.newForm("Launch command")
	template := setupInputFieldFocus(tview.NewInputField().
		SetLabel("Template ").
		SetText(cfg.LaunchTemplate))
	form.AddFormItem(template)
	e.showForm(form, func() error {
		return e.session.SetTemplate(e.scope, template.GetText())
	})
}

func (e *Editor) editOption(i int) {
	cfg, err := e.session.Config(e.scope)
	if err != nil || i >= len(cfg.Options) {
		return
	}
	opt := cfg.Options[i]

	form := e.newForm("Placeholder")
	token := setupInputFieldFocus(tview.NewInputField().
		SetLabel("Placeholder  ").
		SetText(opt.Token))
	replacement := setupInputFieldFocus(tview.NewInputField().
		SetLabel("Replace with ").
		SetText(opt.Replacement))
	form.AddFormItem(token).AddFormItem(replacement)
	e.showForm(form, func() error {
		return e.session.SetOptionText(e.scope, i, token.GetText(), replacement.GetText())
	})
}

func (e *Editor) editCommand(list gameconfig.CommandList, i int) {
	cfg, err := e.session.Config(e.scope)
	if err != nil || i >= len(*cfg.Commands(list)) {
		return
	}
	cmd := (*cfg.Commands(list))[i]

	form := e.newForm(list.String() + " command")
	command := setupInputFieldFocus(tview.NewInputField().
		SetLabel("Command ").
		SetText(cmd.Command))
	form.AddFormItem(command)
	e.showForm(form, func() error {
		return e.session.SetCommandText(e.scope, list, i, command.GetText())
	})
}

func (e *Editor) newForm(title string) *tview.Form {
	form := tview.NewForm()
	form.SetBorder(true).SetTitle(" " + title + " ")
	form.SetButtonsAlign(tview.AlignCenter)
	return form
}

func (e *Editor) showForm(form *tview.Form, apply func() error) {
	closeForm := func() {
		e.pages.RemovePage(PageEditRow)
		e.app.SetFocus(e.list)
	}
	form.AddButton("OK", func() {
		closeForm()
		e.afterEdit(apply())
	})
	form.AddButton("Cancel", closeForm)
	form.SetCancelFunc(closeForm)

	e.pages.AddPage(PageEditRow, CenterWidget(70, 9, form), true, true)
	e.app.SetFocus(form)
}

func (e *Editor) showMessage(title, message string) {
	modal := tview.NewModal().
		SetText(message).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(_ int, _ string) {
			e.pages.RemovePage(PageMessage)
			e.app.SetFocus(e.list)
		})
	modal.SetTitle(" " + title + " ").SetBorder(true)
	e.pages.AddPage(PageMessage, modal, true, true)
	e.app.SetFocus(modal)
}

func (e *Editor) save() {
	err := e.session.Save(e.scope)
	if err != nil {
		log.Error().Err(err).Stringer("scope", e.scope).Msg("failed to save config")
		var saveErr *gameconfig.SaveError
		msg := err.Error()
		if errors.As(err, &saveErr) {
			msg = "Could not write " + saveErr.Path + ": " + saveErr.Err.Error()
		}
		e.showMessage("Save failed", msg)
		return
	}
	e.frame.SetHelpText("Saved " + strings.ToLower(e.scope.String()) + " config")
}

func (e *Editor) merge() {
	if err := e.session.MergeGlobal(); err != nil {
		e.showMessage("Merge", "Open a game to merge the global config into it.")
		return
	}
	e.refresh()
	e.frame.SetHelpText("Merged global config into game config")
}

func (e *Editor) toggleScope() {
	if e.scope == ScopeGame {
		e.SetScope(ScopeGlobal)
	} else {
		e.SetScope(ScopeGame)
	}
}

func (e *Editor) launch() {
	e.session.Launch()
	e.app.Stop()
}

func (e *Editor) cancel() {
	e.session.Cancel()
	e.app.Stop()
}

// CenterWidget centers p in a width by height box.
func CenterWidget(width, height int, p tview.Primitive) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().
			SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}

type Options struct {
	Theme string
	Mouse bool
}

// Run shows the editor until the user launches or cancels, and reports
// whether the launch was cancelled.
func Run(s *Session, opts Options) (bool, error) {
	if !SetCurrentTheme(opts.Theme) {
		ApplyTheme(CurrentTheme())
	}

	app := tview.NewApplication()
	e := NewEditor(app, s)
	app.SetRoot(e.Root(), true).EnableMouse(opts.Mouse)

	if err := app.Run(); err != nil {
		return false, fmt.Errorf("failed to run editor: %w", err)
	}
	return s.Cancelled(), nil
}
