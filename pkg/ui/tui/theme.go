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
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/ZaparooProject/zaparoo-launch/pkg/helpers/syncutil"
)

// Theme defines all colors used by the editor. The *Name fields are the
// same colors as tview color tag names.
type Theme struct {
	Name                     string
	DisplayName              string
	BgColorName              string
	AccentColorName          string
	TextColorName            string
	HighlightBgName          string
	HighlightFgName          string
	DisabledColorName        string
	ErrorColorName           string
	SuccessColorName         string
	PrimitiveBackgroundColor tcell.Color
	ContrastBackgroundColor  tcell.Color
	BorderColor              tcell.Color
	PrimaryTextColor         tcell.Color
	SecondaryTextColor       tcell.Color
	InverseTextColor         tcell.Color
	FieldFocusedBg           tcell.Color
	FieldUnfocusedBg         tcell.Color
}

// ThemeDefault is dark blue with yellow accents.
var ThemeDefault = Theme{
	Name:        "default",
	DisplayName: "Default (Dark Blue)",

	PrimitiveBackgroundColor: tcell.ColorDarkBlue,
	ContrastBackgroundColor:  tcell.ColorBlue,
	BorderColor:              tcell.ColorLightYellow,
	PrimaryTextColor:         tcell.ColorWhite,
	SecondaryTextColor:       tcell.ColorGray,
	InverseTextColor:         tcell.ColorDarkBlue,
	FieldFocusedBg:           tcell.ColorBlue,
	FieldUnfocusedBg:         tcell.ColorDarkBlue,

	BgColorName:       "darkblue",
	AccentColorName:   "yellow",
	TextColorName:     "white",
	HighlightBgName:   "yellow",
	HighlightFgName:   "black",
	DisabledColorName: "gray",
	ErrorColorName:    "red",
	SuccessColorName:  "green",
}

// ThemeHighContrast uses true black background with bright yellow for accessibility.
var ThemeHighContrast = Theme{
	Name:        "high_contrast",
	DisplayName: "High Contrast",

	PrimitiveBackgroundColor: tcell.NewHexColor(0x000000),
	ContrastBackgroundColor:  tcell.NewHexColor(0x000000),
	BorderColor:              tcell.ColorYellow,
	PrimaryTextColor:         tcell.ColorWhite,
	SecondaryTextColor:       tcell.ColorWhite,
	InverseTextColor:         tcell.NewHexColor(0x000000),
	FieldFocusedBg:           tcell.ColorYellow,
	FieldUnfocusedBg:         tcell.NewHexColor(0x000000),

	BgColorName:       "#000000",
	AccentColorName:   "yellow",
	TextColorName:     "white",
	HighlightBgName:   "yellow",
	HighlightFgName:   "#000000",
	DisabledColorName: "white",
	ErrorColorName:    "red",
	SuccessColorName:  "lime",
}

// ThemeDracula uses the Dracula color scheme with purple accents.
var ThemeDracula = Theme{
	Name:        "dracula",
	DisplayName: "Dracula",

	PrimitiveBackgroundColor: tcell.NewHexColor(0x282A36),
	ContrastBackgroundColor:  tcell.NewHexColor(0x44475A),
	BorderColor:              tcell.NewHexColor(0xBD93F9),
	PrimaryTextColor:         tcell.NewHexColor(0xF8F8F2),
	SecondaryTextColor:       tcell.NewHexColor(0x6272A4),
	InverseTextColor:         tcell.NewHexColor(0x282A36),
	FieldFocusedBg:           tcell.NewHexColor(0x44475A),
	FieldUnfocusedBg:         tcell.NewHexColor(0x282A36),

	BgColorName:       "#282a36",
	AccentColorName:   "#bd93f9",
	TextColorName:     "#f8f8f2",
	HighlightBgName:   "#bd93f9",
	HighlightFgName:   "#282a36",
	DisabledColorName: "#6272a4",
	ErrorColorName:    "#ff5555",
	SuccessColorName:  "#50fa7b",
}

// ThemeNord uses the Nord arctic color palette with cool blue tones.
var ThemeNord = Theme{
	Name:        "nord",
	DisplayName: "Nord",

	PrimitiveBackgroundColor: tcell.NewHexColor(0x2E3440),
	ContrastBackgroundColor:  tcell.NewHexColor(0x3B4252),
	BorderColor:              tcell.NewHexColor(0x88C0D0),
	PrimaryTextColor:         tcell.NewHexColor(0xECEFF4),
	SecondaryTextColor:       tcell.NewHexColor(0xD8DEE9),
	InverseTextColor:         tcell.NewHexColor(0x2E3440),
	FieldFocusedBg:           tcell.NewHexColor(0x3B4252),
	FieldUnfocusedBg:         tcell.NewHexColor(0x2E3440),

	BgColorName:       "#2e3440",
	AccentColorName:   "#88c0d0",
	TextColorName:     "#eceff4",
	HighlightBgName:   "#88c0d0",
	HighlightFgName:   "#2e3440",
	DisabledColorName: "#4c566a",
	ErrorColorName:    "#bf616a",
	SuccessColorName:  "#a3be8c",
}

// ThemeGruvbox uses the Gruvbox color scheme with warm, earthy tones.
var ThemeGruvbox = Theme{
	Name:        "gruvbox",
	DisplayName: "Gruvbox",

	PrimitiveBackgroundColor: tcell.NewHexColor(0x282828),
	ContrastBackgroundColor:  tcell.NewHexColor(0x3C3836),
	BorderColor:              tcell.NewHexColor(0xFABD2F),
	PrimaryTextColor:         tcell.NewHexColor(0xEBDBB2),
	SecondaryTextColor:       tcell.NewHexColor(0xA89984),
	InverseTextColor:         tcell.NewHexColor(0x282828),
	FieldFocusedBg:           tcell.NewHexColor(0x504945),
	FieldUnfocusedBg:         tcell.NewHexColor(0x282828),

	BgColorName:       "#282828",
	AccentColorName:   "#fabd2f",
	TextColorName:     "#ebdbb2",
	HighlightBgName:   "#fabd2f",
	HighlightFgName:   "#282828",
	DisabledColorName: "#a89984",
	ErrorColorName:    "#fb4934",
	SuccessColorName:  "#b8bb26",
}

// ThemeMonogreen is green on black.
var ThemeMonogreen = Theme{
	Name:        "monogreen",
	DisplayName: "Mono Green (Retro)",

	PrimitiveBackgroundColor: tcell.ColorBlack,
	ContrastBackgroundColor:  tcell.NewHexColor(0x0A1A0A),
	BorderColor:              tcell.ColorGreen,
	PrimaryTextColor:         tcell.ColorGreen,
	SecondaryTextColor:       tcell.ColorDarkGreen,
	InverseTextColor:         tcell.ColorBlack,
	FieldFocusedBg:           tcell.ColorDarkGreen,
	FieldUnfocusedBg:         tcell.ColorBlack,

	BgColorName:       "black",
	AccentColorName:   "green",
	TextColorName:     "green",
	HighlightBgName:   "green",
	HighlightFgName:   "black",
	DisabledColorName: "darkgreen",
	ErrorColorName:    "red",
	SuccessColorName:  "lime",
}

// AvailableThemes maps theme names, as used in config.toml, to themes.
var AvailableThemes = map[string]*Theme{
	"default":       &ThemeDefault,
	"high_contrast": &ThemeHighContrast,
	"dracula":       &ThemeDracula,
	"nord":          &ThemeNord,
	"gruvbox":       &ThemeGruvbox,
	"monogreen":     &ThemeMonogreen,
}

var (
	currentTheme = &ThemeDefault
	themeMu      syncutil.RWMutex
)

// CurrentTheme returns the currently active theme.
func CurrentTheme() *Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the current theme by name.
// Returns false if the theme name is not found.
func SetCurrentTheme(name string) bool {
	theme, ok := AvailableThemes[name]
	if !ok {
		return false
	}
	themeMu.Lock()
	currentTheme = theme
	themeMu.Unlock()
	ApplyTheme(theme)
	return true
}

// ApplyTheme applies the given theme to tview's global styles.
func ApplyTheme(theme *Theme) {
	tview.Styles.PrimitiveBackgroundColor = theme.PrimitiveBackgroundColor
	tview.Styles.ContrastBackgroundColor = theme.ContrastBackgroundColor
	tview.Styles.BorderColor = theme.BorderColor
	tview.Styles.TitleColor = theme.BorderColor
	tview.Styles.PrimaryTextColor = theme.PrimaryTextColor
	tview.Styles.SecondaryTextColor = theme.SecondaryTextColor
	tview.Styles.InverseTextColor = theme.InverseTextColor
}
