// This file defines the application theme: the stock Fyne theme with a
// fixed light/dark variant and slightly larger form text for warehouse
// screens.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// PalletTheme wraps the default Fyne theme with a configurable variant.
type PalletTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	system  bool
}

// NewPalletTheme creates a theme for the given AppConfig.Theme value.
func NewPalletTheme(name string) *PalletTheme {
	t := &PalletTheme{base: theme.DefaultTheme()}
	t.SetVariantName(name)
	return t
}

// SetVariantName switches between "light", "dark" and "system".
func (t *PalletTheme) SetVariantName(name string) {
	switch name {
	case "light":
		t.variant, t.system = theme.VariantLight, false
	case "dark":
		t.variant, t.system = theme.VariantDark, false
	default:
		t.system = true
	}
}

// Color delegates to the base theme with the stored variant.
func (t *PalletTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.system {
		return t.base.Color(name, variant)
	}
	return t.base.Color(name, t.variant)
}

func (t *PalletTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *PalletTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size enlarges body text and padding for the shipment form.
func (t *PalletTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 15
	case theme.SizeNameHeadingText:
		return 22
	case theme.SizeNamePadding:
		return 5
	default:
		return t.base.Size(name)
	}
}
