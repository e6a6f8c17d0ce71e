package panels

import (
	"image/color"

	"fyne.io/fyne/v2"
	fynetheme "fyne.io/fyne/v2/theme"

	"rotaclock/internal/core/theme"
)

// variantTheme pins the default theme to one variant regardless of the OS setting.
type variantTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

func (pinned variantTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return pinned.Theme.Color(name, pinned.variant)
}

// ThemeFor returns the fyne theme for a stored variant.
func ThemeFor(variant theme.Variant) fyne.Theme {
	fyneVariant := fynetheme.VariantLight
	if variant == theme.Dark {
		fyneVariant = fynetheme.VariantDark
	}
	return variantTheme{Theme: fynetheme.DefaultTheme(), variant: fyneVariant}
}

// ApplyTheme returns the apply hook of a theme.Controller for app.
func ApplyTheme(app fyne.App) func(theme.Variant) {
	return func(variant theme.Variant) {
		app.Settings().SetTheme(ThemeFor(variant))
	}
}

// SystemDark reports the platform dark-mode preference.
func SystemDark(app fyne.App) func() bool {
	return func() bool {
		return app.Settings().ThemeVariant() == fynetheme.VariantDark
	}
}
