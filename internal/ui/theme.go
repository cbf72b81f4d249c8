package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// compactTheme tightens spacing and type sizes so many task rows fit on
// screen. Everything not overridden falls through to the embedded default.
type compactTheme struct {
	fyne.Theme
}

// NewCompactTheme returns the application theme
func NewCompactTheme() fyne.Theme {
	return &compactTheme{Theme: theme.DefaultTheme()}
}

// Status colors match the terminal job states shown in each row
var (
	colorCompleted = color.RGBA{R: 52, G: 168, B: 83, A: 255}
	colorFailed    = color.RGBA{R: 197, G: 48, B: 48, A: 255}
	colorAccent    = color.RGBA{R: 21, G: 101, B: 192, A: 255}
)

var compactSizes = map[fyne.ThemeSizeName]float32{
	theme.SizeNamePadding:        3,
	theme.SizeNameInnerPadding:   6,
	theme.SizeNameLineSpacing:    2,
	theme.SizeNameScrollBar:      10,
	theme.SizeNameText:           13,
	theme.SizeNameHeadingText:    16,
	theme.SizeNameSubHeadingText: 13,
	theme.SizeNameInputRadius:    3,
}

func (t *compactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameSuccess:
		return colorCompleted
	case theme.ColorNameError:
		return colorFailed
	case theme.ColorNamePrimary:
		return colorAccent
	}
	return t.Theme.Color(name, variant)
}

func (t *compactTheme) Size(name fyne.ThemeSizeName) float32 {
	if size, ok := compactSizes[name]; ok {
		return size
	}
	return t.Theme.Size(name)
}
