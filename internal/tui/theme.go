package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// SetupTheme configures the Rose Pine palette.
func SetupTheme() {
	tview.Styles = tview.Theme{
		PrimitiveBackgroundColor:    tcell.NewRGBColor(35, 33, 54),
		ContrastBackgroundColor:     tcell.NewRGBColor(42, 39, 63),
		MoreContrastBackgroundColor: tcell.NewRGBColor(57, 53, 82),
		BorderColor:                 tcell.NewRGBColor(110, 106, 134),
		TitleColor:                  tcell.NewRGBColor(235, 188, 186),
		GraphicsColor:               tcell.NewRGBColor(156, 207, 216),
		PrimaryTextColor:            tcell.NewRGBColor(224, 222, 244),
		SecondaryTextColor:          tcell.NewRGBColor(144, 140, 170),
		TertiaryTextColor:           tcell.NewRGBColor(110, 106, 134),
		InverseTextColor:            tcell.NewRGBColor(35, 33, 54),
		ContrastSecondaryTextColor:  tcell.NewRGBColor(224, 222, 244),
	}
}
