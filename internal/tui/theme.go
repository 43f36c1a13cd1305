package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

// ac builds an adaptive color (light terminal value, dark terminal value).
func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorChromeMutedFg  = ac("240", "250")
	colorChromeSubtleFg = ac("245", "243")

	headerStyle    = lipgloss.NewStyle().Bold(true)
	footerStyle    = lipgloss.NewStyle().Faint(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f39c12"))
	activeTabStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	tabStyle       = lipgloss.NewStyle().Foreground(colorChromeSubtleFg)
	doneStyle      = lipgloss.NewStyle().Foreground(colorChromeSubtleFg).Strikethrough(true)
)

// rowPalette is the cycling order for the row color key. Empty clears.
var rowPalette = []string{"", "#ffcccc", "#ffe5cc", "#fff8c6", "#e7ffd9", "#e4f0ff"}

func nextPaletteColor(current string) string {
	for i, c := range rowPalette {
		if c == current {
			return rowPalette[(i+1)%len(rowPalette)]
		}
	}
	return rowPalette[0]
}

func colorSwatch(color string) string {
	if color == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●") + " "
}

func newList(items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	// We render our own tab bar and footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("item", "items")
	// Bubble list defaults to quitting on ESC; here ESC is "back/cancel".
	l.KeyMap.Quit.SetKeys("q")
	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)
	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)
	return l
}
