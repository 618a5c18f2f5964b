package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/si3rc0-sw/mini-calendar-tool/internal/selection"
)

// Fixed character geometry of one month panel. Mouse hit-testing and the
// auto-fit footprint both derive from these, so View must render exactly
// this shape.
const (
	cellW    = 4 // day cell: right-aligned 3 digits plus one space
	weekColW = 3 // ISO week column
	panelW   = weekColW + 7*cellW
	panelH   = 2 + 6 // header + day names + six grid rows

	gapX = 1
	gapY = 1

	strideW = panelW + gapX
	strideH = panelH + gapY

	navRows = 1 // navigation line above the panels
)

// styles bundles the lipgloss styles of one theme.
type styles struct {
	Nav     lipgloss.Style
	Title   lipgloss.Style
	Header  lipgloss.Style
	DayName lipgloss.Style
	WeekNum lipgloss.Style
	Footer  lipgloss.Style
	Status  lipgloss.Style

	Palette selection.Palette
}

func lightPalette() selection.Palette {
	return selection.Palette{
		Accent:    "#0078D4",
		AccentFG:  "#FFFFFF",
		SelBG:     "#CCE4F7",
		SelFG:     "#1B1B1B",
		GridBG:    "",
		TextFG:    "#1B1B1B",
		WeekendFG: "#CC3333",
	}
}

func darkPalette() selection.Palette {
	return selection.Palette{
		Accent:    "#0078D4",
		AccentFG:  "#FFFFFF",
		SelBG:     "#264F78",
		SelFG:     "#FFFFFF",
		GridBG:    "",
		TextFG:    "#DDDDDD",
		WeekendFG: "#E06C75",
	}
}

func newStyles(dark bool) styles {
	p := lightPalette()
	headerFG, mutedFG := "#444444", "#888888"
	if dark {
		p = darkPalette()
		headerFG, mutedFG = "#BBBBBB", "#777777"
	}
	return styles{
		Nav:     lipgloss.NewStyle().Foreground(lipgloss.Color(headerFG)),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.TextFG)),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.TextFG)).Width(panelW).Align(lipgloss.Center),
		DayName: lipgloss.NewStyle().Foreground(lipgloss.Color(headerFG)),
		WeekNum: lipgloss.NewStyle().Foreground(lipgloss.Color(mutedFG)),
		Footer:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.TextFG)),
		Status:  lipgloss.NewStyle().Foreground(lipgloss.Color(mutedFG)),

		Palette: p,
	}
}

// stripeIndex maps a character position within a cell to one of n stripe
// colors, splitting the cell width into n near-equal runs.
func stripeIndex(pos, width, n int) int {
	if n <= 1 || width <= 0 {
		return 0
	}
	i := pos * n / width
	if i >= n {
		i = n - 1
	}
	return i
}

// renderCell styles cell text with a (possibly striped) background. A
// single background colors the whole cell; stacked holiday colors are
// split into per-character runs. An empty background string means no
// background at all.
func renderCell(text string, bgs []string, fg string) string {
	if len(bgs) <= 1 {
		st := lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
		if len(bgs) == 1 && bgs[0] != "" {
			st = st.Background(lipgloss.Color(bgs[0]))
		}
		return st.Render(text)
	}

	runes := []rune(text)
	var b strings.Builder
	for i, r := range runes {
		bg := bgs[stripeIndex(i, len(runes), len(bgs))]
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(fg)).
			Background(lipgloss.Color(bg)).
			Render(string(r)))
	}
	return b.String()
}

// contrastFG picks black or white text for a marker background by its
// perceived lightness.
func contrastFG(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "#FFFFFF"
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#FFFFFF"
}
