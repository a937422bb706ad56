// Package theme holds the color palettes selectable through
// [appearance] theme in the config file.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme maps the dashboard's color roles to concrete colors.
type Theme struct {
	Name string

	Background   lipgloss.Color // behind everything
	Surface      lipgloss.Color // card and bar fill
	SurfaceHover lipgloss.Color // active tab, selected country row
	Border       lipgloss.Color
	BorderAccent lipgloss.Color // loading and help cards

	TextDim     lipgloss.Color
	TextMuted   lipgloss.Color // labels
	TextPrimary lipgloss.Color // figures

	Accent       lipgloss.Color
	AccentBright lipgloss.Color

	// Budget signals: green is within income, yellow and orange are
	// tightening, red is a shortfall.
	Green       lipgloss.Color
	GreenBright lipgloss.Color
	Yellow      lipgloss.Color
	Orange      lipgloss.Color
	Red         lipgloss.Color
	Cyan        lipgloss.Color
}

// FlexokiDark is the default palette.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   "#100F0F",
	Surface:      "#1C1B1A",
	SurfaceHover: "#282726",
	Border:       "#403E3C",
	BorderAccent: "#3AA99F",
	TextDim:      "#575653",
	TextMuted:    "#878580",
	TextPrimary:  "#FFFCF0",
	Accent:       "#3AA99F",
	AccentBright: "#5BC8BE",
	Green:        "#879A39",
	GreenBright:  "#A3B859",
	Yellow:       "#D0A215",
	Orange:       "#DA702C",
	Red:          "#D14D41",
	Cyan:         "#24837B",
}

// CatppuccinMocha is a pastel palette.
var CatppuccinMocha = Theme{
	Name:         "catppuccin-mocha",
	Background:   "#1E1E2E",
	Surface:      "#313244",
	SurfaceHover: "#45475A",
	Border:       "#585B70",
	BorderAccent: "#89B4FA",
	TextDim:      "#6C7086",
	TextMuted:    "#A6ADC8",
	TextPrimary:  "#CDD6F4",
	Accent:       "#89B4FA",
	AccentBright: "#B4D0FB",
	Green:        "#A6E3A1",
	GreenBright:  "#C6F6C1",
	Yellow:       "#F9E2AF",
	Orange:       "#FAB387",
	Red:          "#F38BA8",
	Cyan:         "#94E2D5",
}

// TokyoNight is a blue palette.
var TokyoNight = Theme{
	Name:         "tokyo-night",
	Background:   "#1A1B26",
	Surface:      "#24283B",
	SurfaceHover: "#343A52",
	Border:       "#565F89",
	BorderAccent: "#7AA2F7",
	TextDim:      "#565F89",
	TextMuted:    "#A9B1D6",
	TextPrimary:  "#C0CAF5",
	Accent:       "#7AA2F7",
	AccentBright: "#A9C1FF",
	Green:        "#9ECE6A",
	GreenBright:  "#B9E87A",
	Yellow:       "#E0AF68",
	Orange:       "#FF9E64",
	Red:          "#F7768E",
	Cyan:         "#7DCFFF",
}

// Terminal sticks to the 16 ANSI colors so it follows the terminal's own scheme.
var Terminal = Theme{
	Name:         "terminal",
	Background:   "0",
	Surface:      "0",
	SurfaceHover: "8",
	Border:       "8",
	BorderAccent: "6",
	TextDim:      "8",
	TextMuted:    "7",
	TextPrimary:  "15",
	Accent:       "6",
	AccentBright: "14",
	Green:        "2",
	GreenBright:  "10",
	Yellow:       "3",
	Orange:       "3",
	Red:          "1",
	Cyan:         "6",
}

// All lists the selectable palettes; the first is the default.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// Active is the palette every view renders with.
var Active = All[0]

// Names returns the palette names in menu order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// ByName looks up a palette, falling back to the default for unknown names.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return All[0]
}

// SetActive switches the palette used by subsequent renders.
func SetActive(name string) {
	Active = ByName(name)
}
