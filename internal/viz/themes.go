package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the color scheme of the live view.
type Theme struct {
	Name     string
	Particle lipgloss.Color
	Header   lipgloss.Color
	Active   lipgloss.Color
	Graph    lipgloss.Color
	Border   lipgloss.Color
	Muted    lipgloss.Color
	Running  lipgloss.Color
	Paused   lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:     "cyberpunk",
		Particle: lipgloss.Color("#00ffff"),
		Header:   lipgloss.Color("#ff00ff"),
		Active:   lipgloss.Color("#ffff00"),
		Graph:    lipgloss.Color("#00ff88"),
		Border:   lipgloss.Color("#444466"),
		Muted:    lipgloss.Color("#666688"),
		Running:  lipgloss.Color("#00ff88"),
		Paused:   lipgloss.Color("#ffaa00"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Particle: lipgloss.Color("#00ff00"), // green phosphor
		Header:   lipgloss.Color("#88ff88"),
		Active:   lipgloss.Color("#ffff00"),
		Graph:    lipgloss.Color("#00cc00"),
		Border:   lipgloss.Color("#005500"),
		Muted:    lipgloss.Color("#005500"),
		Running:  lipgloss.Color("#88ff88"),
		Paused:   lipgloss.Color("#ffff00"),
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Particle: lipgloss.Color("#00a8cc"),
		Header:   lipgloss.Color("#e0f0ff"),
		Active:   lipgloss.Color("#ffd700"),
		Graph:    lipgloss.Color("#0077be"),
		Border:   lipgloss.Color("#4488aa"),
		Muted:    lipgloss.Color("#4488aa"),
		Running:  lipgloss.Color("#00ff88"),
		Paused:   lipgloss.Color("#ffcc00"),
	}

	CurrentTheme = ThemeCyberpunk

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
	}
)

// GetTheme returns the named theme, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
	SetTheme(names[0])
}
