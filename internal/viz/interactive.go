package viz

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/hexwave/internal/config"
	"github.com/san-kum/hexwave/internal/experiment"
)

const (
	stateMenu = iota
	stateSim
)

// app lists the presets and opens the chosen one in a live view.
type app struct {
	state    int
	cursor   int
	presets  []string
	err      error
	gifPath  string
	logger   *slog.Logger
	live     Model
	lastSize tea.WindowSizeMsg
}

func NewInteractiveApp(gifPath string, logger *slog.Logger) *app {
	return &app{
		state:   stateMenu,
		presets: config.ListPresets(),
		gifPath: gifPath,
		logger:  logger,
	}
}

func (a app) Init() tea.Cmd { return nil }

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		a.lastSize = size
	}
	if a.state == stateSim {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
			a.state = stateMenu
			return a, nil
		}
		live, cmd := a.live.Update(msg)
		a.live = live.(Model)
		return a, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.presets)-1 {
			a.cursor++
		}
	case "enter", " ":
		return a.start()
	}
	return a, nil
}

func (a app) start() (tea.Model, tea.Cmd) {
	name := a.presets[a.cursor]
	exp := experiment.New(config.GetPreset(name), a.logger)
	if err := exp.Setup(); err != nil {
		a.err = err
		return a, nil
	}
	a.err = nil
	a.live = NewModel(exp.Session(), name, a.gifPath)
	if a.lastSize.Width > 0 {
		live, _ := a.live.Update(a.lastSize)
		a.live = live.(Model)
	}
	a.state = stateSim
	return a, a.live.Init()
}

func (a app) View() string {
	if a.state == stateSim {
		return a.live.View()
	}

	h := lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true)
	sub := lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
	sel := lipgloss.NewStyle().Foreground(CurrentTheme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(CurrentTheme.Accent)

	var b strings.Builder
	b.WriteString("\n\n    " + h.Render("HEXWAVE") + "\n    " + sub.Render("wave propagation on a hexagonal lattice") + "\n    " + sub.Render(strings.Repeat("─", 25)) + "\n\n")
	for i, name := range a.presets {
		cfg := config.Presets[name]
		info := fmt.Sprintf("%s, %d steps", cfg.Shape, cfg.Steps)
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", h.Render("▸"), sel.Render(fmt.Sprintf("%-10s", name)), desc.Render(info)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", sub.Render(fmt.Sprintf("%-10s", name)), sub.Render(info)))
		}
	}
	if a.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(CurrentTheme.Warning).Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n    " + sub.Render("j/k navigate  enter select  esc back  q quit") + "\n")
	return b.String()
}

func RunInteractive(gifPath string, logger *slog.Logger) error {
	_, err := tea.NewProgram(NewInteractiveApp(gifPath, logger), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
