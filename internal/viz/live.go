package viz

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/hexwave/internal/export"
	"github.com/san-kum/hexwave/internal/metrics"
	"github.com/san-kum/hexwave/internal/session"
)

const (
	defaultWidth    = 80
	defaultHeight   = 36
	historyCapacity = 600
	maxRecorded     = 600
	tickRate        = time.Second / 60
	maxStepsPerTick = 32
)

// canvas origin inside the rendered view, from canvasStyle padding
const (
	canvasLeft = 2
	canvasTop  = 1
)

type TickMsg time.Time

// Model is the live view over one session.
type Model struct {
	session       *session.Session
	title         string
	metrics       []metrics.Metric
	energy        *metrics.Energy
	peak          *metrics.Peak
	canvas        *Canvas
	frame         []byte
	energyHistory []float64
	peakHistory   []float64
	running       bool
	stepsPerTick  int
	recording     bool
	recorded      [][]byte
	gifPath       string
	notice        string
	showHelp      bool
	maxW, maxH    int
}

// NewModel builds a running view. gifPath is where recordings are saved.
func NewModel(s *session.Session, title, gifPath string) Model {
	energy, peak := metrics.NewEnergy(), metrics.NewPeak()
	grid := s.Grid()
	m := Model{
		session:       s,
		title:         title,
		metrics:       []metrics.Metric{energy, peak, metrics.NewStability(10)},
		energy:        energy,
		peak:          peak,
		canvas:        FitCanvas(grid.Rows, grid.Cols, defaultWidth, defaultHeight),
		energyHistory: make([]float64, 0, historyCapacity),
		peakHistory:   make([]float64, 0, historyCapacity),
		running:       true,
		stepsPerTick:  1,
		gifPath:       gifPath,
		maxW:          defaultWidth,
		maxH:          defaultHeight,
	}
	m.paint()
	return m
}

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the session.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recording {
				m.saveGIF()
			}
			return m, tea.Quit
		case " ", "space":
			m.running = !m.running
		case "n":
			if !m.running {
				m.step(1)
				m.paint()
			}
		case "r":
			m.reset()
		case "+", "=":
			m.stepsPerTick = min(m.stepsPerTick*2, maxStepsPerTick)
		case "-", "_":
			m.stepsPerTick = max(m.stepsPerTick/2, 1)
		case "g":
			if m.recording {
				m.saveGIF()
				m.recording = false
				m.recorded = nil
			} else {
				m.recording = true
				m.recorded = make([][]byte, 0, maxRecorded)
				m.notice = "recording"
			}
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		// The help overlay shifts the canvas down.
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && !m.showHelp {
			m.click(msg.X-canvasLeft, msg.Y-canvasTop)
		}
	case tea.WindowSizeMsg:
		m.maxW = max(msg.Width-statsWidth-2*canvasLeft-1, 1)
		m.maxH = max(msg.Height-2*canvasTop, 1)
		grid := m.session.Grid()
		m.canvas = FitCanvas(grid.Rows, grid.Cols, m.maxW, m.maxH)
		m.paint()
	case TickMsg:
		if m.running {
			m.step(m.stepsPerTick)
		}
		m.paint()
		if m.recording && len(m.recorded) < maxRecorded {
			m.recorded = append(m.recorded, m.session.RenderFrame())
		}
		return m, tick()
	}
	return m, nil
}

// step advances up to n steps, observing metrics after each.
func (m *Model) step(n int) {
	grid := m.session.Grid()
	for i := 0; i < n; i++ {
		if !m.session.Advance() {
			return
		}
		for _, mt := range m.metrics {
			mt.Observe(m.session.Step(), grid, m.session.Current())
		}
		m.energyHistory = appendCapped(m.energyHistory, m.energy.Value())
		m.peakHistory = appendCapped(m.peakHistory, m.peak.Value())
	}
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

// click injects an impulse at a canvas character position.
func (m *Model) click(x, y int) {
	relX, relY, ok := m.canvas.Relative(x, y)
	if !ok {
		return
	}
	if m.session.InjectImpulse(relX, relY) {
		m.notice = fmt.Sprintf("impulse at (%.2f, %.2f)", relX, relY)
	} else {
		m.notice = "not an interior cell"
	}
	m.paint()
}

func (m *Model) reset() {
	m.session.Reset()
	for _, mt := range m.metrics {
		mt.Reset()
	}
	m.energyHistory = m.energyHistory[:0]
	m.peakHistory = m.peakHistory[:0]
	m.notice = ""
	m.paint()
}

func (m *Model) paint() {
	grid := m.session.Grid()
	m.frame = m.session.RenderInto(m.frame)
	m.canvas.Paint(m.frame, grid.Rows, grid.Cols)
}

func (m *Model) saveGIF() {
	if len(m.recorded) == 0 {
		return
	}
	f, err := os.Create(m.gifPath)
	if err != nil {
		m.notice = err.Error()
		return
	}
	defer f.Close()

	grid := m.session.Grid()
	pal := export.Palette(m.session.Colormap(), m.session.Background())
	if err := export.WriteGIF(f, m.recorded, grid.Rows, grid.Cols, 2, pal, 2); err != nil {
		m.notice = err.Error()
		return
	}
	m.notice = fmt.Sprintf("saved %d frames to %s", len(m.recorded), m.gifPath)
}

func (m Model) status() string {
	switch {
	case m.session.IsDone():
		return "DONE"
	case m.recording:
		return "RECORDING"
	case !m.running:
		return "PAUSED"
	}
	return "RUNNING"
}

// View renders the canvas beside the stats panel.
func (m Model) View() string {
	label, value := labelStyle(), valueStyle()
	p := m.session.Params()

	var s strings.Builder
	s.WriteString(headerStyle().Render(GradientText(strings.ToUpper(m.title), CurrentTheme.Primary, CurrentTheme.Accent)) + "\n")

	status := m.status()
	if status != "RUNNING" {
		status = lipgloss.NewStyle().Foreground(CurrentTheme.Warning).Bold(true).Render(status)
	}
	s.WriteString(status + "\n\n")

	progress := float64(m.session.Step()) / float64(max(m.session.MaxSteps(), 1))
	s.WriteString(ProgressBar(progress, 30) + "\n")
	s.WriteString(label.Render("Step") + value.Render(fmt.Sprintf("%d / %d", m.session.Step(), m.session.MaxSteps())) + "\n")
	s.WriteString(label.Render("Speed") + value.Render(fmt.Sprintf("%d steps/tick", m.stepsPerTick)) + "\n")
	s.WriteString(label.Render("Courant") + value.Render(fmt.Sprintf("%.3f", p.Courant())) + "\n")
	s.WriteString(label.Render("Energy") + value.Render(fmt.Sprintf("%.4g", m.energy.Value())) + "\n")
	s.WriteString(label.Render("Peak") + value.Render(fmt.Sprintf("%.4g", m.peak.Value())) + "\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
		s.WriteString(SparklineChart(m.peakHistory, 30) + "\n")
	}
	if m.notice != "" {
		s.WriteString("\n" + value.Render(m.notice) + "\n")
	}

	s.WriteString(helpStyle().Render(Separator(30) + "\nSP:Pause R:Reset Q:Quit\nG:Record T:Theme ?:Help\nClick:Impulse +/-:Speed"))

	canvasView := canvasStyle.Render(m.canvas.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  N        - Single step (paused)     ║
║  R        - Reset to initial impulse ║
║  +/-      - Steps per tick           ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  Click    - Inject impulse           ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// RunLive opens the live view full screen with mouse support.
func RunLive(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
