package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/mpolane/gravsim/internal/physics"
	"github.com/mpolane/gravsim/internal/scenario"
	"github.com/mpolane/gravsim/internal/sim"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 600
	trailCapacity   = 2000
)

// TickMsg drives the simulation at the frame rate.
type TickMsg time.Time

// Model holds the simulation state and the terminal view buffers.
type Model struct {
	bodies  []*physics.Body
	stepper *sim.Stepper
	params  sim.Params
	gen     *scenario.Generator
	preset  scenario.Preset
	opts    scenario.Options
	seed    int64

	frameDelta float64
	tick       int
	t          float64
	running    bool
	showHelp   bool
	showTrails bool

	canvas        *Canvas
	trails        [][2]float64
	energyHistory []float64
}

// NewModel builds the live view for an already generated scenario.
func NewModel(bodies []*physics.Body, params sim.Params, preset scenario.Preset, opts scenario.Options, seed int64, frameDelta float64) Model {
	return Model{
		bodies:        bodies,
		stepper:       sim.NewStepper(seed),
		params:        params,
		gen:           scenario.New(seed),
		preset:        preset,
		opts:          opts,
		seed:          seed,
		frameDelta:    frameDelta,
		running:       true,
		showTrails:    true,
		canvas:        NewCanvas(canvasWidth, canvasHeight, fitExtent(bodies)),
		trails:        make([][2]float64, 0, trailCapacity),
		energyHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "p":
			m.gen.Perturb(m.bodies)
		case "a":
			m.bodies, _ = m.gen.AddRandomBody(m.bodies)
		case "c":
			m.params.Collisions = !m.params.Collisions
		case "t":
			m.showTrails = !m.showTrails
			if !m.showTrails {
				m.trails = m.trails[:0]
			}
		case "up", "k":
			m.params.TimeScale *= 1.25
		case "down", "j":
			m.params.TimeScale /= 1.25
		case "0":
			m.params.TimeScale = 0
		case "1":
			m.params.TimeScale = sim.DefaultTimeScale
		case "G":
			m.params.G *= 1.25
		case "g":
			m.params.G /= 1.25
		case "+", "=":
			m.canvas.Extent /= 1.25
		case "-", "_":
			m.canvas.Extent *= 1.25
		case "f":
			m.canvas.Extent = fitExtent(m.bodies)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// step advances one frame and records history.
func (m *Model) step() {
	m.stepper.Step(m.bodies, m.params, m.frameDelta)
	m.tick++
	m.t += m.frameDelta * m.params.TimeScale

	energy := physics.TotalEnergy(m.bodies, m.params.G, m.params.Softening)
	m.energyHistory = append(m.energyHistory, energy)
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}

	if m.showTrails {
		for _, b := range m.bodies {
			m.trails = append(m.trails, [2]float64{b.Pos.X, b.Pos.Z})
		}
		if len(m.trails) > trailCapacity {
			m.trails = m.trails[len(m.trails)-trailCapacity:]
		}
	}
}

// reset regenerates the scenario from the original seed.
func (m *Model) reset() {
	m.gen = scenario.New(m.seed)
	bodies, err := m.gen.Generate(m.preset, m.opts)
	if err == nil {
		m.bodies = bodies
	}
	m.stepper = sim.NewStepper(m.seed)
	m.tick = 0
	m.t = 0
	m.trails = m.trails[:0]
	m.energyHistory = m.energyHistory[:0]
	m.canvas.Extent = fitExtent(m.bodies)
}

func (m *Model) draw() {
	m.canvas.Clear()
	for _, p := range m.trails {
		m.canvas.Plot(p[0], p[1])
	}
	for _, b := range m.bodies {
		m.canvas.Disc(b.Pos.X, b.Pos.Z, b.Radius)
	}
}

// View renders the canvas, stats pane, and energy chart.
func (m Model) View() string {
	m.draw()

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(string(m.preset))) + "\n")
	if m.running {
		s.WriteString("RUNNING\n")
	} else {
		s.WriteString(pausedStyle.Render("PAUSED") + "\n")
	}
	s.WriteString(canvasStyle.Render(m.canvas.String()) + "\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(40), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	momentum := physics.TotalMomentum(m.bodies)
	s.WriteString(labelStyle.Render("Tick") + valueStyle.Render(fmt.Sprintf("%d", m.tick)) + "\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d", len(m.bodies))) + "\n")
	s.WriteString(labelStyle.Render("G") + valueStyle.Render(fmt.Sprintf("%.3f", m.params.G)) + "\n")
	s.WriteString(labelStyle.Render("Time scale") + valueStyle.Render(fmt.Sprintf("%.3f", m.params.TimeScale)) + "\n")
	s.WriteString(labelStyle.Render("Collisions") + valueStyle.Render(fmt.Sprintf("%v", m.params.Collisions)) + "\n")
	s.WriteString(labelStyle.Render("Momentum") + valueStyle.Render(fmt.Sprintf("%.4f", momentum.Length())) + "\n")
	if len(m.energyHistory) > 0 {
		s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.4f", m.energyHistory[len(m.energyHistory)-1])) + "\n")
	}

	if m.showHelp {
		s.WriteString(helpStyle.Render("space pause | r reset | p perturb | a add body | c collisions | t trails\nk/j time scale | G/g gravity | +/- zoom | f fit | 0 freeze | 1 normal | q quit"))
	} else {
		s.WriteString(helpStyle.Render("? help | q quit"))
	}
	return s.String()
}

// fitExtent picks a view half-width covering all bodies with margin.
func fitExtent(bodies []*physics.Body) float64 {
	max := 1.0
	for _, b := range bodies {
		if v := abs(b.Pos.X); v > max {
			max = v
		}
		if v := abs(b.Pos.Z); v > max {
			max = v
		}
	}
	return max * 1.3
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
