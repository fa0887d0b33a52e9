package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/etchsim/internal/etch"
	"github.com/san-kum/etchsim/internal/vmath"
)

const (
	width           = 60
	height          = 24
	historyCapacity = 120
	frameBudget     = time.Second / 30
)

type TickMsg time.Time

// LiveModel replays a command list on a screen, a batch of commands per
// frame, and draws the scraped lines as they appear.
type LiveModel struct {
	screen    *etch.Screen
	targets   []vmath.Vec2
	next      int
	perFrame  int
	running   bool
	canvas    *Canvas
	threshold float64
	mass      []float64
	title     string
	started   time.Time
	elapsed   time.Duration
}

// NewLiveModel prepares a replay of targets on s. Cells below half the
// coating thickness are drawn as scraped.
func NewLiveModel(s *etch.Screen, targets []vmath.Vec2, title string) *LiveModel {
	return &LiveModel{
		screen:    s,
		targets:   targets,
		perFrame:  4,
		running:   true,
		canvas:    NewCanvas(width, height),
		threshold: s.Thickness() / 2,
		mass:      make([]float64, 0, historyCapacity),
		title:     title,
	}
}

func tick() tea.Cmd {
	return tea.Tick(frameBudget, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *LiveModel) Init() tea.Cmd {
	m.started = time.Now()
	m.draw()
	return tick()
}

func (m *LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "+", "=":
			m.perFrame = min(m.perFrame*2, max(1, len(m.targets)))
		case "-", "_":
			m.perFrame = max(1, m.perFrame/2)
		}
	case TickMsg:
		if m.running && !m.Done() {
			m.Advance(m.perFrame)
			m.draw()
		}
		return m, tick()
	}
	return m, nil
}

// Advance performs up to n commands and returns how many ran.
func (m *LiveModel) Advance(n int) int {
	done := 0
	for ; done < n && m.next < len(m.targets); done++ {
		m.screen.MoveTo(m.targets[m.next])
		m.next++
	}
	if done > 0 {
		m.mass = append(m.mass, m.screen.TotalMass())
		if len(m.mass) > historyCapacity {
			m.mass = m.mass[1:]
		}
		m.elapsed = time.Since(m.started)
	}
	return done
}

func (m *LiveModel) Done() bool { return m.next >= len(m.targets) }

func (m *LiveModel) draw() {
	m.canvas.Clear()
	m.canvas.DrawScreen(m.screen, m.threshold)
	m.canvas.DrawPoint(m.screen.Pointer(), m.screen.Extent())
}

func (m *LiveModel) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")

	switch {
	case m.Done():
		s.WriteString(finishedStyle.Render("FINISHED"))
	case m.running:
		s.WriteString(runningStyle.Render("RUNNING"))
	default:
		s.WriteString(pausedStyle.Render("PAUSED"))
	}
	s.WriteString("\n\n")

	progress := 1.0
	if len(m.targets) > 0 {
		progress = float64(m.next) / float64(len(m.targets))
	}
	s.WriteString(ProgressBar(progress, 24) + "\n\n")

	p := m.screen.Pointer()
	size := m.screen.Size()
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Commands", fmt.Sprintf("%d / %d", m.next, len(m.targets)))
	row("Steps", fmt.Sprintf("%d", m.screen.Steps()))
	row("Pointer", fmt.Sprintf("(%.4f, %.4f)", p.X, p.Y))
	row("Grid", fmt.Sprintf("%d x %d", size.X, size.Y))
	row("Total mass", fmt.Sprintf("%.6g", m.screen.TotalMass()))
	row("Per frame", fmt.Sprintf("%d", m.perFrame))
	row("Elapsed", m.elapsed.Round(time.Millisecond).String())

	s.WriteString("\n" + SparkMid.Render(Sparkline(m.mass, 24)) + "\n")
	s.WriteString(helpStyle.Render("SP:Pause +/-:Speed Q:Quit"))

	canvasView := canvasStyle.Render(m.canvas.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

// RunLive runs the replay until the user quits.
func RunLive(s *etch.Screen, targets []vmath.Vec2, title string) error {
	p := tea.NewProgram(NewLiveModel(s, targets, title), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
