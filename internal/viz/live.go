// Package viz renders a running simulation in the terminal. The engine
// runs on its own goroutine and hands samples over an unbuffered
// channel, so the display paces the run instead of racing it.
package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"spiralsim/internal/engine"
	"spiralsim/internal/trace"
)

const (
	chartWidth      = 60
	chartHeight     = 10
	historyCapacity = 600
	frameRate       = 30
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// streamObserver forwards samples to the display channel and drops out
// when the run context dies, so a closed display never wedges the run.
type streamObserver struct {
	ctx context.Context
	ch  chan trace.Sample
}

func (o streamObserver) OnStep(_ int, s trace.Sample) {
	select {
	case o.ch <- s:
	case <-o.ctx.Done():
	}
}

// Model is the live view state.
type Model struct {
	scenario string
	samples  chan trace.Sample
	errc     chan error
	cancel   context.CancelFunc

	history []float64
	latest  trace.Sample
	count   int
	paused  bool
	done    bool
	err     error
}

// NewModel wires an engine into a live view. The engine starts running
// immediately; the view consumes one sample per frame.
func NewModel(eng *engine.Engine) Model {
	ctx, cancel := context.WithCancel(context.Background())
	samples := make(chan trace.Sample)
	errc := make(chan error, 1)

	eng.AddObserver(streamObserver{ctx: ctx, ch: samples})
	go func() {
		_, err := eng.Run(ctx)
		errc <- err
		close(samples)
	}()

	return Model{
		scenario: eng.Config().Scenario.Name,
		samples:  samples,
		errc:     errc,
		cancel:   cancel,
		history:  make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles key input and consumes at most one sample per tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		}
	case TickMsg:
		if !m.paused && !m.done {
			select {
			case s, ok := <-m.samples:
				if !ok {
					m.done = true
					select {
					case m.err = <-m.errc:
					default:
					}
				} else {
					m.latest = s
					m.count++
					m.history = append(m.history, s.S)
					if len(m.history) > historyCapacity {
						m.history = m.history[1:]
					}
				}
			default:
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("SPIRAL "+strings.ToUpper(m.scenario)) + "\n")

	status := "RUNNING"
	switch {
	case m.err != nil && m.err != context.Canceled:
		status = errorStyle.Render(fmt.Sprintf("ABORTED: %v", m.err))
	case m.done:
		status = "DONE"
	case m.paused:
		status = "PAUSED"
	}
	s.WriteString(status + "\n")

	if len(m.history) > 1 {
		window := m.history
		if len(window) > chartWidth {
			window = window[len(window)-chartWidth:]
		}
		chart := asciigraph.Plot(window,
			asciigraph.Height(chartHeight),
			asciigraph.Width(chartWidth),
			asciigraph.Caption("S(t)"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.latest.T)) + "\n")
	s.WriteString(labelStyle.Render("Signal") + valueStyle.Render(fmt.Sprintf("%+.4f", m.latest.S)) + "\n")
	s.WriteString(labelStyle.Render("Coherence") + valueStyle.Render(fmt.Sprintf("%.4f", m.latest.C)) + "\n")
	s.WriteString(labelStyle.Render("Ratio") + valueStyle.Render(fmt.Sprintf("%.6f", m.latest.R)) + "\n")
	s.WriteString(labelStyle.Render("Samples") + valueStyle.Render(fmt.Sprintf("%d", m.count)) + "\n")

	s.WriteString(helpStyle.Render("SPACE:Pause  Q:Quit"))
	return s.String()
}

// Run shows the live view for a configured engine and blocks until the
// user quits or the run ends.
func Run(eng *engine.Engine) error {
	m := NewModel(eng)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	m.cancel()
	return err
}
