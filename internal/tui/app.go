package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kwhitlock/fiberlab/internal/world"
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type model struct {
	w        *world.World
	v        *view
	rep      world.StepReport
	steps    int // total steps to run; 0 means run until quit
	perFrame int
	paused   bool
	done     bool
}

// NewApp builds a live view over a freshly constructed world. steps bounds
// the run; pass 0 to run until the user quits.
func NewApp(w *world.World, steps int) *model {
	v := newView(w, 78)
	v.observe(w.Snapshot())
	return &model{
		w:        w,
		v:        v,
		steps:    steps,
		perFrame: 10,
	}
}

func (m *model) Init() tea.Cmd { return tick() }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "+", "=":
			if m.perFrame < 1000 {
				m.perFrame *= 2
			}
		case "-", "_":
			if m.perFrame > 1 {
				m.perFrame /= 2
			}
		}
		return m, nil
	case tickMsg:
		if m.done {
			return m, tea.Quit
		}
		if !m.paused {
			n := m.perFrame
			if m.steps > 0 && m.w.StepCount()+n > m.steps {
				n = m.steps - m.w.StepCount()
			}
			if n > 0 {
				m.rep = m.w.StepN(n)
			}
			m.v.observe(m.w.Snapshot())
			if m.steps > 0 && m.w.StepCount() >= m.steps {
				m.done = true
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *model) View() string {
	return m.v.render(m.rep)
}

// Run blocks until the live session ends.
func Run(w *world.World, steps int) error {
	p := tea.NewProgram(NewApp(w, steps))
	_, err := p.Run()
	return err
}
