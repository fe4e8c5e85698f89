// Package tui is a terminal front end for a Life engine built on bubbletea.
//
// The model never blocks the engine: engine events only mark the view
// dirty through a one-slot channel, and the model re-reads the board when
// it drains that channel.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lifeboard/pkg/core"
	"lifeboard/pkg/sims/life"
)

// changedMsg reports that the engine emitted at least one event since the
// last refresh.
type changedMsg struct{}

// Model is the bubbletea model for one engine.
type Model struct {
	engine *life.Engine
	coin   core.Coin

	changed     chan struct{}
	unsubscribe func()

	snap     core.Snapshot
	running  bool
	gen      uint64
	interval time.Duration

	cursorX, cursorY int
	status           string
	err              string
	quitting         bool
}

// New builds a model over e. Randomize draws from coin; a nil coin uses a
// wall-clock seed on every press. Call Close once the program exits.
func New(e *life.Engine, coin core.Coin) *Model {
	m := &Model{
		engine:  e,
		coin:    coin,
		changed: make(chan struct{}, 1),
	}
	m.unsubscribe = e.Subscribe(func(life.Event) {
		select {
		case m.changed <- struct{}{}:
		default:
		}
	})
	m.refresh()
	return m
}

// Close detaches the model from the engine.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m *Model) waitForChange() tea.Cmd {
	ch := m.changed
	return func() tea.Msg {
		<-ch
		return changedMsg{}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case changedMsg:
		m.refresh()
		return m, m.waitForChange()

	case tea.KeyMsg:
		m.err = ""
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "left", "h":
			m.moveCursor(-1, 0)
		case "right", "l":
			m.moveCursor(1, 0)
		case "up", "k":
			m.moveCursor(0, -1)
		case "down", "j":
			m.moveCursor(0, 1)
		case " ":
			if m.engine.Running() {
				m.engine.Stop()
				m.status = "stopped"
			} else {
				m.engine.Start()
				m.status = "running"
			}
		case "n":
			if !m.engine.SingleStep() {
				m.err = "stop the simulation to step"
			}
		case "enter", "x":
			m.report(m.engine.Toggle(m.cursorX, m.cursorY))
		case "c":
			m.report(m.engine.Clear())
		case "r":
			m.report(m.engine.Randomize(m.coin))
		case "+", "=":
			m.nudgeInterval(1)
		case "-", "_":
			m.nudgeInterval(-1)
		}
		m.refresh()
	}
	return m, nil
}

func (m *Model) report(err error) {
	if err != nil {
		m.err = err.Error()
	}
}

func (m *Model) moveCursor(dx, dy int) {
	m.cursorX = clampInt(m.cursorX+dx, 0, m.snap.W-1)
	m.cursorY = clampInt(m.cursorY+dy, 0, m.snap.H-1)
}

func (m *Model) nudgeInterval(dir int) {
	for _, ctrl := range m.engine.ParameterControls() {
		if ctrl.Key != life.TickIntervalKey {
			continue
		}
		ms := ctrl.Clamp(int(m.engine.TickInterval().Milliseconds()) + dir*ctrl.Step)
		if !m.engine.SetIntParameter(ctrl.Key, ms) {
			m.err = fmt.Sprintf("interval %dms rejected", ms)
		}
		return
	}
}

func (m *Model) refresh() {
	m.snap = m.engine.Snapshot()
	m.running = m.engine.Running()
	m.gen = m.engine.Generation()
	m.interval = m.engine.TickInterval()
	m.cursorX = clampInt(m.cursorX, 0, m.snap.W-1)
	m.cursorY = clampInt(m.cursorY, 0, m.snap.H-1)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("lifeboard  %s  %dx%d", m.engine.Name(), m.snap.W, m.snap.H)))
	b.WriteString("\n")
	b.WriteString(m.renderBoard())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space start/stop · n step · arrows move · enter toggle · c clear · r randomize · +/- interval · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderBoard() string {
	editable := !m.running
	var b strings.Builder
	for y := 0; y < m.snap.H; y++ {
		for x := 0; x < m.snap.W; x++ {
			alive := m.snap.Alive(x, y)
			cursor := editable && x == m.cursorX && y == m.cursorY
			switch {
			case cursor && alive:
				b.WriteString(cursorLiveStyle.Render("██"))
			case cursor:
				b.WriteString(cursorDeadStyle.Render("  "))
			case alive:
				b.WriteString(liveStyle.Render("██"))
			default:
				b.WriteString(deadStyle.Render("  "))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderStatus() string {
	state := stoppedBadge.Render(" STOPPED ")
	if m.running {
		state = runningBadge.Render(" RUNNING ")
	}
	line := fmt.Sprintf("%s  gen %d  pop %d  interval %dms",
		state, m.gen, m.snap.Population(), m.interval.Milliseconds())
	if !m.running {
		line += statsStyle.Render(fmt.Sprintf("  cursor (%d,%d)", m.cursorX, m.cursorY))
	}
	if m.err != "" {
		line += "  " + errorStyle.Render(m.err)
	}
	return line
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#bd93f9"))

	liveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f8f8f2")).
			Background(lipgloss.Color("#282a36"))

	deadStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#282a36"))

	cursorLiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f8f8f2")).
			Background(lipgloss.Color("#6272a4"))

	cursorDeadStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#6272a4"))

	statsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	runningBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")).
			Background(lipgloss.Color("22"))

	stoppedBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			Background(lipgloss.Color("58"))
)
