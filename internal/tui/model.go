package tui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"

	"aeroviz-sim/internal/frame"
	"aeroviz-sim/internal/profile"
	"aeroviz-sim/internal/sim"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// FrameMsg carries one frame's stats from the simulator into the model.
type FrameMsg struct {
	Rows []frame.Row
}

// Writer adapts a bubbletea program into a sim.FrameWriter so the simulator
// loop pushes frames into the UI like any other sink. The program may be
// bound after construction; frames arriving before that are dropped.
type Writer struct {
	mu   sync.Mutex
	prog teaProgram
}

// NewWriter wraps prog, which may be nil.
func NewWriter(prog teaProgram) *Writer {
	return &Writer{prog: prog}
}

// SetProgram binds the destination program.
func (w *Writer) SetProgram(prog teaProgram) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.prog = prog
}

// WriteFrame forwards a single row.
func (w *Writer) WriteFrame(row frame.Row) error {
	return w.WriteFrames([]frame.Row{row})
}

// WriteFrames forwards a batch.
func (w *Writer) WriteFrames(rows []frame.Row) error {
	w.mu.Lock()
	prog := w.prog
	w.mu.Unlock()
	if prog != nil {
		prog.Send(FrameMsg{Rows: rows})
	}
	return nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7dd3fc"))
	statStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#a3a3a3"))
	stallStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f87171"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#737373"))
)

// Model is the interactive dashboard around the flow rendering.
type Model struct {
	sim      *sim.Simulator
	renderer *Renderer

	vp       viewport.Model
	width    int
	height   int
	ready    bool
	showHelp bool

	rows []frame.Row
}

// NewModel builds the dashboard model. Terminal size is probed up front so
// the first frame renders before the initial WindowSizeMsg arrives.
func NewModel(s *sim.Simulator, r *Renderer) Model {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		w, h = 100, 30
	}
	m := Model{sim: s, renderer: r, width: w, height: h}
	m.vp = viewport.New(w, max(h-6, 3))
	m.ready = true
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-6, 3)
	case FrameMsg:
		m.rows = msg.Rows
		m.vp.SetContent(m.renderer.Frame(m.vp.Width, m.vp.Height))
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "s":
			m.sim.ToggleStall()
		case " ":
			m.sim.TogglePause()
		case "c":
			m.sim.ClearOverrides()
		case "?":
			m.showHelp = !m.showHelp
		case "up":
			m.bumpSpeed(+10)
		case "down":
			m.bumpSpeed(-10)
		case "1", "2", "3", "4":
			vehicles := profile.Vehicles()
			idx := int(msg.String()[0] - '1')
			if idx < len(vehicles) {
				m.sim.SetVehicle(vehicles[idx])
			}
		}
	}
	return m, nil
}

func (m *Model) bumpSpeed(delta float64) {
	cur := 0.0
	if len(m.rows) > 0 {
		cur = m.rows[0].SpeedKmh
	}
	m.sim.SetSpeedOverride(cur + delta)
}

func (m Model) View() string {
	if !m.ready {
		return "initializing..."
	}
	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteByte('\n')
	sb.WriteString(m.vp.View())
	sb.WriteByte('\n')
	sb.WriteString(m.renderStatus())
	if m.showHelp {
		sb.WriteByte('\n')
		sb.WriteString(m.renderHelp())
	}
	return sb.String()
}

func (m Model) renderHeader() string {
	title := headerStyle.Render("aeroviz")
	vehicle := statStyle.Render("vehicle: " + string(m.sim.Vehicle()))
	return title + "  " + vehicle
}

func (m Model) renderStatus() string {
	if len(m.rows) == 0 {
		return statStyle.Render("waiting for frames...")
	}
	r := m.rows[0]
	parts := []string{
		fmt.Sprintf("t=%.1fs", r.T),
		fmt.Sprintf("speed=%.0f km/h", r.SpeedKmh),
		fmt.Sprintf("factor=%.2f", r.SpeedFactor),
		fmt.Sprintf("smoke=%d", r.SmokeActive),
		fmt.Sprintf("wake=%d", r.WakeActive),
		fmt.Sprintf("cp=%+.2f", r.MeanCp),
	}
	line := statStyle.Render(strings.Join(parts, "  "))
	if r.WingStalled {
		line += "  " + stallStyle.Render("WING STALLED")
	}
	return line
}

func (m Model) renderHelp() string {
	help := "q quit · s toggle wing stall · space pause · up/down pin speed · " +
		"c release overrides · 1-4 vehicle (formula/gt/roadster/suv) · ? close help"
	return helpStyle.Render(wordwrap.String(help, m.width))
}
