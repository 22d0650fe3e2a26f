package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/dynarray/internal/dynarray"
	"github.com/san-kum/dynarray/internal/trace"
)

type TickMsg time.Time

// LiveModel appends the next integer on every tick until it reaches its
// target, redrawing the array and its growth chart as it goes.
type LiveModel struct {
	arr      *dynarray.DynamicArray[int]
	tracker  *dynarray.Tracker
	trace    *trace.Trace
	target   int
	interval time.Duration
	running  bool
	err      error
}

func NewLiveModel(target, fps int, tracker *dynarray.Tracker) LiveModel {
	if fps <= 0 {
		fps = 10
	}
	if tracker == nil {
		tracker = dynarray.NewTracker()
	}
	return LiveModel{
		arr:      dynarray.New[int](dynarray.WithTracker(tracker)),
		tracker:  tracker,
		trace:    &trace.Trace{},
		target:   target,
		interval: time.Second / time.Duration(fps),
		running:  true,
	}
}

func (m LiveModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m LiveModel) Init() tea.Cmd {
	return m.tick()
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.arr.Release()
			return m, tea.Quit
		case " ", "space":
			m.running = !m.running
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *LiveModel) step() {
	if m.err != nil || m.arr.Size() >= m.target {
		m.running = false
		return
	}
	before := m.arr.Capacity()
	if err := m.arr.Append(m.arr.Size()); err != nil {
		m.err = err
		m.running = false
		return
	}
	m.trace.Points = append(m.trace.Points, trace.Point{
		Append:   m.arr.Size(),
		Size:     m.arr.Size(),
		Capacity: m.arr.Capacity(),
		Grew:     m.arr.Capacity() != before,
	})
}

func (m *LiveModel) reset() {
	m.arr.Release()
	m.trace = &trace.Trace{}
	m.err = nil
	m.running = true
}

func (m LiveModel) Size() int           { return m.arr.Size() }
func (m LiveModel) Capacity() int       { return m.arr.Capacity() }
func (m LiveModel) Running() bool       { return m.running }
func (m LiveModel) Trace() *trace.Trace { return m.trace }
func (m LiveModel) Err() error          { return m.err }

func (m LiveModel) View() string {
	var s strings.Builder
	s.WriteString(Title.Render("DYNAMIC ARRAY") + "\n")

	status := StatusRunning.Render("APPENDING")
	switch {
	case m.err != nil:
		status = ErrorText.Render(m.err.Error())
	case m.arr.Size() >= m.target:
		status = StatusPaused.Render("DONE")
	case !m.running:
		status = StatusPaused.Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	s.WriteString(RenderArray(m.arr) + "\n\n")
	s.WriteString(Metric("Size", fmt.Sprintf("%d / %d", m.arr.Size(), m.target)) + "\n")
	s.WriteString(Metric("Capacity", fmt.Sprint(m.arr.Capacity())) + "\n")
	s.WriteString(Metric("Fill", FillBar(m.arr.Size(), m.arr.Capacity(), 20)) + "\n")
	s.WriteString(Metric("Reallocs", fmt.Sprint(m.trace.Reallocations())) + "\n")
	s.WriteString(Metric("Live bytes", fmt.Sprint(m.tracker.LiveBytes())) + "\n")

	stats := Panel.Render(s.String())
	if m.trace.Len() < 2 {
		return stats + "\n" + KeyHint.Render("SP:Pause R:Reset Q:Quit")
	}
	chart := Panel.Render(GrowthPlot(m.trace, 50, 10))
	return lipgloss.JoinHorizontal(lipgloss.Top, stats, chart) + "\n" + KeyHint.Render("SP:Pause R:Reset Q:Quit")
}

func RunLive(target, fps int, tracker *dynarray.Tracker) error {
	_, err := tea.NewProgram(NewLiveModel(target, fps, tracker)).Run()
	return err
}
