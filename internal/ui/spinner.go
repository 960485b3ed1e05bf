package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// IsTerminal reports whether fd is a terminal. Tests replace it.
var IsTerminal = term.IsTerminal

// Dots is the braille animation drawn while waiting
var Dots = spinner.MiniDot

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// SpinnerOption is a functional option for Spinner
type SpinnerOption func(*Spinner)

// WithInterval sets the delay between frames
func WithInterval(d time.Duration) SpinnerOption {
	return func(s *Spinner) {
		s.frames.FPS = d
	}
}

// WithAnimation forces animation on or off regardless of terminal detection
func WithAnimation(enabled bool) SpinnerOption {
	return func(s *Spinner) {
		s.animate = enabled
	}
}

// Spinner is a progress indicator drawn around a blocking call. It only
// animates when the writer is a terminal; otherwise Start prints the text once.
type Spinner struct {
	writer  io.Writer
	text    string
	frames  spinner.Spinner
	animate bool

	mu      sync.Mutex
	running bool
	program *tea.Program
	done    chan struct{}
}

// NewSpinner creates a spinner that writes to w
func NewSpinner(w io.Writer, text string, opts ...SpinnerOption) *Spinner {
	s := &Spinner{
		writer: w,
		text:   text,
		frames: Dots,
	}
	if f, ok := w.(*os.File); ok {
		s.animate = IsTerminal(int(f.Fd()))
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start begins drawing. Calling Start on a running spinner does nothing.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true

	if !s.animate {
		fmt.Fprintf(s.writer, "%s...\n", s.text)
		return
	}

	model := spinnerModel{
		spinner: spinner.New(spinner.WithSpinner(s.frames), spinner.WithStyle(spinnerStyle)),
		text:    s.text,
	}

	// stdin stays with the process and SIGINT with the caller's context
	s.program = tea.NewProgram(model,
		tea.WithOutput(s.writer),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	s.done = make(chan struct{})

	go func(p *tea.Program, done chan<- struct{}) {
		defer close(done)
		_, _ = p.Run()
	}(s.program, s.done)
}

// halt ends the program and waits for it to clear the line
func (s *Spinner) halt() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return false
	}
	s.running = false

	if s.program != nil {
		s.program.Send(finishMsg{})
		<-s.done
		s.program, s.done = nil, nil
	}
	return true
}

// Succeed stops the spinner and prints a success mark with text
func (s *Spinner) Succeed(text string) {
	if !s.halt() {
		return
	}
	fmt.Fprintf(s.writer, "%s %s\n", successStyle.Render("✔"), text)
}

// Stop stops the spinner without printing anything
func (s *Spinner) Stop() {
	s.halt()
}

// finishMsg tells the model to clear its line and quit
type finishMsg struct{}

// spinnerModel is the bubbletea model behind an animated Spinner
type spinnerModel struct {
	spinner  spinner.Model
	text     string
	quitting bool
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case finishMsg:
		m.quitting = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.quitting {
		return ""
	}
	return m.spinner.View() + " " + m.text
}
