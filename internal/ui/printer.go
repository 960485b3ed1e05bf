package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

// ExecutionStats holds statistics about one completion round trip
type ExecutionStats struct {
	StartTime        time.Time
	EndTime          time.Time
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Duration returns the execution duration
func (s *ExecutionStats) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// PrinterOption is a functional option for Printer
type PrinterOption func(*Printer)

// WithVerbose enables or disables verbose mode
func WithVerbose(verbose bool) PrinterOption {
	return func(p *Printer) {
		p.verbose = verbose
	}
}

// Printer writes human-readable status lines
type Printer struct {
	writer  io.Writer
	verbose bool
}

// NewPrinter creates a new Printer
func NewPrinter(writer io.Writer, opts ...PrinterOption) *Printer {
	p := &Printer{
		writer:  writer,
		verbose: false,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// PrintLine prints message verbatim followed by a newline
func (p *Printer) PrintLine(message string) error {
	_, err := fmt.Fprintln(p.writer, message)
	return err
}

// PrintHint prints a yellow suggestion line
func (p *Printer) PrintHint(message string) error {
	yellow := color.New(color.FgYellow)
	_, err := yellow.Fprintf(p.writer, "hint: %s\n", message)
	return err
}

// PrintStats prints execution statistics in verbose mode
func (p *Printer) PrintStats(stats *ExecutionStats) error {
	if stats == nil || !p.verbose {
		return nil
	}

	durationStr := formatDuration(stats.Duration())

	dim := color.New(color.FgHiBlack)
	_, err := dim.Fprintf(p.writer, "📊 Stats: %d tokens (prompt: %d, completion: %d) | Time: %s\n",
		stats.TotalTokens, stats.PromptTokens, stats.CompletionTokens, durationStr)
	return err
}

// formatDuration formats a duration in a human-readable format
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
