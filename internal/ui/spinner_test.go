package ui

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

// syncBuffer guards a buffer shared with the spinner goroutine
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func disableColor(t *testing.T) {
	t.Helper()
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })
}

func TestSpinner_NotAnimated(t *testing.T) {
	disableColor(t)
	var buf bytes.Buffer

	s := NewSpinner(&buf, "Processing")
	s.Start()
	s.Start()
	s.Succeed("Done")

	assert.Equal(t, "Processing...\n✔ Done\n", buf.String())
}

func TestSpinner_Animated(t *testing.T) {
	disableColor(t)
	var buf syncBuffer

	s := NewSpinner(&buf, "Processing", WithAnimation(true), WithInterval(10*time.Millisecond))
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Succeed("Done")

	out := buf.String()
	assert.Contains(t, out, "Processing")
	assert.True(t, strings.HasSuffix(out, "✔ Done\n"))
}

func TestSpinner_StopBeforeFirstFrame(t *testing.T) {
	var buf syncBuffer

	s := NewSpinner(&buf, "Processing", WithAnimation(true))
	s.Start()
	s.Stop()

	assert.NotContains(t, buf.String(), "✔")
}

func TestDots(t *testing.T) {
	assert.Equal(t, []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}, Dots.Frames)
}

func TestWithInterval(t *testing.T) {
	s := NewSpinner(&bytes.Buffer{}, "x", WithInterval(time.Second))
	assert.Equal(t, time.Second, s.frames.FPS)
}

func TestSpinner_StopIsSilent(t *testing.T) {
	disableColor(t)
	var buf syncBuffer

	s := NewSpinner(&buf, "Processing", WithAnimation(true))
	s.Start()
	s.Stop()
	s.Stop()
	s.Succeed("Done")

	assert.NotContains(t, buf.String(), "Done")
}

func TestSpinner_TerminalDetection(t *testing.T) {
	old := IsTerminal
	t.Cleanup(func() { IsTerminal = old })

	IsTerminal = func(fd int) bool { return true }
	assert.True(t, NewSpinner(os.Stdout, "x").animate)

	IsTerminal = func(fd int) bool { return false }
	assert.False(t, NewSpinner(os.Stdout, "x").animate)

	// non-file writers never animate
	IsTerminal = func(fd int) bool { return true }
	assert.False(t, NewSpinner(&bytes.Buffer{}, "x").animate)
}
