package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T, debug bool) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	noColor := color.NoColor
	color.NoColor = true
	SetOutput(&buf)
	SetDebugMode(debug)
	t.Cleanup(func() {
		color.NoColor = noColor
		SetOutput(os.Stderr)
		SetDebugMode(false)
	})
	return &buf
}

func TestDebug_OnlyInDebugMode(t *testing.T) {
	buf := captureOutput(t, false)
	Debug("hidden %d", 1)
	DebugDuration("completion", time.Second)
	DebugTokenUsage(1, 2, 3)
	assert.Empty(t, buf.String())

	SetDebugMode(true)
	assert.True(t, IsDebugMode())
	Debug("shown %d", 2)
	assert.Equal(t, "[DEBUG] shown 2\n", buf.String())
}

func TestDebugConfig(t *testing.T) {
	buf := captureOutput(t, true)
	DebugConfig("Configuration", map[string]string{"api_model": "llama"})
	assert.Contains(t, buf.String(), "[DEBUG] Configuration:")
	assert.Contains(t, buf.String(), `"api_model": "llama"`)
}

func TestDebugPrompt_Truncates(t *testing.T) {
	buf := captureOutput(t, true)
	DebugPrompt("Prompt", strings.Repeat("x", 3000))
	assert.Contains(t, buf.String(), "Prompt (3000 bytes)")
	assert.Contains(t, buf.String(), "...")
}

func TestErrorAndWarn(t *testing.T) {
	buf := captureOutput(t, false)
	Error("boom: %s", "x")
	Warn("careful")
	assert.Equal(t, "Error: boom: x\nWarning: careful\n", buf.String())
}
