package prompt

import "strings"

// Llama 3 role header tokens
const (
	BeginOfText = "<|begin_of_text|>"
	StartHeader = "<|start_header_id|>"
	EndHeader   = "<|end_header_id|>"
	EndOfTurn   = "<|eot_id|>"
)

// Roles used in the role headers
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// SystemInstructions tells the model which two commit message layouts it may
// produce for the staged diff
const SystemInstructions = "You are a git commit assistant. You are to take the given output of 'git diff --cached' and provide a succinct summary of the changes for a commit message. The only output you are to provide is that summary and it should be formatted in a multi-line output in only one of two ways:\n" +
	"1. If there are changes to a single file, the first line will be a summary of all changes, and each individual change will be summarized on its own line.\n" +
	"2. If there are changes to multiple files, the first line will be a summary of all changes, and each individual file will be summarized on its own line.\n" +
	"Reminder: Do not output anything but one of the two options above."

// Prompt is the commit message request for one staged diff
type Prompt struct {
	System string
	Diff   string
}

// Build returns the prompt for a staged diff. The diff is kept verbatim.
func Build(diff string) Prompt {
	return Prompt{
		System: SystemInstructions,
		Diff:   diff,
	}
}

// Header returns the role header for role, without a trailing newline
func Header(role string) string {
	return StartHeader + role + EndHeader
}

// SystemSegment returns the begin-of-text marker and the system turn
func (p Prompt) SystemSegment() string {
	return BeginOfText + Header(RoleSystem) + "\n" + p.System + EndOfTurn + "\n"
}

// UserSegment returns the user turn carrying the diff
func (p Prompt) UserSegment() string {
	return Header(RoleUser) + "\n" + p.Diff + EndOfTurn + "\n"
}

// AssistantSegment returns the empty assistant opener the completion
// continues from
func (p Prompt) AssistantSegment() string {
	return Header(RoleAssistant)
}

// Render returns the full raw prompt sent to a completions endpoint
func (p Prompt) Render() string {
	var b strings.Builder
	b.Grow(len(p.System) + len(p.Diff) + 160)
	b.WriteString(p.SystemSegment())
	b.WriteString("\n")
	b.WriteString(p.UserSegment())
	b.WriteString("\n")
	b.WriteString(p.AssistantSegment())
	return b.String()
}
