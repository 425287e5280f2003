package domain

import (
	"fmt"
	"strings"
)

// Output trimming limits. Session storage keeps head+tail of long output so
// follow-up prompts stay within a sane token budget.
const (
	TrimMaxLines = 30
	TrimMaxChars = 2000

	trimKeepHead = 15
	trimKeepTail = 10
)

// TrimOutput shrinks command output for session storage. Short output is
// returned unchanged. Long output keeps the first and last lines with an
// omitted-count marker in between. Output containing error text is granted
// twice the character budget before trimming, since errors are exactly what
// follow-up turns ask about.
func TrimOutput(output string) string {
	if strings.TrimSpace(output) == "" {
		return "(no output)"
	}

	if len(output) <= TrimMaxChars && strings.Count(output, "\n") <= TrimMaxLines {
		return output
	}

	lowered := strings.ToLower(output)
	if strings.Contains(lowered, "error") || strings.Contains(lowered, "exception") {
		if len(output) <= TrimMaxChars*2 {
			return output
		}
	}

	lines := strings.Split(output, "\n")
	if len(lines) <= TrimMaxLines {
		return capChars(output)
	}

	omitted := len(lines) - trimKeepHead - trimKeepTail
	if omitted <= 0 {
		return capChars(output)
	}

	trimmed := make([]string, 0, trimKeepHead+trimKeepTail+1)
	trimmed = append(trimmed, lines[:trimKeepHead]...)
	trimmed = append(trimmed, fmt.Sprintf("\n... (%d lines omitted) ...\n", omitted))
	trimmed = append(trimmed, lines[len(lines)-trimKeepTail:]...)

	return capChars(strings.Join(trimmed, "\n"))
}

func capChars(s string) string {
	if len(s) <= TrimMaxChars {
		return s
	}
	omitted := len(s) - TrimMaxChars
	return s[:TrimMaxChars] + fmt.Sprintf("\n\n(truncated - %d chars omitted)", omitted)
}
