package domain

import (
	"fmt"
	"strings"
	"testing"
)

func TestTrimOutputShortUnchanged(t *testing.T) {
	for _, s := range []string{"hello", "a b c", strings.Repeat("line\n", 10)} {
		if got := TrimOutput(s); got != s {
			t.Fatalf("short output changed: %q -> %q", s, got)
		}
	}
}

func TestTrimOutputIdempotent(t *testing.T) {
	long := make([]string, 100)
	for i := range long {
		long[i] = fmt.Sprintf("line %d", i)
	}
	once := TrimOutput(strings.Join(long, "\n"))
	twice := TrimOutput(once)
	if once != twice {
		t.Fatalf("trim not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestTrimOutputKeepsHeadAndTail(t *testing.T) {
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	got := TrimOutput(strings.Join(lines, "\n"))

	if !strings.Contains(got, "line 0") || !strings.Contains(got, "line 99") {
		t.Fatalf("head/tail lost: %q", got)
	}
	if !strings.Contains(got, "lines omitted") {
		t.Fatalf("missing omission marker: %q", got)
	}
	if strings.Contains(got, "line 50") {
		t.Fatalf("middle should be dropped: %q", got)
	}
}

func TestTrimOutputErrorTextGetsExtraBudget(t *testing.T) {
	// Over the normal char limit but under 2x, on few lines, with error text.
	errText := "Error: " + strings.Repeat("x", TrimMaxChars+100)
	if got := TrimOutput(errText); got != errText {
		t.Fatalf("error output within 2x budget should be kept whole")
	}
}

func TestTrimOutputEmpty(t *testing.T) {
	for _, s := range []string{"", "   ", "\n\n"} {
		if got := TrimOutput(s); got != "(no output)" {
			t.Fatalf("TrimOutput(%q) = %q, want (no output)", s, got)
		}
	}
}

func TestTrimOutputCharCap(t *testing.T) {
	// Few lines, many chars, no error keywords.
	big := strings.Repeat("abcdefghij", 1000)
	got := TrimOutput(big)
	if len(got) > TrimMaxChars+100 {
		t.Fatalf("trimmed output still %d chars", len(got))
	}
	if !strings.Contains(got, "truncated") {
		t.Fatalf("missing truncation marker: %q", got)
	}
}
