package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestQuietUnlessVerbose(t *testing.T) {
	var out bytes.Buffer
	l := NewStdTo(false, &out)

	l.Debug("d", nil)
	l.Info("i", map[string]interface{}{"k": 1})
	l.Warn("w", nil)
	l.Error("e", errors.New("boom"), nil)

	if out.Len() != 0 {
		t.Fatalf("non-verbose logger wrote %q", out.String())
	}
}

func TestFieldsRenderedInStableOrder(t *testing.T) {
	var out bytes.Buffer
	l := NewStdTo(true, &out)

	l.Info("command generated", map[string]interface{}{
		"session": "work",
		"command": "ls -la",
	})

	got := out.String()
	if !strings.Contains(got, "[INFO] command generated command=ls -la session=work") {
		t.Fatalf("unexpected log line: %q", got)
	}
}

func TestErrorAttachesErr(t *testing.T) {
	var out bytes.Buffer
	l := NewStdTo(true, &out)

	l.Error("history append failed", errors.New("disk full"), nil)
	if !strings.Contains(out.String(), "error=disk full") {
		t.Fatalf("error not rendered: %q", out.String())
	}
}
