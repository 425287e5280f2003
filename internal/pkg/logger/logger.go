// Package logger emits diagnostic lines on stderr when verbose mode is on.
// Quiet by default: the command's own output is the product, diagnostics are
// opt-in via DJINN_DEBUG.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
)

// StdLogger writes level-tagged lines with key=value fields in a stable
// order. Every level is suppressed unless verbose is set.
type StdLogger struct {
	verbose bool
	out     *log.Logger
}

// NewStd creates a StdLogger writing to stderr.
func NewStd(verbose bool) *StdLogger {
	return NewStdTo(verbose, os.Stderr)
}

// NewStdTo lets tests capture the stream.
func NewStdTo(verbose bool, w io.Writer) *StdLogger {
	return &StdLogger{
		verbose: verbose,
		out:     log.New(w, "", log.LstdFlags),
	}
}

func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	l.emit("DEBUG", msg, fields)
}

func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	l.emit("INFO", msg, fields)
}

func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	l.emit("WARN", msg, fields)
}

func (l *StdLogger) Error(msg string, err error, fields map[string]interface{}) {
	if err != nil {
		if fields == nil {
			fields = map[string]interface{}{}
		}
		fields["error"] = err
	}
	l.emit("ERROR", msg, fields)
}

func (l *StdLogger) emit(level, msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	l.out.Printf("[%s] %s%s", level, msg, formatFields(fields))
}

// formatFields renders fields as " k=v" pairs sorted by key, so log lines
// are stable enough to grep.
func formatFields(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	return b.String()
}
