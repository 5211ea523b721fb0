// Package errors formats and accumulates the compiler's two tiers of
// failure (§7): user errors, collected across a run and drained by Sink.Die,
// and internal errors, which abort immediately via InternalError.
package errors

import (
	"fmt"
	"strings"

	"github.com/mjlang/mjc/internal/token"
)

// CompilerError is a single user-facing diagnostic: a message, the source
// position it applies to, and enough of the surrounding source to render a
// caret under the offending text.
type CompilerError struct {
	Message string
	Pos     token.Position
	Source  string
	File    string
}

func NewCompilerError(pos token.Position, message, source, file string) *CompilerError {
	return &CompilerError{Pos: pos, Message: message, Source: source, File: file}
}

func (e *CompilerError) Error() string { return e.Format(false) }

// Format renders a "file:line:col" header, the offending source line, and a
// caret, optionally with ANSI color for terminal output.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "%s:%d:%d: %s\n", e.File, e.Pos.Line, e.Pos.Column, e.Message)
	} else {
		fmt.Fprintf(&sb, "%d:%d: %s\n", e.Pos.Line, e.Pos.Column, e.Message)
	}

	line := e.sourceLine(e.Pos.Line)
	if line == "" {
		return strings.TrimRight(sb.String(), "\n")
	}

	const gutter = "    | "
	sb.WriteString(gutter)
	sb.WriteString(line)
	sb.WriteString("\n")

	pad := strings.Repeat(" ", len(gutter)+max(e.Pos.Column-1, 0))
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString(pad)
	sb.WriteString("^")
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *CompilerError) sourceLine(lineNum int) string {
	if e.Source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// CompilerFailure is returned by Sink.Die when one or more user errors were
// recorded during a run.
type CompilerFailure struct {
	Errors []*CompilerError
}

func (f *CompilerFailure) Error() string {
	return fmt.Sprintf("%d compile error(s)", len(f.Errors))
}

// InternalError signals a compiler bug (§7): an invariant that must always
// hold was violated. These are never added to a Sink — they abort
// immediately via panic, which no stage of the pipeline recovers, so the
// process ends with the panic message rather than a user-error report.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string { return "internal compiler error: " + e.Message }

// Panic raises an InternalError. Call this, never a bare panic, for stage-3
// operand-stack-not-empty or unknown-opcode conditions.
func Panic(format string, args ...interface{}) {
	panic(&InternalError{Message: fmt.Sprintf(format, args...)})
}

// Sink accumulates user errors in discovery order (§5: write ordering
// matches discovery order) and drains them into a CompilerFailure.
type Sink struct {
	Source   string
	File     string
	errors   []*CompilerError
	maxCount int // 0 = unlimited
}

// NewSink creates a Sink over the given source text and file name, used to
// render error context. maxCount caps how many errors are recorded before
// further ones are silently dropped (0 = unlimited); see config.maxErrors.
func NewSink(source, file string, maxCount int) *Sink {
	return &Sink{Source: source, File: file, maxCount: maxCount}
}

// Error records a user error at pos. Compilation continues; nothing here is
// fatal by itself (§7).
func (s *Sink) Error(pos token.Position, format string, args ...interface{}) {
	if s.maxCount > 0 && len(s.errors) >= s.maxCount {
		return
	}
	s.errors = append(s.errors, NewCompilerError(pos, fmt.Sprintf(format, args...), s.Source, s.File))
}

// HasErrors reports whether any user error has been recorded so far.
func (s *Sink) HasErrors() bool { return len(s.errors) > 0 }

// Errors returns every recorded user error, in discovery order.
func (s *Sink) Errors() []*CompilerError { return s.errors }

// Die converts any accumulated user errors into a terminating
// *CompilerFailure, matching §4.2's "die() -> () | fails with
// CompilerException if any error recorded". Returns nil when clean.
func (s *Sink) Die() error {
	if len(s.errors) == 0 {
		return nil
	}
	return &CompilerFailure{Errors: s.errors}
}
