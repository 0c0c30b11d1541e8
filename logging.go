// logging.go: Pluggable logging and the host diagnostics channel
//
// Two layers live here. The Logger interface is the library-local fallback
// sink: users can plug any logging framework behind it. The Diagnostics type
// is the ABI-facing channel: it prefers the host's log capability when the
// host provides one and falls back to the local Logger otherwise, and it
// carries the dedicated host-misbehavior severity used for protocol
// violations.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package goclap

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/agilira/go-timecache"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// Logger defines the pluggable logging interface for the go-clap library.
//
// This interface enables users to integrate any logging framework (zap,
// logrus, zerolog, custom loggers) without external dependencies. It is only
// the local fallback: when the host exposes a log capability, diagnostics go
// to the host instead.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, args ...any)

	// Info logs an info message with optional key-value pairs
	Info(msg string, args ...any)

	// Warn logs a warning message with optional key-value pairs
	Warn(msg string, args ...any)

	// Error logs an error message with optional key-value pairs
	Error(msg string, args ...any)

	// With returns a new logger with persistent context key-value pairs
	With(args ...any) Logger
}

// NoOpLogger provides a silent logger implementation for testing and
// minimal setups.
type NoOpLogger struct{}

// NewNoOpLogger creates a new no-operation logger.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// Debug implements Logger interface (no-op)
func (n *NoOpLogger) Debug(msg string, args ...any) {}

// Info implements Logger interface (no-op)
func (n *NoOpLogger) Info(msg string, args ...any) {}

// Warn implements Logger interface (no-op)
func (n *NoOpLogger) Warn(msg string, args ...any) {}

// Error implements Logger interface (no-op)
func (n *NoOpLogger) Error(msg string, args ...any) {}

// With implements Logger interface (no-op)
func (n *NoOpLogger) With(args ...any) Logger {
	return n // Return same instance since it's stateless
}

// StderrLogger writes key-value formatted lines to standard error.
//
// It is the fallback of last resort: a plugin loaded by a host without a log
// capability still has to surface misbehavior diagnostics somewhere, and the
// process stderr is the only channel both sides share.
type StderrLogger struct {
	context []any
}

// NewStderrLogger creates a logger writing to the process stderr stream.
func NewStderrLogger() *StderrLogger {
	return &StderrLogger{}
}

func (s *StderrLogger) write(level, msg string, args []any) {
	line := "goclap [" + level + "] " + msg
	all := make([]any, 0, len(s.context)+len(args))
	all = append(all, s.context...)
	all = append(all, args...)
	for i := 0; i+1 < len(all); i += 2 {
		line += fmt.Sprintf(" %v=%v", all[i], all[i+1])
	}
	fmt.Fprintln(os.Stderr, line)
}

// Debug implements Logger interface
func (s *StderrLogger) Debug(msg string, args ...any) { s.write("DEBUG", msg, args) }

// Info implements Logger interface
func (s *StderrLogger) Info(msg string, args ...any) { s.write("INFO", msg, args) }

// Warn implements Logger interface
func (s *StderrLogger) Warn(msg string, args ...any) { s.write("WARN", msg, args) }

// Error implements Logger interface
func (s *StderrLogger) Error(msg string, args ...any) { s.write("ERROR", msg, args) }

// With implements Logger interface
func (s *StderrLogger) With(args ...any) Logger {
	ctx := make([]any, 0, len(s.context)+len(args))
	ctx = append(ctx, s.context...)
	ctx = append(ctx, args...)
	return &StderrLogger{context: ctx}
}

// DefaultLogger creates the default fallback logger for the library.
func DefaultLogger() Logger {
	return NewStderrLogger()
}

// TestLogger for testing - captures log messages.
type TestLogger struct {
	mu       sync.RWMutex
	Messages []TestLogMessage
}

// TestLogMessage represents a captured log message for testing.
type TestLogMessage struct {
	Level   string
	Message string
	Args    []any
}

// NewTestLogger creates a new test logger.
func NewTestLogger() *TestLogger {
	return &TestLogger{
		Messages: make([]TestLogMessage, 0),
	}
}

func (t *TestLogger) capture(level, msg string, args []any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Messages = append(t.Messages, TestLogMessage{Level: level, Message: msg, Args: args})
}

// Debug implements Logger interface (captures message)
func (t *TestLogger) Debug(msg string, args ...any) { t.capture("DEBUG", msg, args) }

// Info implements Logger interface (captures message)
func (t *TestLogger) Info(msg string, args ...any) { t.capture("INFO", msg, args) }

// Warn implements Logger interface (captures message)
func (t *TestLogger) Warn(msg string, args ...any) { t.capture("WARN", msg, args) }

// Error implements Logger interface (captures message)
func (t *TestLogger) Error(msg string, args ...any) { t.capture("ERROR", msg, args) }

// With implements Logger interface
func (t *TestLogger) With(args ...any) Logger {
	// Context chaining is not needed for assertions; share the same sink so
	// derived loggers still land in Messages.
	return t
}

// HasMessage checks if the logger captured a message containing the given text.
func (t *TestLogger) HasMessage(level, message string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, msg := range t.Messages {
		if msg.Level == level && msg.Message == message {
			return true
		}
	}
	return false
}

// CountLevel returns how many messages were captured at the given level.
func (t *TestLogger) CountLevel(level string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := 0
	for _, msg := range t.Messages {
		if msg.Level == level {
			n++
		}
	}
	return n
}

// Clear removes all captured messages.
func (t *TestLogger) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Messages = t.Messages[:0]
}

// Diagnostics is the severity-tagged diagnostics channel of one plugin
// instance.
//
// Routing rule: if the host exposes a usable log capability, every message
// goes there; otherwise it goes to the local fallback Logger. Host
// misbehavior reports additionally pass through a flood-control window so a
// host stuck in a violation loop cannot drown the sink, and feed the
// optional metrics collector.
type Diagnostics struct {
	fallback Logger
	config   atomic.Pointer[DiagnosticsConfig]
	metrics  *AdapterMetrics

	// hostLog is attached after capability negotiation; nil before Init and
	// for hosts without the log extension.
	hostLog atomic.Pointer[hostLogRef]

	// lastReport tracks the last emission time per misbehavior key for
	// flood control. Keyed by operation + message.
	lastReport cmap.ConcurrentMap[string, int64]
}

type hostLogRef struct {
	log HostLog
}

// NewDiagnostics creates a diagnostics channel with the given fallback
// logger and configuration. A nil logger falls back to DefaultLogger; a nil
// config uses DefaultDiagnosticsConfig.
func NewDiagnostics(fallback Logger, config *DiagnosticsConfig) *Diagnostics {
	if fallback == nil {
		fallback = DefaultLogger()
	}
	if config == nil {
		def := DefaultDiagnosticsConfig()
		config = &def
	}
	d := &Diagnostics{
		fallback:   fallback,
		lastReport: cmap.New[int64](),
	}
	d.config.Store(config)
	return d
}

// attachHostLog wires the host log capability after negotiation. Called at
// most once per instance, on the main thread, before any audio-thread
// activity.
func (d *Diagnostics) attachHostLog(log HostLog) {
	if log == nil {
		return
	}
	d.hostLog.Store(&hostLogRef{log: log})
}

// setMetrics wires the optional metrics collector.
func (d *Diagnostics) setMetrics(m *AdapterMetrics) {
	d.metrics = m
}

// Config returns the currently applied diagnostics configuration.
func (d *Diagnostics) Config() DiagnosticsConfig {
	return *d.config.Load()
}

// ApplyConfig atomically replaces the diagnostics configuration. Used by the
// configuration watcher for hot reload.
func (d *Diagnostics) ApplyConfig(config DiagnosticsConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	d.config.Store(&config)
	return nil
}

// Log emits a severity-tagged diagnostic through the host log capability,
// or the local fallback when the host has none.
func (d *Diagnostics) Log(severity LogSeverity, msg string) {
	if severity < d.config.Load().MinSeverity {
		return
	}

	if ref := d.hostLog.Load(); ref != nil {
		ref.log.Log(severity, msg)
		return
	}

	switch severity {
	case SeverityDebug:
		d.fallback.Debug(msg)
	case SeverityInfo:
		d.fallback.Info(msg)
	case SeverityWarning:
		d.fallback.Warn(msg)
	case SeverityHostMisbehaving:
		d.fallback.Error(msg, "severity", severity.String())
	default:
		d.fallback.Error(msg)
	}
}

// HostMisbehaving reports a protocol violation committed by the host during
// the given operation. The report is rate-limited per operation/message pair
// within the configured flood window; the misbehavior metric is incremented
// on every call regardless.
func (d *Diagnostics) HostMisbehaving(operation, msg string) {
	if d.metrics != nil {
		d.metrics.observeMisbehavior(operation)
	}

	window := d.config.Load().MisbehaviorLogWindow
	if window > 0 {
		key := operation + "\x00" + msg
		now := timecache.CachedTimeNano()
		if last, ok := d.lastReport.Get(key); ok && now-last < window.Nanoseconds() {
			return
		}
		d.lastReport.Set(key, now)
	}

	d.Log(SeverityHostMisbehaving, operation+": "+msg)
}
