// thread_guard.go: Thread-affinity enforcement for ABI entry points
//
// Every entry point with a thread requirement calls one of the Ensure
// methods first. When the host exposes no thread-check capability the guard
// cannot verify anything and assumes correctness. When the capability exists
// and reports the wrong thread class, the guard reports host misbehavior and
// then applies the configured fatal strategy: continuing past a
// thread-affinity violation would race on state that is intentionally not
// synchronized.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package goclap

import (
	"os"
)

// ThreadGuard validates the thread class of ABI entry points using the
// host's thread-check capability.
type ThreadGuard struct {
	caps *HostCapabilitySet
	diag *Diagnostics

	// terminate overrides the process-exit behavior; tests swap it to keep
	// the test binary alive. Never used with FatalPanic.
	terminate func()
}

// newThreadGuard creates a guard bound to a capability set and diagnostics
// channel. The capability set pointer is shared with the adapter so the
// guard observes the set populated during Init.
func newThreadGuard(caps *HostCapabilitySet, diag *Diagnostics) *ThreadGuard {
	return &ThreadGuard{
		caps: caps,
		diag: diag,
		terminate: func() {
			os.Exit(1)
		},
	}
}

// fatal applies the configured fatal strategy after a violation has been
// reported.
func (g *ThreadGuard) fatal(msg string) {
	if g.diag.Config().FatalStrategy == FatalPanic {
		panic("goclap: " + msg)
	}
	g.terminate()
}

// EnsureMainThread verifies that the given operation is executing on the
// host main thread. Reports misbehavior and applies the fatal strategy on
// violation; no-op when the host provides no thread-check capability.
func (g *ThreadGuard) EnsureMainThread(operation string) {
	if !g.caps.CanUseThreadCheck() || g.caps.ThreadCheck.IsMainThread() {
		return
	}

	msg := "host called " + operation + " on the wrong thread, it must be called on the main thread"
	g.diag.HostMisbehaving(operation, msg)
	g.fatal(msg)
}

// EnsureAudioThread verifies that the given operation is executing on an
// audio thread. Reports misbehavior and applies the fatal strategy on
// violation; no-op when the host provides no thread-check capability.
func (g *ThreadGuard) EnsureAudioThread(operation string) {
	if !g.caps.CanUseThreadCheck() || g.caps.ThreadCheck.IsAudioThread() {
		return
	}

	msg := "host called " + operation + " on the wrong thread, it must be called on the audio thread"
	g.diag.HostMisbehaving(operation, msg)
	g.fatal(msg)
}

// CheckMainThread is the internal consistency variant: it applies the fatal
// strategy without reporting. Used by adapter internals whose callers have
// already validated and reported.
func (g *ThreadGuard) CheckMainThread() {
	if !g.caps.CanUseThreadCheck() || g.caps.ThreadCheck.IsMainThread() {
		return
	}

	g.fatal("internal call ran off the main thread")
}
