// host.go: Host-side interfaces consumed by the plugin adapter
//
// The host exposes itself to the plugin as a small identity surface plus an
// extension lookup. Every optional host feature is modelled as a dedicated
// interface returned (or not) by Extension; the adapter null-checks each one
// before use and degrades gracefully when a capability is missing.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package goclap

// Host is the object-oriented rendition of the host handle passed to a
// plugin at creation. The handle is borrowed for the instance's lifetime;
// the adapter never owns or closes it.
//
// Extension resolves an extension id to the host-side interface table for
// that extension, or nil when the host does not provide it. A host that
// supports no extension mechanism at all simply returns nil for every id;
// the adapter treats a nil Host the same way. Absence is a normal state,
// not an error.
type Host interface {
	// Name returns the host application name, for diagnostics only.
	Name() string

	// Vendor returns the host vendor, for diagnostics only.
	Vendor() string

	// Version returns the host version string, for diagnostics only.
	Version() string

	// Extension returns the host-side interface for the given extension id,
	// or nil if unsupported. Called by the adapter exactly once per known
	// id, during initialization.
	Extension(id string) any
}

// HostLog receives plugin diagnostics. [thread-safe]
type HostLog interface {
	Log(severity LogSeverity, msg string)
}

// HostThreadCheck lets the plugin verify which thread class it is running
// on. Both methods must be callable from any thread.
type HostThreadCheck interface {
	IsMainThread() bool
	IsAudioThread() bool
}

// HostThreadPool lets the plugin borrow host worker threads for one audio
// processing block. [audio-thread]
type HostThreadPool interface {
	// RequestExec asks the host to run the plugin's thread-pool tasks.
	// Returns false if the host cannot service the request, in which case
	// the plugin must do the work on the calling thread.
	RequestExec(taskCount uint32) bool
}

// HostAudioPorts is notified when the plugin's port layout changes.
// [main-thread]
type HostAudioPorts interface {
	Rescan(flags RescanFlags)
}

// HostEventLoop gives the plugin timers on the host main thread.
// [main-thread]
type HostEventLoop interface {
	RegisterTimer(periodMillis uint32) (timerID uint64, ok bool)
	UnregisterTimer(timerID uint64) bool
}

// HostEventFilter is notified when the plugin changes its event filter.
// [main-thread]
type HostEventFilter interface {
	Changed()
}

// HostFileReference is notified when the plugin's file reference list
// changes. [main-thread]
type HostFileReference interface {
	Changed()
}

// HostLatency is notified when the plugin's latency changes. The host will
// re-query the plugin latency extension. [main-thread]
type HostLatency interface {
	Changed()
}

// HostGUI lets an embedded plugin window negotiate its size.
// [main-thread]
type HostGUI interface {
	RequestResize(width, height uint32) bool
}

// HostParams is notified when the plugin's parameter topology or values
// change outside of host-driven automation. [main-thread]
type HostParams interface {
	Rescan(flags uint32)
}

// HostTrackInfo provides the track snapshot the plugin instance sits on.
// [main-thread]
type HostTrackInfo interface {
	// Get returns the current track info. The boolean is false when the
	// host could not produce a snapshot; the plugin must then treat its
	// cached copy as invalid.
	Get() (TrackInfo, bool)
}

// HostState is notified that the plugin state became dirty and should be
// saved. [main-thread]
type HostState interface {
	MarkDirty()
}

// HostNoteName is notified when the plugin's note names changed.
// [main-thread]
type HostNoteName interface {
	Changed()
}
