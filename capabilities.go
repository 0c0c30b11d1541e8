// capabilities.go: Host capability negotiation and the capability table
//
// Outbound discovery: right after init begins, the adapter queries the
// host's extension lookup once per known extension id and stores each result
// in the HostCapabilitySet. The set is populated exactly once per instance
// and is immutable afterwards, so reading it later needs no synchronization.
// Absence of a capability is a normal state; everything that consumes one
// null-checks first.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package goclap

// HostCapabilitySet holds every optional host interface the adapter knows
// about, resolved once during initialization. Each field is a borrowed
// reference valid for the instance's lifetime, or nil when the host does
// not provide the extension.
type HostCapabilitySet struct {
	Log           HostLog
	ThreadCheck   HostThreadCheck
	ThreadPool    HostThreadPool
	AudioPorts    HostAudioPorts
	EventLoop     HostEventLoop
	EventFilter   HostEventFilter
	FileReference HostFileReference
	Latency       HostLatency
	GUI           HostGUI
	Params        HostParams
	TrackInfo     HostTrackInfo
	State         HostState
	NoteName      HostNoteName
}

// negotiateHostCapabilities performs outbound discovery against the host.
//
// A nil host, or a host whose Extension returns nil for everything, yields
// an empty set: every capability resolves to absent. A host that returns a
// value of the wrong type for an id is treated as not providing the
// capability; the value is discarded.
func negotiateHostCapabilities(host Host) HostCapabilitySet {
	var caps HostCapabilitySet
	if host == nil {
		return caps
	}

	resolve := func(id string) any { return host.Extension(id) }

	caps.Log, _ = resolve(ExtLog).(HostLog)
	caps.ThreadCheck, _ = resolve(ExtThreadCheck).(HostThreadCheck)
	caps.ThreadPool, _ = resolve(ExtThreadPool).(HostThreadPool)
	caps.AudioPorts, _ = resolve(ExtAudioPorts).(HostAudioPorts)
	caps.EventLoop, _ = resolve(ExtEventLoop).(HostEventLoop)
	caps.EventFilter, _ = resolve(ExtEventFilter).(HostEventFilter)
	caps.FileReference, _ = resolve(ExtFileReference).(HostFileReference)
	caps.Latency, _ = resolve(ExtLatency).(HostLatency)
	caps.GUI, _ = resolve(ExtGUI).(HostGUI)
	caps.Params, _ = resolve(ExtParams).(HostParams)
	caps.TrackInfo, _ = resolve(ExtTrackInfo).(HostTrackInfo)
	caps.State, _ = resolve(ExtState).(HostState)
	caps.NoteName, _ = resolve(ExtNoteName).(HostNoteName)

	return caps
}

// CanUseLog reports whether the host log capability is usable.
func (c *HostCapabilitySet) CanUseLog() bool { return c.Log != nil }

// CanUseThreadCheck reports whether the host thread-check capability is
// usable.
func (c *HostCapabilitySet) CanUseThreadCheck() bool { return c.ThreadCheck != nil }

// CanUseThreadPool reports whether the host thread-pool capability is
// usable.
func (c *HostCapabilitySet) CanUseThreadPool() bool { return c.ThreadPool != nil }

// CanUseTrackInfo reports whether the host track-info capability is usable.
func (c *HostCapabilitySet) CanUseTrackInfo() bool { return c.TrackInfo != nil }

// CanUseLatency reports whether the host latency capability is usable.
func (c *HostCapabilitySet) CanUseLatency() bool { return c.Latency != nil }

// CanUseState reports whether the host state capability is usable.
func (c *HostCapabilitySet) CanUseState() bool { return c.State != nil }

// CanUseAudioPorts reports whether the host audio-ports capability is
// usable.
func (c *HostCapabilitySet) CanUseAudioPorts() bool { return c.AudioPorts != nil }

// CanUseParams reports whether the host params capability is usable.
func (c *HostCapabilitySet) CanUseParams() bool { return c.Params != nil }

// CanUseNoteName reports whether the host note-name capability is usable.
func (c *HostCapabilitySet) CanUseNoteName() bool { return c.NoteName != nil }

// Capability returns the raw capability for an extension id, or nil when it
// was not negotiated. Intended for introspection; typed access through the
// fields is preferred.
func (c *HostCapabilitySet) Capability(id string) any {
	switch id {
	case ExtLog:
		if c.Log != nil {
			return c.Log
		}
	case ExtThreadCheck:
		if c.ThreadCheck != nil {
			return c.ThreadCheck
		}
	case ExtThreadPool:
		if c.ThreadPool != nil {
			return c.ThreadPool
		}
	case ExtAudioPorts:
		if c.AudioPorts != nil {
			return c.AudioPorts
		}
	case ExtEventLoop:
		if c.EventLoop != nil {
			return c.EventLoop
		}
	case ExtEventFilter:
		if c.EventFilter != nil {
			return c.EventFilter
		}
	case ExtFileReference:
		if c.FileReference != nil {
			return c.FileReference
		}
	case ExtLatency:
		if c.Latency != nil {
			return c.Latency
		}
	case ExtGUI:
		if c.GUI != nil {
			return c.GUI
		}
	case ExtParams:
		if c.Params != nil {
			return c.Params
		}
	case ExtTrackInfo:
		if c.TrackInfo != nil {
			return c.TrackInfo
		}
	case ExtState:
		if c.State != nil {
			return c.State
		}
	case ExtNoteName:
		if c.NoteName != nil {
			return c.NoteName
		}
	}
	return nil
}
