// types.go: Wire contract data types for the plugin ABI
//
// This file contains the enumerations and data structures that mirror the
// binary plugin interface shared with the host. Their values are part of the
// wire contract: enum values and extension identifier strings must match the
// host byte-for-byte and must never be renumbered.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package goclap

// Extension identifiers.
//
// Extension ids are opaque strings exchanged with the host during capability
// negotiation. Both sides compare them byte-for-byte, so the exact spelling
// below is load-bearing.
const (
	ExtLog           = "clap/log"
	ExtThreadCheck   = "clap/thread-check"
	ExtThreadPool    = "clap/thread-pool"
	ExtAudioPorts    = "clap/audio-ports"
	ExtEventLoop     = "clap/event-loop"
	ExtEventFilter   = "clap/event-filter"
	ExtFileReference = "clap/file-reference"
	ExtLatency       = "clap/latency"
	ExtGUI           = "clap/gui"
	ExtParams        = "clap/params"
	ExtTrackInfo     = "clap/track-info"
	ExtState         = "clap/state"
	ExtNoteName      = "clap/note-name"
	ExtRender        = "clap/render"
)

// NameSize is the maximum length in bytes of names crossing the ABI
// (port names, parameter names, track names). Longer names are truncated
// at the boundary, never rejected.
const NameSize = 256

// ProcessStatus is the result of a single audio processing call.
//
// The numeric values are defined by the ABI and reported back to the host
// unchanged.
type ProcessStatus int32

const (
	// ProcessError signals a processing failure. The adapter returns it
	// whenever the host drives audio into a plugin that is not both active
	// and processing.
	ProcessError ProcessStatus = 0

	// ProcessContinue asks the host to keep processing.
	ProcessContinue ProcessStatus = 1

	// ProcessContinueIfNotQuiet asks the host to keep processing until the
	// plugin output is silent.
	ProcessContinueIfNotQuiet ProcessStatus = 2

	// ProcessSleep tells the host the plugin has no pending work.
	ProcessSleep ProcessStatus = 3
)

// String returns a human-readable representation of the process status.
func (s ProcessStatus) String() string {
	switch s {
	case ProcessError:
		return "error"
	case ProcessContinue:
		return "continue"
	case ProcessContinueIfNotQuiet:
		return "continue-if-not-quiet"
	case ProcessSleep:
		return "sleep"
	default:
		return "unknown"
	}
}

// LogSeverity classifies diagnostics sent through the host log capability.
//
// SeverityHostMisbehaving is reserved for protocol violations committed by
// the host itself and is deliberately distinct from SeverityError so hosts
// and tooling can tell "the plugin failed" apart from "the host drove the
// plugin incorrectly".
type LogSeverity int32

const (
	SeverityDebug           LogSeverity = 0
	SeverityInfo            LogSeverity = 1
	SeverityWarning         LogSeverity = 2
	SeverityError           LogSeverity = 3
	SeverityFatal           LogSeverity = 4
	SeverityHostMisbehaving LogSeverity = 5
)

// String returns a human-readable representation of the severity.
func (s LogSeverity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	case SeverityHostMisbehaving:
		return "host-misbehaving"
	default:
		return "unknown"
	}
}

// ParseLogSeverity converts a configuration string to a LogSeverity.
// Returns SeverityInfo and false for unrecognized values.
func ParseLogSeverity(s string) (LogSeverity, bool) {
	switch s {
	case "debug":
		return SeverityDebug, true
	case "info":
		return SeverityInfo, true
	case "warning":
		return SeverityWarning, true
	case "error":
		return SeverityError, true
	case "fatal":
		return SeverityFatal, true
	case "host-misbehaving":
		return SeverityHostMisbehaving, true
	default:
		return SeverityInfo, false
	}
}

// RenderMode tells the plugin whether it is under realtime pressure.
type RenderMode int32

const (
	// RenderRealtime is the default mode, used while playing live.
	RenderRealtime RenderMode = 0

	// RenderOffline is used while the host renders the song faster than
	// realtime.
	RenderOffline RenderMode = 1
)

// String returns a human-readable representation of the render mode.
func (m RenderMode) String() string {
	switch m {
	case RenderRealtime:
		return "realtime"
	case RenderOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// ChannelMap describes the speaker arrangement of an audio port or track.
type ChannelMap int32

const (
	ChannelMapUnspecified ChannelMap = 0
	ChannelMapMono        ChannelMap = 1
	ChannelMapStereo      ChannelMap = 2
	ChannelMapSurround    ChannelMap = 3
)

// String returns a human-readable representation of the channel map.
func (m ChannelMap) String() string {
	switch m {
	case ChannelMapMono:
		return "mono"
	case ChannelMapStereo:
		return "stereo"
	case ChannelMapSurround:
		return "surround"
	default:
		return "unspecified"
	}
}

// RescanFlags classifies how much of the audio port layout the host must
// re-query after a change. It is the result of comparing two port
// descriptors, never persisted state.
type RescanFlags uint32

const (
	// RescanNone means the two descriptors are identical.
	RescanNone RescanFlags = 0

	// RescanAll is set when any structural aspect of the port changed
	// (sample size, flags, channel count, channel map or id). The host must
	// re-query everything about the port.
	RescanAll RescanFlags = 1 << 0

	// RescanNames is set when only display names changed.
	RescanNames RescanFlags = 1 << 1
)

// AudioPortInfo describes a single audio port exposed by the plugin.
type AudioPortInfo struct {
	// ID is a stable identifier for the port. It must not change while the
	// plugin is active.
	ID uint32 `json:"id" yaml:"id"`

	// Name is the display name of the port. Truncated to NameSize at the
	// ABI boundary.
	Name string `json:"name" yaml:"name"`

	// ChannelCount is the number of audio channels on this port.
	ChannelCount int32 `json:"channel_count" yaml:"channel_count"`

	// ChannelMap describes the speaker arrangement of the channels.
	ChannelMap ChannelMap `json:"channel_map" yaml:"channel_map"`

	// SampleSize is the sample width in bits (32 or 64).
	SampleSize int32 `json:"sample_size" yaml:"sample_size"`

	// IsMain marks the main input or output port.
	IsMain bool `json:"is_main" yaml:"is_main"`

	// IsCV marks a control-voltage port.
	IsCV bool `json:"is_cv" yaml:"is_cv"`

	// InPlace indicates the port supports in-place processing with its
	// paired port.
	InPlace bool `json:"in_place" yaml:"in_place"`
}

// AudioPortsConfig describes one selectable audio port configuration
// (for example "mono", "stereo", "stereo + sidechain").
type AudioPortsConfig struct {
	ID              uint32 `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	InputPortCount  uint32 `json:"input_port_count" yaml:"input_port_count"`
	OutputPortCount uint32 `json:"output_port_count" yaml:"output_port_count"`
}

// ParamValue is a parameter value as exchanged with the host.
type ParamValue float64

// ParamInfo describes a single parameter exposed by the plugin.
type ParamInfo struct {
	// ID is the stable parameter identifier. Identity is defined by this
	// field, not by the enumeration index: an id is valid iff some index in
	// [0, count) reports it.
	ID uint32 `json:"id" yaml:"id"`

	// Name is the display name of the parameter.
	Name string `json:"name" yaml:"name"`

	// Module is a slash-separated path used to group parameters in the
	// host UI, for example "oscillator/filter".
	Module string `json:"module" yaml:"module"`

	MinValue     ParamValue `json:"min_value" yaml:"min_value"`
	MaxValue     ParamValue `json:"max_value" yaml:"max_value"`
	DefaultValue ParamValue `json:"default_value" yaml:"default_value"`

	// EnumEntryCount is the number of discrete values for enumerated
	// parameters, zero for continuous ones. Used to bound enum value
	// indices before they reach plugin code.
	EnumEntryCount int32 `json:"enum_entry_count" yaml:"enum_entry_count"`
}

// TrackInfo is a host-pushed snapshot of the track the plugin sits on.
// It is replaced wholesale on every host notification, never partially
// mutated.
type TrackInfo struct {
	ID           uint32     `json:"id" yaml:"id"`
	Name         string     `json:"name" yaml:"name"`
	ChannelCount int32      `json:"channel_count" yaml:"channel_count"`
	ChannelMap   ChannelMap `json:"channel_map" yaml:"channel_map"`
	Flags        uint32     `json:"flags" yaml:"flags"`
}

// NoteName maps a key/channel pair to a display name, for hosts that show
// named notes (drum pads, articulations).
type NoteName struct {
	Name    string `json:"name" yaml:"name"`
	Port    int32  `json:"port" yaml:"port"`
	Key     int32  `json:"key" yaml:"key"`
	Channel int32  `json:"channel" yaml:"channel"`
}

// AudioBuffer is one block of audio data for a single port.
//
// Exactly one of Data32 and Data64 is populated, matching the port's sample
// size. The adapter never touches buffer contents; it only routes the block
// to the plugin once the lifecycle checks pass.
type AudioBuffer struct {
	Data32       [][]float32
	Data64       [][]float64
	Latency      uint32
	ConstantMask uint64
}

// Process is the per-block payload handed to the plugin on the audio
// thread. Its contents are owned by the host for the duration of the call.
type Process struct {
	// SteadyTime is a monotonic sample counter, -1 if not available.
	SteadyTime int64

	// FramesCount is the number of frames to process in this block.
	FramesCount uint32

	AudioInputs  []AudioBuffer
	AudioOutputs []AudioBuffer
}

// CompareAudioPortInfo compares two port descriptors structurally and
// classifies how much the host has to rescan.
//
// Any difference in sample size, flags, channel count, channel map or id
// forces a full rescan; a difference confined to the display name requires
// re-reading names only; identical descriptors need no rescan.
func CompareAudioPortInfo(a, b AudioPortInfo) RescanFlags {
	if a.SampleSize != b.SampleSize || a.InPlace != b.InPlace || a.IsCV != b.IsCV ||
		a.IsMain != b.IsMain || a.ChannelCount != b.ChannelCount ||
		a.ChannelMap != b.ChannelMap || a.ID != b.ID {
		return RescanAll
	}

	if truncateName(a.Name) != truncateName(b.Name) {
		return RescanNames
	}

	return RescanNone
}

// truncateName clamps a name to the ABI's fixed name field size.
func truncateName(name string) string {
	if len(name) <= NameSize {
		return name
	}
	return name[:NameSize]
}
