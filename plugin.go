// plugin.go: The plugin author surface
//
// Concrete plugins implement Plugin plus any of the optional provider
// interfaces below. The adapter discovers optional capabilities by type
// assertion, which is the capability-predicate mechanism of this library: an
// extension interface table is only handed to the host when the author
// actually implements the matching provider, so a host can never call into
// methods the author never intended to exist.
//
// Author hooks return error where the ABI expects a success flag; the
// adapter converts at the boundary and guarantees that a failing hook leaves
// no partial lifecycle state visible.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package goclap

import (
	"io"
)

// Plugin is the abstract surface a concrete plugin implements. The adapter
// performs all thread, state and argument validation before any of these
// hooks run; implementations may assume the documented preconditions hold.
type Plugin interface {
	// Init is called once, on the main thread, before any other hook.
	// Returning an error leaves the instance inert: no further entry
	// points become callable.
	Init() error

	// Destroy is called once, on the main thread, when the host releases
	// the instance. No hook runs afterwards.
	Destroy()

	// Activate prepares the plugin for processing at the given sample
	// rate. Called on the main thread with sampleRate > 0 while the plugin
	// is inactive. Returning an error keeps the plugin inactive.
	Activate(sampleRate int) error

	// Deactivate is called on the main thread while the plugin is active
	// and not processing.
	Deactivate()

	// StartProcessing is called on the audio thread while the plugin is
	// active and not processing. Returning an error keeps the processing
	// flag down and reports failure to the host.
	StartProcessing() error

	// StopProcessing is called on the audio thread while the plugin is
	// active and processing.
	StopProcessing()

	// Process handles one audio block on the audio thread. Only called
	// while active and processing. It must not block, allocate or take
	// locks.
	Process(process *Process) ProcessStatus
}

// ExtensionFallback lets a plugin expose extensions the adapter has no
// built-in handling for. The adapter consults it only after the built-in
// ids, so a plugin cannot shadow render or track-info.
type ExtensionFallback interface {
	Extension(id string) any
}

// TrackInfoListener is notified after the adapter refreshed its track-info
// snapshot. channelsChanged reports whether channel count or channel map
// differ from the previous snapshot; the signal stays internal to the
// plugin, it is never surfaced back to the host.
type TrackInfoListener interface {
	TrackInfoChanged(channelsChanged bool)
}

// RenderListener is notified when the host switches between realtime and
// offline rendering. Plugins without the hook still get the mode recorded
// on the adapter.
type RenderListener interface {
	SetRenderMode(mode RenderMode)
}

// AudioPortsProvider declares and describes the plugin's audio ports.
// Implementing it is what exposes the audio-ports extension to the host.
// All methods run on the main thread after adapter-side validation.
type AudioPortsProvider interface {
	// AudioPortsCount returns the number of input or output ports.
	AudioPortsCount(isInput bool) int

	// AudioPortsInfo describes the port at index, 0 <= index < count.
	AudioPortsInfo(index int, isInput bool) (AudioPortInfo, error)

	// AudioPortsConfigCount returns the number of selectable port
	// configurations.
	AudioPortsConfigCount() int

	// AudioPortsConfig describes the configuration at index.
	AudioPortsConfig(index int) (AudioPortsConfig, error)

	// ApplyAudioPortsConfig selects a configuration by id. Only called
	// while the plugin is inactive.
	ApplyAudioPortsConfig(configID uint32) error
}

// ParamsProvider declares and describes the plugin's parameters.
// Implementing it is what exposes the params extension to the host. All
// methods run on the main thread; id arguments are pre-validated against
// the current enumeration.
type ParamsProvider interface {
	// ParamsCount returns the current number of parameters.
	ParamsCount() int

	// ParamInfo describes the parameter at index, 0 <= index < count.
	ParamInfo(index int) (ParamInfo, error)

	// ParamValue returns the current value of the parameter.
	ParamValue(paramID uint32) (ParamValue, error)

	// ParamEnumValue returns the discrete value at valueIndex for an
	// enumerated parameter.
	ParamEnumValue(paramID uint32, valueIndex int) (ParamValue, error)

	// SetParamValue sets value and modulation amount. Only called while
	// the plugin is inactive: parameter topology is frozen during
	// realtime processing.
	SetParamValue(paramID uint32, value, modulation ParamValue) error

	// ParamValueToText formats a value for display.
	ParamValueToText(paramID uint32, value ParamValue) (string, error)

	// ParamTextToValue parses a display string back into a value.
	ParamTextToValue(paramID uint32, text string) (ParamValue, error)
}

// StateProvider adds host-driven state persistence. Implementing it exposes
// the state extension to the host.
type StateProvider interface {
	// SaveState serializes the plugin state. [main-thread]
	SaveState(w io.Writer) error

	// LoadState restores previously saved state. [main-thread]
	LoadState(r io.Reader) error
}

// LatencyProvider reports the plugin's processing latency in samples.
// Meaningful only while the plugin is active. Implementing it exposes the
// latency extension to the host.
type LatencyProvider interface {
	Latency() int
}

// NoteNameProvider names the keys the plugin responds to (drum pads,
// articulations). Implementing it exposes the note-name extension.
type NoteNameProvider interface {
	NoteNameCount() int
	NoteNameInfo(index int) (NoteName, error)
}
