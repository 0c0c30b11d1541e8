// extensions.go: Built-in and conditional plugin-side extension tables
//
// Render and track-info are built-ins exposed by every adapter; state,
// latency and note-name appear only when the author implements the matching
// provider. The tables here are thin: they carry the thread and argument
// validation, then delegate.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package goclap

import (
	"fmt"
	"io"
)

// RenderExtension is the plugin-side render interface table, a built-in.
// The host uses it to tell the plugin whether it is under realtime
// pressure.
type RenderExtension struct {
	adapter *PluginAdapter
}

// SetRenderMode records the render mode and forwards it to the author's
// RenderListener hook when implemented. Unknown modes are refused.
// [main-thread]
func (e *RenderExtension) SetRenderMode(mode RenderMode) error {
	a := e.adapter
	a.guard.EnsureMainThread("clap_plugin_render.set_render_mode")

	if mode != RenderRealtime && mode != RenderOffline {
		a.diag.HostMisbehaving("clap_plugin_render.set_render_mode",
			fmt.Sprintf("unknown render mode: %d", int32(mode)))
		return NewInvalidRenderModeError(mode)
	}

	a.renderMode = mode
	if listener, ok := a.plugin.(RenderListener); ok {
		listener.SetRenderMode(mode)
	}
	return nil
}

// StateExtension is the plugin-side state interface table, exposed when the
// author implements StateProvider.
type StateExtension struct {
	adapter  *PluginAdapter
	provider StateProvider
}

// Save serializes the plugin state into w. [main-thread]
func (e *StateExtension) Save(w io.Writer) error {
	e.adapter.guard.EnsureMainThread("clap_plugin_state.save")
	return e.provider.SaveState(w)
}

// Load restores plugin state from r. [main-thread]
func (e *StateExtension) Load(r io.Reader) error {
	e.adapter.guard.EnsureMainThread("clap_plugin_state.load")
	return e.provider.LoadState(r)
}

// LatencyExtension is the plugin-side latency interface table, exposed when
// the author implements LatencyProvider.
type LatencyExtension struct {
	adapter  *PluginAdapter
	provider LatencyProvider
}

// Latency returns the plugin latency in samples. Querying an inactive
// plugin is misbehavior: the latency is only defined while active.
// [main-thread]
func (e *LatencyExtension) Latency() (int, error) {
	a := e.adapter
	a.guard.EnsureMainThread("clap_plugin_latency.get")

	if !a.active {
		a.diag.HostMisbehaving("clap_plugin_latency.get",
			"host queried the latency of a deactivated plugin")
		return 0, NewNotActiveError("clap_plugin_latency.get")
	}

	return e.provider.Latency(), nil
}

// NoteNameExtension is the plugin-side note-name interface table, exposed
// when the author implements NoteNameProvider.
type NoteNameExtension struct {
	adapter  *PluginAdapter
	provider NoteNameProvider
}

// Count returns the number of named notes. [main-thread]
func (e *NoteNameExtension) Count() int {
	e.adapter.guard.EnsureMainThread("clap_plugin_note_name.count")
	return e.provider.NoteNameCount()
}

// Info describes the named note at index, with the same index discipline as
// the other enumerations. [main-thread]
func (e *NoteNameExtension) Info(index int) (NoteName, error) {
	e.adapter.guard.EnsureMainThread("clap_plugin_note_name.info")

	count := e.provider.NoteNameCount()
	if index < 0 || index >= count {
		e.adapter.diag.HostMisbehaving("clap_plugin_note_name.info",
			fmt.Sprintf("called with an index out of bounds: %d >= %d", index, count))
		return NoteName{}, NewNoteNameIndexOutOfRangeError(index, count)
	}

	name, err := e.provider.NoteNameInfo(index)
	if err != nil {
		return NoteName{}, err
	}
	name.Name = truncateName(name.Name)
	return name, nil
}
