// audio_ports.go: Audio ports extension with adapter-side validation
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package goclap

import (
	"fmt"
)

// AudioPortsExtension is the plugin-side audio-ports interface table handed
// to the host. It exists only when the plugin author implements
// AudioPortsProvider. All methods are main-thread only.
type AudioPortsExtension struct {
	adapter  *PluginAdapter
	provider AudioPortsProvider
}

// Count returns the number of input or output ports.
func (e *AudioPortsExtension) Count(isInput bool) int {
	e.adapter.guard.EnsureMainThread("clap_plugin_audio_ports.count")
	return e.provider.AudioPortsCount(isInput)
}

// Info describes the port at index. The count is re-derived on every call;
// out-of-range indices are rejected and never reach the plugin.
func (e *AudioPortsExtension) Info(index int, isInput bool) (AudioPortInfo, error) {
	e.adapter.guard.EnsureMainThread("clap_plugin_audio_ports.info")

	count := e.provider.AudioPortsCount(isInput)
	if index < 0 || index >= count {
		e.adapter.diag.HostMisbehaving("clap_plugin_audio_ports.info",
			fmt.Sprintf("called with an index out of bounds: %d >= %d", index, count))
		return AudioPortInfo{}, NewPortIndexOutOfRangeError("clap_plugin_audio_ports.info", index, count)
	}

	info, err := e.provider.AudioPortsInfo(index, isInput)
	if err != nil {
		return AudioPortInfo{}, err
	}
	info.Name = truncateName(info.Name)
	return info, nil
}

// ConfigCount returns the number of selectable port configurations.
func (e *AudioPortsExtension) ConfigCount() int {
	e.adapter.guard.EnsureMainThread("clap_plugin_audio_ports.config_count")
	return e.provider.AudioPortsConfigCount()
}

// Config describes the port configuration at index.
func (e *AudioPortsExtension) Config(index int) (AudioPortsConfig, error) {
	e.adapter.guard.EnsureMainThread("clap_plugin_audio_ports.get_config")

	count := e.provider.AudioPortsConfigCount()
	if index < 0 || index >= count {
		e.adapter.diag.HostMisbehaving("clap_plugin_audio_ports.get_config",
			fmt.Sprintf("called with an index out of bounds: %d >= %d", index, count))
		return AudioPortsConfig{}, NewPortIndexOutOfRangeError("clap_plugin_audio_ports.get_config", index, count)
	}

	return e.provider.AudioPortsConfig(index)
}

// SetConfig selects a port configuration by id. Refused while the plugin is
// active: the host must deactivate before changing port topology.
func (e *AudioPortsExtension) SetConfig(configID uint32) error {
	e.adapter.guard.EnsureMainThread("clap_plugin_audio_ports.set_config")

	if e.adapter.active {
		e.adapter.diag.HostMisbehaving("clap_plugin_audio_ports.set_config",
			"it is illegal to select an audio ports configuration while the plugin is active")
		return NewPortConfigWhileActiveError(configID)
	}

	return e.provider.ApplyAudioPortsConfig(configID)
}
