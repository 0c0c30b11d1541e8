// params.go: Parameter extension with adapter-side validation
//
// Every index-based query re-derives the current count and rejects
// out-of-range indices before plugin code sees them. Every id-based query
// resolves id validity first: an id is valid iff some index in [0, count)
// reports it. Mutation is refused outright while the plugin is active,
// because parameter topology must stay stable during realtime processing.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package goclap

import (
	"fmt"
)

// ParamsExtension is the plugin-side params interface table handed to the
// host. It exists only when the plugin author implements ParamsProvider.
// All methods are main-thread only.
type ParamsExtension struct {
	adapter  *PluginAdapter
	provider ParamsProvider
}

// Count returns the current number of parameters.
func (e *ParamsExtension) Count() int {
	e.adapter.guard.EnsureMainThread("clap_plugin_params.count")
	return e.provider.ParamsCount()
}

// Info describes the parameter at index. Out-of-range indices are rejected
// with a misbehavior diagnostic and never reach the plugin.
func (e *ParamsExtension) Info(index int) (ParamInfo, error) {
	e.adapter.guard.EnsureMainThread("clap_plugin_params.info")

	count := e.provider.ParamsCount()
	if index < 0 || index >= count {
		e.adapter.diag.HostMisbehaving("clap_plugin_params.info",
			fmt.Sprintf("called with an index out of bounds: %d >= %d", index, count))
		return ParamInfo{}, NewParamIndexOutOfRangeError(index, count)
	}

	return e.provider.ParamInfo(index)
}

// Value returns the current value of the parameter with the given id.
func (e *ParamsExtension) Value(paramID uint32) (ParamValue, error) {
	e.adapter.guard.EnsureMainThread("clap_plugin_params.value")

	if !e.isValidParamID(paramID) {
		e.adapter.diag.HostMisbehaving("clap_plugin_params.value",
			fmt.Sprintf("called with invalid param_id: %d", paramID))
		return 0, NewUnknownParamIDError("clap_plugin_params.value", paramID)
	}

	return e.provider.ParamValue(paramID)
}

// EnumValue returns the discrete value at valueIndex for an enumerated
// parameter.
//
// The value index is validated defensively: negative indices are always
// rejected, and when the parameter declares its entry count the index is
// bounded against it before delegation.
func (e *ParamsExtension) EnumValue(paramID uint32, valueIndex int) (ParamValue, error) {
	e.adapter.guard.EnsureMainThread("clap_plugin_params.enum_value")

	info, ok := e.lookupParam(paramID)
	if !ok {
		e.adapter.diag.HostMisbehaving("clap_plugin_params.enum_value",
			fmt.Sprintf("called with invalid param_id: %d", paramID))
		return 0, NewUnknownParamIDError("clap_plugin_params.enum_value", paramID)
	}

	if valueIndex < 0 || (info.EnumEntryCount > 0 && valueIndex >= int(info.EnumEntryCount)) {
		e.adapter.diag.HostMisbehaving("clap_plugin_params.enum_value",
			fmt.Sprintf("called with a value index out of bounds: %d, entry count %d",
				valueIndex, info.EnumEntryCount))
		return 0, NewInvalidEnumIndexError(paramID, valueIndex, int(info.EnumEntryCount))
	}

	return e.provider.ParamEnumValue(paramID, valueIndex)
}

// SetValue sets a parameter value and modulation amount. Forbidden while
// the plugin is active.
func (e *ParamsExtension) SetValue(paramID uint32, value, modulation ParamValue) error {
	e.adapter.guard.EnsureMainThread("clap_plugin_params.set_value")

	if e.adapter.active {
		e.adapter.diag.HostMisbehaving("clap_plugin_params.set_value",
			"it is forbidden to set a parameter value while the plugin is activated")
		return NewParamSetWhileActiveError(paramID)
	}

	if !e.isValidParamID(paramID) {
		e.adapter.diag.HostMisbehaving("clap_plugin_params.set_value",
			fmt.Sprintf("called with invalid param_id: %d", paramID))
		return NewUnknownParamIDError("clap_plugin_params.set_value", paramID)
	}

	return e.provider.SetParamValue(paramID, value, modulation)
}

// ValueToText formats a parameter value for display.
func (e *ParamsExtension) ValueToText(paramID uint32, value ParamValue) (string, error) {
	e.adapter.guard.EnsureMainThread("clap_plugin_params.value_to_text")

	if !e.isValidParamID(paramID) {
		e.adapter.diag.HostMisbehaving("clap_plugin_params.value_to_text",
			fmt.Sprintf("called with invalid param_id: %d", paramID))
		return "", NewUnknownParamIDError("clap_plugin_params.value_to_text", paramID)
	}

	text, err := e.provider.ParamValueToText(paramID, value)
	if err != nil {
		return "", err
	}
	return truncateName(text), nil
}

// TextToValue parses a display string back into a parameter value.
func (e *ParamsExtension) TextToValue(paramID uint32, text string) (ParamValue, error) {
	e.adapter.guard.EnsureMainThread("clap_plugin_params.text_to_value")

	if !e.isValidParamID(paramID) {
		e.adapter.diag.HostMisbehaving("clap_plugin_params.text_to_value",
			fmt.Sprintf("called with invalid param_id: %d", paramID))
		return 0, NewUnknownParamIDError("clap_plugin_params.text_to_value", paramID)
	}

	return e.provider.ParamTextToValue(paramID, text)
}

// isValidParamID resolves id validity by enumerating the current parameter
// table. The valid id set is never stored; it is derived on demand so a
// plugin that changes topology while inactive stays consistent.
func (e *ParamsExtension) isValidParamID(paramID uint32) bool {
	_, ok := e.lookupParam(paramID)
	return ok
}

func (e *ParamsExtension) lookupParam(paramID uint32) (ParamInfo, bool) {
	e.adapter.guard.CheckMainThread()

	count := e.provider.ParamsCount()
	for i := 0; i < count; i++ {
		info, err := e.provider.ParamInfo(i)
		if err != nil {
			// A failing index is skipped rather than aborting the scan;
			// the id may still be reported by a later index.
			continue
		}
		if info.ID == paramID {
			return info, true
		}
	}
	return ParamInfo{}, false
}
