// errors.go: structured error definitions for the go-clap adapter
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package goclap

import (
	"github.com/agilira/go-errors"
)

// Error codes for the go-clap adapter
const (
	// Lifecycle errors (1000-1099)
	ErrCodeInvalidSampleRate  = "LIFECYCLE_1001"
	ErrCodeNotActive          = "LIFECYCLE_1002"
	ErrCodeAlreadyActive      = "LIFECYCLE_1003"
	ErrCodeNotProcessing      = "LIFECYCLE_1004"
	ErrCodeAlreadyProcessing  = "LIFECYCLE_1005"
	ErrCodeNotInitialized     = "LIFECYCLE_1006"
	ErrCodeActivationRefused  = "LIFECYCLE_1007"
	ErrCodeDestroyWhileActive = "LIFECYCLE_1008"

	// Parameter errors (1100-1199)
	ErrCodeParamIndexOutOfRange = "PARAM_1101"
	ErrCodeUnknownParamID       = "PARAM_1102"
	ErrCodeParamSetWhileActive  = "PARAM_1103"
	ErrCodeInvalidEnumIndex     = "PARAM_1104"

	// Audio port errors (1200-1299)
	ErrCodePortIndexOutOfRange   = "PORT_1201"
	ErrCodePortConfigWhileActive = "PORT_1202"
	ErrCodeUnknownPortConfig     = "PORT_1203"

	// Note name errors (1250-1299)
	ErrCodeNoteNameIndexOutOfRange = "NOTE_1251"

	// Capability errors (1300-1399)
	//
	// The two codes below are deliberately distinct: "unsupported" means
	// the host never exposed the capability, "failed" means the capability
	// exists but the host-side call did not succeed. Consumers must be able
	// to tell the two apart.
	ErrCodeCapabilityUnsupported = "CAP_1301"
	ErrCodeCapabilityFailed      = "CAP_1302"

	// Manifest errors (1400-1499)
	ErrCodeManifestNotFound   = "MANIFEST_1401"
	ErrCodeManifestParseError = "MANIFEST_1402"
	ErrCodeManifestValidation = "MANIFEST_1403"

	// Diagnostics configuration errors (1500-1599)
	ErrCodeDiagnosticsConfig  = "DIAG_1501"
	ErrCodeDiagnosticsWatcher = "DIAG_1502"

	// Instance registry errors (1600-1699)
	ErrCodeUnknownInstance = "REGISTRY_1601"
	ErrCodeNilPlugin       = "REGISTRY_1602"

	// Render errors (1700-1799)
	ErrCodeInvalidRenderMode = "RENDER_1701"
)

// Lifecycle error constructors

func NewInvalidSampleRateError(sampleRate int) *errors.Error {
	return errors.New(ErrCodeInvalidSampleRate, "Invalid sample rate").
		WithUserMessage("Activation requires a positive sample rate").
		WithContext("sample_rate", sampleRate).
		WithSeverity("error")
}

func NewNotActiveError(operation string) *errors.Error {
	return errors.New(ErrCodeNotActive, "Plugin is not active").
		WithUserMessage("The operation requires an active plugin").
		WithContext("operation", operation).
		WithSeverity("error")
}

func NewActivationRefusedError(sampleRate int, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeActivationRefused, "Plugin refused activation").
		WithUserMessage("The plugin could not be activated at the requested sample rate").
		WithContext("sample_rate", sampleRate).
		WithSeverity("warning")
}

// Parameter error constructors

func NewParamIndexOutOfRangeError(index, count int) *errors.Error {
	return errors.New(ErrCodeParamIndexOutOfRange, "Parameter index out of range").
		WithUserMessage("The host queried a parameter index past the current count").
		WithContext("index", index).
		WithContext("count", count).
		WithSeverity("error")
}

func NewUnknownParamIDError(operation string, paramID uint32) *errors.Error {
	return errors.New(ErrCodeUnknownParamID, "Unknown parameter id").
		WithUserMessage("No parameter with the given id exists in the current enumeration").
		WithContext("operation", operation).
		WithContext("param_id", paramID).
		WithSeverity("error")
}

func NewParamSetWhileActiveError(paramID uint32) *errors.Error {
	return errors.New(ErrCodeParamSetWhileActive, "Parameter mutation while active").
		WithUserMessage("Parameter values cannot be set while the plugin is active").
		WithContext("param_id", paramID).
		WithSeverity("error")
}

func NewInvalidEnumIndexError(paramID uint32, valueIndex, entryCount int) *errors.Error {
	return errors.New(ErrCodeInvalidEnumIndex, "Invalid enum value index").
		WithUserMessage("The enum value index is outside the parameter's entry range").
		WithContext("param_id", paramID).
		WithContext("value_index", valueIndex).
		WithContext("entry_count", entryCount).
		WithSeverity("error")
}

// Audio port error constructors

func NewPortIndexOutOfRangeError(operation string, index, count int) *errors.Error {
	return errors.New(ErrCodePortIndexOutOfRange, "Audio port index out of range").
		WithUserMessage("The host queried an audio port index past the current count").
		WithContext("operation", operation).
		WithContext("index", index).
		WithContext("count", count).
		WithSeverity("error")
}

func NewPortConfigWhileActiveError(configID uint32) *errors.Error {
	return errors.New(ErrCodePortConfigWhileActive, "Port configuration change while active").
		WithUserMessage("Audio port configurations cannot be selected while the plugin is active").
		WithContext("config_id", configID).
		WithSeverity("error")
}

// Note name error constructors

func NewNoteNameIndexOutOfRangeError(index, count int) *errors.Error {
	return errors.New(ErrCodeNoteNameIndexOutOfRange, "Note name index out of range").
		WithUserMessage("The host queried a note name index past the current count").
		WithContext("index", index).
		WithContext("count", count).
		WithSeverity("error")
}

// Capability error constructors

func NewCapabilityUnsupportedError(extensionID string) *errors.Error {
	return errors.New(ErrCodeCapabilityUnsupported, "Host capability unsupported").
		WithUserMessage("The host does not provide this extension").
		WithContext("extension_id", extensionID).
		WithSeverity("info")
}

func NewCapabilityFailedError(extensionID string, cause error) *errors.Error {
	if cause != nil {
		return errors.Wrap(cause, ErrCodeCapabilityFailed, "Host capability call failed").
			WithUserMessage("The host provides this extension but the call did not succeed").
			WithContext("extension_id", extensionID).
			WithSeverity("warning").
			AsRetryable()
	}
	return errors.New(ErrCodeCapabilityFailed, "Host capability call failed").
		WithUserMessage("The host provides this extension but the call did not succeed").
		WithContext("extension_id", extensionID).
		WithSeverity("warning").
		AsRetryable()
}

// Manifest error constructors

func NewManifestNotFoundError(path string) *errors.Error {
	return errors.New(ErrCodeManifestNotFound, "Manifest file not found").
		WithUserMessage("The plugin manifest file could not be found").
		WithContext("manifest_path", path).
		WithSeverity("error")
}

func NewManifestParseError(path string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeManifestParseError, "Manifest parse error").
		WithUserMessage("Failed to parse the plugin manifest file").
		WithContext("manifest_path", path).
		WithSeverity("error")
}

func NewManifestValidationError(message string, cause error) *errors.Error {
	if cause != nil {
		return errors.Wrap(cause, ErrCodeManifestValidation, "Manifest validation error: "+message).
			WithUserMessage("Plugin manifest validation failed").
			WithSeverity("error")
	}
	return errors.New(ErrCodeManifestValidation, "Manifest validation error: "+message).
		WithUserMessage("Plugin manifest validation failed").
		WithSeverity("error")
}

// Diagnostics configuration error constructors

func NewDiagnosticsConfigError(message string, cause error) *errors.Error {
	if cause != nil {
		return errors.Wrap(cause, ErrCodeDiagnosticsConfig, "Diagnostics configuration error: "+message).
			WithUserMessage("Invalid diagnostics configuration").
			WithSeverity("error")
	}
	return errors.New(ErrCodeDiagnosticsConfig, "Diagnostics configuration error: "+message).
		WithUserMessage("Invalid diagnostics configuration").
		WithSeverity("error")
}

func NewDiagnosticsWatcherError(message string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeDiagnosticsWatcher, "Diagnostics watcher error: "+message).
		WithUserMessage("Diagnostics configuration monitoring failed").
		WithSeverity("error")
}

// Instance registry error constructors

func NewUnknownInstanceError(handle InstanceHandle, message string) *errors.Error {
	return errors.New(ErrCodeUnknownInstance, "Unknown plugin instance: "+message).
		WithUserMessage("The host passed a handle that does not identify a live plugin instance").
		WithContext("handle", uint64(handle)).
		WithSeverity("error")
}

func NewNilPluginError() *errors.Error {
	return errors.New(ErrCodeNilPlugin, "Nil plugin implementation").
		WithUserMessage("A plugin implementation is required to build an adapter").
		WithSeverity("error")
}

// Render error constructors

func NewInvalidRenderModeError(mode RenderMode) *errors.Error {
	return errors.New(ErrCodeInvalidRenderMode, "Invalid render mode").
		WithUserMessage("The host requested an unknown render mode").
		WithContext("mode", int32(mode)).
		WithSeverity("error")
}
