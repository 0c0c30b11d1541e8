// diagnostics_config.go: Runtime configuration for the diagnostics channel
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package goclap

import (
	"encoding/json"
	"os"
	"time"

	"github.com/agilira/argus"
	"gopkg.in/yaml.v3"
)

// FatalStrategy selects how the adapter reacts to a thread-affinity
// violation after reporting it.
//
// The documented default is FatalTerminate: continuing past a thread
// violation in a realtime audio context risks data races on state that is
// deliberately not synchronized, and a controlled abort is the lesser harm.
// FatalPanic exists for test harnesses that need to observe the violation
// without killing the process.
type FatalStrategy int

const (
	FatalTerminate FatalStrategy = iota
	FatalPanic
)

// String returns a human-readable representation of the fatal strategy.
func (s FatalStrategy) String() string {
	switch s {
	case FatalPanic:
		return "panic"
	default:
		return "terminate"
	}
}

// ParseFatalStrategy converts a configuration string to a FatalStrategy.
// Returns FatalTerminate and false for unrecognized values.
func ParseFatalStrategy(s string) (FatalStrategy, bool) {
	switch s {
	case "terminate":
		return FatalTerminate, true
	case "panic":
		return FatalPanic, true
	default:
		return FatalTerminate, false
	}
}

// DiagnosticsConfig controls the diagnostics channel of a plugin instance.
//
// It is hot-reloadable: the DiagnosticsConfigWatcher swaps it atomically
// while the instance runs. Fields are read through one atomic pointer load
// per diagnostic, never under a lock.
type DiagnosticsConfig struct {
	// MinSeverity drops diagnostics below this severity. Host misbehavior
	// reports are never below SeverityHostMisbehaving, so they always pass.
	MinSeverity LogSeverity

	// FatalStrategy selects the reaction to thread-affinity violations.
	FatalStrategy FatalStrategy

	// MisbehaviorLogWindow suppresses repeated identical misbehavior
	// reports within this window. Zero disables flood control.
	MisbehaviorLogWindow time.Duration
}

// DefaultDiagnosticsConfig returns production defaults: informational
// logging, terminating fatal strategy and one-second misbehavior flood
// control.
func DefaultDiagnosticsConfig() DiagnosticsConfig {
	return DiagnosticsConfig{
		MinSeverity:          SeverityInfo,
		FatalStrategy:        FatalTerminate,
		MisbehaviorLogWindow: time.Second,
	}
}

// Validate checks the configuration for usable values.
func (c DiagnosticsConfig) Validate() error {
	if c.MinSeverity < SeverityDebug || c.MinSeverity > SeverityHostMisbehaving {
		return NewDiagnosticsConfigError("min severity out of range", nil)
	}
	if c.FatalStrategy != FatalTerminate && c.FatalStrategy != FatalPanic {
		return NewDiagnosticsConfigError("unknown fatal strategy", nil)
	}
	if c.MisbehaviorLogWindow < 0 {
		return NewDiagnosticsConfigError("misbehavior log window must not be negative", nil)
	}
	return nil
}

// diagnosticsConfigFile is the on-disk representation, with string enums.
type diagnosticsConfigFile struct {
	MinSeverity          string        `json:"min_severity" yaml:"min_severity"`
	FatalStrategy        string        `json:"fatal_strategy" yaml:"fatal_strategy"`
	MisbehaviorLogWindow time.Duration `json:"misbehavior_log_window" yaml:"misbehavior_log_window"`
}

// LoadDiagnosticsConfig reads a diagnostics configuration from a JSON or
// YAML file. Unset fields keep their defaults; unknown enum strings are
// rejected.
func LoadDiagnosticsConfig(path string) (DiagnosticsConfig, error) {
	config := DefaultDiagnosticsConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, NewDiagnosticsConfigError("configuration file not found: "+path, err)
		}
		return config, NewDiagnosticsConfigError("failed to read configuration file", err)
	}

	var file diagnosticsConfigFile
	switch argus.DetectFormat(path) {
	case argus.FormatJSON:
		err = json.Unmarshal(data, &file)
	default:
		err = yaml.Unmarshal(data, &file)
	}
	if err != nil {
		return config, NewDiagnosticsConfigError("failed to parse configuration file", err)
	}

	if file.MinSeverity != "" {
		sev, ok := ParseLogSeverity(file.MinSeverity)
		if !ok {
			return config, NewDiagnosticsConfigError("unknown min severity: "+file.MinSeverity, nil)
		}
		config.MinSeverity = sev
	}
	if file.FatalStrategy != "" {
		strategy, ok := ParseFatalStrategy(file.FatalStrategy)
		if !ok {
			return config, NewDiagnosticsConfigError("unknown fatal strategy: "+file.FatalStrategy, nil)
		}
		config.FatalStrategy = strategy
	}
	if file.MisbehaviorLogWindow != 0 {
		config.MisbehaviorLogWindow = file.MisbehaviorLogWindow
	}

	if err := config.Validate(); err != nil {
		return DefaultDiagnosticsConfig(), err
	}
	return config, nil
}
