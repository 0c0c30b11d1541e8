// diagnostics_watcher.go: Diagnostics configuration hot reload with Argus
//
// Plugins run inside a host process the operator does not control; being
// able to raise log verbosity or soften the fatal strategy on a live
// instance without reloading the plugin is the whole point of this watcher.
// Argus polls the configuration file and the watcher swaps the parsed
// configuration into the Diagnostics channel atomically.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package goclap

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/agilira/argus"
)

// DiagnosticsWatcherOptions configures the behavior of the diagnostics
// configuration watcher.
type DiagnosticsWatcherOptions struct {
	// Argus polling interval for file changes
	PollInterval time.Duration `json:"poll_interval" yaml:"poll_interval"`

	// Cache TTL for file stat operations
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl"`

	// Audit configuration for tracking configuration changes
	AuditConfig argus.AuditConfig `json:"audit_config" yaml:"audit_config"`

	// Custom error handler for watcher errors
	ErrorHandler func(error, string) `json:"-" yaml:"-"`
}

// DefaultDiagnosticsWatcherOptions returns defaults tuned for a file that
// changes rarely and only by operator hand.
func DefaultDiagnosticsWatcherOptions() DiagnosticsWatcherOptions {
	return DiagnosticsWatcherOptions{
		PollInterval: 10 * time.Second,
		CacheTTL:     5 * time.Second,
		AuditConfig: argus.AuditConfig{
			Enabled: false,
		},
	}
}

// DiagnosticsConfigWatcher hot-reloads a DiagnosticsConfig file into a
// Diagnostics channel.
//
// The watcher owns the only goroutine in the library (Argus's poller). It
// never touches adapter lifecycle state; its single effect is an atomic
// configuration swap inside Diagnostics.
type DiagnosticsConfigWatcher struct {
	diag       *Diagnostics
	watcher    *argus.Watcher
	configPath string
	logger     Logger
	options    DiagnosticsWatcherOptions

	mutex   sync.Mutex
	enabled atomic.Bool
	stopped atomic.Bool
}

// NewDiagnosticsConfigWatcher creates a watcher for the given diagnostics
// channel and configuration file path.
func NewDiagnosticsConfigWatcher(diag *Diagnostics, configPath string, options DiagnosticsWatcherOptions, logger Logger) (*DiagnosticsConfigWatcher, error) {
	if diag == nil {
		return nil, NewDiagnosticsWatcherError("diagnostics channel is required", nil)
	}
	if configPath == "" {
		return nil, NewDiagnosticsWatcherError("configuration path is required", nil)
	}
	if logger == nil {
		logger = DefaultLogger()
	}

	argusConfig := argus.Config{
		PollInterval:         options.PollInterval,
		CacheTTL:             options.CacheTTL,
		MaxWatchedFiles:      1,
		Audit:                options.AuditConfig,
		OptimizationStrategy: argus.OptimizationSingleEvent,
		ErrorHandler: func(err error, filepath string) {
			if options.ErrorHandler != nil {
				options.ErrorHandler(err, filepath)
			} else {
				logger.Error("Diagnostics config watching error", "error", err, "file", filepath)
			}
		},
	}

	return &DiagnosticsConfigWatcher{
		diag:       diag,
		watcher:    argus.New(argusConfig),
		configPath: configPath,
		logger:     logger,
		options:    options,
	}, nil
}

// Start loads the configuration file once, applies it, and begins watching
// for changes.
//
// Returns error if the watcher was already started or permanently stopped,
// or if the initial configuration cannot be loaded or applied.
func (w *DiagnosticsConfigWatcher) Start() error {
	if w.stopped.Load() {
		return NewDiagnosticsWatcherError("watcher has been permanently stopped and cannot be restarted", nil)
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.enabled.CompareAndSwap(false, true) {
		return NewDiagnosticsWatcherError("watcher is already running", nil)
	}

	config, err := LoadDiagnosticsConfig(w.configPath)
	if err != nil {
		w.enabled.Store(false)
		return err
	}
	if err := w.diag.ApplyConfig(config); err != nil {
		w.enabled.Store(false)
		return err
	}

	if err := w.watcher.Watch(w.configPath, w.handleConfigChange); err != nil {
		w.enabled.Store(false)
		return NewDiagnosticsWatcherError("failed to watch configuration file", err)
	}
	if err := w.watcher.Start(); err != nil {
		w.enabled.Store(false)
		return NewDiagnosticsWatcherError("failed to start file watcher", err)
	}

	w.logger.Info("Diagnostics config watcher started", "path", w.configPath)
	return nil
}

// Stop permanently stops the watcher. The last applied configuration stays
// in effect.
func (w *DiagnosticsConfigWatcher) Stop() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.enabled.CompareAndSwap(true, false) {
		return nil
	}
	w.stopped.Store(true)

	if err := w.watcher.Stop(); err != nil {
		return NewDiagnosticsWatcherError("failed to stop file watcher", err)
	}
	w.logger.Info("Diagnostics config watcher stopped", "path", w.configPath)
	return nil
}

// handleConfigChange processes configuration file changes from Argus.
func (w *DiagnosticsConfigWatcher) handleConfigChange(event argus.ChangeEvent) {
	if event.IsDelete {
		w.logger.Warn("Diagnostics config file was deleted, keeping current configuration", "path", event.Path)
		return
	}

	config, err := LoadDiagnosticsConfig(event.Path)
	if err != nil {
		w.logger.Error("Failed to load new diagnostics configuration", "error", err, "path", event.Path)
		return
	}

	if err := w.diag.ApplyConfig(config); err != nil {
		w.logger.Error("Failed to apply new diagnostics configuration", "error", err, "path", event.Path)
		return
	}

	w.logger.Info("Diagnostics configuration reloaded",
		"path", event.Path,
		"min_severity", config.MinSeverity.String(),
		"fatal_strategy", config.FatalStrategy.String())
}
