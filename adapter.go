// adapter.go: The plugin-side ABI adapter and its lifecycle state machine
//
// PluginAdapter sits between the host-facing entry points and the plugin
// author surface. Every entry point validates thread affinity and lifecycle
// state before any author hook runs, and converts author errors into the
// ABI's boolean/status results. The state machine is authoritative:
// Uninitialized -> Inactive -> Active -> Active(processing) -> Destroyed,
// with deactivate idempotent-with-diagnostic.
//
// Entry points other than init and destroy are wired only after init
// succeeds, so a host holding the entry table cannot reach processing code
// on a plugin that never became ready.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package goclap

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// LifecycleState is the externally observable state of a plugin instance.
type LifecycleState int

const (
	StateUninitialized LifecycleState = iota
	StateInactive
	StateActive
	StateProcessing
	StateDestroyed
)

// String returns a human-readable representation of the lifecycle state.
func (s LifecycleState) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateActive:
		return "active"
	case StateProcessing:
		return "processing"
	case StateDestroyed:
		return "destroyed"
	default:
		return "uninitialized"
	}
}

// EntryPoints is the function table the host drives the plugin through, the
// object-oriented stand-in for the ABI's function-pointer struct. Init and
// Destroy are populated at construction; every other slot stays nil until
// Init succeeds and becomes nil again after Destroy. The host must
// null-check slots exactly as it would with a C function table.
type EntryPoints struct {
	Init            func() bool
	Destroy         func()
	Activate        func(sampleRate int) bool
	Deactivate      func()
	StartProcessing func() bool
	StopProcessing  func()
	Process         func(process *Process) ProcessStatus
	Extension       func(id string) any
}

// PluginAdapter wraps one plugin author implementation behind the validated
// ABI surface. One adapter per loaded plugin instance; the host owns the
// instance and releases it only through the destroy entry point.
type PluginAdapter struct {
	plugin Plugin
	host   Host

	caps  HostCapabilitySet
	diag  *Diagnostics
	guard *ThreadGuard

	metrics    *AdapterMetrics
	instanceID string
	handle     InstanceHandle
	entry      *EntryPoints

	negotiated  bool
	initialized bool
	destroyed   bool
	active      bool
	processing  bool
	sampleRate  int
	renderMode  RenderMode

	hasTrackInfo bool
	trackInfo    TrackInfo
}

type adapterOptions struct {
	logger     Logger
	config     *DiagnosticsConfig
	registerer prometheus.Registerer
}

// Option configures a PluginAdapter at construction.
type Option func(*adapterOptions)

// WithLogger sets the local fallback logger used when the host has no log
// capability.
func WithLogger(logger Logger) Option {
	return func(o *adapterOptions) { o.logger = logger }
}

// WithDiagnosticsConfig sets the initial diagnostics configuration.
func WithDiagnosticsConfig(config DiagnosticsConfig) Option {
	return func(o *adapterOptions) { o.config = &config }
}

// WithMetrics enables Prometheus metrics for this instance, registered on
// the given registerer.
func WithMetrics(registerer prometheus.Registerer) Option {
	return func(o *adapterOptions) { o.registerer = registerer }
}

// NewPluginAdapter creates the adapter for one plugin instance. The host
// handle is borrowed, never owned. The returned adapter is registered in
// the instance registry and exposes its entry table through EntryPoints.
func NewPluginAdapter(plugin Plugin, host Host, opts ...Option) (*PluginAdapter, error) {
	if plugin == nil {
		return nil, NewNilPluginError()
	}

	var options adapterOptions
	for _, opt := range opts {
		opt(&options)
	}

	instanceID := uuid.NewString()
	fallback := options.logger
	if fallback == nil {
		fallback = DefaultLogger()
	}
	fallback = fallback.With("instance_id", instanceID)

	a := &PluginAdapter{
		plugin:     plugin,
		host:       host,
		diag:       NewDiagnostics(fallback, options.config),
		instanceID: instanceID,
		renderMode: RenderRealtime,
	}
	a.guard = newThreadGuard(&a.caps, a.diag)

	if options.registerer != nil {
		metrics, err := NewAdapterMetrics(options.registerer, instanceID)
		if err != nil {
			return nil, err
		}
		a.metrics = metrics
		a.diag.setMetrics(metrics)
	}

	a.handle = registerInstance(a)
	h := a.handle
	a.entry = &EntryPoints{
		Init:    func() bool { return fromHandle(h).pluginInit() },
		Destroy: func() { fromHandle(h).pluginDestroy() },
	}
	return a, nil
}

// EntryPoints returns the entry table the host drives this instance
// through. The same table is returned for the instance's whole life; Init
// fills the remaining slots in place.
func (a *PluginAdapter) EntryPoints() *EntryPoints { return a.entry }

// Handle returns the opaque instance handle.
func (a *PluginAdapter) Handle() InstanceHandle { return a.handle }

// InstanceID returns the diagnostic identity of this instance.
func (a *PluginAdapter) InstanceID() string { return a.instanceID }

// Capabilities returns the negotiated host capability set. Empty before
// Init.
func (a *PluginAdapter) Capabilities() *HostCapabilitySet { return &a.caps }

// Diagnostics returns the instance's diagnostics channel, primarily so a
// DiagnosticsConfigWatcher can be attached.
func (a *PluginAdapter) Diagnostics() *Diagnostics { return a.diag }

// State derives the externally observable lifecycle state.
func (a *PluginAdapter) State() LifecycleState {
	switch {
	case a.destroyed:
		return StateDestroyed
	case a.processing:
		return StateProcessing
	case a.active:
		return StateActive
	case a.initialized:
		return StateInactive
	default:
		return StateUninitialized
	}
}

// SampleRate returns the active sample rate. It is 0 whenever the plugin
// is inactive; querying it only makes sense while active.
func (a *PluginAdapter) SampleRate() int { return a.sampleRate }

// IsActive reports whether the plugin is activated.
func (a *PluginAdapter) IsActive() bool { return a.active }

// IsProcessing reports whether the plugin is between start_processing and
// stop_processing.
func (a *PluginAdapter) IsProcessing() bool { return a.processing }

// CurrentRenderMode returns the last render mode pushed by the host.
func (a *PluginAdapter) CurrentRenderMode() RenderMode { return a.renderMode }

func (a *PluginAdapter) observeState() {
	if a.metrics == nil {
		return
	}
	switch a.State() {
	case StateDestroyed:
		a.metrics.observeState(metricStateDestroyed)
	case StateProcessing:
		a.metrics.observeState(metricStateProcessing)
	case StateActive:
		a.metrics.observeState(metricStateActive)
	case StateInactive:
		a.metrics.observeState(metricStateInactive)
	default:
		a.metrics.observeState(metricStateUninitialized)
	}
}

// pluginInit is the init entry point: Uninitialized -> Inactive.
//
// Capability negotiation runs exactly once per instance, before the thread
// check, because the thread guard itself needs the thread-check capability.
// The remaining entry points are wired only after the author hook succeeds.
func (a *PluginAdapter) pluginInit() bool {
	if a.destroyed {
		a.diag.HostMisbehaving("clap_plugin.init", "init called on a destroyed plugin")
		return false
	}
	if a.initialized {
		a.diag.HostMisbehaving("clap_plugin.init", "plugin initialized twice")
		return true
	}

	if !a.negotiated {
		a.caps = negotiateHostCapabilities(a.host)
		a.diag.attachHostLog(a.caps.Log)
		a.negotiated = true
	}

	a.guard.EnsureMainThread("clap_plugin.init")
	a.initTrackInfo()

	if err := a.plugin.Init(); err != nil {
		a.diag.Log(SeverityWarning, "plugin init failed: "+err.Error())
		return false
	}

	h := a.handle
	a.entry.Activate = func(sampleRate int) bool { return fromHandle(h).pluginActivate(sampleRate) }
	a.entry.Deactivate = func() { fromHandle(h).pluginDeactivate() }
	a.entry.StartProcessing = func() bool { return fromHandle(h).pluginStartProcessing() }
	a.entry.StopProcessing = func() { fromHandle(h).pluginStopProcessing() }
	a.entry.Process = func(p *Process) ProcessStatus { return fromHandle(h).pluginProcess(p) }
	a.entry.Extension = func(id string) any { return fromHandle(h).pluginExtension(id) }

	a.initialized = true
	a.observeState()
	return true
}

// pluginDestroy is the destroy entry point. Permitted regardless of prior
// state, but the host owns the activation contract: destroying an active
// instance is reported, not defended against.
func (a *PluginAdapter) pluginDestroy() {
	a.guard.EnsureMainThread("clap_plugin.destroy")

	if a.active {
		a.diag.HostMisbehaving("clap_plugin.destroy",
			"destroying an active plugin, the host must deactivate first")
	}

	a.plugin.Destroy()
	a.destroyed = true
	a.active = false
	a.processing = false
	a.sampleRate = 0
	a.observeState()

	unregisterInstance(a.handle)
	a.entry.Init = nil
	a.entry.Destroy = nil
	a.entry.Activate = nil
	a.entry.Deactivate = nil
	a.entry.StartProcessing = nil
	a.entry.StopProcessing = nil
	a.entry.Process = nil
	a.entry.Extension = nil
}

// pluginActivate is the activate entry point: Inactive -> Active.
func (a *PluginAdapter) pluginActivate(sampleRate int) bool {
	a.guard.EnsureMainThread("clap_plugin.activate")

	if a.active {
		a.diag.HostMisbehaving("clap_plugin.activate", "plugin was activated twice")

		if sampleRate != a.sampleRate {
			a.diag.HostMisbehaving("clap_plugin.activate", fmt.Sprintf(
				"plugin was activated twice with different sample rates: %d and %d; the host must deactivate the plugin first, simulating deactivation",
				a.sampleRate, sampleRate))
			a.pluginDeactivate()
		}
	}

	if sampleRate <= 0 {
		a.diag.HostMisbehaving("clap_plugin.activate",
			fmt.Sprintf("plugin was activated with an invalid sample rate: %d", sampleRate))
		return false
	}

	if a.active {
		// Still active at the same rate after the double-activation report:
		// acknowledged without running the author hook again.
		return true
	}

	if err := a.plugin.Activate(sampleRate); err != nil {
		a.diag.Log(SeverityWarning, "plugin refused activation: "+err.Error())
		return false
	}

	a.active = true
	a.sampleRate = sampleRate
	a.observeState()
	return true
}

// pluginDeactivate is the deactivate entry point: Active -> Inactive.
// Deactivating twice is misbehavior but harmless.
func (a *PluginAdapter) pluginDeactivate() {
	a.guard.EnsureMainThread("clap_plugin.deactivate")

	if !a.active {
		a.diag.HostMisbehaving("clap_plugin.deactivate", "the plugin was deactivated twice")
		return
	}

	if a.processing {
		// start/stop keep the processing flag down before deactivation; a
		// host skipping stop_processing is misbehaving. Simulate the stop
		// so the author still sees a balanced start/stop pair.
		a.diag.HostMisbehaving("clap_plugin.deactivate",
			"deactivating while still processing, simulating stop_processing")
		a.plugin.StopProcessing()
		a.processing = false
	}

	a.plugin.Deactivate()
	a.active = false
	a.sampleRate = 0
	a.observeState()
}

// pluginStartProcessing is the start_processing entry point, audio thread
// only. Starting twice is acknowledged idempotently; the author hook runs
// at most once per processing span.
func (a *PluginAdapter) pluginStartProcessing() bool {
	a.guard.EnsureAudioThread("clap_plugin.start_processing")

	if !a.active {
		a.diag.HostMisbehaving("clap_plugin.start_processing",
			"host called start_processing on a deactivated plugin")
		return false
	}

	if a.processing {
		a.diag.HostMisbehaving("clap_plugin.start_processing",
			"host called start_processing twice")
		return true
	}

	if err := a.plugin.StartProcessing(); err != nil {
		a.diag.Log(SeverityWarning, "plugin refused to start processing: "+err.Error())
		return false
	}

	a.processing = true
	a.observeState()
	return true
}

// pluginStopProcessing is the stop_processing entry point, audio thread
// only.
func (a *PluginAdapter) pluginStopProcessing() {
	a.guard.EnsureAudioThread("clap_plugin.stop_processing")

	if !a.active {
		a.diag.HostMisbehaving("clap_plugin.stop_processing",
			"host called stop_processing on a deactivated plugin")
		return
	}

	if !a.processing {
		a.diag.HostMisbehaving("clap_plugin.stop_processing",
			"host called stop_processing twice")
		return
	}

	a.plugin.StopProcessing()
	a.processing = false
	a.observeState()
}

// pluginProcess is the process entry point, audio thread only. Refused with
// ProcessError unless the plugin is active and processing; the author hook
// is never reached otherwise.
func (a *PluginAdapter) pluginProcess(process *Process) ProcessStatus {
	a.guard.EnsureAudioThread("clap_plugin.process")

	if !a.active {
		a.diag.HostMisbehaving("clap_plugin.process",
			"host called process on a deactivated plugin")
		if a.metrics != nil {
			a.metrics.observeProcess(ProcessError)
		}
		return ProcessError
	}

	if !a.processing {
		a.diag.HostMisbehaving("clap_plugin.process",
			"host called process without calling start_processing")
		if a.metrics != nil {
			a.metrics.observeProcess(ProcessError)
		}
		return ProcessError
	}

	status := a.plugin.Process(process)
	if a.metrics != nil {
		a.metrics.observeProcess(status)
	}
	return status
}

// pluginExtension is the inbound extension query, main thread only.
//
// Built-in ids are handled first: render and track-info are always
// available, the others only when the author implements the matching
// provider interface. Unknown ids fall through to the author's
// ExtensionFallback, then to nil.
func (a *PluginAdapter) pluginExtension(id string) any {
	a.guard.EnsureMainThread("clap_plugin.extension")

	switch id {
	case ExtRender:
		return &RenderExtension{adapter: a}
	case ExtTrackInfo:
		return &TrackInfoExtension{adapter: a}
	case ExtAudioPorts:
		if provider, ok := a.plugin.(AudioPortsProvider); ok {
			return &AudioPortsExtension{adapter: a, provider: provider}
		}
	case ExtParams:
		if provider, ok := a.plugin.(ParamsProvider); ok {
			return &ParamsExtension{adapter: a, provider: provider}
		}
	case ExtState:
		if provider, ok := a.plugin.(StateProvider); ok {
			return &StateExtension{adapter: a, provider: provider}
		}
	case ExtLatency:
		if provider, ok := a.plugin.(LatencyProvider); ok {
			return &LatencyExtension{adapter: a, provider: provider}
		}
	case ExtNoteName:
		if provider, ok := a.plugin.(NoteNameProvider); ok {
			return &NoteNameExtension{adapter: a, provider: provider}
		}
	}

	if fallback, ok := a.plugin.(ExtensionFallback); ok {
		return fallback.Extension(id)
	}
	return nil
}

// NotifyLatencyChanged tells the host to re-query the plugin latency.
// Distinguishes a host without the latency capability from one whose
// capability is present; only the former is an error here since the
// host-side call cannot itself fail.
func (a *PluginAdapter) NotifyLatencyChanged() error {
	if !a.caps.CanUseLatency() {
		return NewCapabilityUnsupportedError(ExtLatency)
	}
	a.caps.Latency.Changed()
	return nil
}

// MarkStateDirty asks the host to save the plugin state soon.
func (a *PluginAdapter) MarkStateDirty() error {
	if !a.caps.CanUseState() {
		return NewCapabilityUnsupportedError(ExtState)
	}
	a.caps.State.MarkDirty()
	return nil
}

// RescanAudioPorts tells the host the plugin's port layout changed.
func (a *PluginAdapter) RescanAudioPorts(flags RescanFlags) error {
	if !a.caps.CanUseAudioPorts() {
		return NewCapabilityUnsupportedError(ExtAudioPorts)
	}
	a.caps.AudioPorts.Rescan(flags)
	return nil
}
