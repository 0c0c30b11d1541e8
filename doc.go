// Package goclap is the plugin-side adapter layer for a CLAP-style binary
// plugin interface. It sits between the C-style function-table ABI an audio
// host drives and the object-oriented surface a concrete plugin implements,
// and defends the plugin against hosts that violate the protocol: wrong call
// order, wrong thread class, out-of-range indices, unknown parameter ids.
//
// Key features:
//   - Authoritative lifecycle state machine (init, activate, start/stop
//     processing, deactivate, destroy) with safe refusal of illegal
//     transitions
//   - Thread-affinity enforcement through the host's thread-check
//     capability, fail-fast by default
//   - Two-way extension negotiation: host capabilities discovered once at
//     init, plugin extensions exposed only when the author implements them
//   - Parameter and audio-port validation before any plugin code runs
//   - Host-pushed track-info caching with change signals for the plugin
//   - Severity-tagged diagnostics with a dedicated host-misbehavior channel,
//     routed to the host log capability when available
//   - Hot-reloadable diagnostics configuration and optional Prometheus
//     metrics
//
// Basic usage:
//
//	// Implement the author surface
//	type Gain struct{ gain goclap.ParamValue }
//
//	func (g *Gain) Init() error { return nil }
//	// ... remaining Plugin methods, plus optional providers
//
//	// Build the adapter against the host handle
//	adapter, err := goclap.NewPluginAdapter(&Gain{}, host)
//	if err != nil {
//	    return err
//	}
//
//	// Hand the entry table to the host
//	entry := adapter.EntryPoints()
//	if !entry.Init() {
//	    return errors.New("plugin failed to initialize")
//	}
//
// The adapter never implements audio DSP; Process and every other hook
// belong to the concrete plugin. No entry point blocks, sleeps or takes a
// lock, and nothing allocates on the audio path.
package goclap
