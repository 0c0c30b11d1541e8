// track_info.go: Host-pushed track info cache
//
// The adapter keeps an optional snapshot of the track the plugin sits on.
// The snapshot is fetched eagerly at init when the host provides the
// capability, and re-fetched when the host pushes a changed notification.
// It is replaced wholesale, never partially mutated; a failed fetch marks
// the cache invalid. The channel-diff signal computed on refresh is private
// to the plugin's TrackInfoChanged hook, it is never surfaced to the host.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package goclap

// TrackInfoExtension is the plugin-side track-info interface table. It is a
// built-in: every adapter exposes it regardless of the author surface.
type TrackInfoExtension struct {
	adapter *PluginAdapter
}

// Changed handles the host's track-info changed notification, main thread
// only. A host that notifies without providing a usable track-info
// capability is misbehaving and the call is refused.
func (e *TrackInfoExtension) Changed() {
	a := e.adapter
	a.guard.EnsureMainThread("clap_plugin_track_info.changed")

	if !a.caps.CanUseTrackInfo() {
		a.diag.HostMisbehaving("clap_plugin_track_info.changed",
			"host notified a track info change but does not provide a complete track-info capability")
		return
	}

	info, ok := a.caps.TrackInfo.Get()
	if !ok {
		a.hasTrackInfo = false
		a.diag.HostMisbehaving("clap_plugin_track_info.changed",
			"host track-info get failed after notifying a change")
		return
	}

	channelsChanged := info.ChannelCount != a.trackInfo.ChannelCount ||
		info.ChannelMap != a.trackInfo.ChannelMap
	a.trackInfo = info
	a.hasTrackInfo = true

	if listener, ok := a.plugin.(TrackInfoListener); ok {
		listener.TrackInfoChanged(channelsChanged)
	}
}

// initTrackInfo eagerly fetches the first snapshot during Init. Failure is
// not fatal: the cache simply stays invalid until the host notifies.
func (a *PluginAdapter) initTrackInfo() {
	a.guard.CheckMainThread()

	if !a.caps.CanUseTrackInfo() {
		return
	}

	info, ok := a.caps.TrackInfo.Get()
	if !ok {
		a.hasTrackInfo = false
		return
	}
	a.trackInfo = info
	a.hasTrackInfo = true
}

// CurrentTrackInfo returns the cached snapshot and whether it is valid.
func (a *PluginAdapter) CurrentTrackInfo() (TrackInfo, bool) {
	return a.trackInfo, a.hasTrackInfo
}

// RefreshTrackInfo re-fetches the snapshot on demand, distinguishing a host
// without the capability from a host whose fetch failed.
func (a *PluginAdapter) RefreshTrackInfo() error {
	a.guard.CheckMainThread()

	if !a.caps.CanUseTrackInfo() {
		return NewCapabilityUnsupportedError(ExtTrackInfo)
	}

	info, ok := a.caps.TrackInfo.Get()
	if !ok {
		a.hasTrackInfo = false
		return NewCapabilityFailedError(ExtTrackInfo, nil)
	}
	a.trackInfo = info
	a.hasTrackInfo = true
	return nil
}
