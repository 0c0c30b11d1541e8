// track_info_test.go: Track info cache tests
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package goclap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stereoTrack() TrackInfo {
	return TrackInfo{ID: 1, Name: "Drums", ChannelCount: 2, ChannelMap: ChannelMapStereo}
}

func trackInfoFixture(t *testing.T, plugin Plugin, trackHost *fakeTrackInfoHost) (*PluginAdapter, *TrackInfoExtension, *captureHostLog) {
	t.Helper()

	host := newFakeHost()
	if trackHost != nil {
		host.exts[ExtTrackInfo] = trackHost
	}
	adapter, log := newTestAdapter(t, plugin, host)
	entry := initAdapter(t, adapter)

	ext, ok := entry.Extension(ExtTrackInfo).(*TrackInfoExtension)
	require.True(t, ok)
	return adapter, ext, log
}

func TestTrackInfo_EagerFetchAtInit(t *testing.T) {
	trackHost := &fakeTrackInfoHost{info: stereoTrack(), ok: true}
	adapter, _, log := trackInfoFixture(t, newStubPlugin(), trackHost)

	info, ok := adapter.CurrentTrackInfo()
	assert.True(t, ok)
	assert.Equal(t, stereoTrack(), info)
	assert.Equal(t, 1, trackHost.calls)
	assert.Zero(t, log.misbehaviorCount())
}

func TestTrackInfo_NoCapability(t *testing.T) {
	adapter, _, _ := trackInfoFixture(t, newStubPlugin(), nil)

	_, ok := adapter.CurrentTrackInfo()
	assert.False(t, ok, "cache stays invalid without the capability")
}

func TestTrackInfo_FailedInitFetchIsNotFatal(t *testing.T) {
	trackHost := &fakeTrackInfoHost{ok: false}
	adapter, _, log := trackInfoFixture(t, newStubPlugin(), trackHost)

	_, ok := adapter.CurrentTrackInfo()
	assert.False(t, ok)
	assert.Equal(t, StateInactive, adapter.State(), "init still succeeds")
	assert.Zero(t, log.misbehaviorCount())
}

func TestTrackInfoChanged_RefreshesCache(t *testing.T) {
	trackHost := &fakeTrackInfoHost{info: stereoTrack(), ok: true}
	plugin := newTrackAwareStubPlugin()
	adapter, ext, log := trackInfoFixture(t, plugin, trackHost)

	t.Run("same channels", func(t *testing.T) {
		renamed := stereoTrack()
		renamed.Name = "Drum Bus"
		trackHost.info = renamed

		ext.Changed()

		info, ok := adapter.CurrentTrackInfo()
		require.True(t, ok)
		assert.Equal(t, "Drum Bus", info.Name)
		require.Len(t, plugin.trackNotifications, 1)
		assert.False(t, plugin.trackNotifications[0])
	})

	t.Run("channel layout changed", func(t *testing.T) {
		trackHost.info = TrackInfo{ID: 1, Name: "Drum Bus", ChannelCount: 1, ChannelMap: ChannelMapMono}

		ext.Changed()

		require.Len(t, plugin.trackNotifications, 2)
		assert.True(t, plugin.trackNotifications[1])
	})

	assert.Zero(t, log.misbehaviorCount())
}

func TestTrackInfoChanged_WithoutCapabilityIsMisbehavior(t *testing.T) {
	plugin := newTrackAwareStubPlugin()
	_, ext, log := trackInfoFixture(t, plugin, nil)

	ext.Changed()

	assert.Equal(t, 1, log.misbehaviorCount())
	assert.Empty(t, plugin.trackNotifications, "the author hook must not fire on a refused notification")
}

func TestTrackInfoChanged_FailedFetchInvalidatesCache(t *testing.T) {
	trackHost := &fakeTrackInfoHost{info: stereoTrack(), ok: true}
	adapter, ext, log := trackInfoFixture(t, newStubPlugin(), trackHost)

	_, ok := adapter.CurrentTrackInfo()
	require.True(t, ok)

	trackHost.ok = false
	ext.Changed()

	_, ok = adapter.CurrentTrackInfo()
	assert.False(t, ok)
	assert.Equal(t, 1, log.misbehaviorCount())
}

func TestRefreshTrackInfo(t *testing.T) {
	t.Run("without capability", func(t *testing.T) {
		adapter, _, _ := trackInfoFixture(t, newStubPlugin(), nil)

		err := adapter.RefreshTrackInfo()
		require.Error(t, err)
		assertErrorCode(t, err, ErrCodeCapabilityUnsupported)
	})

	t.Run("fetch fails", func(t *testing.T) {
		trackHost := &fakeTrackInfoHost{ok: false}
		adapter, _, _ := trackInfoFixture(t, newStubPlugin(), trackHost)

		err := adapter.RefreshTrackInfo()
		require.Error(t, err)
		assertErrorCode(t, err, ErrCodeCapabilityFailed)
	})

	t.Run("fetch succeeds", func(t *testing.T) {
		trackHost := &fakeTrackInfoHost{info: stereoTrack(), ok: true}
		adapter, _, _ := trackInfoFixture(t, newStubPlugin(), trackHost)

		require.NoError(t, adapter.RefreshTrackInfo())
		info, ok := adapter.CurrentTrackInfo()
		assert.True(t, ok)
		assert.Equal(t, stereoTrack(), info)
	})
}
