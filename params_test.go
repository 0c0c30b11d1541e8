// params_test.go: Parameter extension validation tests
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

func paramsExtensionFixture(t *testing.T, params ...ParamInfo) (*paramStubPlugin, *ParamsExtension, *EntryPoints, *captureHostLog) {
	t.Helper()

	plugin := newParamStubPlugin(params...)
	adapter, log := newTestAdapter(t, plugin, newFakeHost())
	entry := initAdapter(t, adapter)

	ext, ok := entry.Extension(ExtParams).(*ParamsExtension)
	require.True(t, ok)
	return plugin, ext, entry, log
}

func gainAndModeParams() []ParamInfo {
	return []ParamInfo{
		{ID: 10, Name: "gain", MinValue: 0, MaxValue: 1, DefaultValue: 0.5},
		{ID: 20, Name: "mode", MinValue: 0, MaxValue: 2, DefaultValue: 0, EnumEntryCount: 3},
	}
}

func TestParamsExtension_Count(t *testing.T) {
	_, ext, _, _ := paramsExtensionFixture(t, gainAndModeParams()...)
	assert.Equal(t, 2, ext.Count())
}

func TestParamsExtension_Info(t *testing.T) {
	tests := []struct {
		name        string
		index       int
		wantErr     bool
		wantID      uint32
		wantReports int
	}{
		{name: "first param", index: 0, wantID: 10},
		{name: "second param", index: 1, wantID: 20},
		{name: "negative index", index: -1, wantErr: true, wantReports: 1},
		{name: "index past end", index: 2, wantErr: true, wantReports: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plugin, ext, _, log := paramsExtensionFixture(t, gainAndModeParams()...)

			info, err := ext.Info(tt.index)
			if tt.wantErr {
				require.Error(t, err)
				assertErrorCode(t, err, ErrCodeParamIndexOutOfRange)
				assert.Equal(t, 0, plugin.infoCalls, "out-of-range index must never reach the plugin")
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, info.ID)
			}
			assert.Equal(t, tt.wantReports, log.misbehaviorCount())
		})
	}
}

func TestParamsExtension_Value(t *testing.T) {
	t.Run("valid id", func(t *testing.T) {
		_, ext, _, log := paramsExtensionFixture(t, gainAndModeParams()...)

		value, err := ext.Value(10)
		require.NoError(t, err)
		assert.Equal(t, ParamValue(0.5), value)
		assert.Zero(t, log.misbehaviorCount())
	})

	t.Run("unknown id", func(t *testing.T) {
		plugin, ext, _, log := paramsExtensionFixture(t, gainAndModeParams()...)

		_, err := ext.Value(99)
		require.Error(t, err)
		assertErrorCode(t, err, ErrCodeUnknownParamID)
		assert.Equal(t, 0, plugin.valueCalls)
		assert.Equal(t, 1, log.misbehaviorCount())
	})
}

func TestParamsExtension_SetValue(t *testing.T) {
	t.Run("inactive with valid id", func(t *testing.T) {
		plugin, ext, _, log := paramsExtensionFixture(t, gainAndModeParams()...)

		require.NoError(t, ext.SetValue(10, 0.8, 0))
		assert.Equal(t, 1, plugin.setCalls)
		assert.Equal(t, ParamValue(0.8), plugin.values[10])
		assert.Zero(t, log.misbehaviorCount())
	})

	t.Run("refused while active", func(t *testing.T) {
		plugin, ext, entry, log := paramsExtensionFixture(t, gainAndModeParams()...)
		require.True(t, entry.Activate(48000))

		err := ext.SetValue(10, 0.8, 0)
		require.Error(t, err)
		assertErrorCode(t, err, ErrCodeParamSetWhileActive)
		assert.Equal(t, 0, plugin.setCalls, "mutation must be refused, not just reported")
		assert.Equal(t, 1, log.misbehaviorCount())
	})

	t.Run("unknown id while inactive", func(t *testing.T) {
		plugin, ext, _, log := paramsExtensionFixture(t, gainAndModeParams()...)

		err := ext.SetValue(99, 0.8, 0)
		require.Error(t, err)
		assertErrorCode(t, err, ErrCodeUnknownParamID)
		assert.Equal(t, 0, plugin.setCalls)
		assert.Equal(t, 1, log.misbehaviorCount())
	})
}

func TestParamsExtension_EnumValue(t *testing.T) {
	tests := []struct {
		name       string
		paramID    uint32
		valueIndex int
		wantErr    string
	}{
		{name: "valid enum index", paramID: 20, valueIndex: 2},
		{name: "negative index", paramID: 20, valueIndex: -1, wantErr: ErrCodeInvalidEnumIndex},
		{name: "index past entry count", paramID: 20, valueIndex: 3, wantErr: ErrCodeInvalidEnumIndex},
		{name: "unknown param id", paramID: 99, valueIndex: 0, wantErr: ErrCodeUnknownParamID},
		{name: "continuous param accepts any non-negative index", paramID: 10, valueIndex: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plugin, ext, _, log := paramsExtensionFixture(t, gainAndModeParams()...)

			_, err := ext.EnumValue(tt.paramID, tt.valueIndex)
			if tt.wantErr != "" {
				require.Error(t, err)
				assertErrorCode(t, err, tt.wantErr)
				assert.Equal(t, 0, plugin.enumCalls)
				assert.Equal(t, 1, log.misbehaviorCount())
			} else {
				require.NoError(t, err)
				assert.Equal(t, 1, plugin.enumCalls)
				assert.Zero(t, log.misbehaviorCount())
			}
		})
	}
}

func TestParamsExtension_ValueToText(t *testing.T) {
	t.Run("valid id formats", func(t *testing.T) {
		_, ext, _, _ := paramsExtensionFixture(t, gainAndModeParams()...)

		text, err := ext.ValueToText(10, 0.25)
		require.NoError(t, err)
		assert.Equal(t, "0.25", text)
	})

	t.Run("unknown id", func(t *testing.T) {
		plugin, ext, _, _ := paramsExtensionFixture(t, gainAndModeParams()...)

		_, err := ext.ValueToText(99, 0.25)
		require.Error(t, err)
		assertErrorCode(t, err, ErrCodeUnknownParamID)
		assert.Equal(t, 0, plugin.toTextCalls)
	})
}

func TestParamsExtension_TextToValue(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		_, ext, _, _ := paramsExtensionFixture(t, gainAndModeParams()...)

		value, err := ext.TextToValue(10, "0.75")
		require.NoError(t, err)
		assert.InDelta(t, 0.75, float64(value), 1e-9)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, ext, _, log := paramsExtensionFixture(t, gainAndModeParams()...)

		_, err := ext.TextToValue(99, "0.75")
		require.Error(t, err)
		assertErrorCode(t, err, ErrCodeUnknownParamID)
		assert.Equal(t, 1, log.misbehaviorCount())
	})
}

func TestParamsExtension_IDValidityDerivedFromTable(t *testing.T) {
	plugin, ext, _, _ := paramsExtensionFixture(t, gainAndModeParams()...)

	// Topology may change while inactive; validity follows the live table.
	plugin.params = append(plugin.params, ParamInfo{ID: 30, Name: "drive"})
	plugin.values[30] = 0

	_, err := ext.Value(30)
	assert.NoError(t, err)
}
