// registry_test.go: Instance handle registry tests
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

func TestRegistry_RegisterResolveUnregister(t *testing.T) {
	adapter, _ := newTestAdapter(t, newStubPlugin(), newFakeHost())

	h := adapter.Handle()
	require.NotZero(t, h, "zero is never a valid handle")
	assert.Same(t, adapter, fromHandle(h))

	unregisterInstance(h)
	assert.Panics(t, func() { fromHandle(h) })
}

func TestRegistry_HandlesAreUnique(t *testing.T) {
	a, _ := newTestAdapter(t, newStubPlugin(), newFakeHost())
	b, _ := newTestAdapter(t, newStubPlugin(), newFakeHost())

	assert.NotEqual(t, a.Handle(), b.Handle())
	assert.Same(t, a, fromHandle(a.Handle()))
	assert.Same(t, b, fromHandle(b.Handle()))
}

func TestRegistry_ZeroHandlePanics(t *testing.T) {
	assert.Panics(t, func() { fromHandle(0) })
}

func TestRegistry_EntryPointsAfterDestroyPanic(t *testing.T) {
	adapter, _ := newTestAdapter(t, newStubPlugin(), newFakeHost())
	entry := initAdapter(t, adapter)

	activate := entry.Activate
	entry.Destroy()

	// A host holding a stale closure past destroy resolves through the
	// registry and trips the unknown-handle panic.
	assert.Panics(t, func() { activate(48000) })
}

func TestInstanceCount(t *testing.T) {
	before := InstanceCount()

	adapter, _ := newTestAdapter(t, newStubPlugin(), newFakeHost())
	assert.Equal(t, before+1, InstanceCount())

	unregisterInstance(adapter.Handle())
	assert.Equal(t, before, InstanceCount())
}
