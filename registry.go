// registry.go: Instance handle registry
//
// The ABI identifies plugin instances by opaque handles, not Go pointers.
// This registry is the stable mapping from handle to adapter that every
// entry point resolves through, mirroring the instance lookup a C function
// table performs on its plugin_data pointer. A missing or zero handle is an
// unrecoverable contract violation: the host corrupted or fabricated the
// handle, and the registry panics loudly instead of guessing.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package goclap

import (
	"strconv"
	"sync/atomic"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// InstanceHandle is the opaque identifier of one live plugin instance.
// Zero is never a valid handle.
type InstanceHandle uint64

var (
	instances  = cmap.New[*PluginAdapter]()
	nextHandle atomic.Uint64
)

func handleKey(h InstanceHandle) string {
	return strconv.FormatUint(uint64(h), 10)
}

// registerInstance assigns a fresh handle to the adapter and publishes it.
func registerInstance(adapter *PluginAdapter) InstanceHandle {
	h := InstanceHandle(nextHandle.Add(1))
	instances.Set(handleKey(h), adapter)
	return h
}

// unregisterInstance removes the handle mapping. Called from the destroy
// entry point only.
func unregisterInstance(h InstanceHandle) {
	instances.Remove(handleKey(h))
}

// fromHandle resolves a handle to its adapter. Panics on a zero or unknown
// handle: the host must never alter the handle it was given, and there is
// no safe way to continue once it has.
func fromHandle(h InstanceHandle) *PluginAdapter {
	if h == 0 {
		panic(NewUnknownInstanceError(h, "entry point called with a zero instance handle"))
	}
	adapter, ok := instances.Get(handleKey(h))
	if !ok {
		panic(NewUnknownInstanceError(h, "entry point called with an unknown instance handle, the host must never change it"))
	}
	return adapter
}

// InstanceCount returns the number of live plugin instances. Intended for
// tests and introspection.
func InstanceCount() int {
	return instances.Count()
}
