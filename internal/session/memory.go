// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "sync"

// MemoryKV is an in-memory KV used as a test double for the local store.
type MemoryKV struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{m: make(map[string]string)}
}

// Get implements KV.
func (kv *MemoryKV) Get(key string) (string, bool, error) {
	kv.mu.RLock()
	defer kv.mu.RUnlock()
	v, ok := kv.m[key]
	return v, ok, nil
}

// Set implements KV.
func (kv *MemoryKV) Set(key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.m[key] = value
	return nil
}

// Delete implements KV.
func (kv *MemoryKV) Delete(key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	delete(kv.m, key)
	return nil
}
