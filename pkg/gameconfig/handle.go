// Zaparoo Launch
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Launch.
//
// Zaparoo Launch is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Launch is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Launch.  If not, see <http://www.gnu.org/licenses/>.

package gameconfig

import (
	"github.com/ZaparooProject/zaparoo-launch/pkg/helpers/syncutil"
)

// Handle owns a Config and serializes access to it. The editor and the
// launcher only ever see the config through a Handle, so nobody observes a
// config halfway through a merge or an edit.
type Handle struct {
	cfg Config
	mu  syncutil.RWMutex
}

// NewHandle wraps a deep copy of cfg.
func NewHandle(cfg *Config) *Handle {
	return &Handle{cfg: cfg.Clone()}
}

// View calls fn with the config under a read lock. fn must not modify the
// config or keep references to it.
func (h *Handle) View(fn func(c *Config)) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	fn(&h.cfg)
}

// Update calls fn with the config under a write lock and returns its error.
func (h *Handle) Update(fn func(c *Config) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(&h.cfg)
}

// Snapshot returns a deep copy of the current config.
func (h *Handle) Snapshot() Config {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cfg.Clone()
}

// Replace swaps in a deep copy of cfg.
func (h *Handle) Replace(cfg *Config) {
	clone := cfg.Clone()
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cfg = clone
}

// MergeFrom merges the global config held by global into this config. The
// global side is snapshotted first so the two locks are never held at once.
func (h *Handle) MergeFrom(global *Handle) {
	if h == global {
		return
	}
	g := global.Snapshot()
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cfg.MergeFrom(&g)
}
