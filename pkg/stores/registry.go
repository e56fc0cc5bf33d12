// Modshelf GOG Store
// Copyright (c) 2026 The Modshelf Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Modshelf GOG Store.
//
// Modshelf GOG Store is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Modshelf GOG Store is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Modshelf GOG Store.  If not, see <http://www.gnu.org/licenses/>.

package stores

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/modshelf/gogstore/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
)

// Registration pairs a provider with its ordering hint. A lower priority
// value denotes higher preference when multiple providers are queried.
type Registration struct {
	Store    GameStore
	Priority int
}

// Registry holds all registered store providers for the host application.
// Aggregate lookups query providers in priority order and treat a single
// provider's "not found" or "not installed" as fall-through, so one
// provider's environment quirks never abort discovery for the others.
type Registry struct {
	regs []Registration
	mu   syncutil.RWMutex
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a provider. Registration order breaks priority ties.
func (r *Registry) Register(store GameStore, priority int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	log.Debug().Msgf("registered game store provider %s with priority %d", store.ID(), priority)
	r.regs = append(r.regs, Registration{Store: store, Priority: priority})
}

// Stores returns all registered providers, most preferred first.
func (r *Registry) Stores() []GameStore {
	r.mu.RLock()
	defer r.mu.RUnlock()

	regs := make([]Registration, len(r.regs))
	copy(regs, r.regs)
	sort.SliceStable(regs, func(i, j int) bool {
		return regs[i].Priority < regs[j].Priority
	})

	result := make([]GameStore, len(regs))
	for i, reg := range regs {
		result[i] = reg.Store
	}
	return result
}

// FindByAppID queries providers in priority order for any of the given
// catalog ids, returning the first hit.
func (r *Registry) FindByAppID(ctx context.Context, ids ...string) (GameStoreEntry, error) {
	return r.find(ctx, fmt.Sprintf("%v", ids), func(s GameStore) (GameStoreEntry, error) {
		return s.FindByAppID(ctx, ids...)
	})
}

// FindByName queries providers in priority order for an anchored name
// pattern match, returning the first hit.
func (r *Registry) FindByName(ctx context.Context, pattern string) (GameStoreEntry, error) {
	return r.find(ctx, pattern, func(s GameStore) (GameStoreEntry, error) {
		return s.FindByName(ctx, pattern)
	})
}

func (r *Registry) find(
	_ context.Context,
	query string,
	lookup func(GameStore) (GameStoreEntry, error),
) (GameStoreEntry, error) {
	for _, store := range r.Stores() {
		entry, err := lookup(store)
		if err == nil {
			return entry, nil
		}
		if errors.Is(err, ErrEntryNotFound) || errors.Is(err, ErrNotInstalled) {
			continue
		}
		return GameStoreEntry{}, fmt.Errorf("store %s lookup failed: %w", store.ID(), err)
	}
	return GameStoreEntry{}, fmt.Errorf("no registered store matched %q: %w", query, ErrEntryNotFound)
}
