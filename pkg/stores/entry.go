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

// Package stores defines the boundary between game-store providers and the
// host application: the entry model, the provider interface, the error
// taxonomy and a prioritized provider registry.
package stores

import "context"

// GameStoreEntry is one installed title discovered through a store provider.
// Entries are immutable once constructed and are replaced wholesale when a
// provider rebuilds its snapshot.
type GameStoreEntry struct {
	// AppID is the stable identifier of the title within the store's own
	// catalog. Unique within one enumeration snapshot.
	AppID string
	// Name is the human-readable title.
	Name string
	// GamePath is the root directory of the installed game. It existed on
	// disk at the time the entry was produced.
	GamePath string
	// GameStoreID identifies the provider that produced this entry.
	GameStoreID string
}

// ExecutionPlan describes how to invoke a store client to launch one game.
// Plans are ephemeral and rebuilt per launch request.
type ExecutionPlan struct {
	// Exe is the path to the executable to invoke.
	Exe string
	// Args is the ordered argument list. Order is significant: store clients
	// parse these positionally or by flag.
	Args []string
}

// OwnershipCheck is a caller-supplied fallback used by OwnsGame to decide
// whether a directory belongs to a game from a provider.
type OwnershipCheck func(ctx context.Context, dir string) (bool, error)

// GameStore is a single store provider as seen by the host application.
type GameStore interface {
	// ID returns the unique store identifier, e.g. "gog".
	ID() string
	// AllGames returns the current enumeration snapshot, populating it on
	// first use. An absent or broken store client yields an empty snapshot,
	// never an error.
	AllGames(ctx context.Context) ([]GameStoreEntry, error)
	// FindByName returns the first entry whose display name matches the
	// given pattern. The pattern is anchored: the whole name must match.
	// Returns an EntryNotFoundError when nothing matches.
	FindByName(ctx context.Context, pattern string) (GameStoreEntry, error)
	// FindByAppID returns the first entry whose catalog id equals any of the
	// given ids. Returns an EntryNotFoundError when nothing matches.
	FindByAppID(ctx context.Context, ids ...string) (GameStoreEntry, error)
	// ExecInfo builds the launch invocation for a catalog id. Fails with
	// ErrNotInstalled when the store client was never detected.
	ExecInfo(ctx context.Context, appID string) (ExecutionPlan, error)
	// Launch resolves a catalog id and starts the store client to run it.
	Launch(ctx context.Context, appID string) error
	// ReloadGames discards the memoized snapshot so the next AllGames call
	// re-enumerates. It does not return the new data.
	ReloadGames()
	// StorePath reports the detected store client install path. ok is false
	// when the client is absent or the platform is unsupported.
	StorePath() (path string, ok bool)
	// OwnsGame reports whether dir appears to belong to a game from this
	// store, combining a provider-specific marker check with the optional
	// fallback. The result is the logical OR of the two signals.
	OwnsGame(ctx context.Context, dir string, fallback OwnershipCheck) (bool, error)
}
