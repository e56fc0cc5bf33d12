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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is a minimal provider over a fixed entry list. lookupErr, when
// set, overrides every lookup result.
type fakeStore struct {
	lookupErr error
	id        string
	entries   []GameStoreEntry
}

func (s *fakeStore) ID() string { return s.id }

func (s *fakeStore) AllGames(context.Context) ([]GameStoreEntry, error) {
	return s.entries, nil
}

func (s *fakeStore) FindByName(_ context.Context, pattern string) (GameStoreEntry, error) {
	if s.lookupErr != nil {
		return GameStoreEntry{}, s.lookupErr
	}
	for _, entry := range s.entries {
		if entry.Name == pattern {
			return entry, nil
		}
	}
	return GameStoreEntry{}, &EntryNotFoundError{Query: pattern, StoreID: s.id}
}

func (s *fakeStore) FindByAppID(_ context.Context, ids ...string) (GameStoreEntry, error) {
	if s.lookupErr != nil {
		return GameStoreEntry{}, s.lookupErr
	}
	for _, entry := range s.entries {
		for _, id := range ids {
			if entry.AppID == id {
				return entry, nil
			}
		}
	}
	return GameStoreEntry{}, &EntryNotFoundError{Query: "none", StoreID: s.id}
}

func (s *fakeStore) ExecInfo(context.Context, string) (ExecutionPlan, error) {
	return ExecutionPlan{}, nil
}

func (s *fakeStore) Launch(context.Context, string) error { return nil }

func (s *fakeStore) ReloadGames() {}

func (s *fakeStore) StorePath() (string, bool) { return "", false }

func (s *fakeStore) OwnsGame(context.Context, string, OwnershipCheck) (bool, error) {
	return false, nil
}

func TestRegistryStores(t *testing.T) {
	t.Parallel()

	t.Run("orders_by_priority", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		r.Register(&fakeStore{id: "low"}, 50)
		r.Register(&fakeStore{id: "high"}, 1)
		r.Register(&fakeStore{id: "mid"}, 10)

		got := r.Stores()

		require.Len(t, got, 3)
		assert.Equal(t, "high", got[0].ID())
		assert.Equal(t, "mid", got[1].ID())
		assert.Equal(t, "low", got[2].ID())
	})

	t.Run("registration_order_breaks_ties", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		r.Register(&fakeStore{id: "first"}, 10)
		r.Register(&fakeStore{id: "second"}, 10)

		got := r.Stores()

		require.Len(t, got, 2)
		assert.Equal(t, "first", got[0].ID())
		assert.Equal(t, "second", got[1].ID())
	})

	t.Run("empty_registry_yields_no_stores", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, NewRegistry().Stores())
	})
}

func TestRegistryFindByAppID(t *testing.T) {
	t.Parallel()

	t.Run("preferred_provider_wins", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		r.Register(&fakeStore{id: "b", entries: []GameStoreEntry{
			{AppID: "1", Name: "Shared", GameStoreID: "b"},
		}}, 20)
		r.Register(&fakeStore{id: "a", entries: []GameStoreEntry{
			{AppID: "1", Name: "Shared", GameStoreID: "a"},
		}}, 10)

		entry, err := r.FindByAppID(context.Background(), "1")

		require.NoError(t, err)
		assert.Equal(t, "a", entry.GameStoreID)
	})

	t.Run("falls_through_not_found_and_not_installed", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		r.Register(&fakeStore{id: "empty"}, 1)
		r.Register(&fakeStore{id: "offline", lookupErr: ErrNotInstalled}, 2)
		r.Register(&fakeStore{id: "hit", entries: []GameStoreEntry{
			{AppID: "1", Name: "Found", GameStoreID: "hit"},
		}}, 3)

		entry, err := r.FindByAppID(context.Background(), "1")

		require.NoError(t, err)
		assert.Equal(t, "hit", entry.GameStoreID)
	})

	t.Run("no_match_anywhere_reports_not_found", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		r.Register(&fakeStore{id: "empty"}, 1)

		_, err := r.FindByAppID(context.Background(), "1")

		assert.ErrorIs(t, err, ErrEntryNotFound)
	})

	t.Run("unexpected_error_aborts_lookup", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		r.Register(&fakeStore{id: "broken", lookupErr: errors.New("io failure")}, 1)
		r.Register(&fakeStore{id: "hit", entries: []GameStoreEntry{
			{AppID: "1", GameStoreID: "hit"},
		}}, 2)

		_, err := r.FindByAppID(context.Background(), "1")

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrEntryNotFound)
		assert.Contains(t, err.Error(), "broken")
	})
}

func TestRegistryFindByName(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	r.Register(&fakeStore{id: "a", entries: []GameStoreEntry{
		{AppID: "1", Name: "Test Game 1", GameStoreID: "a"},
	}}, 10)

	entry, err := r.FindByName(context.Background(), "Test Game 1")

	require.NoError(t, err)
	assert.Equal(t, "1", entry.AppID)

	_, err = r.FindByName(context.Background(), "Missing")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}
