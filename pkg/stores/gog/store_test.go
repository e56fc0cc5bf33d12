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

package gog

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/modshelf/gogstore/pkg/helpers/command"
	"github.com/modshelf/gogstore/pkg/stores"
	"github.com/modshelf/gogstore/pkg/testing/mocks"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// stubProbe is a controllable clientProbe for exercising the cache and
// lookup layer without touching any platform data source.
type stubProbe struct {
	entriesErr error
	path       string
	entries    []stores.GameStoreEntry
	plan       stores.ExecutionPlan
	delay      time.Duration
	entryCalls int
	detected   bool
	mu         sync.Mutex
}

func (p *stubProbe) DetectClient() (string, bool) {
	return p.path, p.detected
}

func (p *stubProbe) Entries(_ context.Context, _ string) ([]stores.GameStoreEntry, error) {
	p.mu.Lock()
	p.entryCalls++
	entries := p.entries
	err := p.entriesErr
	p.mu.Unlock()
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	return entries, err
}

func (p *stubProbe) ExecPlan(string, stores.GameStoreEntry) stores.ExecutionPlan {
	return p.plan
}

func (p *stubProbe) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.entryCalls
}

func (p *stubProbe) setEntries(entries []stores.GameStoreEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = entries
}

func testEntries() []stores.GameStoreEntry {
	return []stores.GameStoreEntry{
		{AppID: "12345", Name: "Test Game 1", GamePath: "/Games/Test Game 1", GameStoreID: "gog"},
		{AppID: "67890", Name: "Test Game 10", GamePath: "/Games/Test Game 10", GameStoreID: "gog"},
	}
}

func installedStore(probe *stubProbe) *Store {
	return newStore(nil, probe, &command.RealExecutor{}, afero.NewMemMapFs())
}

func TestAllGamesMemoizes(t *testing.T) {
	t.Parallel()
	probe := &stubProbe{path: "/opt/galaxy", detected: true, entries: testEntries()}
	store := installedStore(probe)

	first, err := store.AllGames(context.Background())
	require.NoError(t, err)
	second, err := store.AllGames(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, probe.calls())
}

func TestAllGamesMemoizesEmptyResult(t *testing.T) {
	t.Parallel()
	probe := &stubProbe{path: "/opt/galaxy", detected: true}
	store := installedStore(probe)

	first, err := store.AllGames(context.Background())
	require.NoError(t, err)
	_, err = store.AllGames(context.Background())
	require.NoError(t, err)

	assert.Empty(t, first)
	assert.Equal(t, 1, probe.calls())
}

func TestAllGamesConcurrentPopulationRunsOnce(t *testing.T) {
	t.Parallel()
	probe := &stubProbe{
		path:     "/opt/galaxy",
		detected: true,
		entries:  testEntries(),
		delay:    20 * time.Millisecond,
	}
	store := installedStore(probe)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			games, err := store.AllGames(context.Background())
			assert.NoError(t, err)
			assert.Len(t, games, 2)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, probe.calls())
}

func TestReloadGames(t *testing.T) {
	t.Parallel()
	probe := &stubProbe{path: "/opt/galaxy", detected: true, entries: testEntries()}
	store := installedStore(probe)

	first, err := store.AllGames(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 2)

	// underlying OS state changes between enumerations
	probe.setEntries(testEntries()[:1])
	store.ReloadGames()

	second, err := store.AllGames(context.Background())
	require.NoError(t, err)

	assert.Len(t, second, 1)
	assert.Equal(t, 2, probe.calls())
}

func TestAllGamesEnumerationFailureDegradesToEmpty(t *testing.T) {
	t.Parallel()
	probe := &stubProbe{
		path:       "/opt/galaxy",
		detected:   true,
		entries:    testEntries(),
		entriesErr: errors.New("permission denied"),
	}
	store := installedStore(probe)

	games, err := store.AllGames(context.Background())

	require.NoError(t, err)
	assert.Empty(t, games)

	// the empty result is memoized like any other
	_, err = store.AllGames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, probe.calls())
}

func TestUndetectedClientStillEnumeratesEmpty(t *testing.T) {
	t.Parallel()
	probe := &stubProbe{}
	store := installedStore(probe)

	games, err := store.AllGames(context.Background())

	require.NoError(t, err)
	assert.Empty(t, games)

	_, ok := store.StorePath()
	assert.False(t, ok)
}

func TestFindByName(t *testing.T) {
	t.Parallel()

	t.Run("matches_whole_name_only", func(t *testing.T) {
		t.Parallel()
		probe := &stubProbe{path: "/opt/galaxy", detected: true, entries: testEntries()}
		store := installedStore(probe)

		entry, err := store.FindByName(context.Background(), "Test Game 1")

		require.NoError(t, err)
		// must not match "Test Game 10"
		assert.Equal(t, "12345", entry.AppID)
	})

	t.Run("partial_pattern_does_not_match", func(t *testing.T) {
		t.Parallel()
		probe := &stubProbe{path: "/opt/galaxy", detected: true, entries: testEntries()}
		store := installedStore(probe)

		_, err := store.FindByName(context.Background(), "Test Game")

		require.Error(t, err)
		assert.ErrorIs(t, err, stores.ErrEntryNotFound)
	})

	t.Run("pattern_syntax_is_respected", func(t *testing.T) {
		t.Parallel()
		probe := &stubProbe{path: "/opt/galaxy", detected: true, entries: testEntries()}
		store := installedStore(probe)

		entry, err := store.FindByName(context.Background(), "Test Game 1.")

		require.NoError(t, err)
		assert.Equal(t, "67890", entry.AppID)
	})

	t.Run("not_found_carries_query_and_store_id", func(t *testing.T) {
		t.Parallel()
		probe := &stubProbe{path: "/opt/galaxy", detected: true, entries: testEntries()}
		store := installedStore(probe)

		_, err := store.FindByName(context.Background(), "Missing Game")

		var notFound *stores.EntryNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "Missing Game", notFound.Query)
		assert.Equal(t, "gog", notFound.StoreID)
	})

	t.Run("invalid_pattern_returns_error", func(t *testing.T) {
		t.Parallel()
		probe := &stubProbe{path: "/opt/galaxy", detected: true, entries: testEntries()}
		store := installedStore(probe)

		_, err := store.FindByName(context.Background(), "Test Game [1")

		require.Error(t, err)
		assert.NotErrorIs(t, err, stores.ErrEntryNotFound)
	})
}

func TestFindByAppID(t *testing.T) {
	t.Parallel()

	t.Run("matches_single_id_exactly", func(t *testing.T) {
		t.Parallel()
		probe := &stubProbe{path: "/opt/galaxy", detected: true, entries: testEntries()}
		store := installedStore(probe)

		entry, err := store.FindByAppID(context.Background(), "67890")

		require.NoError(t, err)
		assert.Equal(t, "Test Game 10", entry.Name)
	})

	t.Run("matches_any_id_in_collection", func(t *testing.T) {
		t.Parallel()
		probe := &stubProbe{path: "/opt/galaxy", detected: true, entries: testEntries()}
		store := installedStore(probe)

		entry, err := store.FindByAppID(context.Background(), "99999", "67890")

		require.NoError(t, err)
		assert.Equal(t, "67890", entry.AppID)
	})

	t.Run("not_found_carries_joined_ids", func(t *testing.T) {
		t.Parallel()
		probe := &stubProbe{path: "/opt/galaxy", detected: true, entries: testEntries()}
		store := installedStore(probe)

		_, err := store.FindByAppID(context.Background(), "111", "222")

		var notFound *stores.EntryNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "111,222", notFound.Query)
	})
}

func TestExecInfo(t *testing.T) {
	t.Parallel()

	t.Run("fails_with_not_installed_when_client_absent", func(t *testing.T) {
		t.Parallel()
		probe := &stubProbe{}
		store := installedStore(probe)

		_, err := store.ExecInfo(context.Background(), "12345")

		assert.ErrorIs(t, err, stores.ErrNotInstalled)
	})

	t.Run("fails_with_entry_not_found_for_unknown_id", func(t *testing.T) {
		t.Parallel()
		probe := &stubProbe{path: "/opt/galaxy", detected: true, entries: testEntries()}
		store := installedStore(probe)

		_, err := store.ExecInfo(context.Background(), "99999")

		assert.ErrorIs(t, err, stores.ErrEntryNotFound)
	})

	t.Run("returns_probe_plan_for_known_id", func(t *testing.T) {
		t.Parallel()
		plan := stores.ExecutionPlan{
			Exe:  "/opt/galaxy/GalaxyClient",
			Args: []string{"/command=runGame", "/gameId=12345", `path="/Games/Test Game 1"`},
		}
		probe := &stubProbe{path: "/opt/galaxy", detected: true, entries: testEntries(), plan: plan}
		store := installedStore(probe)

		got, err := store.ExecInfo(context.Background(), "12345")

		require.NoError(t, err)
		assert.Equal(t, plan, got)
	})
}

func TestLaunch(t *testing.T) {
	t.Parallel()

	plan := stores.ExecutionPlan{
		Exe:  "/opt/galaxy/GalaxyClient",
		Args: []string{"/command=runGame", "/gameId=12345", `path="/Games/Test Game 1"`},
	}

	t.Run("starts_client_from_its_own_directory", func(t *testing.T) {
		t.Parallel()
		probe := &stubProbe{path: "/opt/galaxy", detected: true, entries: testEntries(), plan: plan}
		executor := &mocks.MockCommandExecutor{}
		store := newStore(nil, probe, executor, afero.NewMemMapFs())

		wantOpts := command.StartOptions{
			Dir:           filepath.Dir(plan.Exe),
			UseShell:      true,
			SuggestDeploy: true,
		}
		executor.On("StartWithOptions", mock.Anything, wantOpts, plan.Exe, plan.Args).
			Return(nil)

		err := store.Launch(context.Background(), "12345")

		require.NoError(t, err)
		executor.AssertExpectations(t)
	})

	t.Run("wraps_executor_failure", func(t *testing.T) {
		t.Parallel()
		probe := &stubProbe{path: "/opt/galaxy", detected: true, entries: testEntries(), plan: plan}
		executor := &mocks.MockCommandExecutor{}
		store := newStore(nil, probe, executor, afero.NewMemMapFs())

		executor.On("StartWithOptions", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("spawn failed"))

		err := store.Launch(context.Background(), "12345")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "12345")
	})

	t.Run("does_not_start_anything_when_not_installed", func(t *testing.T) {
		t.Parallel()
		probe := &stubProbe{}
		executor := &mocks.MockCommandExecutor{}
		store := newStore(nil, probe, executor, afero.NewMemMapFs())

		err := store.Launch(context.Background(), "12345")

		assert.ErrorIs(t, err, stores.ErrNotInstalled)
		executor.AssertNotCalled(t, "StartWithOptions",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOwnsGame(t *testing.T) {
	t.Parallel()

	newStoreWithMarker := func(t *testing.T, withMarker bool) *Store {
		t.Helper()
		fs := afero.NewMemMapFs()
		require.NoError(t, fs.MkdirAll("/Games/Test Game 1", 0o755))
		if withMarker {
			require.NoError(t,
				afero.WriteFile(fs, "/Games/Test Game 1/gog.ico", []byte{0}, 0o644))
		}
		probe := &stubProbe{path: "/opt/galaxy", detected: true}
		return newStore(nil, probe, &command.RealExecutor{}, fs)
	}

	t.Run("marker_file_alone_confirms", func(t *testing.T) {
		t.Parallel()
		store := newStoreWithMarker(t, true)

		owns, err := store.OwnsGame(context.Background(), "/Games/Test Game 1", nil)

		require.NoError(t, err)
		assert.True(t, owns)
	})

	t.Run("fallback_alone_confirms", func(t *testing.T) {
		t.Parallel()
		store := newStoreWithMarker(t, false)
		fallback := func(context.Context, string) (bool, error) { return true, nil }

		owns, err := store.OwnsGame(context.Background(), "/Games/Test Game 1", fallback)

		require.NoError(t, err)
		assert.True(t, owns)
	})

	t.Run("disagreement_still_returns_or_of_signals", func(t *testing.T) {
		t.Parallel()
		store := newStoreWithMarker(t, true)
		fallback := func(context.Context, string) (bool, error) { return false, nil }

		owns, err := store.OwnsGame(context.Background(), "/Games/Test Game 1", fallback)

		require.NoError(t, err)
		assert.True(t, owns)
	})

	t.Run("both_negative_refutes", func(t *testing.T) {
		t.Parallel()
		store := newStoreWithMarker(t, false)
		fallback := func(context.Context, string) (bool, error) { return false, nil }

		owns, err := store.OwnsGame(context.Background(), "/Games/Test Game 1", fallback)

		require.NoError(t, err)
		assert.False(t, owns)
	})

	t.Run("fallback_error_is_absorbed", func(t *testing.T) {
		t.Parallel()
		store := newStoreWithMarker(t, true)
		fallback := func(context.Context, string) (bool, error) {
			return false, errors.New("probe broke")
		}

		owns, err := store.OwnsGame(context.Background(), "/Games/Test Game 1", fallback)

		require.NoError(t, err)
		assert.True(t, owns)
	})
}
