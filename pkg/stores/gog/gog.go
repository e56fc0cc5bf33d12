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

// Package gog implements a game-store provider for GOG Galaxy. It locates
// the Galaxy client, enumerates installed titles through the
// platform-appropriate data source (registry on Windows, application
// support directory on macOS) and builds client invocations that launch a
// title. An absent client is a legitimate state: every operation degrades
// to an empty or "not installed" result instead of surfacing OS errors.
package gog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/modshelf/gogstore/pkg/config"
	"github.com/modshelf/gogstore/pkg/helpers"
	"github.com/modshelf/gogstore/pkg/helpers/command"
	"github.com/modshelf/gogstore/pkg/helpers/syncutil"
	"github.com/modshelf/gogstore/pkg/stores"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	// StoreID identifies this provider in entries and errors.
	StoreID = "gog"

	windowsClientExe = "GalaxyClient.exe"

	// markerFile is dropped by GOG installers into every game directory and
	// is used as the structural ownership signal by OwnsGame.
	markerFile = "gog.ico"

	populateKey = "populate"
)

// Store is the GOG Galaxy provider. Client detection runs once during
// construction; the game snapshot is populated lazily, at most once, and
// replaced wholesale on reload.
type Store struct {
	probe    clientProbe
	executor command.Executor
	fs       afero.Fs

	// clientPath is fixed after construction. Empty iff installed is false.
	clientPath string
	installed  bool

	flight    singleflight.Group
	snapshot  []stores.GameStoreEntry
	populated bool
	mu        syncutil.RWMutex
}

// interface check
var _ stores.GameStore = (*Store)(nil)

// NewStore creates the provider for the running platform. cfg may be nil;
// a configured install dir override takes precedence over detection.
func NewStore(cfg *config.Instance) *Store {
	return newStore(cfg, newPlatformProbe(), &command.RealExecutor{}, afero.NewOsFs())
}

func newStore(cfg *config.Instance, probe clientProbe, executor command.Executor, fs afero.Fs) *Store {
	s := &Store{
		probe:    probe,
		executor: executor,
		fs:       fs,
	}

	// Detection settles here, before the store is handed to callers, so
	// lookups never observe an in-flight probe.
	if path, ok := configuredClientPath(cfg, fs); ok {
		s.clientPath = path
		s.installed = true
		log.Debug().Msgf("using configured galaxy client path: %s", path)
		return s
	}
	if path, ok := probe.DetectClient(); ok {
		s.clientPath = path
		s.installed = true
		log.Debug().Msgf("detected galaxy client: %s", path)
	}
	return s
}

// configuredClientPath returns the user-configured client install dir if one
// is set and exists on disk.
func configuredClientPath(cfg *config.Instance, fs afero.Fs) (string, bool) {
	if cfg == nil {
		return "", false
	}
	def, ok := cfg.LookupStoreDefaults(StoreID)
	if !ok || def.InstallDir == "" {
		return "", false
	}
	exists, err := afero.DirExists(fs, def.InstallDir)
	if err != nil || !exists {
		log.Warn().Msgf("configured galaxy install dir not found: %s", def.InstallDir)
		return "", false
	}
	return def.InstallDir, true
}

// ID returns the store identifier.
func (*Store) ID() string {
	return StoreID
}

// StorePath reports the detected Galaxy client install path.
func (s *Store) StorePath() (string, bool) {
	return s.clientPath, s.installed
}

// AllGames returns the memoized snapshot, enumerating on first use.
// Concurrent first callers share a single enumeration. Enumeration failures
// degrade to an empty snapshot and are reported through logging only.
func (s *Store) AllGames(ctx context.Context) ([]stores.GameStoreEntry, error) {
	s.mu.RLock()
	if s.populated {
		snapshot := s.snapshot
		s.mu.RUnlock()
		return snapshot, nil
	}
	s.mu.RUnlock()

	result, _, _ := s.flight.Do(populateKey, func() (any, error) {
		// A racing caller may have completed population between the check
		// above and joining the flight.
		s.mu.RLock()
		if s.populated {
			snapshot := s.snapshot
			s.mu.RUnlock()
			return snapshot, nil
		}
		s.mu.RUnlock()

		entries, err := s.probe.Entries(ctx, s.clientPath)
		if err != nil {
			log.Error().Err(err).Msg("failed to enumerate galaxy games")
			entries = nil
		}

		s.mu.Lock()
		s.snapshot = entries
		s.populated = true
		s.mu.Unlock()

		log.Debug().Msgf("galaxy snapshot populated with %d games", len(entries))
		return entries, nil
	})

	entries, _ := result.([]stores.GameStoreEntry)
	return entries, nil
}

// ReloadGames discards the memoized snapshot. The next AllGames call runs a
// fresh enumeration.
func (s *Store) ReloadGames() {
	s.mu.Lock()
	s.snapshot = nil
	s.populated = false
	s.mu.Unlock()
	s.flight.Forget(populateKey)
	log.Debug().Msg("galaxy game snapshot invalidated")
}

// FindByName returns the first entry whose name matches pattern. The
// pattern is implicitly anchored: the whole name must match it.
func (s *Store) FindByName(ctx context.Context, pattern string) (stores.GameStoreEntry, error) {
	re, err := helpers.CachedCompile("^(?:" + pattern + ")$")
	if err != nil {
		return stores.GameStoreEntry{}, fmt.Errorf("invalid name pattern: %w", err)
	}

	games, err := s.AllGames(ctx)
	if err != nil {
		return stores.GameStoreEntry{}, err
	}
	for _, game := range games {
		if re.MatchString(game.Name) {
			return game, nil
		}
	}
	return stores.GameStoreEntry{}, &stores.EntryNotFoundError{Query: pattern, StoreID: StoreID}
}

// FindByAppID returns the first entry whose catalog id equals any of ids.
func (s *Store) FindByAppID(ctx context.Context, ids ...string) (stores.GameStoreEntry, error) {
	games, err := s.AllGames(ctx)
	if err != nil {
		return stores.GameStoreEntry{}, err
	}
	for _, game := range games {
		for _, id := range ids {
			if game.AppID == id {
				return game, nil
			}
		}
	}
	return stores.GameStoreEntry{}, &stores.EntryNotFoundError{
		Query:   strings.Join(ids, ","),
		StoreID: StoreID,
	}
}

// ExecInfo builds the Galaxy client invocation that launches the given
// catalog id.
func (s *Store) ExecInfo(ctx context.Context, appID string) (stores.ExecutionPlan, error) {
	if !s.installed {
		return stores.ExecutionPlan{}, fmt.Errorf("%s: %w", StoreID, stores.ErrNotInstalled)
	}
	entry, err := s.FindByAppID(ctx, appID)
	if err != nil {
		return stores.ExecutionPlan{}, err
	}
	return s.probe.ExecPlan(s.clientPath, entry), nil
}

// Launch resolves appID and starts the Galaxy client to run it. The process
// is started from the client's own directory through the platform shell,
// with a deployment suggestion for the host.
func (s *Store) Launch(ctx context.Context, appID string) error {
	plan, err := s.ExecInfo(ctx, appID)
	if err != nil {
		return err
	}

	opts := command.StartOptions{
		Dir:           filepath.Dir(plan.Exe),
		UseShell:      true,
		SuggestDeploy: true,
	}
	log.Info().Msgf("launching galaxy game %s: %s %s", appID, plan.Exe, strings.Join(plan.Args, " "))

	if err := s.executor.StartWithOptions(ctx, opts, plan.Exe, plan.Args...); err != nil {
		return fmt.Errorf("failed to launch galaxy game %s: %w", appID, err)
	}
	return nil
}

// OwnsGame reports whether dir belongs to a GOG game. The marker-file check
// and the caller-supplied fallback run concurrently; the result is their
// logical OR. Disagreement between the two signals is logged but does not
// change the result.
func (s *Store) OwnsGame(ctx context.Context, dir string, fallback stores.OwnershipCheck) (bool, error) {
	var markerHit, fallbackHit bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		exists, err := afero.Exists(s.fs, filepath.Join(dir, markerFile))
		if err != nil {
			log.Debug().Err(err).Msgf("galaxy marker check failed: %s", dir)
			return nil
		}
		markerHit = exists
		return nil
	})
	g.Go(func() error {
		if fallback == nil {
			return nil
		}
		hit, err := fallback(gctx, dir)
		if err != nil {
			log.Warn().Err(err).Msgf("fallback ownership check failed: %s", dir)
			return nil
		}
		fallbackHit = hit
		return nil
	})
	_ = g.Wait()

	if fallback != nil && markerHit != fallbackHit {
		log.Warn().Msgf(
			"ownership signals disagree for %s: marker=%t fallback=%t",
			dir, markerHit, fallbackHit,
		)
	}
	return markerHit || fallbackHit, nil
}
