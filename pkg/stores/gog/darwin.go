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
	"encoding/json"
	"path/filepath"

	"github.com/modshelf/gogstore/pkg/stores"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

const (
	darwinSystemApp  = "/Applications/GOG Galaxy.app"
	darwinUserAppRel = "Applications/GOG Galaxy.app"
	darwinGamesDir   = "games"
)

// galaxyGameInfo is the schema of the per-game goggame-<id>.info metadata
// file. All fields are optional; fallback rules are applied in gameEntry.
type galaxyGameInfo struct {
	GameID           string `json:"gameId"`
	Title            string `json:"title"`
	Name             string `json:"name"`
	InstallPath      string `json:"installPath"`
	InstallDirectory string `json:"installDirectory"`
}

// darwinProbe discovers the Galaxy client bundle and its installed games
// through the filesystem. The fs and dataDir indirection keeps the probe
// logic runnable against an in-memory filesystem.
type darwinProbe struct {
	fs afero.Fs
	// home is the current user's home directory.
	home string
	// dataDir is Galaxy's application-support directory.
	dataDir string
}

func (p *darwinProbe) DetectClient() (string, bool) {
	candidates := []string{
		darwinSystemApp,
		filepath.Join(p.home, darwinUserAppRel),
	}
	for _, candidate := range candidates {
		exists, err := afero.Exists(p.fs, candidate)
		if err != nil {
			log.Warn().Err(err).Msgf("galaxy bundle check failed: %s", candidate)
			continue
		}
		if exists {
			return candidate, true
		}
	}
	log.Debug().Msg("galaxy client bundle not found")
	return "", false
}

func (p *darwinProbe) Entries(ctx context.Context, _ string) ([]stores.GameStoreEntry, error) {
	exists, err := afero.DirExists(p.fs, p.dataDir)
	if err != nil {
		log.Error().Err(err).Msgf("failed to stat galaxy data dir: %s", p.dataDir)
		return nil, nil
	}
	if !exists {
		log.Debug().Msgf("galaxy data dir not present: %s", p.dataDir)
		return nil, nil
	}

	gamesDir := filepath.Join(p.dataDir, darwinGamesDir)
	infos, err := afero.ReadDir(p.fs, gamesDir)
	if err != nil {
		log.Debug().Err(err).Msgf("failed to list galaxy games dir: %s", gamesDir)
		return nil, nil
	}

	// Per-candidate stat+read+parse is independent, so process candidates
	// concurrently but keep results in directory-listing order.
	results := make([]*stores.GameStoreEntry, len(infos))
	g, _ := errgroup.WithContext(ctx)
	for i, info := range infos {
		i, info := i, info
		if !info.IsDir() {
			continue
		}
		g.Go(func() error {
			results[i] = p.gameEntry(gamesDir, info.Name())
			return nil
		})
	}
	_ = g.Wait()

	entries := make([]stores.GameStoreEntry, 0, len(results))
	for _, entry := range results {
		if entry != nil {
			entries = append(entries, *entry)
		}
	}
	return entries, nil
}

// gameEntry builds one entry from a games/<id> directory, or nil when the
// candidate must be skipped.
func (p *darwinProbe) gameEntry(gamesDir, id string) *stores.GameStoreEntry {
	metaPath := filepath.Join(gamesDir, id, "goggame-"+id+".info")
	data, err := afero.ReadFile(p.fs, metaPath)
	if err != nil {
		log.Warn().Err(err).Msgf("failed to read galaxy game metadata: %s", metaPath)
		return nil
	}

	var info galaxyGameInfo
	if err := json.Unmarshal(data, &info); err != nil {
		log.Warn().Err(err).Msgf("failed to parse galaxy game metadata: %s", metaPath)
		return nil
	}

	appID := info.GameID
	if appID == "" {
		appID = id
	}

	name := info.Title
	if name == "" {
		name = info.Name
	}
	if name == "" {
		name = "GOG Game " + id
	}

	installPath := info.InstallPath
	if installPath == "" {
		installPath = info.InstallDirectory
	}
	if installPath == "" {
		log.Debug().Msgf("galaxy game %s has no install path, skipping", id)
		return nil
	}

	installed, err := afero.DirExists(p.fs, installPath)
	if err != nil || !installed {
		log.Debug().Msgf("galaxy game %s install dir missing: %s", id, installPath)
		return nil
	}

	return &stores.GameStoreEntry{
		AppID:       appID,
		Name:        name,
		GamePath:    installPath,
		GameStoreID: StoreID,
	}
}

func (*darwinProbe) ExecPlan(clientPath string, entry stores.GameStoreEntry) stores.ExecutionPlan {
	return darwinExecPlan(clientPath, entry)
}

// darwinExecPlan builds the Galaxy bundle invocation. Argument order differs
// from Windows and is fixed: the client parses them positionally.
func darwinExecPlan(clientPath string, entry stores.GameStoreEntry) stores.ExecutionPlan {
	return stores.ExecutionPlan{
		Exe: clientPath,
		Args: []string{
			"/gameId=" + entry.AppID,
			"/command=runGame",
			`/path="` + entry.GamePath + `"`,
		},
	}
}
