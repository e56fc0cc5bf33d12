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
	"strings"

	"github.com/modshelf/gogstore/pkg/stores"
	"github.com/rs/zerolog/log"
)

const (
	clientPathsKey  = `SOFTWARE\WOW6432Node\GOG.com\GalaxyClient\paths`
	clientPathValue = "client"
	gamesKey        = `SOFTWARE\WOW6432Node\GOG.com\Games`

	regGameID   = "gameID"
	regGamePath = "path"
	regGameName = "gameName"
)

// errRegNotExist signals a missing registry key or value, as opposed to a
// read failure. The Windows registry implementation maps the OS error to
// this sentinel so enumeration can treat "no games key" as an empty result.
var errRegNotExist = errors.New("registry key or value does not exist")

// galaxyRegistry is the registry capability the Windows probe needs. Keys
// are paths under HKEY_LOCAL_MACHINE.
type galaxyRegistry interface {
	ReadString(key, name string) (string, error)
	SubkeyNames(key string) ([]string, error)
}

// registryProbe discovers the Galaxy client and its installed games through
// the Windows registry.
type registryProbe struct {
	reg galaxyRegistry
}

func (p *registryProbe) DetectClient() (string, bool) {
	path, err := p.reg.ReadString(clientPathsKey, clientPathValue)
	if err != nil {
		if errors.Is(err, errRegNotExist) {
			log.Debug().Msg("galaxy client registry path not present")
		} else {
			log.Warn().Err(err).Msg("failed to read galaxy client path from registry")
		}
		return "", false
	}
	if path == "" {
		return "", false
	}
	return path, true
}

func (p *registryProbe) Entries(_ context.Context, clientPath string) ([]stores.GameStoreEntry, error) {
	// Client never detected: skip registry access entirely.
	if clientPath == "" {
		log.Debug().Msg("galaxy client not detected, skipping games registry scan")
		return nil, nil
	}

	subkeys, err := p.reg.SubkeyNames(gamesKey)
	if err != nil {
		if !errors.Is(err, errRegNotExist) {
			log.Error().Err(err).Msg("failed to enumerate galaxy games registry key")
		}
		return nil, nil
	}

	entries := make([]stores.GameStoreEntry, 0, len(subkeys))
	for _, subkey := range subkeys {
		gameKey := gamesKey + `\` + subkey

		appID, err := p.reg.ReadString(gameKey, regGameID)
		if err != nil {
			log.Error().Err(err).Msgf("failed to read game id for %s, skipping", subkey)
			continue
		}
		gamePath, err := p.reg.ReadString(gameKey, regGamePath)
		if err != nil {
			log.Error().Err(err).Msgf("failed to read install path for %s, skipping", subkey)
			continue
		}
		name, err := p.reg.ReadString(gameKey, regGameName)
		if err != nil {
			log.Error().Err(err).Msgf("failed to read game name for %s, skipping", subkey)
			continue
		}

		entries = append(entries, stores.GameStoreEntry{
			AppID:       appID,
			Name:        name,
			GamePath:    gamePath,
			GameStoreID: StoreID,
		})
	}
	return entries, nil
}

func (*registryProbe) ExecPlan(clientPath string, entry stores.GameStoreEntry) stores.ExecutionPlan {
	return windowsExecPlan(clientPath, entry)
}

// windowsExecPlan builds the GalaxyClient.exe invocation. Argument order is
// fixed: the client parses them positionally.
func windowsExecPlan(basePath string, entry stores.GameStoreEntry) stores.ExecutionPlan {
	exe := strings.TrimRight(basePath, `\`) + `\` + windowsClientExe
	return stores.ExecutionPlan{
		Exe: exe,
		Args: []string{
			"/command=runGame",
			"/gameId=" + entry.AppID,
			`path="` + entry.GamePath + `"`,
		},
	}
}
