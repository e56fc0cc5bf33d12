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

// gogstore is a small CLI over the GOG Galaxy store provider: list
// installed games, look them up by name or catalog id, print launch
// commands and launch games.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/modshelf/gogstore/pkg/config"
	"github.com/modshelf/gogstore/pkg/helpers"
	"github.com/modshelf/gogstore/pkg/stores"
	"github.com/modshelf/gogstore/pkg/stores/gog"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// gogPriority orders this provider among others registered with the host.
// Lower is preferred.
const gogPriority = 10

func main() {
	listFlag := flag.Bool("list", false, "list all installed GOG games")
	findFlag := flag.String("find", "", "find a game by exact name pattern")
	appIDFlag := flag.String("appid", "", "find a game by catalog id (comma separated for multiple)")
	execFlag := flag.String("exec", "", "print the launch command for a catalog id")
	launchFlag := flag.String("launch", "", "launch a game by catalog id")
	pathFlag := flag.Bool("path", false, "print the detected galaxy client path")
	reloadFlag := flag.Bool("reload", false, "discard the cached snapshot before running")
	debugFlag := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logDir := filepath.Join(os.TempDir(), config.AppName)
	err := helpers.InitLogging(logDir, config.LogFile, []io.Writer{
		zerolog.ConsoleWriter{Out: os.Stderr},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error initializing logging: %v\n", err)
		os.Exit(1)
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	configDir := filepath.Join(xdg.ConfigHome, config.AppName)
	cfg, err := config.NewConfig(configDir, config.BaseDefaults)
	if err != nil {
		log.Error().Err(err).Msg("error loading config")
		os.Exit(1)
	}

	if *debugFlag || cfg.DebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	store := gog.NewStore(cfg)
	registry := stores.NewRegistry()
	registry.Register(store, gogPriority)

	ctx := context.Background()

	if *reloadFlag {
		store.ReloadGames()
	}

	switch {
	case *pathFlag:
		path, ok := store.StorePath()
		if !ok {
			fmt.Println("galaxy client not installed")
			return
		}
		fmt.Println(path)
	case *listFlag:
		games, err := store.AllGames(ctx)
		if err != nil {
			log.Error().Err(err).Msg("error listing games")
			os.Exit(1)
		}
		if len(games) == 0 {
			fmt.Println("no installed GOG games found")
			return
		}
		for _, game := range games {
			fmt.Printf("%s\t%s\t%s\n", game.AppID, game.Name, game.GamePath)
		}
	case *findFlag != "":
		entry, err := registry.FindByName(ctx, *findFlag)
		if err != nil {
			log.Error().Err(err).Msg("error finding game")
			os.Exit(1)
		}
		fmt.Printf("%s\t%s\t%s\n", entry.AppID, entry.Name, entry.GamePath)
	case *appIDFlag != "":
		ids := strings.Split(*appIDFlag, ",")
		entry, err := registry.FindByAppID(ctx, ids...)
		if err != nil {
			log.Error().Err(err).Msg("error finding game")
			os.Exit(1)
		}
		fmt.Printf("%s\t%s\t%s\n", entry.AppID, entry.Name, entry.GamePath)
	case *execFlag != "":
		plan, err := store.ExecInfo(ctx, *execFlag)
		if err != nil {
			log.Error().Err(err).Msg("error building exec info")
			os.Exit(1)
		}
		fmt.Printf("%s %s\n", plan.Exe, strings.Join(plan.Args, " "))
	case *launchFlag != "":
		if err := store.Launch(ctx, *launchFlag); err != nil {
			log.Error().Err(err).Msg("error launching game")
			os.Exit(1)
		}
	default:
		flag.Usage()
	}
}
