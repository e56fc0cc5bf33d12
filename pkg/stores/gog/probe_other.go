//go:build !windows && !darwin

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

	"github.com/modshelf/gogstore/pkg/stores"
	"github.com/rs/zerolog/log"
)

// unsupportedProbe is used on platforms the Galaxy client does not run on.
// It reports the client as absent and enumerates nothing.
type unsupportedProbe struct{}

func (unsupportedProbe) DetectClient() (string, bool) {
	log.Debug().Msg("gog galaxy is not supported on this platform")
	return "", false
}

func (unsupportedProbe) Entries(context.Context, string) ([]stores.GameStoreEntry, error) {
	return nil, nil
}

func (unsupportedProbe) ExecPlan(string, stores.GameStoreEntry) stores.ExecutionPlan {
	return stores.ExecutionPlan{}
}

func newPlatformProbe() clientProbe {
	return unsupportedProbe{}
}
