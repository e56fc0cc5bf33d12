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
)

// clientProbe is the platform-specific capability behind the store: detect
// the Galaxy client, enumerate installed titles and build launch plans.
// One implementation is selected at startup by newPlatformProbe; callers
// never branch on the platform again.
type clientProbe interface {
	// DetectClient reports the Galaxy client install path. ok is false when
	// the client is absent or the platform is unsupported; detection
	// failures are logged, never returned.
	DetectClient() (path string, ok bool)
	// Entries enumerates installed titles. clientPath is the detected client
	// path, empty when the client was never found.
	Entries(ctx context.Context, clientPath string) ([]stores.GameStoreEntry, error)
	// ExecPlan builds the client invocation that launches one entry. Only
	// valid when the client was detected.
	ExecPlan(clientPath string, entry stores.GameStoreEntry) stores.ExecutionPlan
}
