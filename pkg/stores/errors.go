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
	"errors"
	"fmt"
)

// ErrNotInstalled indicates the store client's install path could not be
// determined. Operations that need the client fail with this error instead
// of surfacing whatever low-level failure prevented detection.
var ErrNotInstalled = errors.New("store client is not installed")

// ErrEntryNotFound indicates a lookup by name or id matched nothing. Callers
// are expected to recover, typically by falling through to another provider.
var ErrEntryNotFound = errors.New("game entry not found")

// EntryNotFoundError is the concrete failure returned by provider lookups.
// It carries the query and the provider's identifier so the host can report
// which provider rejected which query.
type EntryNotFoundError struct {
	Query   string
	StoreID string
}

func (e *EntryNotFoundError) Error() string {
	return fmt.Sprintf("no %s entry matches %q", e.StoreID, e.Query)
}

func (*EntryNotFoundError) Unwrap() error {
	return ErrEntryNotFound
}
