//go:build windows

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
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// windowsRegistry reads HKEY_LOCAL_MACHINE through the real Windows
// registry API.
type windowsRegistry struct{}

func (windowsRegistry) ReadString(key, name string) (string, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, key, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", errRegNotExist
		}
		return "", fmt.Errorf("failed to open registry key %s: %w", key, err)
	}
	defer func() {
		_ = k.Close()
	}()

	value, _, err := k.GetStringValue(name)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", errRegNotExist
		}
		return "", fmt.Errorf("failed to read registry value %s\\%s: %w", key, name, err)
	}
	return value, nil
}

func (windowsRegistry) SubkeyNames(key string) ([]string, error) {
	k, err := registry.OpenKey(
		registry.LOCAL_MACHINE, key,
		registry.ENUMERATE_SUB_KEYS|registry.QUERY_VALUE,
	)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil, errRegNotExist
		}
		return nil, fmt.Errorf("failed to open registry key %s: %w", key, err)
	}
	defer func() {
		_ = k.Close()
	}()

	names, err := k.ReadSubKeyNames(-1)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate subkeys of %s: %w", key, err)
	}
	return names, nil
}

func newPlatformProbe() clientProbe {
	return &registryProbe{reg: windowsRegistry{}}
}
