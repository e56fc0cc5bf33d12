//go:build !windows

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

package command

import (
	"context"
	"os/exec"
	"strings"
)

// StartWithOptions starts a command with platform-specific options on Unix.
// The HideWindow option is ignored on non-Windows platforms. With UseShell
// the invocation is handed to sh so quoted arguments are interpreted.
//
//nolint:wrapcheck // Wrapping exec errors loses important context
func (*RealExecutor) StartWithOptions(
	ctx context.Context,
	opts StartOptions,
	name string,
	args ...string,
) error {
	var cmd *exec.Cmd
	if opts.UseShell {
		line := "'" + name + "' " + strings.Join(args, " ")
		cmd = exec.CommandContext(ctx, "sh", "-c", line) //nolint:gosec // shell launch is the caller's explicit request
	} else {
		cmd = exec.CommandContext(ctx, name, args...)
	}
	cmd.Dir = opts.Dir
	return cmd.Start()
}
