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

// Package command provides an abstraction over exec.Command for testability.
package command

import (
	"context"
	"os/exec"
)

// StartOptions configures command startup behavior.
type StartOptions struct {
	// Dir is the working directory for the command. Empty means the calling
	// process's working directory.
	Dir string
	// UseShell runs the command through the platform shell so the client's
	// own argument quoting is interpreted.
	UseShell bool
	// SuggestDeploy hints to the host that a deployment step should follow
	// a successful launch. The real executor ignores it; host-provided
	// executors may act on it.
	SuggestDeploy bool
	// HideWindow prevents a console window from appearing (Windows-only).
	HideWindow bool
}

// Executor provides an abstraction over exec.Command for testability.
// This allows commands to be mocked in tests without executing real system
// commands.
type Executor interface {
	// Run executes a command and waits for it to complete.
	Run(ctx context.Context, name string, args ...string) error

	// Start starts a command without waiting for it to complete
	// (fire-and-forget).
	Start(ctx context.Context, name string, args ...string) error

	// StartWithOptions starts a command with platform-specific options.
	StartWithOptions(ctx context.Context, opts StartOptions, name string, args ...string) error
}

// RealExecutor uses actual exec.Command to execute system commands.
// This is the production implementation used in normal operation.
type RealExecutor struct{}

// Run executes a system command using exec.CommandContext.
//
//nolint:wrapcheck // Wrapping exec errors loses important context
func (*RealExecutor) Run(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Start starts a command without waiting for it to complete.
//
//nolint:wrapcheck // Wrapping exec errors loses important context
func (*RealExecutor) Start(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Start()
}
