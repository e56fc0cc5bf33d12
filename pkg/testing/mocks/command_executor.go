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

// Package mocks provides testify mocks for external collaborators.
package mocks

import (
	"context"

	"github.com/modshelf/gogstore/pkg/helpers/command"
	"github.com/stretchr/testify/mock"
)

// MockCommandExecutor is a testify mock for command.Executor. It allows
// testing launch paths without executing real system commands.
type MockCommandExecutor struct {
	mock.Mock
}

// Run mocks the execution of a system command.
//
// Example:
//
//	mockCmd := &MockCommandExecutor{}
//	mockCmd.On("Run", mock.Anything, "GalaxyClient.exe", mock.Anything).Return(nil)
func (m *MockCommandExecutor) Run(ctx context.Context, name string, args ...string) error {
	called := m.Called(ctx, name, args)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return called.Error(0)
}

// Start mocks fire-and-forget command startup.
func (m *MockCommandExecutor) Start(ctx context.Context, name string, args ...string) error {
	called := m.Called(ctx, name, args)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return called.Error(0)
}

// StartWithOptions mocks command startup with options. The options value is
// passed to Called so expectations can assert working dir and shell flags.
func (m *MockCommandExecutor) StartWithOptions(
	ctx context.Context,
	opts command.StartOptions,
	name string,
	args ...string,
) error {
	called := m.Called(ctx, opts, name, args)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return called.Error(0)
}
