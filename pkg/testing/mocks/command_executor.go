// Zaparoo Launch
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Launch.
//
// Zaparoo Launch is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Launch is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Launch.  If not, see <http://www.gnu.org/licenses/>.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ZaparooProject/zaparoo-launch/pkg/helpers/command"
)

// MockCommandExecutor is a testify mock for command.Executor. It lets the
// launcher be tested without running real system commands.
//
// Example:
//
//	exec := &MockCommandExecutor{}
//	exec.On("Start", mock.Anything, mock.Anything, "sh", []string{"-c", "./game"}).
//		Return(NewExitedProcess(nil), nil)
type MockCommandExecutor struct {
	mock.Mock
}

func (m *MockCommandExecutor) Start(
	ctx context.Context,
	opts command.StartOptions,
	name string,
	args ...string,
) (command.Process, error) {
	called := m.Called(ctx, opts, name, args)
	var proc command.Process
	if v := called.Get(0); v != nil {
		proc, _ = v.(command.Process)
	}
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return proc, called.Error(1)
}

// ShellArgs returns the args a mocked Start receives for a shell script.
func ShellArgs(script string) []string {
	_, args := command.Shell(script)
	return args
}

// ShellName returns the name a mocked Start receives for a shell script.
func ShellName() string {
	name, _ := command.Shell("")
	return name
}

// FakeProcess is a command.Process that has already exited.
type FakeProcess struct {
	Err error
	PID int
	// Block, when set, is waited on before Wait returns.
	Block <-chan struct{}
}

// NewExitedProcess returns a process whose Wait returns err immediately.
func NewExitedProcess(err error) *FakeProcess {
	return &FakeProcess{Err: err, PID: 4242}
}

func (p *FakeProcess) Wait() error {
	if p.Block != nil {
		<-p.Block
	}
	return p.Err
}

func (p *FakeProcess) Pid() int {
	return p.PID
}
