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

// Package command wraps os/exec behind an interface so launches and hook
// commands can be replaced with mocks in tests.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

// PipeWaitDelay bounds how long Wait keeps copying output after the process
// has exited. Background children that inherited a log pipe would otherwise
// hold Wait open until they exit too.
const PipeWaitDelay = 2 * time.Second

// StartOptions configures how a process is started.
type StartOptions struct {
	// Stdout and Stderr default to the parent's own streams when nil.
	Stdout io.Writer
	Stderr io.Writer
}

// Process is a started child process.
type Process interface {
	// Wait blocks until the process exits. A non-zero exit status is
	// reported as an *exec.ExitError.
	Wait() error
	Pid() int
}

// Executor starts system commands.
type Executor interface {
	// Start starts a command without waiting for it. The context is only
	// checked before the process starts: cancelling it later never kills
	// the child, which is left for the caller to Wait on.
	Start(ctx context.Context, opts StartOptions, name string, args ...string) (Process, error)
}

// RealExecutor runs commands on the host.
type RealExecutor struct{}

// Start starts a command with the given options. Stdin is always inherited.
func (*RealExecutor) Start(
	ctx context.Context,
	opts StartOptions,
	name string,
	args ...string,
) (Process, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("not starting %s: %w", name, err)
	}

	//nolint:noctx // the child must outlive cancellation, see Executor.Start
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = opts.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = opts.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	cmd.WaitDelay = PipeWaitDelay

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", name, err)
	}
	return &process{cmd: cmd}, nil
}

type process struct {
	cmd *exec.Cmd
}

// Wait returns once the process has exited. Output still held open by its
// own children after PipeWaitDelay is dropped and not reported as an error.
//
//nolint:wrapcheck // callers inspect *exec.ExitError
func (p *process) Wait() error {
	err := p.cmd.Wait()
	if errors.Is(err, exec.ErrWaitDelay) {
		return nil
	}
	return err
}

func (p *process) Pid() int {
	return p.cmd.Process.Pid
}

// Shell returns the command line that runs script under /bin/sh.
func Shell(script string) (name string, args []string) {
	return "sh", []string{"-c", script}
}

// StartShell starts script through the shell.
func StartShell(ctx context.Context, ex Executor, opts StartOptions, script string) (Process, error) {
	name, args := Shell(script)
	return ex.Start(ctx, opts, name, args...)
}

// ExitCode extracts the exit status from an error returned by
// Process.Wait. ok is false when err does not carry an exit status.
func ExitCode(err error) (code int, ok bool) {
	if err == nil {
		return 0, true
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), true
	}
	return 0, false
}
