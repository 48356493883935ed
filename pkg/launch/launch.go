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

// Package launch runs a game the way Steam asked for it, wrapped in the
// configured launch template and hook commands.
//
// A launch goes through pre-launch hooks, the main command and post-exit
// hooks, strictly in that order and one process at a time. Hook failures
// never stop a launch, and post-exit hooks run even when the main command
// could not be started.
package launch

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ZaparooProject/zaparoo-launch/pkg/database/history"
	"github.com/ZaparooProject/zaparoo-launch/pkg/gameconfig"
	"github.com/ZaparooProject/zaparoo-launch/pkg/helpers/command"
	"github.com/ZaparooProject/zaparoo-launch/pkg/helpers/syncutil"
	"github.com/ZaparooProject/zaparoo-launch/pkg/notify"
)

// NoExitCode is reported when the main command never ran or its exit
// status is unknown.
const NoExitCode = -1

// HistoryWriter records finished launches.
type HistoryWriter interface {
	Add(e *history.Entry) error
}

// Request describes a single launch.
type Request struct {
	// RawCommand is the command line Steam passed in, spliced verbatim into
	// the launch template.
	RawCommand string
	// GameName is only used for history and notifications.
	GameName string
	Config   gameconfig.Config
	// Cancelled is set when the user backed out in the editor. Nothing is
	// started.
	Cancelled bool
	// OutputLog sends the main command's output to a per-game log file
	// instead of the wrapper's own stdout and stderr.
	OutputLog bool
}

// Result describes how a launch went. Exit codes are informational only:
// they never change what runs next.
type Result struct {
	StartTime time.Time
	EndTime   time.Time
	// MainErr is the *SpawnError of the main command, if it couldn't start.
	MainErr error
	ID      string
	Command string
	States  []State
	// HookErrors holds a *SpawnError per hook that couldn't start.
	HookErrors []error
	ExitCode   int
	// HookFailures counts hooks that started but exited non-zero.
	HookFailures int
}

// State is the last state the launch reached.
func (r *Result) State() State {
	if len(r.States) == 0 {
		return Idle
	}
	return r.States[len(r.States)-1]
}

// Success reports whether the main command was started.
func (r *Result) Success() bool {
	return r.State() == Done && r.MainErr == nil
}

type Orchestrator struct {
	exec      command.Executor
	notifier  notify.Notifier
	clock     clockwork.Clock
	history   HistoryWriter
	outputDir string
	mu        syncutil.Mutex
	state     State
}

type Option func(*Orchestrator)

// WithClock sets the clock used for launch timings.
func WithClock(clock clockwork.Clock) Option {
	return func(o *Orchestrator) {
		o.clock = clock
	}
}

// WithNotifier sets where spawn failures are reported. The default only
// logs them.
func WithNotifier(n notify.Notifier) Option {
	return func(o *Orchestrator) {
		o.notifier = n
	}
}

// WithHistory records every finished launch in h.
func WithHistory(h HistoryWriter) Option {
	return func(o *Orchestrator) {
		o.history = h
	}
}

// WithOutputDir sets the directory of the per-game output logs used by
// requests with OutputLog set.
func WithOutputDir(dir string) Option {
	return func(o *Orchestrator) {
		o.outputDir = dir
	}
}

func NewOrchestrator(exec command.Executor, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		exec:     exec,
		notifier: notify.LogNotifier{},
		clock:    clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the state of the launch in progress, or the final state of
// the last one.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

type run struct {
	log    zerolog.Logger
	result *Result
	req    *Request
}

func (o *Orchestrator) transition(r *run, s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
	r.result.States = append(r.result.States, s)
	r.log.Debug().Stringer("state", s).Msg("launch state changed")
}

// Run performs a launch and blocks until the last post-exit hook is done.
//
// The context only cancels a launch before the main command starts. Once
// the game is running it is always waited for and the post-exit hooks
// always run.
func (o *Orchestrator) Run(ctx context.Context, req *Request) Result {
	result := Result{
		ID:        uuid.New().String(),
		StartTime: o.clock.Now(),
		ExitCode:  NoExitCode,
		States:    []State{Idle},
	}
	r := &run{
		result: &result,
		req:    req,
		log: log.With().
			Str("launch", result.ID).
			Str("appid", req.Config.AppID).
			Logger(),
	}
	o.mu.Lock()
	o.state = Idle
	o.mu.Unlock()

	if req.Cancelled {
		r.log.Info().Msg("launch cancelled")
		o.finish(r, Cancelled)
		return result
	}

	o.transition(r, RunningPreLaunch)
	for _, cmd := range req.Config.EnabledCommands(gameconfig.PreLaunch) {
		if ctx.Err() != nil {
			r.log.Info().Err(ctx.Err()).Msg("launch cancelled during pre-launch")
			o.finish(r, Cancelled)
			return result
		}
		o.runHook(ctx, r, RunningPreLaunch, cmd.Command)
	}
	if ctx.Err() != nil {
		r.log.Info().Err(ctx.Err()).Msg("launch cancelled before main command")
		o.finish(r, Cancelled)
		return result
	}

	// Past this point the launch can't be cancelled.
	ctx = context.WithoutCancel(ctx)

	o.transition(r, RunningMain)
	o.runMain(ctx, r)

	o.transition(r, RunningPostExit)
	for _, cmd := range req.Config.EnabledCommands(gameconfig.PostExit) {
		o.runHook(ctx, r, RunningPostExit, cmd.Command)
	}

	o.finish(r, Done)
	o.record(r)
	return result
}

func (o *Orchestrator) finish(r *run, s State) {
	o.transition(r, s)
	r.result.EndTime = o.clock.Now()
	r.log.Info().
		Stringer("state", s).
		Dur("duration", r.result.EndTime.Sub(r.result.StartTime)).
		Int("exitCode", r.result.ExitCode).
		Msg("launch finished")
}

func (o *Orchestrator) runHook(ctx context.Context, r *run, stage State, script string) {
	r.log.Info().Stringer("stage", stage).Str("command", script).Msg("running hook command")

	proc, err := command.StartShell(ctx, o.exec, command.StartOptions{}, script)
	if err != nil {
		spawnErr := &SpawnError{Stage: stage, Command: script, Err: err}
		r.result.HookErrors = append(r.result.HookErrors, spawnErr)
		r.log.Error().Err(err).Stringer("stage", stage).Str("command", script).Msg("hook command failed to start")
		o.notify(ctx, r, stage.String()+" command failed", spawnErr.Error())
		return
	}

	err = proc.Wait()
	if code, ok := command.ExitCode(err); !ok {
		r.result.HookFailures++
		r.log.Warn().Err(err).Str("command", script).Msg("hook command wait failed")
	} else if code != 0 {
		r.result.HookFailures++
		r.log.Warn().Int("exitCode", code).Str("command", script).Msg("hook command exited with error")
	}
}

func (o *Orchestrator) runMain(ctx context.Context, r *run) {
	script := r.req.Config.Render(r.req.RawCommand)
	r.result.Command = script
	r.log.Info().Str("command", script).Msg("running launch command")

	if strings.TrimSpace(script) == "" {
		r.log.Warn().Msg("launch command is empty")
	} else if err := gameconfig.CheckShell(script); err != nil {
		r.log.Warn().Err(err).Msg("launch command may not run as expected")
	}

	opts := command.StartOptions{}
	if r.req.OutputLog && o.outputDir != "" {
		out, err := openOutputLog(o.outputDir, r.req.Config.AppID)
		if err != nil {
			r.log.Warn().Err(err).Msg("output log unavailable, using inherited output")
		} else {
			defer closeOutput(r, out)
			_, _ = fmt.Fprintf(out, "=== launch %s at %s\n=== %s\n",
				r.result.ID, r.result.StartTime.Format(time.RFC3339), script)
			opts.Stdout = out
			opts.Stderr = out
		}
	}

	proc, err := command.StartShell(ctx, o.exec, opts, script)
	if err != nil {
		spawnErr := &SpawnError{Stage: RunningMain, Command: script, Err: err}
		r.result.MainErr = spawnErr
		r.log.Error().Err(err).Msg("launch command failed to start")
		o.notify(ctx, r, "Game failed to launch", spawnErr.Error())
		return
	}
	r.log.Debug().Int("pid", proc.Pid()).Msg("launch command started")

	err = proc.Wait()
	if code, ok := command.ExitCode(err); ok {
		r.result.ExitCode = code
		if code != 0 {
			r.log.Warn().Int("exitCode", code).Msg("launch command exited with error")
		}
	} else {
		r.log.Warn().Err(err).Msg("launch command wait failed")
	}
}

func closeOutput(r *run, out io.Closer) {
	if err := out.Close(); err != nil {
		r.log.Warn().Err(err).Msg("failed to close output log")
	}
}

func (o *Orchestrator) notify(ctx context.Context, r *run, summary, body string) {
	if r.req.GameName != "" {
		summary = r.req.GameName + ": " + summary
	}
	err := o.notifier.Notify(ctx, notify.Notification{
		Summary: summary,
		Body:    body,
		Urgency: notify.UrgencyCritical,
	})
	if err != nil {
		r.log.Warn().Err(err).Msg("failed to send notification")
	}
}

func (o *Orchestrator) record(r *run) {
	if o.history == nil {
		return
	}

	res := r.result
	entry := &history.Entry{
		ID:           res.ID,
		AppID:        r.req.Config.AppID,
		GameName:     r.req.GameName,
		Command:      res.Command,
		StartTime:    res.StartTime,
		EndTime:      res.EndTime,
		ExitCode:     res.ExitCode,
		HookFailures: res.HookFailures + len(res.HookErrors),
		Success:      res.Success(),
	}
	if res.MainErr != nil {
		entry.Error = res.MainErr.Error()
	}

	if err := o.history.Add(entry); err != nil {
		r.log.Warn().Err(err).Msg("failed to record launch history")
	}
}
