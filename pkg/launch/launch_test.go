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

package launch

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ZaparooProject/zaparoo-launch/pkg/database/history"
	"github.com/ZaparooProject/zaparoo-launch/pkg/gameconfig"
	"github.com/ZaparooProject/zaparoo-launch/pkg/helpers/command"
	"github.com/ZaparooProject/zaparoo-launch/pkg/notify"
	"github.com/ZaparooProject/zaparoo-launch/pkg/testing/mocks"
)

var errNoExec = errors.New("exec: no such file or directory")

func expectShell(m *mocks.MockCommandExecutor, script string, proc command.Process, err error) *mock.Call {
	return m.On("Start", mock.Anything, mock.Anything, mocks.ShellName(), mocks.ShellArgs(script)).
		Return(proc, err).
		Once()
}

func startedScripts(m *mocks.MockCommandExecutor) []string {
	var scripts []string
	for _, call := range m.Calls {
		if call.Method != "Start" {
			continue
		}
		args, ok := call.Arguments.Get(3).([]string)
		if ok && len(args) > 0 {
			scripts = append(scripts, args[len(args)-1])
		}
	}
	return scripts
}

func testConfig() gameconfig.Config {
	return gameconfig.Config{
		AppID:          "570",
		LaunchTemplate: "%wrap%%command%",
		Options:        []gameconfig.Option{{Token: "%wrap%", Replacement: "gamemoderun ", Enabled: true}},
		PreLaunch: []gameconfig.Command{
			{Command: "echo pre1", Enabled: true},
			{Command: "echo skipped", Enabled: false},
			{Command: "echo pre2", Enabled: true},
		},
		PostExit: []gameconfig.Command{
			{Command: "echo post1", Enabled: true},
		},
	}
}

type fakeHistory struct {
	err     error
	entries []history.Entry
}

func (f *fakeHistory) Add(e *history.Entry) error {
	f.entries = append(f.entries, *e)
	return f.err
}

func TestRun_RunsStagesInOrder(t *testing.T) {
	t.Parallel()

	exec := &mocks.MockCommandExecutor{}
	expectShell(exec, "echo pre1", mocks.NewExitedProcess(nil), nil)
	expectShell(exec, "echo pre2", mocks.NewExitedProcess(nil), nil)
	expectShell(exec, "gamemoderun ./game", mocks.NewExitedProcess(nil), nil)
	expectShell(exec, "echo post1", mocks.NewExitedProcess(nil), nil)

	o := NewOrchestrator(exec)
	res := o.Run(context.Background(), &Request{Config: testConfig(), RawCommand: "./game"})

	exec.AssertExpectations(t)
	assert.Equal(t, []string{"echo pre1", "echo pre2", "gamemoderun ./game", "echo post1"}, startedScripts(exec))
	assert.Equal(t, []State{Idle, RunningPreLaunch, RunningMain, RunningPostExit, Done}, res.States)
	assert.Equal(t, Done, res.State())
	assert.Equal(t, Done, o.State())
	assert.True(t, res.Success())
	assert.Equal(t, "gamemoderun ./game", res.Command)
	assert.NotEmpty(t, res.ID)
	assert.Empty(t, res.HookErrors)
}

func TestRun_CancelledStartsNothing(t *testing.T) {
	t.Parallel()

	exec := &mocks.MockCommandExecutor{}
	hist := &fakeHistory{}

	o := NewOrchestrator(exec, WithHistory(hist))
	res := o.Run(context.Background(), &Request{Config: testConfig(), RawCommand: "./game", Cancelled: true})

	exec.AssertNotCalled(t, "Start", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, []State{Idle, Cancelled}, res.States)
	assert.False(t, res.Success())
	assert.Equal(t, NoExitCode, res.ExitCode)
	assert.Empty(t, hist.entries)
}

func TestRun_CancelledContextStartsNothing(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec := &mocks.MockCommandExecutor{}

	res := NewOrchestrator(exec).Run(ctx, &Request{Config: testConfig(), RawCommand: "./game"})

	assert.Empty(t, startedScripts(exec))
	assert.Equal(t, Cancelled, res.State())
}

func TestRun_CancelDuringPreLaunchStopsBeforeMain(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	exec := &mocks.MockCommandExecutor{}
	expectShell(exec, "echo pre1", mocks.NewExitedProcess(nil), nil).
		Run(func(mock.Arguments) { cancel() })

	res := NewOrchestrator(exec).Run(ctx, &Request{Config: testConfig(), RawCommand: "./game"})

	assert.Equal(t, []string{"echo pre1"}, startedScripts(exec))
	assert.Equal(t, []State{Idle, RunningPreLaunch, Cancelled}, res.States)
}

func TestRun_CancelDuringMainStillRunsPostExit(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cfg := testConfig()
	cfg.PreLaunch = nil

	exec := &mocks.MockCommandExecutor{}
	expectShell(exec, "gamemoderun ./game", mocks.NewExitedProcess(nil), nil).
		Run(func(mock.Arguments) { cancel() })
	var postCtxErr error
	expectShell(exec, "echo post1", mocks.NewExitedProcess(nil), nil).
		Run(func(args mock.Arguments) {
			postCtxErr = args.Get(0).(context.Context).Err() //nolint:forcetypeassert // test
		})

	res := NewOrchestrator(exec).Run(ctx, &Request{Config: cfg, RawCommand: "./game"})

	exec.AssertExpectations(t)
	require.NoError(t, postCtxErr)
	assert.Equal(t, Done, res.State())
}

func TestRun_HookSpawnFailureContinues(t *testing.T) {
	t.Parallel()

	exec := &mocks.MockCommandExecutor{}
	expectShell(exec, "echo pre1", nil, errNoExec)
	expectShell(exec, "echo pre2", mocks.NewExitedProcess(nil), nil)
	expectShell(exec, "gamemoderun ./game", mocks.NewExitedProcess(nil), nil)
	expectShell(exec, "echo post1", nil, errNoExec)

	notifier := &mocks.MockNotifier{}
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n notify.Notification) bool {
		return n.Urgency == notify.UrgencyCritical && strings.Contains(n.Summary, "pre-launch")
	})).Return(nil).Once()
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n notify.Notification) bool {
		return strings.Contains(n.Summary, "post-exit")
	})).Return(errors.New("no notification daemon")).Once()

	res := NewOrchestrator(exec, WithNotifier(notifier)).
		Run(context.Background(), &Request{Config: testConfig(), RawCommand: "./game"})

	exec.AssertExpectations(t)
	notifier.AssertExpectations(t)
	require.Len(t, res.HookErrors, 2)

	var spawnErr *SpawnError
	require.ErrorAs(t, res.HookErrors[0], &spawnErr)
	assert.Equal(t, RunningPreLaunch, spawnErr.Stage)
	assert.Equal(t, "echo pre1", spawnErr.Command)
	require.ErrorIs(t, res.HookErrors[0], errNoExec)

	require.ErrorAs(t, res.HookErrors[1], &spawnErr)
	assert.Equal(t, RunningPostExit, spawnErr.Stage)

	assert.True(t, res.Success())
	assert.Equal(t, Done, res.State())
}

func TestRun_HookExitStatusIsIgnored(t *testing.T) {
	t.Parallel()

	exec := &mocks.MockCommandExecutor{}
	expectShell(exec, "echo pre1", mocks.NewExitedProcess(errors.New("signal: killed")), nil)
	expectShell(exec, "echo pre2", mocks.NewExitedProcess(nil), nil)
	expectShell(exec, "gamemoderun ./game", mocks.NewExitedProcess(nil), nil)
	expectShell(exec, "echo post1", mocks.NewExitedProcess(nil), nil)

	res := NewOrchestrator(exec).Run(context.Background(), &Request{Config: testConfig(), RawCommand: "./game"})

	exec.AssertExpectations(t)
	assert.Equal(t, 1, res.HookFailures)
	assert.Empty(t, res.HookErrors)
	assert.True(t, res.Success())
}

func TestRun_MainSpawnFailureRunsPostExit(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.PreLaunch = nil

	exec := &mocks.MockCommandExecutor{}
	expectShell(exec, "gamemoderun ./game", nil, errNoExec)
	expectShell(exec, "echo post1", mocks.NewExitedProcess(nil), nil)

	notifier := &mocks.MockNotifier{}
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n notify.Notification) bool {
		return n.Summary == "Dota 2: Game failed to launch" && strings.Contains(n.Body, "gamemoderun ./game")
	})).Return(nil).Once()

	res := NewOrchestrator(exec, WithNotifier(notifier)).Run(context.Background(), &Request{
		Config:     cfg,
		RawCommand: "./game",
		GameName:   "Dota 2",
	})

	exec.AssertExpectations(t)
	notifier.AssertExpectations(t)
	assert.Equal(t, []State{Idle, RunningPreLaunch, RunningMain, RunningPostExit, Done}, res.States)
	assert.False(t, res.Success())
	assert.Equal(t, NoExitCode, res.ExitCode)

	var spawnErr *SpawnError
	require.ErrorAs(t, res.MainErr, &spawnErr)
	assert.Equal(t, RunningMain, spawnErr.Stage)
}

func TestRun_RecordsHistory(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(start)
	cfg := testConfig()
	cfg.PreLaunch = nil
	cfg.PostExit = nil

	exec := &mocks.MockCommandExecutor{}
	expectShell(exec, "gamemoderun ./game", mocks.NewExitedProcess(nil), nil).
		Run(func(mock.Arguments) { clock.Advance(90 * time.Minute) })
	hist := &fakeHistory{err: errors.New("disk full")}

	res := NewOrchestrator(exec, WithClock(clock), WithHistory(hist)).
		Run(context.Background(), &Request{Config: cfg, RawCommand: "./game", GameName: "Dota 2"})

	require.Len(t, hist.entries, 1)
	entry := hist.entries[0]
	assert.Equal(t, res.ID, entry.ID)
	assert.Equal(t, "570", entry.AppID)
	assert.Equal(t, "Dota 2", entry.GameName)
	assert.Equal(t, "gamemoderun ./game", entry.Command)
	assert.Equal(t, start, entry.StartTime)
	assert.Equal(t, 90*time.Minute, entry.Duration())
	assert.True(t, entry.Success)
	assert.Empty(t, entry.Error)
	assert.Equal(t, Done, res.State(), "history failures are not fatal")
}

func TestRun_RecordsMainFailureInHistory(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.PreLaunch = nil
	cfg.PostExit = nil

	exec := &mocks.MockCommandExecutor{}
	expectShell(exec, "gamemoderun ./game", nil, errNoExec)
	hist := &fakeHistory{}

	NewOrchestrator(exec, WithHistory(hist), WithNotifier(mocks.NewMockNotifier())).
		Run(context.Background(), &Request{Config: cfg, RawCommand: "./game"})

	require.Len(t, hist.entries, 1)
	assert.False(t, hist.entries[0].Success)
	assert.Contains(t, hist.entries[0].Error, errNoExec.Error())
	assert.Equal(t, NoExitCode, hist.entries[0].ExitCode)
}

func TestRun_MissingCommandMarkerStillRuns(t *testing.T) {
	t.Parallel()

	cfg := gameconfig.Config{AppID: "10", LaunchTemplate: "echo hello"}
	exec := &mocks.MockCommandExecutor{}
	expectShell(exec, "echo hello", mocks.NewExitedProcess(nil), nil)

	res := NewOrchestrator(exec).Run(context.Background(), &Request{Config: cfg, RawCommand: "./game"})

	exec.AssertExpectations(t)
	assert.Equal(t, "echo hello", res.Command)
}

func TestRun_MainStdioInheritedByDefault(t *testing.T) {
	t.Parallel()

	cfg := gameconfig.Config{AppID: "10", LaunchTemplate: "%command%"}
	exec := &mocks.MockCommandExecutor{}
	exec.On("Start", mock.Anything, command.StartOptions{}, mocks.ShellName(), mocks.ShellArgs("./game")).
		Return(mocks.NewExitedProcess(nil), nil).
		Once()

	NewOrchestrator(exec, WithOutputDir(t.TempDir())).
		Run(context.Background(), &Request{Config: cfg, RawCommand: "./game"})

	exec.AssertExpectations(t)
}
