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

package history

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})
	return db
}

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func entryAt(id, appID string, offset time.Duration) *Entry {
	start := baseTime.Add(offset)
	return &Entry{
		ID:        id,
		AppID:     appID,
		Command:   "./game",
		StartTime: start,
		EndTime:   start.Add(time.Minute),
		Success:   true,
	}
}

func TestAddAndRecent(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)

	require.NoError(t, db.Add(entryAt("b", "10", time.Hour)))
	require.NoError(t, db.Add(entryAt("a", "10", 0)))
	require.NoError(t, db.Add(entryAt("c", "20", 2*time.Hour)))

	all, err := db.Recent("", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{all[0].ID, all[1].ID, all[2].ID})
	assert.True(t, all[0].StartTime.Equal(baseTime.Add(2*time.Hour)))
	assert.Equal(t, time.Minute, all[0].Duration())

	game, err := db.Recent("10", 0)
	require.NoError(t, err)
	require.Len(t, game, 2)
	assert.Equal(t, "b", game[0].ID)

	limited, err := db.Recent("", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "c", limited[0].ID)
}

func TestRecent_EmptyDatabase(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)

	entries, err := db.Recent("", 10)

	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSameStartTimeKeepsBoth(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)

	require.NoError(t, db.Add(entryAt("x", "10", 0)))
	require.NoError(t, db.Add(entryAt("y", "10", 0)))

	entries, err := db.Recent("", 0)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestCleanup(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	for i, id := range []string{"old1", "old2", "new1", "new2"} {
		require.NoError(t, db.Add(entryAt(id, "10", time.Duration(i)*24*time.Hour)))
	}

	removed, err := db.Cleanup(baseTime.Add(36 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	entries, err := db.Recent("", 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "new2", entries[0].ID)
	assert.Equal(t, "new1", entries[1].ID)
}

func TestReopenKeepsEntries(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.db")
	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Add(entryAt("a", "10", 0)))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	entries, err := db.Recent("", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].ID)
}

func TestClosedDatabase(t *testing.T) {
	t.Parallel()

	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	require.NoError(t, db.Close())
	require.NoError(t, db.Close())

	require.ErrorIs(t, db.Add(entryAt("a", "10", 0)), ErrClosed)
	_, err = db.Recent("", 0)
	require.ErrorIs(t, err, ErrClosed)
	_, err = db.Cleanup(baseTime)
	require.ErrorIs(t, err, ErrClosed)
}

func TestConcurrentAdds(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, db.Add(entryAt(string(rune('a'+i)), "10", time.Duration(i)*time.Second)))
		}()
	}
	wg.Wait()

	entries, err := db.Recent("", 0)
	require.NoError(t, err)
	assert.Len(t, entries, 20)
}

func TestDuration_NegativeIsZero(t *testing.T) {
	t.Parallel()

	e := Entry{StartTime: baseTime, EndTime: baseTime.Add(-time.Second)}

	assert.Equal(t, time.Duration(0), e.Duration())
}
