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

// Package history keeps a small local log of launches, used by the history
// command to show what ran, when and how it ended.
package history

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	BucketLaunches = "launches"
	// DefaultRetention is how long entries are kept by Cleanup callers that
	// have no configured value.
	DefaultRetention = 90 * 24 * time.Hour

	openTimeout = time.Second
)

var ErrClosed = errors.New("history database is closed")

// Entry is one launch, from the first pre-launch hook to the end of the
// last post-exit hook.
type Entry struct {
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	ID           string    `json:"id"`
	AppID        string    `json:"appId"`
	GameName     string    `json:"gameName,omitempty"`
	Command      string    `json:"command"`
	Error        string    `json:"error,omitempty"`
	ExitCode     int       `json:"exitCode"`
	HookFailures int       `json:"hookFailures"`
	Success      bool      `json:"success"`
}

// Duration is the wall time the launch took.
func (e *Entry) Duration() time.Duration {
	if e.EndTime.Before(e.StartTime) {
		return 0
	}
	return e.EndTime.Sub(e.StartTime)
}

type DB struct {
	bdb *bolt.DB
}

// Open opens or creates the history database at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	bdb, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = bdb.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(BucketLaunches))
		return err //nolint:wrapcheck // wrapped below
	})
	if err != nil {
		_ = bdb.Close()
		return nil, fmt.Errorf("failed to create history bucket: %w", err)
	}

	return &DB{bdb: bdb}, nil
}

func (d *DB) Close() error {
	if d.bdb == nil {
		return nil
	}
	if err := d.bdb.Close(); err != nil {
		return fmt.Errorf("failed to close bolt database: %w", err)
	}
	d.bdb = nil
	return nil
}

// entryKey sorts entries by start time; the id keeps keys unique when two
// launches share a timestamp.
func entryKey(e *Entry) []byte {
	key := make([]byte, 8, 8+len(e.ID))
	binary.BigEndian.PutUint64(key, uint64(e.StartTime.UnixNano())) //nolint:gosec // pre-1970 never happens
	return append(key, e.ID...)
}

func keyTime(key []byte) time.Time {
	if len(key) < 8 {
		return time.Time{}
	}
	return time.Unix(0, int64(binary.BigEndian.Uint64(key[:8]))) //nolint:gosec // written by entryKey
}

// Add stores a launch.
func (d *DB) Add(e *Entry) error {
	if d.bdb == nil {
		return ErrClosed
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}

	err = d.bdb.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BucketLaunches)).Put(entryKey(e), data)
	})
	if err != nil {
		return fmt.Errorf("failed to add history entry: %w", err)
	}
	return nil
}

// Recent returns up to limit launches, newest first. An empty appID
// matches every game; limit <= 0 means no limit.
func (d *DB) Recent(appID string, limit int) ([]Entry, error) {
	if d.bdb == nil {
		return nil, ErrClosed
	}

	entries := make([]Entry, 0)
	err := d.bdb.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(BucketLaunches)).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return fmt.Errorf("failed to unmarshal history entry %x: %w", k, err)
			}
			if appID != "" && e.AppID != appID {
				continue
			}
			entries = append(entries, e)
			if limit > 0 && len(entries) >= limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	return entries, nil
}

// Cleanup removes launches that started before cutoff and returns how many
// were removed.
func (d *DB) Cleanup(cutoff time.Time) (int, error) {
	if d.bdb == nil {
		return 0, ErrClosed
	}

	removed := 0
	err := d.bdb.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketLaunches))

		var stale [][]byte
		c := b.Cursor()
		for k, _ := c.First(); k != nil && keyTime(k).Before(cutoff); k, _ = c.Next() {
			stale = append(stale, append([]byte(nil), k...))
		}

		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return fmt.Errorf("failed to delete history entry: %w", err)
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to clean up history: %w", err)
	}

	return removed, nil
}
