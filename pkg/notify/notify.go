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

// Package notify tells the user about launch problems they would otherwise
// never see, since Steam hides the wrapper's terminal output.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification is a single message for the user.
type Notification struct {
	Summary string
	Body    string
	Urgency Urgency
}

// Notifier delivers notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier writes notifications to the log. It never fails.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, n Notification) error {
	ev := log.Info()
	if n.Urgency == UrgencyCritical {
		ev = log.Error()
	}
	ev.Str("summary", n.Summary).Msg(n.Body)
	return nil
}

// Fallback tries each notifier in order until one succeeds.
type Fallback []Notifier

func (f Fallback) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, notifier := range f {
		err := notifier.Notify(ctx, n)
		if err == nil {
			return nil
		}
		log.Debug().Err(err).Msgf("notifier %T failed", notifier)
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("all notifiers failed: %w", errors.Join(errs...))
}

// New returns the notifier for the current session. Desktop notifications
// are only attempted when enabled and a session bus is reachable; the log
// is always the last resort. The returned close function must be called
// when done.
func New(enabled bool) (Notifier, func()) {
	if !enabled {
		return LogNotifier{}, func() {}
	}

	d, err := NewDBusNotifier()
	if err != nil {
		log.Debug().Err(err).Msg("desktop notifications unavailable")
		return LogNotifier{}, func() {}
	}

	return Fallback{d, LogNotifier{}}, func() {
		if err := d.Close(); err != nil {
			log.Debug().Err(err).Msg("failed to close session bus")
		}
	}
}
