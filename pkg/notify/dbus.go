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

package notify

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsService = "org.freedesktop.Notifications"
	notificationsPath    = "/org/freedesktop/Notifications"
	notifyMethod         = notificationsService + ".Notify"

	appName = "Zaparoo Launch"
	// expireTimeout is in milliseconds; -1 leaves it to the server.
	expireTimeout = int32(-1)
)

// DBusNotifier sends desktop notifications over the session bus.
type DBusNotifier struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// NewDBusNotifier opens a private session bus connection.
func NewDBusNotifier() (*DBusNotifier, error) {
	conn, err := dbus.SessionBusPrivate()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	if err := conn.Auth(nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("session bus auth failed: %w", err)
	}

	if err := conn.Hello(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("session bus hello failed: %w", err)
	}

	return &DBusNotifier{
		conn: conn,
		obj:  conn.Object(notificationsService, notificationsPath),
	}, nil
}

// NewDBusNotifierWithObject creates a notifier that calls obj directly.
// This is useful for testing.
func NewDBusNotifierWithObject(obj dbus.BusObject) *DBusNotifier {
	return &DBusNotifier{obj: obj}
}

func (d *DBusNotifier) Notify(ctx context.Context, n Notification) error {
	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(byte(n.Urgency)),
	}
	call := d.obj.CallWithContext(
		ctx, notifyMethod, 0,
		appName,
		uint32(0), // replaces_id
		"",        // app_icon
		n.Summary,
		n.Body,
		[]string{}, // actions
		hints,
		expireTimeout,
	)
	if call.Err != nil {
		return fmt.Errorf("notification call failed: %w", call.Err)
	}
	return nil
}

func (d *DBusNotifier) Close() error {
	if d.conn == nil {
		return nil
	}
	if err := d.conn.Close(); err != nil {
		return fmt.Errorf("failed to close session bus: %w", err)
	}
	return nil
}
