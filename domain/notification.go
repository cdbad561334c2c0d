// Package domain contains core concepts of the forum.
// This file defines durable notifications and the per-room preference that
// decides who receives them.
package domain

import "time"

// NotificationPreference is the per (user, room) opt-in flag.
type NotificationPreference struct {
	UserID string
	Room   ChannelKey
	Notify bool
}

type Notification struct {
	ID        string
	UserID    string
	Message   string
	URL       string
	IsRead    bool
	CreatedAt time.Time
}
