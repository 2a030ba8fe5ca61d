package entities

import "time"

// NotificationKind classifies a feed entry
type NotificationKind string

const (
	NotificationFusion  NotificationKind = "fusion"
	NotificationNode    NotificationKind = "node"
	NotificationProject NotificationKind = "project"
)

// Notification is one entry of the bounded workspace feed
type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"createdAt"`
}
