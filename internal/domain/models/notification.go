package models

import "time"

type NotificationKind string

const (
	NotificationCountry     NotificationKind = "country"
	NotificationSubdivision NotificationKind = "subdivision"
)

// Notification is a rendered title/message pair ready for dispatch.
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Region  string           `json:"region"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Timeout time.Duration    `json:"timeout"`
	SentAt  time.Time        `json:"sent_at"`
}
