package dto

import "time"

// FollowEventDto is the payload published on the follows queue whenever an
// edge changes, consumed by the notification service.
type FollowEventDto struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	UserID     int64     `json:"user_id"`
	FollowerID int64     `json:"follower_id"`
	Timestamp  time.Time `json:"timestamp"`
}
