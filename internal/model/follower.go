package model

// Follower is one row of the durable followers table: FollowerID follows
// UserID. The table is the source of truth for the in-memory graph.
type Follower struct {
	UserID     int64 `json:"user_id"`
	FollowerID int64 `json:"follower_id"`
}
