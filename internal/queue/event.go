// Package queue defines message payloads exchanged over the message broker.
package queue

// RatingSubmittedEvent is published after a rating upsert succeeds.  It
// carries enough information for downstream consumers to log or trigger
// notifications without querying the primary database.
type RatingSubmittedEvent struct {
	UserID      uint64 `json:"user_id"`
	StoreID     uint64 `json:"store_id"`
	Rating      int    `json:"rating"`
	SubmittedAt string `json:"submitted_at"`
}
