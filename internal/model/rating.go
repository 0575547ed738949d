package model

import "time"

// Rating represents a row of the `ratings` table.  The table carries a
// UNIQUE KEY over (user_id, store_id): a user rates a store at most once
// and a second submission overwrites the first.
type Rating struct {
	ID        uint64    // ratings.id
	UserID    uint64    // ratings.user_id
	StoreID   uint64    // ratings.store_id
	Value     int       // ratings.rating (1..5)
	CreatedAt time.Time // ratings.created_at
	UpdatedAt time.Time // ratings.updated_at
}
