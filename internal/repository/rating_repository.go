package repository

import (
	"context"
	"database/sql"
)

// RatingRepo persists ratings.  The ratings table carries a UNIQUE KEY on
// (user_id, store_id), which makes the upsert below atomic: two concurrent
// submissions from the same user can never produce duplicate rows.
type RatingRepo struct{ DB *sql.DB }

func NewRatingRepo(db *sql.DB) *RatingRepo { return &RatingRepo{DB: db} }

// OwnerRatingRow is one rating of one of an owner's stores, with the
// rater's name and email for the owner dashboard.
type OwnerRatingRow struct {
	StoreID   uint64 `json:"store_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	Rating    int    `json:"rating"`
}

// StoreAverage is the per-store mean rating for the owner dashboard.
type StoreAverage struct {
	StoreID uint64  `json:"store_id"`
	Avg     float64 `json:"avg"`
}

// Upsert inserts the rating or overwrites the existing one for the
// (user, store) pair in a single statement.  Last write wins; no history
// is kept.
func (r *RatingRepo) Upsert(ctx context.Context, userID, storeID uint64, value int) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO ratings (user_id, store_id, rating)
		 VALUES (?,?,?)
		 ON DUPLICATE KEY UPDATE rating = VALUES(rating), updated_at = CURRENT_TIMESTAMP`,
		userID, storeID, value)
	return err
}

// Count returns the total number of ratings.
func (r *RatingRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM ratings").Scan(&n)
	return n, err
}

// ListForOwner returns every rating received by the owner's stores,
// ordered by store.
func (r *RatingRepo) ListForOwner(ctx context.Context, ownerID uint64) ([]OwnerRatingRow, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT r.store_id, u.name, u.email, r.rating
		 FROM ratings r
		 JOIN users u ON u.id = r.user_id
		 WHERE r.store_id IN (SELECT id FROM stores WHERE owner_id = ?)
		 ORDER BY r.store_id ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]OwnerRatingRow, 0)
	for rows.Next() {
		var row OwnerRatingRow
		if err := rows.Scan(&row.StoreID, &row.UserName, &row.UserEmail, &row.Rating); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// AveragesForOwner returns the mean rating per store for the owner's
// stores that have at least one rating.
func (r *RatingRepo) AveragesForOwner(ctx context.Context, ownerID uint64) ([]StoreAverage, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT store_id, ROUND(AVG(rating), 2)
		 FROM ratings
		 WHERE store_id IN (SELECT id FROM stores WHERE owner_id = ?)
		 GROUP BY store_id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]StoreAverage, 0)
	for rows.Next() {
		var a StoreAverage
		if err := rows.Scan(&a.StoreID, &a.Avg); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
