// This file defines the StoreRepo with CRUD, ownership-scoped mutations and
// the rating-aware listings. Ownership is checked per request: handlers load
// the store, compare its owner to the caller, and only then mutate - and the
// mutation statements are additionally scoped by owner_id so a concurrent
// reassignment cannot widen their effect.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/store-rating/internal/model"
)

type StoreRepo struct{ DB *sql.DB }

func NewStoreRepo(db *sql.DB) *StoreRepo { return &StoreRepo{DB: db} }

// StoreRow is the shape returned by the admin store listing.  It is read
// from the store_with_rating view, which carries the rating aggregate.
type StoreRow struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Address      string  `json:"address"`
	AvgRating    float64 `json:"avg_rating"`
	RatingsCount int64   `json:"ratings_count"`
}

// StoreListing is the shape returned by the authenticated store browse.
// UserRating is the caller's own rating for the store, nil when they have
// not rated it.
type StoreListing struct {
	ID            uint64  `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	OverallRating float64 `json:"overall_rating"`
	RatingsCount  int64   `json:"ratings_count"`
	UserRating    *int    `json:"user_rating"`
}

// Create inserts a store.  ownerID may be nil for an admin-created store
// with no assigned owner.
func (r *StoreRepo) Create(ctx context.Context, name, email, address string, ownerID *uint64) (*model.Store, error) {
	var owner any
	if ownerID != nil {
		owner = *ownerID
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO stores (name, email, address, owner_id) VALUES (?,?,?,?)",
		name, email, address, owner)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &model.Store{ID: uint64(id), Name: name, Email: email, Address: address, OwnerID: ownerID}, nil
}

// GetByID fetches a store by id regardless of owner.  Returns
// ErrStoreNotFound when no row matches.
func (r *StoreRepo) GetByID(ctx context.Context, id uint64) (*model.Store, error) {
	var (
		s     model.Store
		owner sql.NullInt64
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, email, COALESCE(address,''), owner_id FROM stores WHERE id = ?", id).
		Scan(&s.ID, &s.Name, &s.Email, &s.Address, &owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	if owner.Valid {
		v := uint64(owner.Int64)
		s.OwnerID = &v
	}
	return &s, nil
}

// UpdateByIDAndOwner updates name and address, but only when the store
// still belongs to the given owner.  It returns sql.ErrNoRows when no row
// is affected (not found / not owned anymore).
func (r *StoreRepo) UpdateByIDAndOwner(ctx context.Context, id, ownerID uint64, name, address string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE stores
		 SET name = ?, address = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND owner_id = ?`,
		name, address, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteByIDAndOwner removes a store and its ratings provided it belongs
// to the given owner.  Returns sql.ErrNoRows when the store does not
// exist and ErrForbidden when it is owned by a different user.  The
// deletion runs in a transaction so ratings never outlive their store.
func (r *StoreRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	// Rollback is a no-op once the transaction committed.
	defer func() { _ = tx.Rollback() }()

	var dbOwner sql.NullInt64
	if err := tx.QueryRowContext(ctx, "SELECT owner_id FROM stores WHERE id = ?", id).Scan(&dbOwner); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return err
	}
	if !dbOwner.Valid || uint64(dbOwner.Int64) != ownerID {
		return ErrForbidden
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM ratings WHERE store_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM stores WHERE id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

// ListByOwner returns all stores belonging to an owner ordered by id.
func (r *StoreRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Store, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, email, COALESCE(address,''), owner_id FROM stores WHERE owner_id = ? ORDER BY id",
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Store
	for rows.Next() {
		var (
			s     model.Store
			owner sql.NullInt64
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Address, &owner); err != nil {
			return nil, err
		}
		if owner.Valid {
			v := uint64(owner.Int64)
			s.OwnerID = &v
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Search returns stores matching the filter from the store_with_rating
// view, sorted by an allow-listed column (avg_rating included).
func (r *StoreRepo) Search(ctx context.Context, f ListFilter) ([]StoreRow, error) {
	cond, args := f.whereClause("")
	query := "SELECT id, name, email, address, avg_rating, ratings_count FROM store_with_rating" +
		cond + f.orderClause(storeSortColumns)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]StoreRow, 0)
	for rows.Next() {
		var s StoreRow
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Address, &s.AvgRating, &s.RatingsCount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListWithUserRating returns the authenticated browse listing: every store
// matching the optional name/address filters, its overall rating, and the
// caller's own rating when present.
func (r *StoreRepo) ListWithUserRating(ctx context.Context, userID uint64, name, address string) ([]StoreListing, error) {
	f := ListFilter{Name: name, Address: address}
	where, args := f.whereClause("s.")

	query := `SELECT
			s.id,
			s.name,
			COALESCE(s.address, ''),
			COALESCE(ROUND(AVG(r.rating), 2), 0) AS overall_rating,
			COUNT(r.id) AS ratings_count,
			(SELECT ur.rating FROM ratings ur WHERE ur.user_id = ? AND ur.store_id = s.id) AS user_rating
		FROM stores s
		LEFT JOIN ratings r ON r.store_id = s.id` +
		where + `
		GROUP BY s.id
		ORDER BY s.name ASC`
	argsAll := append([]any{userID}, args...)

	rows, err := r.DB.QueryContext(ctx, query, argsAll...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]StoreListing, 0)
	for rows.Next() {
		var (
			s    StoreListing
			mine sql.NullInt64
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.OverallRating, &s.RatingsCount, &mine); err != nil {
			return nil, err
		}
		if mine.Valid {
			v := int(mine.Int64)
			s.UserRating = &v
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Exists reports whether a store with the given id exists.
func (r *StoreRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM stores WHERE id = ? LIMIT 1", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Count returns the total number of stores.
func (r *StoreRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM stores").Scan(&n)
	return n, err
}
