package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/store-rating/internal/model"
	"github.com/iliyamo/store-rating/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// UserRow is the shape returned by user listings.  The password hash is
// never selected for listings or detail views.
type UserRow struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Role    string `json:"role"`
}

// Create hashes the password and inserts a user with the given role.
func (r *UserRepo) Create(ctx context.Context, name, email, address, password string, role model.Role, cost int) (UserRow, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return UserRow{}, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, address, password_hash, role) VALUES (?,?,?,?,?)",
		name, email, address, hash, role.String())
	if err != nil {
		// 1062 = ER_DUP_ENTRY, the unique key on users.email
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return UserRow{}, ErrEmailExists
		}
		return UserRow{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return UserRow{}, err
	}
	return UserRow{ID: uint64(id), Name: name, Email: email, Address: address, Role: role.String()}, nil
}

// GetByEmail fetches a user by normalized email, password hash included.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.getOne(ctx,
		"SELECT id,name,email,address,password_hash,role FROM users WHERE email=? LIMIT 1", email)
}

// GetByID fetches a user by id, password hash included.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.getOne(ctx,
		"SELECT id,name,email,address,password_hash,role FROM users WHERE id=? LIMIT 1", id)
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (model.User, error) {
	var (
		u       model.User
		address sql.NullString
		role    string
	)
	err := r.DB.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Name, &u.Email, &address, &u.PasswordHash, &role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, err
	}
	u.Address = address.String
	// A stored role outside the closed set is corrupt data, not a user.
	parsed, ok := model.ParseRole(role)
	if !ok {
		return model.User{}, fmt.Errorf("user %d has unknown role %q", u.ID, role)
	}
	u.Role = parsed
	return u, nil
}

// UpdatePassword replaces the stored digest for a user.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, hash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=? WHERE id=?", hash, id)
	return err
}

// Search returns users matching the filter, sorted by an allow-listed
// column.  All filter values travel as bound parameters.
func (r *UserRepo) Search(ctx context.Context, f ListFilter) ([]UserRow, error) {
	cond, args := f.whereClause("")
	query := "SELECT id, name, email, COALESCE(address,''), role FROM users" +
		cond + f.orderClause(userSortColumns)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]UserRow, 0)
	for rows.Next() {
		var u UserRow
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Address, &u.Role); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the total number of users.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n)
	return n, err
}

// OwnerAverageRating returns the mean rating across every store owned by
// the given user, 0 when none of their stores has been rated yet.
func (r *UserRepo) OwnerAverageRating(ctx context.Context, ownerID uint64) (float64, error) {
	var avg float64
	err := r.DB.QueryRowContext(ctx,
		`SELECT COALESCE(ROUND(AVG(r.rating), 2), 0)
		 FROM stores s
		 LEFT JOIN ratings r ON r.store_id = s.id
		 WHERE s.owner_id = ?`, ownerID).Scan(&avg)
	return avg, err
}
