package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/store-rating/internal/model"
)

func newUserRepoMock(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewUserRepo(db), mock
}

const userByEmail = "SELECT id,name,email,address,password_hash,role FROM users WHERE email=? LIMIT 1"

func TestGetByEmail(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "address", "password_hash", "role"}).
		AddRow(4, "Alexandra the Store Owner", "a@b.co", nil, "digest", "store_owner")
	mock.ExpectQuery(regexp.QuoteMeta(userByEmail)).WithArgs("a@b.co").WillReturnRows(rows)

	u, err := repo.GetByEmail(context.Background(), "A@B.co")
	require.NoError(t, err)
	assert.Equal(t, uint64(4), u.ID)
	assert.Equal(t, model.RoleStoreOwner, u.Role)
	assert.Empty(t, u.Address)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmailNotFound(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(userByEmail)).WithArgs("ghost@b.co").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@b.co")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// A stored role outside the closed set must surface as an error, not come
// back as an empty Role that a token could be issued for.
func TestGetByEmailCorruptRole(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "address", "password_hash", "role"}).
		AddRow(4, "Alexandra the Store Owner", "a@b.co", nil, "digest", "superuser")
	mock.ExpectQuery(regexp.QuoteMeta(userByEmail)).WithArgs("a@b.co").WillReturnRows(rows)

	_, err := repo.GetByEmail(context.Background(), "a@b.co")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown role")
	assert.NoError(t, mock.ExpectationsWereMet())
}
