package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoreRepoMock(t *testing.T) (*StoreRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStoreRepo(db), mock
}

const ownerSelect = "SELECT owner_id FROM stores WHERE id = ?"

func TestDeleteByIDAndOwner(t *testing.T) {
	repo, mock := newStoreRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(ownerSelect)).WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(7))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM ratings WHERE store_id = ?")).WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM stores WHERE id = ?")).WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteByIDAndOwner(context.Background(), 3, 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByIDAndOwnerForbidden(t *testing.T) {
	repo, mock := newStoreRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(ownerSelect)).WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(8))
	mock.ExpectRollback()

	err := repo.DeleteByIDAndOwner(context.Background(), 3, 7)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A failed commit must reach the caller; a silently dropped commit error
// would report success for a deletion that never happened.
func TestDeleteByIDAndOwnerCommitError(t *testing.T) {
	repo, mock := newStoreRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(ownerSelect)).WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(7))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM ratings WHERE store_id = ?")).WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM stores WHERE id = ?")).WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("commit failed"))

	err := repo.DeleteByIDAndOwner(context.Background(), 3, 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}
