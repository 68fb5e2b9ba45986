package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"newsagency.com/newsroom/internal/testutil/dbmock"
)

func TestRedactorRepository_FindByUsername(t *testing.T) {
	db, mock := dbmock.New(t)
	repo := NewRedactorRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "redactors" WHERE username = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash"}).AddRow(3, "ada", "hash"))

	redactor, err := repo.FindByUsername(context.Background(), "ada")
	require.NoError(t, err)
	assert.Equal(t, uint(3), redactor.ID)
	assert.Equal(t, "hash", redactor.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedactorRepository_FindAccountSkipsNewspapers(t *testing.T) {
	db, mock := dbmock.New(t)
	repo := NewRedactorRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "redactors" WHERE "redactors"."id" = \$1 ORDER BY "redactors"."id" LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(3, "ada"))

	redactor, err := repo.FindAccount(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "ada", redactor.Username)
	assert.Nil(t, redactor.Newspapers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedactorRepository_FindByIDsEmpty(t *testing.T) {
	db, mock := dbmock.New(t)
	repo := NewRedactorRepository(db)

	redactors, err := repo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, redactors)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedactorRepository_Count(t *testing.T) {
	db, mock := dbmock.New(t)
	repo := NewRedactorRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "redactors" WHERE username ILIKE \$1`).
		WithArgs("%ad%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	total, err := repo.Count(context.Background(), "ad")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedactorRepository_DeleteKeepsNewspapers(t *testing.T) {
	db, mock := dbmock.New(t)
	repo := NewRedactorRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "newspaper_publishers" WHERE redactor_id = \$1`).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "redactors" WHERE .*"id" = \$1`).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedactorRepository_DeleteMissing(t *testing.T) {
	db, mock := dbmock.New(t)
	repo := NewRedactorRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "newspaper_publishers"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "redactors"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.Delete(context.Background(), 3), gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedactorRepository_ToggleRemovesExistingLink(t *testing.T) {
	db, mock := dbmock.New(t)
	repo := NewRedactorRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "newspaper_publishers" WHERE newspaper_id = \$1 AND redactor_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"newspaper_id", "redactor_id"}).AddRow(8, 3))
	mock.ExpectExec(`DELETE FROM "newspaper_publishers" WHERE newspaper_id = \$1 AND redactor_id = \$2`).
		WithArgs(8, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assigned, err := repo.ToggleNewspaper(context.Background(), 3, 8)
	require.NoError(t, err)
	assert.False(t, assigned)
	assert.NoError(t, mock.ExpectationsWereMet())
}
