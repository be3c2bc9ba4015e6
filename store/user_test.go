package store

import (
	"testing"
	"time"

	"budgetbuddy/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "password", "email", "created_at", "updated_at"})
}

func TestUserStore_Create(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	user := &models.User{Username: "alice", Password: "$2a$10$hash"}
	require.NoError(t, NewUserStore(db).Create(user))
	assert.Equal(t, uint(1), user.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_FindByUsername(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users` WHERE username = \\?").
		WithArgs("alice").
		WillReturnRows(userRows().
			AddRow(1, "alice", "$2a$10$hash", "alice@example.com", time.Now(), time.Now()))

	user, err := NewUserStore(db).FindByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "alice", user.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_FindByUsername_NotFound(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("ghost").
		WillReturnRows(userRows())

	user, err := NewUserStore(db).FindByUsername("ghost")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_UpdatePassword(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, NewUserStore(db).UpdatePassword(1, "$2a$10$newhash"))
	require.NoError(t, mock.ExpectationsWereMet())
}
