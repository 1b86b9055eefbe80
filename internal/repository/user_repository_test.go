package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestGormUserRepository_FindByLogin_LowercasesHandle(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "login", "role", "password_hash", "active"}).
		AddRow(7, "Jannia", "jannia", "staff", "digest", true)

	// the handle is trimmed and lowercased before it reaches the database
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE LOWER\\(login\\) = \\?").
		WillReturnRows(rows)

	user, err := repo.FindByLogin("  JANNIA  ")
	require.NoError(t, err)
	require.Equal(t, "jannia", user.Login)
	require.Equal(t, uint64(7), user.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_UpdateLastAccess(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET `last_access_at`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.UpdateLastAccess(7, time.Now()))
	require.NoError(t, mock.ExpectationsWereMet())
}
