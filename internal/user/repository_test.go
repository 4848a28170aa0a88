package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/wardrobe-api/internal/database"
)

func setupRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		sqlDB.Close()
	})

	return NewRepository(database.NewBunDB(sqlDB)), mock
}

func TestGetByEmail(t *testing.T) {
	repo, mock := setupRepo(t)
	id := uuid.New()
	verified := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(`SELECT .* FROM "users" AS "u" WHERE \(email = 'ana@example.com'\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "email_verified_at"}).
			AddRow(id.String(), "ana@example.com", "hash", verified))

	u, err := repo.GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.True(t, u.EmailVerified())
	assert.True(t, verified.Equal(*u.EmailVerifiedAt))
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByVerificationTokenOnlyUnverified(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`WHERE \(email_verification_token = 'tok'\) AND \(email_verified_at IS NULL\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByVerificationToken(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateDuplicateEmail(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

	_, err := repo.Create(context.Background(), "ana@example.com", "hash", "tok")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestMarkEmailAsVerified(t *testing.T) {
	tests := []struct {
		name    string
		rows    int64
		wantErr error
	}{
		{"verifies", 1, nil},
		{"already verified or missing", 0, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setupRepo(t)

			mock.ExpectExec(`UPDATE "users" AS "u" SET email_verified_at = NOW\(\)`).
				WillReturnResult(sqlmock.NewResult(0, tt.rows))

			err := repo.MarkEmailAsVerified(context.Background(), uuid.New())
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
