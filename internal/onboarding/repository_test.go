package onboarding

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
	"github.com/redmonkez12/wardrobe-api/internal/gate"
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

func TestGetStatus(t *testing.T) {
	tests := []struct {
		name    string
		rows    *sqlmock.Rows
		err     error
		want    bool
		wantErr error
	}{
		{
			name: "completed",
			rows: sqlmock.NewRows([]string{"onboarding_completed"}).AddRow(true),
			want: true,
		},
		{
			name: "not completed",
			rows: sqlmock.NewRows([]string{"onboarding_completed"}).AddRow(false),
		},
		{
			name:    "no profile",
			rows:    sqlmock.NewRows([]string{"onboarding_completed"}),
			wantErr: gate.ErrStatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setupRepo(t)
			mock.ExpectQuery(`SELECT .*onboarding_completed.* FROM "profiles" AS "p" WHERE \(user_id = '.+'\) LIMIT 1`).
				WillReturnRows(tt.rows)

			got, err := repo.GetStatus(context.Background(), uuid.New())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetStatusDatabaseError(t *testing.T) {
	repo, mock := setupRepo(t)
	mock.ExpectQuery(`FROM "profiles"`).WillReturnError(errors.New("connection reset"))

	_, err := repo.GetStatus(context.Background(), uuid.New())
	require.Error(t, err)
	assert.NotErrorIs(t, err, gate.ErrStatusNotFound)
}

func TestGetProfileNotFound(t *testing.T) {
	repo, mock := setupRepo(t)
	mock.ExpectQuery(`SELECT .* FROM "profiles"`).WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	_, err := repo.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestComplete(t *testing.T) {
	repo, mock := setupRepo(t)
	userID := uuid.New()
	firstCompleted := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO "profiles" AS "p" .* ON CONFLICT \(user_id\) DO UPDATE SET display_name = EXCLUDED.display_name.*completed_at = COALESCE\(p.completed_at, EXCLUDED.completed_at\).* RETURNING \*`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "display_name", "onboarding_completed", "completed_at"}).
			AddRow(userID.String(), "Ana", true, firstCompleted))

	p, err := repo.Complete(context.Background(), userID, ProfileInput{
		DisplayName:      "Ana",
		StylePreferences: []string{"minimal"},
	})
	require.NoError(t, err)
	assert.True(t, p.Completed)
	require.NotNil(t, p.CompletedAt)
	assert.True(t, firstCompleted.Equal(*p.CompletedAt))
}
