package savedword

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordbook-backend/internal/domain"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock
}

func entryRows(id, userID, wordID uuid.UUID) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "user_id", "word_id", "status", "created_at"}).
		AddRow(id, userID, wordID, "saved", time.Now())
}

func TestRepo_Create(t *testing.T) {
	t.Parallel()

	savedID := uuid.New()
	userID := uuid.New()
	wordID := uuid.New()

	t.Run("success", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`INSERT INTO saved_words`).
			WithArgs(userID, wordID, "saved").
			WillReturnRows(entryRows(savedID, userID, wordID))

		repo := New(mock)
		entry, err := repo.Create(context.Background(), userID, wordID)

		require.NoError(t, err)
		assert.Equal(t, savedID, entry.ID)
		assert.Equal(t, domain.SavedStatusSaved, entry.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate pair maps to already exists", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`INSERT INTO saved_words`).
			WithArgs(userID, wordID, "saved").
			WillReturnError(&pgconn.PgError{Code: "23505"})

		repo := New(mock)
		_, err := repo.Create(context.Background(), userID, wordID)

		require.ErrorIs(t, err, domain.ErrAlreadyExists)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing word maps to not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`INSERT INTO saved_words`).
			WithArgs(userID, wordID, "saved").
			WillReturnError(&pgconn.PgError{Code: "23503"})

		repo := New(mock)
		_, err := repo.Create(context.Background(), userID, wordID)

		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepo_Delete(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	wordID := uuid.New()

	t.Run("removed", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`DELETE FROM saved_words`).
			WithArgs(userID, wordID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		repo := New(mock)
		removed, err := repo.Delete(context.Background(), userID, wordID)

		require.NoError(t, err)
		assert.True(t, removed)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row is a no-op", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`DELETE FROM saved_words`).
			WithArgs(userID, wordID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := New(mock)
		removed, err := repo.Delete(context.Background(), userID, wordID)

		require.NoError(t, err)
		assert.False(t, removed)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepo_Exists(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	wordID := uuid.New()

	mock := newMock(t)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(userID, wordID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	repo := New(mock)
	exists, err := repo.Exists(context.Background(), userID, wordID)

	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Count(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	mock := newMock(t)
	mock.ExpectQuery(`SELECT count`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	repo := New(mock)
	count, err := repo.Count(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, 7, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_GetByID(t *testing.T) {
	t.Parallel()

	savedID := uuid.New()

	t.Run("found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`SELECT .+ FROM saved_words`).
			WithArgs(savedID).
			WillReturnRows(entryRows(savedID, uuid.New(), uuid.New()))

		repo := New(mock)
		entry, err := repo.GetByID(context.Background(), savedID)

		require.NoError(t, err)
		assert.Equal(t, savedID, entry.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`SELECT .+ FROM saved_words`).
			WithArgs(savedID).
			WillReturnError(pgx.ErrNoRows)

		repo := New(mock)
		_, err := repo.GetByID(context.Background(), savedID)

		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepo_ListByUser(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	savedID := uuid.New()
	wordID := uuid.New()

	t.Run("returns hydrated views", func(t *testing.T) {
		mock := newMock(t)
		rows := pgxmock.NewRows([]string{
			"saved_id", "word_id", "created_at",
			"word", "part_of_speech", "pronunciation", "meaning", "example", "translation",
			"tags",
		}).AddRow(savedID, wordID, time.Now(),
			"move", []string{"VERB"}, "/muːv/", "動く", "He moved.", "彼は動いた。",
			[]string{"movement", "verb"})
		mock.ExpectQuery(`FROM saved_words sw`).
			WithArgs(userID).
			WillReturnRows(rows)

		repo := New(mock)
		views, err := repo.ListByUser(context.Background(), userID)

		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, savedID, views[0].SavedID)
		assert.Equal(t, "move", views[0].Word.Word)
		assert.Equal(t, []domain.PartOfSpeech{domain.PartOfSpeechVerb}, views[0].Word.PartOfSpeech)
		assert.Equal(t, []string{"movement", "verb"}, views[0].Tags)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty list", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`FROM saved_words sw`).
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows([]string{
				"saved_id", "word_id", "created_at",
				"word", "part_of_speech", "pronunciation", "meaning", "example", "translation",
				"tags",
			}))

		repo := New(mock)
		views, err := repo.ListByUser(context.Background(), userID)

		require.NoError(t, err)
		assert.Empty(t, views)
		assert.NotNil(t, views)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
