package word

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
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

func wordRows(id uuid.UUID) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "word", "part_of_speech", "pos_signature",
		"pronunciation", "meaning", "example", "translation",
		"created_at", "updated_at",
	}).AddRow(id, "move", []string{"VERB"}, "VERB", "/muːv/", "動く", "He moved.", "彼は動いた。", now, now)
}

func TestRepo_Upsert(t *testing.T) {
	t.Parallel()

	wordID := uuid.New()
	rec := domain.WordRecord{
		Word:          "move",
		PartOfSpeech:  []domain.PartOfSpeech{domain.PartOfSpeechVerb},
		Pronunciation: "/muːv/",
		Meaning:       "動く",
	}

	t.Run("returns stored row", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`INSERT INTO words`).
			WithArgs("move", []string{"VERB"}, "VERB", "/muːv/", "動く", "", "").
			WillReturnRows(wordRows(wordID))

		repo := New(mock)
		stored, err := repo.Upsert(context.Background(), rec)

		require.NoError(t, err)
		assert.Equal(t, wordID, stored.ID)
		assert.Equal(t, "move", stored.Word)
		assert.Equal(t, "VERB", stored.POSSignature())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("validation failure skips the store", func(t *testing.T) {
		mock := newMock(t)
		repo := New(mock)

		_, err := repo.Upsert(context.Background(), domain.WordRecord{Word: "  "})

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrValidation))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("store failure propagates", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`INSERT INTO words`).
			WithArgs("move", []string{"VERB"}, "VERB", "/muːv/", "動く", "", "").
			WillReturnError(errors.New("connection refused"))

		repo := New(mock)
		_, err := repo.Upsert(context.Background(), rec)

		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepo_FindExact(t *testing.T) {
	t.Parallel()

	wordID := uuid.New()
	pos := []domain.PartOfSpeech{domain.PartOfSpeechVerb}

	t.Run("found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`SELECT .+ FROM words`).
			WithArgs("VERB", "move").
			WillReturnRows(wordRows(wordID))

		repo := New(mock)
		rec, err := repo.FindExact(context.Background(), "move", pos)

		require.NoError(t, err)
		assert.Equal(t, wordID, rec.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`SELECT .+ FROM words`).
			WithArgs("VERB", "move").
			WillReturnError(pgx.ErrNoRows)

		repo := New(mock)
		_, err := repo.FindExact(context.Background(), "move", pos)

		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepo_GetByID(t *testing.T) {
	t.Parallel()

	wordID := uuid.New()

	mock := newMock(t)
	// squirrel resolves driver.Valuer args in where clauses, so the UUID
	// reaches the driver as its string form.
	mock.ExpectQuery(`SELECT .+ FROM words`).
		WithArgs(wordID.String()).
		WillReturnRows(wordRows(wordID))

	repo := New(mock)
	rec, err := repo.GetByID(context.Background(), wordID)

	require.NoError(t, err)
	assert.Equal(t, "move", rec.Word)
	require.NoError(t, mock.ExpectationsWereMet())
}
