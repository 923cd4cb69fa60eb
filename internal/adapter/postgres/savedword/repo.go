// Package savedword implements the per-user saved-word registry storage.
// The unique constraint on (user_id, word_id) is the backstop for toggle
// races: a concurrent duplicate save surfaces as domain.ErrAlreadyExists
// instead of a duplicate row.
package savedword

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/wordbook-backend/internal/adapter/postgres"
	"github.com/heartmarshall/wordbook-backend/internal/domain"
)

// Repo provides saved-word persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new saved-word repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const createSQL = `
INSERT INTO saved_words (user_id, word_id, status)
VALUES ($1, $2, $3)
RETURNING id, user_id, word_id, status, created_at`

const deleteSQL = `DELETE FROM saved_words WHERE user_id = $1 AND word_id = $2`

const existsSQL = `SELECT EXISTS(SELECT 1 FROM saved_words WHERE user_id = $1 AND word_id = $2)`

const countSQL = `SELECT count(*) FROM saved_words WHERE user_id = $1`

const getByIDSQL = `
SELECT id, user_id, word_id, status, created_at
FROM saved_words
WHERE id = $1`

const listByUserSQL = `
SELECT
    sw.id AS saved_id,
    sw.word_id,
    sw.created_at,
    w.word,
    w.part_of_speech,
    w.pronunciation,
    w.meaning,
    w.example,
    w.translation,
    COALESCE(array_agg(t.name ORDER BY t.name) FILTER (WHERE t.name IS NOT NULL), '{}') AS tags
FROM saved_words sw
JOIN words w ON w.id = sw.word_id
LEFT JOIN saved_word_tags swt ON swt.saved_word_id = sw.id
LEFT JOIN tags t ON t.id = swt.tag_id
WHERE sw.user_id = $1
GROUP BY sw.id, sw.word_id, sw.created_at,
    w.word, w.part_of_speech, w.pronunciation, w.meaning, w.example, w.translation
ORDER BY sw.created_at, sw.id`

// Create inserts a saved-word row for the pair.
// Returns domain.ErrAlreadyExists when the pair is already saved and
// domain.ErrNotFound when word_id references no dictionary entry.
func (r *Repo) Create(ctx context.Context, userID, wordID uuid.UUID) (*domain.SavedWordEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var entry domain.SavedWordEntry
	var status string
	err := q.QueryRow(ctx, createSQL, userID, wordID, string(domain.SavedStatusSaved)).
		Scan(&entry.ID, &entry.UserID, &entry.WordID, &status, &entry.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "saved_word", wordID)
	}

	entry.Status = domain.SavedStatus(status)
	return &entry, nil
}

// Delete removes the saved-word row for the pair. Returns whether a row was
// actually removed; deleting a non-existent pair is a no-op, not an error.
func (r *Repo) Delete(ctx context.Context, userID, wordID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, deleteSQL, userID, wordID)
	if err != nil {
		return false, postgres.MapError(err, "saved_word", wordID)
	}

	return tag.RowsAffected() > 0, nil
}

// Exists reports whether the pair is currently saved.
func (r *Repo) Exists(ctx context.Context, userID, wordID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var exists bool
	if err := q.QueryRow(ctx, existsSQL, userID, wordID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check saved: %w", err)
	}

	return exists, nil
}

// Count returns the user's current saved-word count. Callers compare it
// against the capacity ceiling before inserting.
func (r *Repo) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var count int
	if err := q.QueryRow(ctx, countSQL, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count saved words: %w", err)
	}

	return count, nil
}

// GetByID returns a saved-word row by primary key.
// Returns domain.ErrNotFound when no row exists.
func (r *Repo) GetByID(ctx context.Context, savedID uuid.UUID) (*domain.SavedWordEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var entry domain.SavedWordEntry
	var status string
	err := q.QueryRow(ctx, getByIDSQL, savedID).
		Scan(&entry.ID, &entry.UserID, &entry.WordID, &status, &entry.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "saved_word", savedID)
	}

	entry.Status = domain.SavedStatus(status)
	return &entry, nil
}

// savedRow is the scany destination for the list join.
type savedRow struct {
	SavedID       uuid.UUID `db:"saved_id"`
	WordID        uuid.UUID `db:"word_id"`
	CreatedAt     time.Time `db:"created_at"`
	Word          string    `db:"word"`
	PartOfSpeech  []string  `db:"part_of_speech"`
	Pronunciation string    `db:"pronunciation"`
	Meaning       string    `db:"meaning"`
	Example       string    `db:"example"`
	Translation   string    `db:"translation"`
	Tags          []string  `db:"tags"`
}

// ListByUser returns the user's saved words joined with their dictionary
// records and tag names, insertion order (oldest first). Returns an empty
// slice (not nil) when the user has nothing saved.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SavedWordView, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var rows []savedRow
	if err := pgxscan.Select(ctx, q, &rows, listByUserSQL, userID); err != nil {
		return nil, fmt.Errorf("list saved words: %w", err)
	}

	views := make([]domain.SavedWordView, len(rows))
	for i, row := range rows {
		views[i] = toView(row)
	}

	return views, nil
}

func toView(r savedRow) domain.SavedWordView {
	view := domain.SavedWordView{
		SavedID:   r.SavedID,
		WordID:    r.WordID,
		CreatedAt: r.CreatedAt,
		Word: domain.WordRecord{
			ID:            r.WordID,
			Word:          r.Word,
			Pronunciation: r.Pronunciation,
			Meaning:       r.Meaning,
			Example:       r.Example,
			Translation:   r.Translation,
		},
		Tags: r.Tags,
	}

	for _, p := range r.PartOfSpeech {
		view.Word.PartOfSpeech = append(view.Word.PartOfSpeech, domain.PartOfSpeech(p))
	}
	if view.Tags == nil {
		view.Tags = []string{}
	}

	return view
}
