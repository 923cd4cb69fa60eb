// Package word implements the dictionary store: a content-keyed table of
// canonical word records. The natural key is (word, pos_signature); rows are
// never deleted and non-empty fields are never overwritten.
package word

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/wordbook-backend/internal/adapter/postgres"
	"github.com/heartmarshall/wordbook-backend/internal/domain"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var wordColumns = []string{
	"id", "word", "part_of_speech", "pos_signature",
	"pronunciation", "meaning", "example", "translation",
	"created_at", "updated_at",
}

// Repo provides dictionary persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new dictionary repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// backfillSet overwrites a column only while it is still empty, so a later
// search can never clobber data an earlier one stored.
func backfillSet(col string) string {
	return fmt.Sprintf("%s = CASE WHEN words.%s = '' THEN EXCLUDED.%s ELSE words.%s END", col, col, col, col)
}

// Upsert inserts a word record or, when its natural key already exists,
// returns the stored row. Policy: merge empty fields; optional columns that
// are empty on the stored row are backfilled from the new record; non-empty
// columns keep their stored values. Idempotent: the same key always yields
// the same dictionary ID.
func (r *Repo) Upsert(ctx context.Context, rec domain.WordRecord) (*domain.WordRecord, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	query := builder.
		Insert("words").
		Columns("word", "part_of_speech", "pos_signature", "pronunciation", "meaning", "example", "translation").
		Values(rec.Word, posToStrings(rec.PartOfSpeech), rec.POSSignature(),
			rec.Pronunciation, rec.Meaning, rec.Example, rec.Translation).
		Suffix(`ON CONFLICT (word, pos_signature) DO UPDATE SET ` +
			backfillSet("pronunciation") + ", " +
			backfillSet("meaning") + ", " +
			backfillSet("example") + ", " +
			backfillSet("translation") + ", " +
			"updated_at = now()").
		Suffix("RETURNING " + columnList())

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	stored, err := scanWord(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "word", rec.Word)
	}

	return stored, nil
}

// FindExact performs a case-sensitive exact-match lookup by the natural key.
// Partial and fuzzy matching are out of scope. Returns domain.ErrNotFound
// when no row matches.
func (r *Repo) FindExact(ctx context.Context, text string, pos []domain.PartOfSpeech) (*domain.WordRecord, error) {
	query := builder.
		Select(wordColumns...).
		From("words").
		Where(sq.Eq{"word": text, "pos_signature": domain.POSSignature(pos)})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	rec, err := scanWord(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "word", text)
	}

	return rec, nil
}

// GetByID returns a dictionary entry by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WordRecord, error) {
	query := builder.
		Select(wordColumns...).
		From("words").
		Where(sq.Eq{"id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	rec, err := scanWord(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "word", id)
	}

	return rec, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

type row interface {
	Scan(dest ...any) error
}

func scanWord(r row) (*domain.WordRecord, error) {
	var (
		rec          domain.WordRecord
		pos          []string
		posSignature string
		createdAt    time.Time
		updatedAt    time.Time
	)

	if err := r.Scan(&rec.ID, &rec.Word, &pos, &posSignature,
		&rec.Pronunciation, &rec.Meaning, &rec.Example, &rec.Translation,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	rec.PartOfSpeech = posFromStrings(pos)
	rec.CreatedAt = createdAt
	rec.UpdatedAt = updatedAt

	return &rec, nil
}

func columnList() string {
	list := wordColumns[0]
	for _, c := range wordColumns[1:] {
		list += ", " + c
	}
	return list
}

func posToStrings(pos []domain.PartOfSpeech) []string {
	out := make([]string, len(pos))
	for i, p := range pos {
		out[i] = string(p)
	}
	return out
}

func posFromStrings(pos []string) []domain.PartOfSpeech {
	if len(pos) == 0 {
		return nil
	}
	out := make([]domain.PartOfSpeech, len(pos))
	for i, p := range pos {
		out[i] = domain.PartOfSpeech(p)
	}
	return out
}
