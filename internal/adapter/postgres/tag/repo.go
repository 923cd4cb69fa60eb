// Package tag implements the global tag vocabulary and the M2M links
// between saved words and tags. Tags are created lazily on first use and
// never deleted here; orphan tags are acceptable.
package tag

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/wordbook-backend/internal/adapter/postgres"
	"github.com/heartmarshall/wordbook-backend/internal/domain"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides tag persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new tag repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const namesBySavedIDSQL = `
SELECT t.name
FROM saved_word_tags swt
JOIN tags t ON t.id = swt.tag_id
WHERE swt.saved_word_id = $1
ORDER BY t.name`

// GetOrCreate returns the tag with the given name, creating it if needed.
// The no-op DO UPDATE makes the insert always return the row, so concurrent
// first uses of a name converge on one tag ID.
func (r *Repo) GetOrCreate(ctx context.Context, name string) (*domain.Tag, error) {
	query := builder.
		Insert("tags").
		Columns("name").
		Values(name).
		Suffix("ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name").
		Suffix("RETURNING id, name, created_at")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get-or-create query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	var t domain.Tag
	if err := q.QueryRow(ctx, sql, args...).Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
		return nil, postgres.MapError(err, "tag", name)
	}

	return &t, nil
}

// GetByName returns the tag with the given name (case-sensitive).
// Returns domain.ErrNotFound when the tag does not exist.
func (r *Repo) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	query := builder.
		Select("id", "name", "created_at").
		From("tags").
		Where(sq.Eq{"name": name})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	var t domain.Tag
	if err := q.QueryRow(ctx, sql, args...).Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
		return nil, postgres.MapError(err, "tag", name)
	}

	return &t, nil
}

// NamesBySavedID returns the tag names linked to a saved word, sorted.
// Returns an empty slice (not nil) when no tags are linked.
func (r *Repo) NamesBySavedID(ctx context.Context, savedID uuid.UUID) ([]string, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, namesBySavedIDSQL, savedID)
	if err != nil {
		return nil, fmt.Errorf("get tag names: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("get tag names: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get tag names: %w", err)
	}

	return names, nil
}

// Link creates an M2M link between a saved word and a tag.
// Idempotent: linking the same pair twice is NOT an error.
func (r *Repo) Link(ctx context.Context, savedID, tagID uuid.UUID) error {
	query := builder.
		Insert("saved_word_tags").
		Columns("saved_word_id", "tag_id").
		Values(savedID, tagID).
		Suffix("ON CONFLICT (saved_word_id, tag_id) DO NOTHING")

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build link query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "saved_word_tag", savedID)
	}

	return nil
}

// Unlink removes the M2M link between a saved word and a tag.
// Not an error if the link does not exist (0 rows affected is OK).
func (r *Repo) Unlink(ctx context.Context, savedID, tagID uuid.UUID) error {
	query := builder.
		Delete("saved_word_tags").
		Where(sq.Eq{"saved_word_id": savedID, "tag_id": tagID})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build unlink query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "saved_word_tag", savedID)
	}

	return nil
}
