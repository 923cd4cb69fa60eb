// Package vocab implements the saved-word registry: toggling words in and
// out of a user's collection, listing the collection, and reconciling tags.
package vocab

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordbook-backend/internal/config"
	"github.com/heartmarshall/wordbook-backend/internal/domain"
	"github.com/heartmarshall/wordbook-backend/pkg/ctxutil"
)

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type wordRepo interface {
	Upsert(ctx context.Context, rec domain.WordRecord) (*domain.WordRecord, error)
}

type savedRepo interface {
	Create(ctx context.Context, userID, wordID uuid.UUID) (*domain.SavedWordEntry, error)
	Delete(ctx context.Context, userID, wordID uuid.UUID) (bool, error)
	Exists(ctx context.Context, userID, wordID uuid.UUID) (bool, error)
	Count(ctx context.Context, userID uuid.UUID) (int, error)
	GetByID(ctx context.Context, savedID uuid.UUID) (*domain.SavedWordEntry, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SavedWordView, error)
}

type tagRepo interface {
	GetOrCreate(ctx context.Context, name string) (*domain.Tag, error)
	GetByName(ctx context.Context, name string) (*domain.Tag, error)
	NamesBySavedID(ctx context.Context, savedID uuid.UUID) ([]string, error)
	Link(ctx context.Context, savedID, tagID uuid.UUID) error
	Unlink(ctx context.Context, savedID, tagID uuid.UUID) error
}

// ToggleResult reports the outcome of a save toggle.
type ToggleResult struct {
	// Saved is the state after the toggle: true means the word is now in
	// the user's collection.
	Saved  bool
	WordID uuid.UUID

	// Entry is the registry row created by a save, so callers can address
	// it (for tag updates) without re-fetching the list. Nil after an
	// unsave or when a concurrent identical save created the row first.
	Entry *domain.SavedWordEntry
}

// Service implements saved-word registry operations.
type Service struct {
	log    *slog.Logger
	tx     txManager
	words  wordRepo
	saved  savedRepo
	tags   tagRepo
	limits config.DictionaryConfig

	// toggles serializes ToggleSave per (user, word) pair so two rapid
	// toggles of the same word resolve sequentially instead of racing.
	toggles *keyedMutex
}

// NewService creates a new vocab service instance.
func NewService(
	logger *slog.Logger,
	tx txManager,
	words wordRepo,
	saved savedRepo,
	tags tagRepo,
	limits config.DictionaryConfig,
) *Service {
	return &Service{
		log:     logger.With("service", "vocab"),
		tx:      tx,
		words:   words,
		saved:   saved,
		tags:    tags,
		limits:  limits,
		toggles: newKeyedMutex(),
	}
}

// ToggleSave flips the saved state of a word for the current user.
//
// Saving upserts the dictionary record first, so the dictionary row exists
// exactly when someone keeps the word. Unsaving removes only the registry
// row; the dictionary entry and its tags' vocabulary survive.
//
// Returns domain.ErrCapacityExceeded when saving would push the user past
// the configured ceiling. A save that loses a race to an identical save
// reports success rather than a conflict.
func (s *Service) ToggleSave(ctx context.Context, rec domain.WordRecord) (*ToggleResult, error) {
	userID, err := ctxutil.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	unlock := s.toggles.Lock(fmt.Sprintf("%s/%s/%s", userID, rec.Word, rec.POSSignature()))
	defer unlock()

	var result ToggleResult
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		stored, err := s.words.Upsert(ctx, rec)
		if err != nil {
			return fmt.Errorf("upsert word: %w", err)
		}
		result.WordID = stored.ID

		exists, err := s.saved.Exists(ctx, userID, stored.ID)
		if err != nil {
			return err
		}

		if exists {
			if _, err := s.saved.Delete(ctx, userID, stored.ID); err != nil {
				return err
			}
			result.Saved = false
			return nil
		}

		count, err := s.saved.Count(ctx, userID)
		if err != nil {
			return err
		}
		if count >= s.limits.MaxSavedWords {
			return fmt.Errorf("%d of %d words used: %w",
				count, s.limits.MaxSavedWords, domain.ErrCapacityExceeded)
		}

		entry, err := s.saved.Create(ctx, userID, stored.ID)
		if err != nil {
			// A concurrent identical save already produced the state the
			// user asked for.
			if errors.Is(err, domain.ErrAlreadyExists) {
				result.Saved = true
				return nil
			}
			return err
		}

		result.Saved = true
		result.Entry = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "save toggled",
		slog.String("word", rec.Word),
		slog.Bool("saved", result.Saved),
	)

	return &result, nil
}

// ListSaved returns the current user's saved words with dictionary records
// and tags, oldest first.
func (s *Service) ListSaved(ctx context.Context) ([]domain.SavedWordView, error) {
	userID, err := ctxutil.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}

	return s.saved.ListByUser(ctx, userID)
}
