package vocab

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordbook-backend/internal/domain"
	"github.com/heartmarshall/wordbook-backend/pkg/ctxutil"
)

// UpdateTags replaces the tag set of a saved word with the desired one.
//
// The update is a reconciliation, not a rewrite: tags already linked stay
// untouched, missing ones are linked (created lazily in the shared
// vocabulary), and tags absent from the desired set are unlinked. Repeating
// the same call is a no-op. Tag rows themselves are never deleted, so a
// name dropped from one word remains available to every other.
//
// Returns the saved word's tag set after the update, sorted.
func (s *Service) UpdateTags(ctx context.Context, savedID uuid.UUID, desired []string) ([]string, error) {
	userID, err := ctxutil.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}

	cleaned, err := s.cleanTags(desired)
	if err != nil {
		return nil, err
	}

	entry, err := s.saved.GetByID(ctx, savedID)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		// Do not leak whose word it is.
		return nil, fmt.Errorf("saved word %s: %w", savedID, domain.ErrForbidden)
	}

	current, err := s.tags.NamesBySavedID(ctx, savedID)
	if err != nil {
		return nil, err
	}

	toAdd, toRemove := diffTags(current, cleaned)
	if len(toAdd) == 0 && len(toRemove) == 0 {
		return sortedCopy(cleaned), nil
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, name := range toAdd {
			t, err := s.tags.GetOrCreate(ctx, name)
			if err != nil {
				return fmt.Errorf("tag %q: %w", name, err)
			}
			if err := s.tags.Link(ctx, savedID, t.ID); err != nil {
				return fmt.Errorf("link tag %q: %w", name, err)
			}
		}

		for _, name := range toRemove {
			t, err := s.tags.GetByName(ctx, name)
			if err != nil {
				// The tag vanished between diff and unlink; the link is
				// gone with it.
				if errors.Is(err, domain.ErrNotFound) {
					continue
				}
				return fmt.Errorf("tag %q: %w", name, err)
			}
			if err := s.tags.Unlink(ctx, savedID, t.ID); err != nil {
				return fmt.Errorf("unlink tag %q: %w", name, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return sortedCopy(cleaned), nil
}

// cleanTags trims and validates the desired tag set.
func (s *Service) cleanTags(tags []string) ([]string, error) {
	if len(tags) > s.limits.MaxTagsPerWord {
		return nil, fmt.Errorf("%d tags, limit %d: %w",
			len(tags), s.limits.MaxTagsPerWord, domain.ErrTooManyTags)
	}

	seen := make(map[string]struct{}, len(tags))
	cleaned := make([]string, 0, len(tags))
	for _, raw := range tags {
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, domain.NewValidationError("tags", "tag name must not be blank")
		}
		if utf8.RuneCountInString(name) > s.limits.MaxTagNameLength {
			return nil, fmt.Errorf("%q exceeds %d characters: %w",
				name, s.limits.MaxTagNameLength, domain.ErrTagTooLong)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%q: %w", name, domain.ErrDuplicateTag)
		}
		seen[name] = struct{}{}
		cleaned = append(cleaned, name)
	}

	return cleaned, nil
}

// diffTags computes the link/unlink sets between the current and desired
// tag names. Order within each set follows the input order.
func diffTags(current, desired []string) (toAdd, toRemove []string) {
	currentSet := make(map[string]struct{}, len(current))
	for _, name := range current {
		currentSet[name] = struct{}{}
	}
	desiredSet := make(map[string]struct{}, len(desired))
	for _, name := range desired {
		desiredSet[name] = struct{}{}
	}

	for _, name := range desired {
		if _, ok := currentSet[name]; !ok {
			toAdd = append(toAdd, name)
		}
	}
	for _, name := range current {
		if _, ok := desiredSet[name]; !ok {
			toRemove = append(toRemove, name)
		}
	}

	return toAdd, toRemove
}

func sortedCopy(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	sort.Strings(out)
	return out
}
