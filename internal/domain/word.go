package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// WordRecord is a canonical dictionary entry, shared across all users.
// The pair (Word, POSSignature) is the natural key: inserting a record whose
// pair already exists reuses the existing row instead of creating a duplicate.
// Dictionary rows are never deleted; they outlive any user's save/unsave.
type WordRecord struct {
	ID           uuid.UUID
	Word         string
	PartOfSpeech []PartOfSpeech

	Pronunciation string
	Meaning       string
	Example       string
	Translation   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// POSSignature returns the canonical part-of-speech signature used in the
// natural key: the POS list deduplicated preserving first-seen order and
// joined with commas. An empty list yields an empty signature.
func (w *WordRecord) POSSignature() string {
	return POSSignature(w.PartOfSpeech)
}

// POSSignature computes the signature for an arbitrary POS list.
func POSSignature(pos []PartOfSpeech) string {
	if len(pos) == 0 {
		return ""
	}

	seen := make(map[PartOfSpeech]struct{}, len(pos))
	parts := make([]string, 0, len(pos))
	for _, p := range pos {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		parts = append(parts, string(p))
	}

	return strings.Join(parts, ",")
}

// Validate checks the invariants a WordRecord must hold before it reaches
// the store.
func (w *WordRecord) Validate() error {
	var errs []FieldError

	if strings.TrimSpace(w.Word) == "" {
		errs = append(errs, FieldError{Field: "word", Message: "must not be empty"})
	}
	for _, p := range w.PartOfSpeech {
		if !p.IsValid() {
			errs = append(errs, FieldError{Field: "part_of_speech", Message: "unknown value " + p.String()})
		}
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}
