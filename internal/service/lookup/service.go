// Package lookup orchestrates a word search: model call, normalization,
// dictionary dedup, and related-word hydration. Lookup never writes to the
// dictionary; candidate records are persisted only at save time.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordbook-backend/internal/domain"
	"github.com/heartmarshall/wordbook-backend/internal/normalizer"
	"github.com/heartmarshall/wordbook-backend/pkg/ctxutil"
)

// termRe matches the only search input the product accepts: a single
// alphabetic token. Checked before any network call.
var termRe = regexp.MustCompile(`^[a-zA-Z]+$`)

// completer is the external text-completion function.
type completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// wordRepo defines the dictionary operations needed by the lookup service.
type wordRepo interface {
	FindExact(ctx context.Context, text string, pos []domain.PartOfSpeech) (*domain.WordRecord, error)
}

// savedRepo defines the registry operations needed by the lookup service.
type savedRepo interface {
	Exists(ctx context.Context, userID, wordID uuid.UUID) (bool, error)
}

// Service implements the lookup orchestrator.
type Service struct {
	log     *slog.Logger
	llm     completer
	words   wordRepo
	saved   savedRepo
	timeout time.Duration
}

// NewService creates a new lookup service instance.
func NewService(
	logger *slog.Logger,
	llm completer,
	words wordRepo,
	saved savedRepo,
	timeout time.Duration,
) *Service {
	return &Service{
		log:     logger.With("service", "lookup"),
		llm:     llm,
		words:   words,
		saved:   saved,
		timeout: timeout,
	}
}

// Lookup resolves a search term into a display-ready result.
//
// Failure modes are distinguishable for the caller: ErrValidation (bad
// term), ErrMalformedResponse (model output unparsable), ErrWordNotFound
// (model explicitly reports no such word), ErrUpstreamTimeout/ErrUpstream
// (model call failed). Store failures propagate unmapped.
func (s *Service) Lookup(ctx context.Context, term string) (*domain.LookupResult, error) {
	userID, err := ctxutil.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}

	if !termRe.MatchString(term) {
		return nil, domain.NewValidationError("term", "must be a single alphabetic word")
	}

	raw, err := s.complete(ctx, lookupPrompt(term))
	if err != nil {
		return nil, err
	}

	parsed, err := normalizer.Normalize(raw)
	if err != nil {
		s.log.WarnContext(ctx, "model response rejected",
			slog.String("term", term),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	if !parsed.Main.Usable() {
		return nil, fmt.Errorf("%q: %w", term, domain.ErrWordNotFound)
	}

	main := parsed.Main.Record()

	// Dedup fast path: a word already canonical in the dictionary is
	// returned as stored, so saving it cannot create a duplicate row.
	stored, err := s.words.FindExact(ctx, main.Word, main.PartOfSpeech)
	switch {
	case err == nil:
		alreadySaved, err := s.saved.Exists(ctx, userID, stored.ID)
		if err != nil {
			return nil, err
		}
		return &domain.LookupResult{
			Main:         *stored,
			AlreadySaved: alreadySaved,
			Resolved:     true,
		}, nil
	case errors.Is(err, domain.ErrNotFound):
		// Fresh word; fall through to the candidate result.
	default:
		return nil, err
	}

	return &domain.LookupResult{
		Main:    main,
		Synonym: s.hydrate(ctx, parsed.Synonym),
		Antonym: s.hydrate(ctx, parsed.Antonym),
	}, nil
}

// hydrate fills in a related-word slot. A slot that names a word without
// lexical detail costs one extra completion call; any failure drops the
// slot instead of failing the whole lookup.
func (s *Service) hydrate(ctx context.Context, slot *normalizer.ParsedWord) *domain.WordRecord {
	if !slot.Usable() {
		return nil
	}

	if !slot.Bare() {
		rec := slot.Record()
		return &rec
	}

	raw, err := s.complete(ctx, hydrationPrompt(slot.Word))
	if err != nil {
		s.log.WarnContext(ctx, "hydration call failed, dropping slot",
			slog.String("word", slot.Word),
			slog.String("error", err.Error()),
		)
		return nil
	}

	parsed, err := normalizer.Normalize(raw)
	if err != nil || !parsed.Main.Usable() {
		s.log.WarnContext(ctx, "hydration response unusable, dropping slot",
			slog.String("word", slot.Word),
		)
		return nil
	}

	rec := parsed.Main.Record()
	return &rec
}

// complete runs one completion call under the configured timeout and maps
// transport failures to the upstream sentinels.
func (s *Service) complete(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.llm.Complete(callCtx, prompt)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", domain.ErrUpstreamTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	return raw, nil
}
