package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordbook-backend/internal/domain"
)

type lookupService interface {
	Lookup(ctx context.Context, term string) (*domain.LookupResult, error)
}

// LookupHandler serves the word lookup endpoint.
type LookupHandler struct {
	log    *slog.Logger
	lookup lookupService
}

// NewLookupHandler creates a LookupHandler.
func NewLookupHandler(logger *slog.Logger, lookup lookupService) *LookupHandler {
	return &LookupHandler{log: logger, lookup: lookup}
}

// LookupRequest is the body of POST /v1/lookup.
type LookupRequest struct {
	Term string `json:"term"`
}

// WordPayload is the JSON shape of a dictionary record on the wire.
type WordPayload struct {
	ID            string   `json:"id,omitempty"`
	Word          string   `json:"word"`
	PartOfSpeech  []string `json:"pos"`
	Pronunciation string   `json:"pronunciation,omitempty"`
	Meaning       string   `json:"meaning,omitempty"`
	Example       string   `json:"example,omitempty"`
	Translation   string   `json:"translation,omitempty"`
}

// LookupResponse is the body of a successful lookup.
type LookupResponse struct {
	Main         WordPayload  `json:"main"`
	Synonym      *WordPayload `json:"synonym,omitempty"`
	Antonym      *WordPayload `json:"antonym,omitempty"`
	AlreadySaved bool         `json:"already_saved"`
	Resolved     bool         `json:"resolved"`
}

// Lookup handles POST /v1/lookup.
func (h *LookupHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	var req LookupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	result, err := h.lookup.Lookup(r.Context(), strings.TrimSpace(req.Term))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	resp := LookupResponse{
		Main:         toWordPayload(result.Main),
		AlreadySaved: result.AlreadySaved,
		Resolved:     result.Resolved,
	}
	if result.Synonym != nil {
		p := toWordPayload(*result.Synonym)
		resp.Synonym = &p
	}
	if result.Antonym != nil {
		p := toWordPayload(*result.Antonym)
		resp.Antonym = &p
	}

	writeJSON(w, http.StatusOK, resp)
}

func toWordPayload(rec domain.WordRecord) WordPayload {
	p := WordPayload{
		Word:          rec.Word,
		PartOfSpeech:  make([]string, 0, len(rec.PartOfSpeech)),
		Pronunciation: rec.Pronunciation,
		Meaning:       rec.Meaning,
		Example:       rec.Example,
		Translation:   rec.Translation,
	}
	if rec.ID != uuid.Nil {
		p.ID = rec.ID.String()
	}
	for _, pos := range rec.PartOfSpeech {
		p.PartOfSpeech = append(p.PartOfSpeech, pos.String())
	}
	return p
}

func toWordRecord(p WordPayload) (domain.WordRecord, error) {
	rec := domain.WordRecord{
		Word:          strings.TrimSpace(p.Word),
		Pronunciation: p.Pronunciation,
		Meaning:       p.Meaning,
		Example:       p.Example,
		Translation:   p.Translation,
	}

	for _, raw := range p.PartOfSpeech {
		pos, ok := domain.ParsePartOfSpeech(raw)
		if !ok {
			return domain.WordRecord{}, domain.NewValidationError("pos", "unknown part of speech "+raw)
		}
		rec.PartOfSpeech = append(rec.PartOfSpeech, pos)
	}

	return rec, nil
}
