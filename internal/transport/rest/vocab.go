package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordbook-backend/internal/domain"
	"github.com/heartmarshall/wordbook-backend/internal/service/vocab"
)

type vocabService interface {
	ToggleSave(ctx context.Context, rec domain.WordRecord) (*vocab.ToggleResult, error)
	ListSaved(ctx context.Context) ([]domain.SavedWordView, error)
	UpdateTags(ctx context.Context, savedID uuid.UUID, tags []string) ([]string, error)
}

// VocabHandler serves the saved-word registry endpoints.
type VocabHandler struct {
	log   *slog.Logger
	vocab vocabService
}

// NewVocabHandler creates a VocabHandler.
func NewVocabHandler(logger *slog.Logger, svc vocabService) *VocabHandler {
	return &VocabHandler{log: logger, vocab: svc}
}

// ToggleRequest is the body of POST /v1/saved/toggle: the word record to
// flip, as returned by a lookup.
type ToggleRequest struct {
	Word WordPayload `json:"word"`
}

// ToggleResponse reports the state after the toggle. SavedID identifies the
// registry entry just created and is absent after an unsave.
type ToggleResponse struct {
	Saved   bool   `json:"saved"`
	WordID  string `json:"word_id"`
	SavedID string `json:"saved_id,omitempty"`
}

// Toggle handles POST /v1/saved/toggle.
func (h *VocabHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	rec, err := toWordRecord(req.Word)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	result, err := h.vocab.ToggleSave(r.Context(), rec)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	resp := ToggleResponse{
		Saved:  result.Saved,
		WordID: result.WordID.String(),
	}
	if result.Entry != nil {
		resp.SavedID = result.Entry.ID.String()
	}

	writeJSON(w, http.StatusOK, resp)
}

// SavedItem is one entry in the saved-word list.
type SavedItem struct {
	ID        string      `json:"id"`
	Word      WordPayload `json:"word"`
	Tags      []string    `json:"tags"`
	CreatedAt time.Time   `json:"created_at"`
}

// ListResponse is the body of GET /v1/saved.
type ListResponse struct {
	Items []SavedItem `json:"items"`
}

// List handles GET /v1/saved.
func (h *VocabHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.vocab.ListSaved(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	items := make([]SavedItem, len(views))
	for i, v := range views {
		items[i] = SavedItem{
			ID:        v.SavedID.String(),
			Word:      toWordPayload(v.Word),
			Tags:      v.Tags,
			CreatedAt: v.CreatedAt,
		}
	}

	writeJSON(w, http.StatusOK, ListResponse{Items: items})
}

// TagsRequest is the body of PUT /v1/saved/{id}/tags: the full desired tag
// set for the saved word.
type TagsRequest struct {
	Tags []string `json:"tags"`
}

// UpdateTags handles PUT /v1/saved/{id}/tags.
func (h *VocabHandler) UpdateTags(w http.ResponseWriter, r *http.Request) {
	savedID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, h.log, domain.NewValidationError("id", "must be a UUID"))
		return
	}

	var req TagsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if _, err := h.vocab.UpdateTags(r.Context(), savedID, req.Tags); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
