package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/wordbook-backend/internal/domain"
)

// ErrorResponse is the JSON body for all error replies. Reason is a stable
// machine-readable code; clients branch on it, not on the message.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Reason string   `json:"reason"`
	Fields []string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// writeError maps a service error to an HTTP status and reason code.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, reason := classify(err)

	resp := ErrorResponse{
		Error:  err.Error(),
		Reason: reason,
	}

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		for _, fe := range vErr.Errors {
			resp.Fields = append(resp.Fields, fe.Field+": "+fe.Message)
		}
	}

	if status >= 500 {
		logger.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.String("error", err.Error()),
		)
		// Do not leak internals to the client.
		resp.Error = reason
	}

	writeJSON(w, status, resp)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, domain.ErrTooManyTags):
		return http.StatusBadRequest, "too_many_tags"
	case errors.Is(err, domain.ErrTagTooLong):
		return http.StatusBadRequest, "tag_too_long"
	case errors.Is(err, domain.ErrDuplicateTag):
		return http.StatusBadRequest, "duplicate_tag"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, domain.ErrWordNotFound):
		return http.StatusNotFound, "word_not_found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrCapacityExceeded):
		return http.StatusConflict, "capacity_exceeded"
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, domain.ErrMalformedResponse):
		return http.StatusBadGateway, "parse_error"
	case errors.Is(err, domain.ErrUpstreamTimeout):
		return http.StatusGatewayTimeout, "upstream_timeout"
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway, "upstream_failure"
	default:
		// Anything unmapped at this point is the storage layer failing.
		return http.StatusServiceUnavailable, "store_unavailable"
	}
}

// decodeJSON reads the request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.NewValidationError("body", "invalid JSON: "+err.Error())
	}
	return nil
}
