package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/auth-flow-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
}

// ErrorEnvelope is the stable error shape every failure produces,
// regardless of origin. ErrorSources carries field-level detail when the
// validation layer has it; domain errors leave it empty.
type ErrorEnvelope struct {
	Message      string               `json:"message"`
	ErrorSources []domain.ErrorSource `json:"error_sources"`
}

// AuthEnvelope wraps login responses.
type AuthEnvelope struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	TwoFactorEnabled bool   `json:"two_factor_enabled"`
}

// PaginatedAccountsEnvelope wraps admin account listings.
type PaginatedAccountsEnvelope struct {
	Data       []domain.Account `json:"data"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError emits a plain error envelope for transport-level failures
// (body decode, missing claims) that never reach a service.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorEnvelope{Message: msg, ErrorSources: []domain.ErrorSource{}})
}

// writeDomainError is the single place domain error kinds become HTTP
// responses. Internal errors are logged with their cause and masked.
func writeDomainError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)
	msg := err.Error()
	sources := []domain.ErrorSource{}

	var de *domain.Error
	if errors.As(err, &de) {
		msg = de.Message
		if de.Sources != nil {
			sources = de.Sources
		}
	}
	if kind == domain.KindInternal {
		slog.Error("internal error", "err", err)
		msg = "something went wrong"
	}
	writeJSON(w, kind.HTTPStatus(), ErrorEnvelope{Message: msg, ErrorSources: sources})
}
