package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"betbook/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeErrorEnvelope(t *testing.T, rec *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var envelope errorEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return envelope
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", domain.NewNotFoundError("event", "e-1"), http.StatusNotFound, "not_found"},
		{"invalid state", domain.NewInvalidStateError("event is already closed"), http.StatusBadRequest, "invalid_state"},
		{"invalid selection", domain.NewInvalidSelectionError("Green"), http.StatusBadRequest, "invalid_selection"},
		{"insufficient balance", domain.ErrInsufficientBalance, http.StatusBadRequest, "insufficient_balance"},
		{"duplicate bet", domain.ErrDuplicatePendingBet, http.StatusBadRequest, "duplicate_bet"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{"username taken", domain.ErrUsernameTaken, http.StatusConflict, "username_taken"},
		{"validation", &validationError{Message: "validation failed"}, http.StatusBadRequest, "validation"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			envelope := decodeErrorEnvelope(t, rec)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
		})
	}
}

func TestWriteError_InternalHidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New("pq: secret table exploded"))

	envelope := decodeErrorEnvelope(t, rec)
	assert.Equal(t, "internal server error", envelope.Error.Message)
	assert.NotContains(t, rec.Body.String(), "secret table")
}

func TestWriteError_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), domain.NewNotFoundError("user", "u-1"))

	rec := httptest.NewRecorder()
	writeError(rec, wrapped)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(rec, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var envelope struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.Equal(t, "world", envelope.Data["hello"])
}
