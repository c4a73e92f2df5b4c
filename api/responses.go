package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"betbook/domain"

	log "github.com/sirupsen/logrus"
)

type successEnvelope struct {
	Data any `json:"data"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func writeSuccess(w http.ResponseWriter, data any) {
	writeSuccessStatus(w, http.StatusOK, data)
}

func writeSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successEnvelope{Data: data})
}

// writeError maps domain errors onto HTTP statuses. Anything unrecognized is
// logged and reported as an opaque 500.
func writeError(w http.ResponseWriter, err error) {
	var validationErr *validationError
	switch {
	case domain.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, errorEnvelope{Error: apiError{
			Code: "not_found", Message: err.Error(),
		}})
	case domain.IsInvalidState(err):
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: apiError{
			Code: "invalid_state", Message: err.Error(),
		}})
	case domain.IsInvalidSelection(err):
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: apiError{
			Code: "invalid_selection", Message: err.Error(),
		}})
	case errors.Is(err, domain.ErrInsufficientBalance):
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: apiError{
			Code: "insufficient_balance", Message: err.Error(),
		}})
	case errors.Is(err, domain.ErrDuplicatePendingBet):
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: apiError{
			Code: "duplicate_bet", Message: err.Error(),
		}})
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorEnvelope{Error: apiError{
			Code: "invalid_credentials", Message: err.Error(),
		}})
	case errors.Is(err, domain.ErrUsernameTaken):
		writeJSON(w, http.StatusConflict, errorEnvelope{Error: apiError{
			Code: "username_taken", Message: err.Error(),
		}})
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: apiError{
			Code: "validation", Message: validationErr.Error(), Details: validationErr.Details,
		}})
	default:
		log.WithError(err).Error("request failed")
		writeJSON(w, http.StatusInternalServerError, errorEnvelope{Error: apiError{
			Code: "internal", Message: "internal server error",
		}})
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnauthorized, errorEnvelope{Error: apiError{
		Code: "unauthorized", Message: message,
	}})
}

func writeForbidden(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusForbidden, errorEnvelope{Error: apiError{
		Code: "forbidden", Message: message,
	}})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Error("failed to encode response")
	}
}
