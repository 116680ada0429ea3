package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"weddingWager/services/common"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func sendJSON(w http.ResponseWriter, payload any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func sendErrorResponse(w http.ResponseWriter, message string, status int) {
	sendJSON(w, ErrorResponse{Error: message}, status)
}

// sendServiceError maps the service error taxonomy onto HTTP statuses. The
// split matters to clients: 4xx means "nothing happened, fix the input and
// resubmit"; 5xx means "try again later".
func sendServiceError(w http.ResponseWriter, err error) {
	var validation *common.ValidationError
	var precondition *common.PreconditionError
	var conflict *common.ConflictError

	switch {
	case errors.As(err, &validation):
		sendErrorResponse(w, validation.Error(), http.StatusBadRequest)
	case errors.As(err, &precondition):
		sendErrorResponse(w, precondition.Error(), http.StatusConflict)
	case errors.As(err, &conflict):
		sendErrorResponse(w, "store is busy, try again later", http.StatusServiceUnavailable)
	default:
		sendErrorResponse(w, "internal server error", http.StatusInternalServerError)
	}
}
