package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/samurai-rail/ticketing/internal/domain"
)

// errorResponse is the JSON envelope for every non-2xx response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Shortage is set only for insufficient_funds: the amount the wallet
	// must be recharged by to cover the fare.
	Shortage *int64 `json:"shortage,omitempty"`
}

// writeJSON writes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// writeError writes the standard error envelope.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// respondError maps a service error onto the HTTP taxonomy. notFoundMessage
// supplies the human-readable 404 text because the handler is the layer that
// knows what was being looked up.
//
// Business outcomes map to specific statuses; anything unrecognized is an
// infrastructure fault, logged and surfaced as an opaque 500.
func respondError(w http.ResponseWriter, r *http.Request, err error, notFoundMessage string) {
	var insufficient *domain.InsufficientFundsError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", notFoundMessage)
	case errors.Is(err, domain.ErrNoEligibleTrains):
		// Keep the full phrase (it names origin and destination).
		msg := err.Error()
		if i := strings.Index(msg, "no eligible trains"); i >= 0 {
			msg = msg[i:]
		}
		writeError(w, http.StatusNotFound, "no_eligible_trains", msg)
	case errors.As(err, &insufficient):
		shortage := insufficient.Shortage()
		writeJSON(w, http.StatusPaymentRequired, errorResponse{Error: errorDetail{
			Code:     "insufficient_funds",
			Message:  insufficient.Error(),
			Shortage: &shortage,
		}})
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", "purchase could not be applied; retry the request")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	default:
		slog.ErrorContext(r.Context(), "internal error", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// requestError rejects a request before it reaches the service layer
// (missing or malformed body, unparsable path parameter).
func requestError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnprocessableEntity, "validation_error", message)
}

// unwrapMessage extracts the human-readable tail from a wrapped sentinel
// error, e.g. "service.TrainService.Create: validation error: train_name is
// required" becomes "train_name is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, "validation error: "); i >= 0 {
		return msg[i+len("validation error: "):]
	}
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
