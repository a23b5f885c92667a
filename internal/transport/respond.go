package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/model"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	writeJSON(w, logger, statusOf(err), errorResponse{Error: err.Error()})
}

// statusOf maps settlement errors to HTTP statuses.
func statusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, model.ErrInvalidWindow):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrCompanyNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrDuplicateAttempt),
		errors.Is(err, model.ErrRetryNotAllowed),
		errors.Is(err, model.ErrLockHeld):
		return http.StatusConflict
	case errors.Is(err, model.ErrReverted):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrTimeout):
		return http.StatusAccepted
	case errors.Is(err, model.ErrDataUnavailable), errors.Is(err, model.ErrChainUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
