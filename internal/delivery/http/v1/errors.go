package v1

import (
	"errors"
	"net/http"

	"futur-backend/internal/domain"
	"futur-backend/pkg/logger"
	"futur-backend/pkg/utils"
)

// writeUsecaseError maps domain errors to HTTP statuses. Anything unmapped is
// logged and reported as a 500 without internals.
func writeUsecaseError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidConfiguration),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidLineItem),
		errors.Is(err, domain.ErrInvalidCheckout),
		errors.Is(err, domain.ErrInvalidUpload):
		utils.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnknownProduct):
		utils.WriteError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrEmptyCart):
		utils.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		utils.WriteError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrUploadUnavailable):
		utils.WriteError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, domain.ErrStorageUnavailable):
		logger.WithContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Storage unavailable")
		utils.WriteError(w, http.StatusServiceUnavailable, "Storage temporarily unavailable")
	default:
		logger.WithContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Unhandled error")
		utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func writeBadRequestBody(w http.ResponseWriter, r *http.Request, err error) {
	logger.WithContext(r.Context()).Debug().Err(err).Msg("Invalid request body")
	utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
}
