package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/stockpile-wms/stockpile/internal/shared"
)

// RespondError maps domain errors to HTTP responses with a JSON error body.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrValidation):
		Error(w, http.StatusBadRequest, shared.UserSafeMessage(err))
	case errors.Is(err, shared.ErrNotFound):
		Error(w, http.StatusNotFound, shared.UserSafeMessage(err))
	case errors.Is(err, shared.ErrAmbiguousMatch), errors.Is(err, shared.ErrDuplicate):
		Error(w, http.StatusConflict, shared.UserSafeMessage(err))
	case errors.Is(err, shared.ErrUnauthorized), errors.Is(err, shared.ErrInvalidCredentials):
		Error(w, http.StatusUnauthorized, shared.UserSafeMessage(err))
	case errors.Is(err, shared.ErrStoreUnavailable), errors.Is(err, context.DeadlineExceeded):
		Error(w, http.StatusServiceUnavailable, shared.ErrStoreUnavailable.Error())
	default:
		Error(w, http.StatusInternalServerError, "internal error")
	}
}
