package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for the domain layer.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrValidation = errors.New("validation failed")
)

// RespondError maps domain errors to envelope responses. Validation failures
// become 400s and missing resources 404s, both with a client-facing message.
// Anything else is a store failure surfaced as a 500 with the raw error text.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		Fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		Fail(w, http.StatusNotFound, err.Error())
	default:
		JSON(w, http.StatusInternalServerError, Envelope{Success: false, Error: err.Error()})
	}
}
