package http

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/ypamar/newsletter/internal/domain"
	"github.com/ypamar/newsletter/pkg/logger"
)

// maxBodySize caps JSON request bodies, designs included
const maxBodySize = 2 << 20

// writeServiceError maps domain errors to 400, 404 and 429, anything else is
// logged and reported as message with a 500
func writeServiceError(w http.ResponseWriter, log logger.Logger, err error, message string) {
	var limited *domain.ErrRateLimited
	switch {
	case errors.As(err, &limited):
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(limited.RetryAfter.Seconds()))))
		WriteJSONError(w, err.Error(), http.StatusTooManyRequests)
	case domain.IsValidation(err):
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case domain.IsNotFound(err):
		WriteJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, context.Canceled):
		WriteJSONError(w, "Request cancelled", http.StatusRequestTimeout)
	default:
		log.WithField("error", err.Error()).Error(message)
		WriteJSONError(w, message, http.StatusInternalServerError)
	}
}

// decodeJSON reads a bounded JSON body into v and writes a 400 on failure
func decodeJSON(w http.ResponseWriter, r *http.Request, log logger.Logger, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.WithField("error", err.Error()).Debug("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}
