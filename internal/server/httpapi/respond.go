package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ericmlantz/backend/internal/common"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type errorStatus struct {
	status int
	code   string
	msg    string
}

// errorStatusMap maps the service taxonomy to HTTP; order matters only in that
// the first match wins.
var errorStatusMap = []struct {
	err error
	errorStatus
}{
	{common.ErrorValidation, errorStatus{http.StatusBadRequest, "bad_request", "Bad Request"}},
	{common.ErrorInvalidCredentials, errorStatus{http.StatusBadRequest, "invalid_credentials", "Invalid Credentials"}},
	{common.ErrTokenExpired, errorStatus{http.StatusUnauthorized, "token_expired", "Token expired"}},
	{common.ErrInvalidToken, errorStatus{http.StatusUnauthorized, "invalid_token", "Invalid token"}},
	{common.ErrorUnauthorized, errorStatus{http.StatusUnauthorized, "unauthorized", "Unauthorized"}},
	{common.ErrorForbidden, errorStatus{http.StatusForbidden, "forbidden", "Forbidden"}},
	{common.ErrorNotFound, errorStatus{http.StatusNotFound, "not_found", "Not Found"}},
	{common.ErrorAlreadyExists, errorStatus{http.StatusConflict, "already_exists", "Already exists. Please login"}},
}

var internalStatus = errorStatus{http.StatusInternalServerError, "internal", "Internal Server Error"}

func statusFor(err error) errorStatus {
	for _, e := range errorStatusMap {
		if errors.Is(err, e.err) {
			return e.errorStatus
		}
	}
	return internalStatus
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: code, Message: message})
}

// decodeJSON reads a bounded JSON body into dst; any failure is a validation
// error.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return common.ErrorValidation
	}
	return nil
}
