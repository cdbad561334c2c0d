package httpserver

import (
	"encoding/json"
	"fmt"
	"forum-lab/auth"
	"forum-lab/errors"
	"log/slog"
	"net/http"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error to its status code. Internal errors are logged
// and hidden from the client.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status := errors.HTTPStatus(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		message = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: message})
}

// decode reads a JSON body into v and runs its validate tags.
func decode(r *http.Request, w http.ResponseWriter, v any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}
	return auth.ValidateStruct(v)
}

func currentUser(r *http.Request) (string, error) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		return "", errors.ErrUnauthenticated
	}
	return userID, nil
}
