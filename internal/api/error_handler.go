package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/vytor/wordcards/internal/errors"
	"github.com/vytor/wordcards/internal/logger"
)

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// handleError writes err as JSON for API callers and as plain text
// otherwise. Errors that are not AppErrors become internal errors.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		appErr = errors.NewInternalError(err)
	}

	log := logger.FromContext(r.Context()).WithField("code", appErr.Code)
	switch {
	case appErr.Status >= http.StatusInternalServerError:
		log.Error("%v", appErr)
	case appErr.Status >= http.StatusBadRequest:
		log.Warn("%v", appErr)
	default:
		log.Debug("%v", appErr)
	}

	if !isAPIRequest(r) {
		http.Error(w, appErr.Message, appErr.Status)
		return
	}
	var body errorBody
	body.Error.Code = appErr.Code
	body.Error.Message = appErr.Message
	writeJSON(w, appErr.Status, body)
}

func isAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
