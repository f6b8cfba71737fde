package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// writeServiceError maps a resource service error onto a status code and a
// {"message": ...} body. Unclassified errors are logged and become a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		httpx.WriteMessage(w, http.StatusBadRequest, detail(err, service.ErrInvalidInput))
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrAlreadyExists):
		httpx.WriteMessage(w, http.StatusConflict, "already exists")
	case errors.Is(err, service.ErrInsufficientRole):
		httpx.WriteMessage(w, http.StatusForbidden, "forbidden")
	default:
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
		httpx.WriteMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

// detail strips the sentinel prefix from "invalid_input: first_name is required".
func detail(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" || msg == sentinel.Error() {
		return "invalid request"
	}
	return msg
}

func writeBadJSON(w http.ResponseWriter) {
	httpx.WriteMessage(w, http.StatusBadRequest, "invalid JSON in request body")
}
