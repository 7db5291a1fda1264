package request

import (
	"log/slog"
	"net/http"
)

// NotFoundHandler returns a handler that returns a 404 response.
func NotFoundHandler(l *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l.Debug("Route not found", slog.String("path", r.URL.Path))
		Encode(l, w, http.StatusNotFound, NewMessage("Not found"))
	}
}

// MethodNotAllowedHandler returns a handler that returns a 405 response.
func MethodNotAllowedHandler(l *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		Encode(l, w, http.StatusMethodNotAllowed, NewMessage("Method %s not allowed", r.Method))
	}
}
