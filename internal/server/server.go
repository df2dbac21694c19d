// Package server exposes the HTTP surface of the library service. It parses
// requests, delegates to the app layer, and maps error kinds to status codes;
// no business rule lives here.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"librarysvc/internal/app"
	"librarysvc/internal/ratelimit"
	"librarysvc/internal/util"
)

const apiPrefix = "/api/v1"

// Config wires required dependencies for the HTTP server.
type Config struct {
	App          *app.App
	WriteLimiter *ratelimit.Limiter
}

// Server exposes HTTP endpoints for books and users.
type Server struct {
	app          *app.App
	writeLimiter *ratelimit.Limiter
	mux          *http.ServeMux
}

// New constructs the server with routes configured. A nil write limiter
// disables rate limiting.
func New(cfg Config) *Server {
	s := &Server{
		app:          cfg.App,
		writeLimiter: cfg.WriteLimiter,
		mux:          http.NewServeMux(),
	}
	s.routes()
	return s
}

// Router returns the configured handler wrapped in the middleware chain.
func (s *Server) Router() http.Handler {
	return util.WithRequestID(util.WithRequestLog("librarysvc", util.WithSecurityHeaders(util.WithCORS(s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)

	s.mux.HandleFunc(apiPrefix+"/books", s.handleBooks)
	s.mux.HandleFunc(apiPrefix+"/books/", s.handleBookByPath)
	s.mux.HandleFunc(apiPrefix+"/users", s.handleUsers)
	s.mux.HandleFunc(apiPrefix+"/users/", s.handleUserByPath)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// allowWrite applies the fixed-window limit to mutating endpoints, keyed by
// path and client IP.
func (s *Server) allowWrite(w http.ResponseWriter, r *http.Request) bool {
	if s.writeLimiter == nil {
		return true
	}
	key := r.URL.Path + "|" + util.ClientIP(r)
	if s.writeLimiter.Allow(key) {
		return true
	}
	w.Header().Set("Retry-After", "60")
	writeError(w, http.StatusTooManyRequests, "too many requests")
	return false
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// writeAppError translates an app-layer error kind into a status code.
func writeAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, app.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"requestId,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{
		Error:     msg,
		Code:      errorCode(status),
		RequestID: strings.TrimSpace(w.Header().Get("X-Request-Id")),
	})
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "REQUEST_INVALID"
	case http.StatusNotFound:
		return "RESOURCE_NOT_FOUND"
	case http.StatusConflict:
		return "RESOURCE_CONFLICT"
	case http.StatusMethodNotAllowed:
		return "SYSTEM_METHOD_NOT_ALLOWED"
	case http.StatusTooManyRequests:
		return "RATE_LIMITED"
	default:
		if status >= http.StatusInternalServerError {
			return "SYSTEM_INTERNAL_ERROR"
		}
		return "REQUEST_ERROR"
	}
}

// parseID parses a positive decimal path segment. Malformed input maps to 0,
// which the app layer rejects as a non-positive ID.
func parseID(raw string) int64 {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// intQuery returns a query parameter as int, or def when absent. A present
// but malformed value parses to 0 so the app layer rejects it.
func intQuery(r *http.Request, name string, def int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func stringQuery(r *http.Request, name, def string) string {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def
	}
	return raw
}
