package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sonuudigital/nimblestore/internal/logs"
)

const (
	ReqCancelledMsg = "request cancelled"

	contentTypeJSON    = "application/json"
	contentTypeProblem = "application/problem+json"
)

// ProblemDetail is an RFC 7807 error body.
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// ErrorMessage is the flat error body returned by the order endpoint.
type ErrorMessage struct {
	Error string `json:"error"`
}

var problemTypes = map[int]string{
	http.StatusBadRequest:          "https://tools.ietf.org/html/rfc7231#section-6.5.1",
	http.StatusNotFound:            "https://tools.ietf.org/html/rfc7231#section-6.5.4",
	http.StatusRequestTimeout:      "https://tools.ietf.org/html/rfc7231#section-6.5.7",
	http.StatusConflict:            "https://tools.ietf.org/html/rfc7231#section-6.5.8",
	http.StatusTooManyRequests:     "https://tools.ietf.org/html/rfc6585#section-4",
	http.StatusInternalServerError: "https://tools.ietf.org/html/rfc7231#section-6.6.1",
	http.StatusServiceUnavailable:  "https://tools.ietf.org/html/rfc7231#section-6.6.4",
}

func problemType(status int) string {
	if t, ok := problemTypes[status]; ok {
		return t
	}
	return "about:blank"
}

func RespondWithJSON(w http.ResponseWriter, logger logs.Logger, status int, payload any) {
	write(w, logger, status, contentTypeJSON, payload)
}

// RespondWithError writes a problem detail. An empty title falls back to the status text.
func RespondWithError(w http.ResponseWriter, logger logs.Logger, r *http.Request, status int, title string, detail string) {
	if title == "" {
		title = http.StatusText(status)
	}
	write(w, logger, status, contentTypeProblem, ProblemDetail{
		Type:     problemType(status),
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: r.URL.Path,
	})
}

func RespondWithErrorMessage(w http.ResponseWriter, logger logs.Logger, status int, message string) {
	write(w, logger, status, contentTypeJSON, ErrorMessage{Error: message})
}

// RespondWithFieldErrors writes a 400 whose body maps each field to its messages.
func RespondWithFieldErrors(w http.ResponseWriter, logger logs.Logger, fields map[string][]string) {
	write(w, logger, http.StatusBadRequest, contentTypeJSON, fields)
}

// CheckContext reports whether the request is still live. A client hang-up
// is logged as a warning, a missed deadline as an error.
func CheckContext(ctx context.Context, logger logs.Logger) bool {
	err := ctx.Err()
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) {
		orDiscard(logger).Warn(ReqCancelledMsg, "error", err)
	} else {
		orDiscard(logger).Error(ReqCancelledMsg, "error", err)
	}
	return false
}

func write(w http.ResponseWriter, logger logs.Logger, status int, contentType string, payload any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		orDiscard(logger).Error("failed to encode response", "status", status, "error", err)
	}
}

func orDiscard(logger logs.Logger) logs.Logger {
	if logger == nil {
		return logs.Discard()
	}
	return logger
}
