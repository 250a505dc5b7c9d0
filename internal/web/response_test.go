package web_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sonuudigital/nimblestore/internal/logs"
	"github.com/sonuudigital/nimblestore/internal/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products/42/", nil)
	rr := httptest.NewRecorder()

	web.RespondWithError(rr, logs.NewSlogLogger(), req, http.StatusNotFound, "Product Not Found", "product not found")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))

	var problem web.ProblemDetail
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&problem))
	assert.Equal(t, "Product Not Found", problem.Title)
	assert.Equal(t, "product not found", problem.Detail)
	assert.Equal(t, "/products/42/", problem.Instance)
	assert.Equal(t, "https://tools.ietf.org/html/rfc7231#section-6.5.4", problem.Type)
}

func TestRespondWithErrorMessage(t *testing.T) {
	rr := httptest.NewRecorder()

	web.RespondWithErrorMessage(rr, logs.NewSlogLogger(), http.StatusBadRequest, "Not enough stock for Widget")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Not enough stock for Widget"}`, rr.Body.String())
}

func TestRespondWithErrorDefaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/readyz", nil)
	rr := httptest.NewRecorder()

	web.RespondWithError(rr, nil, req, http.StatusTeapot, "", "")

	var problem web.ProblemDetail
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&problem))
	assert.Equal(t, "I'm a teapot", problem.Title)
	assert.Equal(t, "about:blank", problem.Type)
	assert.Empty(t, problem.Detail)
}

func TestRespondWithFieldErrors(t *testing.T) {
	rr := httptest.NewRecorder()

	web.RespondWithFieldErrors(rr, nil, map[string][]string{"price": {"A valid number is required."}})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"price":["A valid number is required."]}`, rr.Body.String())
}

func TestCheckContext(t *testing.T) {
	logger := logs.NewSlogLogger()
	assert.True(t, web.CheckContext(context.Background(), logger))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, web.CheckContext(ctx, logger))

	expired, cancelExpired := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancelExpired()
	assert.False(t, web.CheckContext(expired, nil))
}

func TestInitializeServer(t *testing.T) {
	logger := logs.NewSlogLogger()

	_, err := web.InitializeServer("", http.NewServeMux(), logger)
	assert.Error(t, err)

	srv, err := web.InitializeServer("8080", http.NewServeMux(), logger)
	require.NoError(t, err)
	assert.Equal(t, ":8080", srv.Addr)
}
