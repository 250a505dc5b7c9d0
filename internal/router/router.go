package router

import (
	"context"
	"net/http"
	"time"

	"github.com/sonuudigital/nimblestore/internal/handlers"
	"github.com/sonuudigital/nimblestore/internal/logs"
	"github.com/sonuudigital/nimblestore/internal/middlewares"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Middleware func(http.Handler) http.Handler

// ReadinessCheck is an optional dependency that must answer before the
// service reports ready.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// ConfigRoutes registers every route with and without the trailing slash.
// orderMiddleware wraps only the order endpoint.
func ConfigRoutes(db Pinger, h *handlers.Handler, orderMiddleware Middleware, logger logs.Logger, checks ...ReadinessCheck) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /api/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, ccancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer ccancel()
		if err := db.Ping(ctx); err != nil {
			logger.Warn("readiness check failed", "error", err)
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		for _, c := range checks {
			if err := c.Check(ctx); err != nil {
				logger.Warn("readiness check failed", "dependency", c.Name, "error", err)
				http.Error(w, c.Name+" not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	mux.HandleFunc("GET /{$}", h.IndexHandler)
	registerProductRoutes(mux, h)
	registerOrderRoutes(mux, h, orderMiddleware)

	return middlewares.RequestLogger(logger)(mux)
}

func registerProductRoutes(mux *http.ServeMux, h *handlers.Handler) {
	for _, collection := range []string{"/products", "/products/{$}"} {
		mux.HandleFunc("GET "+collection, h.ListProductsHandler)
		mux.HandleFunc("POST "+collection, h.CreateProductHandler)
	}

	for _, item := range []string{"/products/{id}", "/products/{id}/{$}"} {
		mux.HandleFunc("GET "+item, h.GetProductHandler)
		mux.HandleFunc("PUT "+item, h.UpdateProductHandler)
		mux.HandleFunc("PATCH "+item, h.PartialUpdateProductHandler)
	}
}

func registerOrderRoutes(mux *http.ServeMux, h *handlers.Handler, orderMiddleware Middleware) {
	var placeOrder http.Handler = http.HandlerFunc(h.PlaceOrderHandler)
	if orderMiddleware != nil {
		placeOrder = orderMiddleware(placeOrder)
	}

	mux.Handle("POST /order", placeOrder)
	mux.Handle("POST /order/{$}", placeOrder)
}
