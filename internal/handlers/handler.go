package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/sonuudigital/nimblestore/internal/catalog"
	"github.com/sonuudigital/nimblestore/internal/logs"
	"github.com/sonuudigital/nimblestore/internal/order"
	"github.com/sonuudigital/nimblestore/internal/repository"
	"github.com/sonuudigital/nimblestore/internal/web"
)

const (
	invalidProductIDTitleMsg = "Invalid Product ID"
	invalidProductIDBodyMsg  = "invalid product id"

	productNotFoundTitleMsg = "Product Not Found"
	productNotFoundBodyMsg  = "product not found"

	requestTimeoutTitleMsg      = "Request Timeout"
	internalServerErrorTitleMsg = "Internal Server Error"
)

type CatalogService interface {
	ListProducts(ctx context.Context, page catalog.Page) ([]repository.Product, error)
	GetProduct(ctx context.Context, id int64) (repository.Product, error)
	CreateProduct(ctx context.Context, input catalog.ProductInput) (repository.Product, error)
	UpdateProduct(ctx context.Context, id int64, input catalog.ProductInput) (repository.Product, error)
	PartialUpdateProduct(ctx context.Context, id int64, input catalog.ProductInput) (repository.Product, error)
}

type OrderProcessor interface {
	PlaceOrder(ctx context.Context, lines []order.Line) (order.Result, error)
}

type Handler struct {
	catalog CatalogService
	orders  OrderProcessor
	logger  logs.Logger
}

func NewHandler(catalogService CatalogService, orders OrderProcessor, logger logs.Logger) *Handler {
	return &Handler{
		catalog: catalogService,
		orders:  orders,
		logger:  logger,
	}
}

type ProductResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int32  `json:"quantity"`
}

func toProductResponse(p repository.Product) ProductResponse {
	return ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price.StringFixed(2),
		Quantity: p.Quantity,
	}
}

func (h *Handler) checkContext(w http.ResponseWriter, r *http.Request) bool {
	if !web.CheckContext(r.Context(), h.logger) {
		web.RespondWithError(w, h.logger, r, http.StatusRequestTimeout, requestTimeoutTitleMsg, web.ReqCancelledMsg)
		return false
	}
	return true
}

func (h *Handler) productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		h.logger.Warn("failed to parse product id", "id", r.PathValue("id"))
		web.RespondWithError(w, h.logger, r, http.StatusBadRequest, invalidProductIDTitleMsg, invalidProductIDBodyMsg)
		return 0, false
	}
	return id, true
}

// respondCatalogError writes field errors as a flat map and everything else as a problem detail.
func (h *Handler) respondCatalogError(w http.ResponseWriter, r *http.Request, err error, action string) {
	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		web.RespondWithFieldErrors(w, h.logger, verr.Fields)
	case errors.Is(err, catalog.ErrProductNotFound):
		web.RespondWithError(w, h.logger, r, http.StatusNotFound, productNotFoundTitleMsg, productNotFoundBodyMsg)
	default:
		h.logger.Error("failed to "+action, "error", err)
		web.RespondWithError(w, h.logger, r, http.StatusInternalServerError, internalServerErrorTitleMsg, "Failed to "+action+".")
	}
}
