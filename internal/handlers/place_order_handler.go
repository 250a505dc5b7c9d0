package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sonuudigital/nimblestore/internal/order"
	"github.com/sonuudigital/nimblestore/internal/web"
)

type OrderResponse struct {
	Total json.Number `json:"total"`
}

func (h *Handler) PlaceOrderHandler(w http.ResponseWriter, r *http.Request) {
	if !h.checkContext(w, r) {
		return
	}

	lines, err := order.ParseLines(r.Body)
	if err != nil {
		h.respondOrderError(w, r, err)
		return
	}

	result, err := h.orders.PlaceOrder(r.Context(), lines)
	if err != nil {
		h.respondOrderError(w, r, err)
		return
	}

	web.RespondWithJSON(w, h.logger, http.StatusOK, OrderResponse{
		Total: json.Number(result.Total.StringFixed(2)),
	})
}

func (h *Handler) respondOrderError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		stockErr     *order.InsufficientStockError
		ambiguousErr *order.AmbiguousProductError
		quantityErr  *order.MalformedQuantityError
		invalidErr   *order.InvalidQuantityError
	)

	switch {
	case errors.Is(err, order.ErrProductNotFound):
		web.RespondWithErrorMessage(w, h.logger, http.StatusNotFound, "Product not found")
	case errors.As(err, &stockErr):
		web.RespondWithErrorMessage(w, h.logger, http.StatusBadRequest, "Not enough stock for "+stockErr.Product)
	case errors.As(err, &ambiguousErr):
		web.RespondWithErrorMessage(w, h.logger, http.StatusConflict, "Multiple products named "+ambiguousErr.Product)
	case errors.As(err, &quantityErr), errors.As(err, &invalidErr),
		errors.Is(err, order.ErrMalformedOrder), errors.Is(err, order.ErrProductRequired):
		web.RespondWithErrorMessage(w, h.logger, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("failed to place order", "error", err)
		web.RespondWithError(w, h.logger, r, http.StatusInternalServerError, internalServerErrorTitleMsg, "Failed to place order.")
	}
}
