package handlers

import (
	"net/http"

	"github.com/sonuudigital/nimblestore/internal/web"
)

func (h *Handler) GetProductHandler(w http.ResponseWriter, r *http.Request) {
	if !h.checkContext(w, r) {
		return
	}

	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		h.respondCatalogError(w, r, err, "get product")
		return
	}

	web.RespondWithJSON(w, h.logger, http.StatusOK, toProductResponse(product))
}
