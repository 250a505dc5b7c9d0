package handlers

import (
	"net/http"

	"github.com/sonuudigital/nimblestore/internal/catalog"
	"github.com/sonuudigital/nimblestore/internal/web"
)

func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	if !h.checkContext(w, r) {
		return
	}

	input, err := catalog.DecodeProductInput(r.Body)
	if err != nil {
		h.respondCatalogError(w, r, err, "create product")
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), input)
	if err != nil {
		h.respondCatalogError(w, r, err, "create product")
		return
	}

	web.RespondWithJSON(w, h.logger, http.StatusCreated, toProductResponse(product))
}
