package handlers

import (
	"context"
	"net/http"

	"github.com/sonuudigital/nimblestore/internal/catalog"
	"github.com/sonuudigital/nimblestore/internal/repository"
	"github.com/sonuudigital/nimblestore/internal/web"
)

type updateFunc func(ctx context.Context, id int64, input catalog.ProductInput) (repository.Product, error)

// UpdateProductHandler replaces the product. Fields left out of the body are reset.
func (h *Handler) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.catalog.UpdateProduct)
}

func (h *Handler) PartialUpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.catalog.PartialUpdateProduct)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, apply updateFunc) {
	if !h.checkContext(w, r) {
		return
	}

	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	// An unknown id is reported before anything about the body.
	if _, err := h.catalog.GetProduct(r.Context(), id); err != nil {
		h.respondCatalogError(w, r, err, "update product")
		return
	}

	input, err := catalog.DecodeProductInput(r.Body)
	if err != nil {
		h.respondCatalogError(w, r, err, "update product")
		return
	}

	product, err := apply(r.Context(), id, input)
	if err != nil {
		h.respondCatalogError(w, r, err, "update product")
		return
	}

	web.RespondWithJSON(w, h.logger, http.StatusOK, toProductResponse(product))
}
