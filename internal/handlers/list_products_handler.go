package handlers

import (
	"net/http"
	"strconv"

	"github.com/sonuudigital/nimblestore/internal/catalog"
	"github.com/sonuudigital/nimblestore/internal/web"
)

func (h *Handler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	if !h.checkContext(w, r) {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}

	products, err := h.catalog.ListProducts(r.Context(), catalog.Page{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		h.respondCatalogError(w, r, err, "list products")
		return
	}

	response := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, toProductResponse(p))
	}

	web.RespondWithJSON(w, h.logger, http.StatusOK, response)
}
