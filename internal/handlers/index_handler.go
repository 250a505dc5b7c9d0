package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/sonuudigital/nimblestore/internal/catalog"
	"github.com/sonuudigital/nimblestore/internal/web"
)

//go:embed templates/*.html
var templatesFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type indexPage struct {
	Products []ProductResponse
}

func (h *Handler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if !h.checkContext(w, r) {
		return
	}

	products, err := h.catalog.ListProducts(r.Context(), catalog.Page{})
	if err != nil {
		h.respondCatalogError(w, r, err, "list products")
		return
	}

	page := indexPage{Products: make([]ProductResponse, 0, len(products))}
	for _, p := range products {
		page.Products = append(page.Products, toProductResponse(p))
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, page); err != nil {
		h.logger.Error("failed to render index page", "error", err)
		web.RespondWithError(w, h.logger, r, http.StatusInternalServerError, internalServerErrorTitleMsg, "Failed to render page.")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
