package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shopez/internal/catalog"
	"shopez/pkg/platform/httputil"
)

// Handler serves the product catalog. The catalog is fixed at startup so the
// endpoint is a plain read with no session requirement.
type Handler struct {
	logger  *slog.Logger
	catalog *catalog.Catalog
}

func New(cat *catalog.Catalog, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, catalog: cat}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/catalog", h.handleListProducts)
}

type listProductsResponse struct {
	Products []catalog.Product `json:"products"`
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, listProductsResponse{
		Products: h.catalog.Products(),
	})
}
