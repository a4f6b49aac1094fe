package v1

import (
	"net/http"

	"futur-backend/internal/domain"
	"futur-backend/internal/usecase"
	"futur-backend/pkg/utils"
)

type CatalogHandler struct {
	catalogUC *usecase.CatalogUsecase
}

func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalogUC: uc}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogUC.ListProducts(r.Context(), r.URL.Query().Get("gender"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalogUC.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) GetJacketCatalog(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.catalogUC.JacketCatalog())
}

func (h *CatalogHandler) QuoteJacket(w http.ResponseWriter, r *http.Request) {
	var cfg domain.JacketConfiguration
	if err := utils.DecodeJSON(r, &cfg); err != nil {
		writeBadRequestBody(w, r, err)
		return
	}

	quote, err := h.catalogUC.Quote(cfg)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, quote)
}
