package v1

import (
	"net/http"

	"futur-backend/internal/delivery/http/middleware"
	"futur-backend/internal/domain"
	"futur-backend/internal/usecase"
	"futur-backend/pkg/utils"
)

type CartHandler struct {
	cartUC *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{cartUC: uc}
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type addJacketRequest struct {
	Configuration domain.JacketConfiguration `json:"configuration"`
	Quantity      int                        `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type visibilityRequest struct {
	IsOpen bool `json:"isOpen"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	utils.WriteJSON(w, http.StatusOK, h.cartUC.GetCart(r.Context(), sessionID))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeBadRequestBody(w, r, err)
		return
	}
	if req.ProductID == "" {
		utils.WriteError(w, http.StatusBadRequest, "productId is required")
		return
	}

	sessionID := middleware.SessionIDFromContext(r.Context())
	view, err := h.cartUC.AddProduct(r.Context(), sessionID, req.ProductID, req.Quantity)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, view)
}

func (h *CartHandler) AddJacket(w http.ResponseWriter, r *http.Request) {
	var req addJacketRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeBadRequestBody(w, r, err)
		return
	}

	sessionID := middleware.SessionIDFromContext(r.Context())
	view, err := h.cartUC.AddJacket(r.Context(), sessionID, req.Configuration, req.Quantity)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, view)
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeBadRequestBody(w, r, err)
		return
	}
	if req.Quantity == nil {
		utils.WriteError(w, http.StatusBadRequest, "quantity is required")
		return
	}

	sessionID := middleware.SessionIDFromContext(r.Context())
	view, err := h.cartUC.UpdateQuantity(r.Context(), sessionID, r.PathValue("id"), *req.Quantity)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, view)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	utils.WriteJSON(w, http.StatusOK, h.cartUC.RemoveItem(r.Context(), sessionID, r.PathValue("id")))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	utils.WriteJSON(w, http.StatusOK, h.cartUC.Clear(r.Context(), sessionID))
}

func (h *CartHandler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	var req visibilityRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeBadRequestBody(w, r, err)
		return
	}

	sessionID := middleware.SessionIDFromContext(r.Context())
	utils.WriteJSON(w, http.StatusOK, h.cartUC.SetOpen(r.Context(), sessionID, req.IsOpen))
}
