package v1

import (
	"net/http"

	"futur-backend/internal/delivery/http/middleware"
	"futur-backend/internal/usecase"
	"futur-backend/pkg/utils"
)

type OrderHandler struct {
	checkoutUC *usecase.CheckoutUsecase
}

func NewOrderHandler(uc *usecase.CheckoutUsecase) *OrderHandler {
	return &OrderHandler{checkoutUC: uc}
}

func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req usecase.CheckoutRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeBadRequestBody(w, r, err)
		return
	}

	sessionID := middleware.SessionIDFromContext(r.Context())
	order, err := h.checkoutUC.Checkout(r.Context(), sessionID, req)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	order, err := h.checkoutUC.GetOrder(r.Context(), sessionID, r.PathValue("id"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, order)
}
