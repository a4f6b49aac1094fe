package v1

import (
	"net/http"

	"futur-backend/internal/domain"
	"futur-backend/internal/usecase"
	"futur-backend/pkg/utils"
)

type DesignHandler struct {
	designUC *usecase.DesignUsecase
}

func NewDesignHandler(uc *usecase.DesignUsecase) *DesignHandler {
	return &DesignHandler{designUC: uc}
}

func (h *DesignHandler) SaveDesign(w http.ResponseWriter, r *http.Request) {
	var cfg domain.JacketConfiguration
	if err := utils.DecodeJSON(r, &cfg); err != nil {
		writeBadRequestBody(w, r, err)
		return
	}

	design, err := h.designUC.SaveDesign(r.Context(), cfg)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, design)
}

func (h *DesignHandler) GetDesign(w http.ResponseWriter, r *http.Request) {
	design, err := h.designUC.GetDesign(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, design)
}
