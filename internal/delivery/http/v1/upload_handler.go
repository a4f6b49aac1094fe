package v1

import (
	"net/http"
	"path/filepath"
	"strings"

	"futur-backend/internal/usecase"
	"futur-backend/pkg/logger"
	"futur-backend/pkg/utils"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type UploadHandler struct {
	designUC *usecase.DesignUsecase
}

func NewUploadHandler(uc *usecase.DesignUsecase) *UploadHandler {
	return &UploadHandler{designUC: uc}
}

// UploadBackDesign accepts a multipart "image" field and answers with the
// public URL of the processed file.
func (h *UploadHandler) UploadBackDesign(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context())
	maxBytes := h.designUC.MaxUploadBytes()

	// headroom for the multipart envelope
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<20)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		log.Warn().Err(err).Msg("Upload: ParseMultipartForm failed")
		utils.WriteError(w, http.StatusBadRequest, "File too large or invalid format")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Missing image file")
		return
	}
	defer file.Close()

	if ct := header.Header.Get("Content-Type"); ct != "" && !utils.IsImage(ct) {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file type. Allowed: JPEG, PNG, WebP")
		return
	}
	if ext := strings.ToLower(filepath.Ext(header.Filename)); !allowedExtensions[ext] {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file extension")
		return
	}

	url, err := h.designUC.UploadBackDesign(r.Context(), file, header.Filename, header.Size)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"url": url})
}
