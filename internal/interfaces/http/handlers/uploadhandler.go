package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"millrace/internal/application/pipeline/usecases"
	"millrace/internal/shared/logger"
	"millrace/internal/shared/utils"
)

// UploadHandler handles transaction file uploads.
type UploadHandler struct {
	processUpload  *usecases.ProcessUploadUseCase
	maxUploadBytes int64
	logger         logger.Interface
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(
	processUpload *usecases.ProcessUploadUseCase,
	maxUploadBytes int64,
	logger logger.Interface,
) *UploadHandler {
	return &UploadHandler{
		processUpload:  processUpload,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Upload handles POST /api/upload
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "file is required")
		return
	}

	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".csv") {
		utils.ErrorResponse(c, http.StatusBadRequest, "only .csv files are accepted")
		return
	}
	if fileHeader.Size == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "uploaded file is empty")
		return
	}
	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "uploaded file is too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Errorw("failed to open uploaded file", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Errorw("failed to read uploaded file", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to read uploaded file")
		return
	}

	result, err := h.processUpload.Execute(c.Request.Context(), data)
	if err != nil {
		h.logger.Errorw("upload processing failed",
			"filename", fileHeader.Filename,
			"error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "upload processed", result)
}
