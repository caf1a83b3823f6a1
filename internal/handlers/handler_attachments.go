package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/pdv_backoffice/internal/core/ports/services"
	"github.com/SscSPs/pdv_backoffice/internal/dto"
	"github.com/SscSPs/pdv_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

const maxAttachmentBytes = 10 << 20

type attachmentHandler struct {
	attachmentService portssvc.AttachmentSvc
}

// RegisterAttachmentRoutes registers the upload route for receipts and
// deposit proofs.
func RegisterAttachmentRoutes(rg *gin.RouterGroup, attachmentService portssvc.AttachmentSvc) {
	h := &attachmentHandler{attachmentService: attachmentService}
	rg.POST("/attachments", h.upload)
}

// upload godoc
// @Summary Upload an attachment
// @Description Stores a receipt or deposit proof and returns its URL
// @Tags attachments
// @Accept  multipart/form-data
// @Produce  json
// @Param   kind formData string true "receipts or deposit-proofs"
// @Param   file formData file true "Image or PDF"
// @Success 201 {object} dto.UploadResponse
// @Failure 400 {object} map[string]string "Invalid file or kind"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Attachment storage not configured"
// @Failure 500 {object} map[string]string "Failed to store attachment"
// @Security BearerAuth
// @Router /attachments [post]
func (h *attachmentHandler) upload(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAttachmentBytes)

	header, err := c.FormFile("file")
	if err != nil {
		badRequest(c, logger, "UploadAttachment", err)
		return
	}
	file, err := header.Open()
	if err != nil {
		badRequest(c, logger, "UploadAttachment", err)
		return
	}
	defer file.Close()

	url, err := h.attachmentService.Upload(c.Request.Context(), c.PostForm("kind"), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		respondError(c, logger, err, "Failed to store attachment")
		return
	}
	logger.Info("Attachment stored", slog.String("url", url))
	c.JSON(http.StatusCreated, dto.UploadResponse{URL: url})
}
