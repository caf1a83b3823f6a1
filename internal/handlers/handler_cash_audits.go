package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/pdv_backoffice/internal/core/ports/services"
	"github.com/SscSPs/pdv_backoffice/internal/dto"
	"github.com/SscSPs/pdv_backoffice/internal/middleware"
	"github.com/SscSPs/pdv_backoffice/internal/utils/export"
	"github.com/gin-gonic/gin"
)

// auditHandler handles listing and review of cash audits.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

func newAuditHandler(as portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{auditService: as}
}

// RegisterAuditRoutes registers routes related to cash audits. Review
// decisions are restricted to managers.
func RegisterAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := newAuditHandler(auditService)

	audits := rg.Group("/cash-audits")
	{
		audits.GET("", h.listAudits)
		audits.GET("/export", h.exportAudits)
		audits.GET("/:id", h.getAudit)

		review := audits.Group("", middleware.RequireRole(domain.RoleManager))
		review.POST("/:id/approve", h.approveAudit)
		review.POST("/:id/contest", h.contestAudit)
	}
}

// listAudits godoc
// @Summary List cash audits
// @Description Lists audits newest first. Pass nextToken from the previous page to continue.
// @Tags cash-audits
// @Produce  json
// @Param   terminalId query string false "Terminal ID"
// @Param   status query string false "PENDING, APPROVED or CONTESTED"
// @Param   from query string false "Earliest date (YYYY-MM-DD)"
// @Param   to query string false "Latest date (YYYY-MM-DD)"
// @Param   limit query int false "Page size (default 50)"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListCashAuditsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list audits"
// @Security BearerAuth
// @Router /cash-audits [get]
func (h *auditHandler) listAudits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var query dto.ListCashAuditsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, logger, "ListAudits", err)
		return
	}

	audits, next, err := h.auditService.ListAudits(c.Request.Context(), query)
	if err != nil {
		respondError(c, logger, err, "Failed to list audits")
		return
	}
	c.JSON(http.StatusOK, dto.ListCashAuditsResponse{Audits: audits, NextToken: next})
}

// exportAudits godoc
// @Summary Export cash audits
// @Description Downloads the filtered audits as an xlsx workbook
// @Tags cash-audits
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   terminalId query string false "Terminal ID"
// @Param   status query string false "PENDING, APPROVED or CONTESTED"
// @Param   from query string false "Earliest date (YYYY-MM-DD)"
// @Param   to query string false "Latest date (YYYY-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to export audits"
// @Security BearerAuth
// @Router /cash-audits/export [get]
func (h *auditHandler) exportAudits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var query dto.ListCashAuditsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, logger, "ExportAudits", err)
		return
	}

	var buf bytes.Buffer
	if err := h.auditService.ExportAudits(c.Request.Context(), query, &buf); err != nil {
		respondError(c, logger, err, "Failed to export audits")
		return
	}
	sendWorkbook(c, "cash-audits.xlsx", &buf)
}

// getAudit godoc
// @Summary Get a cash audit
// @Tags cash-audits
// @Produce  json
// @Param   id path string true "Audit ID"
// @Success 200 {object} domain.CashAudit
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Audit not found"
// @Failure 500 {object} map[string]string "Failed to retrieve audit"
// @Security BearerAuth
// @Router /cash-audits/{id} [get]
func (h *auditHandler) getAudit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("audit_id", c.Param("id")))

	audit, err := h.auditService.GetAudit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve audit")
		return
	}
	c.JSON(http.StatusOK, audit)
}

// approveAudit godoc
// @Summary Approve a cash audit
// @Description Approves a PENDING audit, optionally with the bank deposit proof. Managers only.
// @Tags cash-audits
// @Accept  json
// @Produce  json
// @Param   id path string true "Audit ID"
// @Param   review body dto.ApproveAuditRequest false "Deposit proof"
// @Success 200 {object} domain.CashAudit
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Manager role required"
// @Failure 404 {object} map[string]string "Audit not found"
// @Failure 409 {object} map[string]string "Audit already reviewed"
// @Failure 500 {object} map[string]string "Failed to approve audit"
// @Security BearerAuth
// @Router /cash-audits/{id}/approve [post]
func (h *auditHandler) approveAudit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("audit_id", c.Param("id")))
	var req dto.ApproveAuditRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, logger, "ApproveAudit", err)
			return
		}
	}

	if _, ok := currentUser(c, logger); !ok {
		return
	}

	audit, err := h.auditService.ApproveAudit(c.Request.Context(), c.Param("id"), req, middleware.GetUserNameFromContext(c))
	if err != nil {
		respondError(c, logger, err, "Failed to approve audit")
		return
	}
	logger.Info("Audit approved")
	c.JSON(http.StatusOK, audit)
}

// contestAudit godoc
// @Summary Contest a cash audit
// @Description Contests a PENDING audit with a justification. Managers only.
// @Tags cash-audits
// @Accept  json
// @Produce  json
// @Param   id path string true "Audit ID"
// @Param   review body dto.ContestAuditRequest true "Justification"
// @Success 200 {object} domain.CashAudit
// @Failure 400 {object} map[string]string "Invalid input format or missing justification"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Manager role required"
// @Failure 404 {object} map[string]string "Audit not found"
// @Failure 409 {object} map[string]string "Audit already reviewed"
// @Failure 500 {object} map[string]string "Failed to contest audit"
// @Security BearerAuth
// @Router /cash-audits/{id}/contest [post]
func (h *auditHandler) contestAudit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("audit_id", c.Param("id")))
	var req dto.ContestAuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "ContestAudit", err)
		return
	}

	if _, ok := currentUser(c, logger); !ok {
		return
	}

	audit, err := h.auditService.ContestAudit(c.Request.Context(), c.Param("id"), req, middleware.GetUserNameFromContext(c))
	if err != nil {
		respondError(c, logger, err, "Failed to contest audit")
		return
	}
	logger.Info("Audit contested")
	c.JSON(http.StatusOK, audit)
}

// sendWorkbook writes a rendered xlsx as an attachment download.
func sendWorkbook(c *gin.Context, filename string, buf *bytes.Buffer) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
