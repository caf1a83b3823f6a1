package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/pdv_backoffice/internal/core/ports/services"
	"github.com/SscSPs/pdv_backoffice/internal/dto"
	"github.com/SscSPs/pdv_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportHandler serves the financial reports.
type reportHandler struct {
	reportingService portssvc.ReportingSvc
}

func newReportHandler(rs portssvc.ReportingSvc) *reportHandler {
	return &reportHandler{reportingService: rs}
}

// RegisterReportRoutes registers routes related to reporting.
func RegisterReportRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := newReportHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/dre", h.incomeStatement)
		reports.GET("/dre/export", h.exportIncomeStatement)
		reports.GET("/projection", h.cashProjection)
		reports.GET("/projection/export", h.exportCashProjection)
		reports.GET("/card-settlements", h.cardSettlements)
	}
}

// month resolves the requested month, defaulting to the current one.
func (h *reportHandler) month(q dto.MonthQuery) (time.Time, error) {
	if q.Month == "" {
		return h.reportingService.Today(), nil
	}
	return domain.ParseMonth(q.Month)
}

// projectionStart resolves the first projected day, defaulting to today.
func (h *reportHandler) projectionStart(q dto.ProjectionQuery) (time.Time, error) {
	if q.From == "" {
		return h.reportingService.Today(), nil
	}
	return time.Parse(domain.DateLayout, q.From)
}

// incomeStatement godoc
// @Summary Monthly income statement (DRE)
// @Description Builds the accrual DRE of the month from PAID and PENDING transactions due in it
// @Tags reports
// @Produce  json
// @Param   month query string false "Month (YYYY-MM), defaults to the current month"
// @Success 200 {object} domain.IncomeStatement
// @Failure 400 {object} map[string]string "Invalid month"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build income statement"
// @Security BearerAuth
// @Router /reports/dre [get]
func (h *reportHandler) incomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var query dto.MonthQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, logger, "IncomeStatement", err)
		return
	}
	month, err := h.month(query)
	if err != nil {
		badRequest(c, logger, "IncomeStatement", err)
		return
	}

	statement, err := h.reportingService.IncomeStatement(c.Request.Context(), month)
	if err != nil {
		respondError(c, logger, err, "Failed to build income statement")
		return
	}
	c.JSON(http.StatusOK, statement)
}

// exportIncomeStatement godoc
// @Summary Export the income statement
// @Description Downloads the monthly DRE as an xlsx workbook
// @Tags reports
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   month query string false "Month (YYYY-MM), defaults to the current month"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Invalid month"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to export income statement"
// @Security BearerAuth
// @Router /reports/dre/export [get]
func (h *reportHandler) exportIncomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var query dto.MonthQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, logger, "ExportIncomeStatement", err)
		return
	}
	month, err := h.month(query)
	if err != nil {
		badRequest(c, logger, "ExportIncomeStatement", err)
		return
	}

	var buf bytes.Buffer
	if err := h.reportingService.ExportIncomeStatement(c.Request.Context(), month, &buf); err != nil {
		respondError(c, logger, err, "Failed to export income statement")
		return
	}
	sendWorkbook(c, fmt.Sprintf("dre-%s.xlsx", month.Format("2006-01")), &buf)
}

// cashProjection godoc
// @Summary Cash flow projection
// @Description Projects the daily balance from the current cash position and pending dues
// @Tags reports
// @Produce  json
// @Param   from query string false "First projected day (YYYY-MM-DD), defaults to today"
// @Param   days query int false "Horizon in days"
// @Success 200 {object} domain.CashProjection
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build projection"
// @Security BearerAuth
// @Router /reports/projection [get]
func (h *reportHandler) cashProjection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var query dto.ProjectionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, logger, "CashProjection", err)
		return
	}
	from, err := h.projectionStart(query)
	if err != nil {
		badRequest(c, logger, "CashProjection", err)
		return
	}

	projection, err := h.reportingService.CashProjection(c.Request.Context(), from, query.Days)
	if err != nil {
		respondError(c, logger, err, "Failed to build projection")
		return
	}
	c.JSON(http.StatusOK, projection)
}

// exportCashProjection godoc
// @Summary Export the cash flow projection
// @Tags reports
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   from query string false "First projected day (YYYY-MM-DD), defaults to today"
// @Param   days query int false "Horizon in days"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to export projection"
// @Security BearerAuth
// @Router /reports/projection/export [get]
func (h *reportHandler) exportCashProjection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var query dto.ProjectionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, logger, "ExportCashProjection", err)
		return
	}
	from, err := h.projectionStart(query)
	if err != nil {
		badRequest(c, logger, "ExportCashProjection", err)
		return
	}

	var buf bytes.Buffer
	if err := h.reportingService.ExportCashProjection(c.Request.Context(), from, query.Days, &buf); err != nil {
		respondError(c, logger, err, "Failed to export projection")
		return
	}
	sendWorkbook(c, fmt.Sprintf("projection-%s.xlsx", from.Format(domain.DateLayout)), &buf)
}

// cardSettlements godoc
// @Summary Card settlement schedule
// @Description Lists the expected payout date and net amount of electronic sales in the range
// @Tags reports
// @Produce  json
// @Param   from query string true "Earliest sale date (YYYY-MM-DD)"
// @Param   to query string true "Latest sale date (YYYY-MM-DD)"
// @Success 200 {object} domain.SettlementSchedule
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build settlement schedule"
// @Security BearerAuth
// @Router /reports/card-settlements [get]
func (h *reportHandler) cardSettlements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var query dto.DateRangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, logger, "CardSettlements", err)
		return
	}
	// Both dates passed the isodate binding.
	from, _ := time.Parse(domain.DateLayout, query.From)
	to, _ := time.Parse(domain.DateLayout, query.To)

	schedule, err := h.reportingService.CardSettlementSchedule(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, logger, err, "Failed to build settlement schedule")
		return
	}
	c.JSON(http.StatusOK, schedule)
}
