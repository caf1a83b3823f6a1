package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/pdv_backoffice/internal/core/ports/services"
	"github.com/SscSPs/pdv_backoffice/internal/dto"
	"github.com/SscSPs/pdv_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// recurringBillHandler handles the monthly expense templates.
type recurringBillHandler struct {
	recurringBillService portssvc.RecurringBillSvcFacade
}

func newRecurringBillHandler(rs portssvc.RecurringBillSvcFacade) *recurringBillHandler {
	return &recurringBillHandler{recurringBillService: rs}
}

// RegisterRecurringBillRoutes registers routes related to recurring bills.
func RegisterRecurringBillRoutes(rg *gin.RouterGroup, recurringBillService portssvc.RecurringBillSvcFacade) {
	h := newRecurringBillHandler(recurringBillService)

	bills := rg.Group("/recurring-bills")
	{
		bills.POST("", h.createRecurringBill)
		bills.GET("", h.listRecurringBills)
		bills.POST("/generate", h.generateBills)
		bills.GET("/:id", h.getRecurringBill)
		bills.PUT("/:id", h.updateRecurringBill)
		bills.DELETE("/:id", h.deleteRecurringBill)
	}
}

// createRecurringBill godoc
// @Summary Create a recurring bill
// @Tags recurring-bills
// @Accept  json
// @Produce  json
// @Param   bill body dto.CreateRecurringBillRequest true "Template"
// @Success 201 {object} domain.RecurringBill
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create recurring bill"
// @Security BearerAuth
// @Router /recurring-bills [post]
func (h *recurringBillHandler) createRecurringBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRecurringBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "CreateRecurringBill", err)
		return
	}

	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	bill, err := h.recurringBillService.CreateRecurringBill(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create recurring bill")
		return
	}
	logger.Info("Recurring bill created", slog.String("recurring_bill_id", bill.ID))
	c.JSON(http.StatusCreated, bill)
}

// listRecurringBills godoc
// @Summary List recurring bills
// @Tags recurring-bills
// @Produce  json
// @Param   active query bool false "Only active templates"
// @Success 200 {array} domain.RecurringBill
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list recurring bills"
// @Security BearerAuth
// @Router /recurring-bills [get]
func (h *recurringBillHandler) listRecurringBills(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	bills, err := h.recurringBillService.ListRecurringBills(c.Request.Context(), activeOnly(c))
	if err != nil {
		respondError(c, logger, err, "Failed to list recurring bills")
		return
	}
	c.JSON(http.StatusOK, bills)
}

// getRecurringBill godoc
// @Summary Get a recurring bill
// @Tags recurring-bills
// @Produce  json
// @Param   id path string true "Recurring bill ID"
// @Success 200 {object} domain.RecurringBill
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Recurring bill not found"
// @Failure 500 {object} map[string]string "Failed to retrieve recurring bill"
// @Security BearerAuth
// @Router /recurring-bills/{id} [get]
func (h *recurringBillHandler) getRecurringBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	bill, err := h.recurringBillService.GetRecurringBill(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve recurring bill")
		return
	}
	c.JSON(http.StatusOK, bill)
}

// updateRecurringBill godoc
// @Summary Update a recurring bill
// @Tags recurring-bills
// @Accept  json
// @Produce  json
// @Param   id path string true "Recurring bill ID"
// @Param   bill body dto.UpdateRecurringBillRequest true "Fields to change"
// @Success 200 {object} domain.RecurringBill
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Recurring bill not found"
// @Failure 500 {object} map[string]string "Failed to update recurring bill"
// @Security BearerAuth
// @Router /recurring-bills/{id} [put]
func (h *recurringBillHandler) updateRecurringBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateRecurringBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "UpdateRecurringBill", err)
		return
	}

	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	bill, err := h.recurringBillService.UpdateRecurringBill(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update recurring bill")
		return
	}
	c.JSON(http.StatusOK, bill)
}

// deleteRecurringBill godoc
// @Summary Delete a recurring bill
// @Description Removes the template. Bills it already generated are kept.
// @Tags recurring-bills
// @Param   id path string true "Recurring bill ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Recurring bill not found"
// @Failure 500 {object} map[string]string "Failed to delete recurring bill"
// @Security BearerAuth
// @Router /recurring-bills/{id} [delete]
func (h *recurringBillHandler) deleteRecurringBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.recurringBillService.DeleteRecurringBill(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to delete recurring bill")
		return
	}
	c.Status(http.StatusNoContent)
}

// generateBills godoc
// @Summary Generate the month's bills
// @Description Materialises the active templates as PENDING expenses. Repeating a month creates nothing new.
// @Tags recurring-bills
// @Accept  json
// @Produce  json
// @Param   generate body dto.GenerateBillsRequest true "Month"
// @Success 200 {object} dto.GenerateBillsResponse
// @Failure 400 {object} map[string]string "Invalid month"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate bills"
// @Security BearerAuth
// @Router /recurring-bills/generate [post]
func (h *recurringBillHandler) generateBills(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GenerateBillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "GenerateBills", err)
		return
	}
	month, err := domain.ParseMonth(req.Month)
	if err != nil {
		badRequest(c, logger, "GenerateBills", err)
		return
	}

	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	created, err := h.recurringBillService.GenerateMonthBills(c.Request.Context(), month, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to generate bills")
		return
	}
	c.JSON(http.StatusOK, dto.GenerateBillsResponse{Month: req.Month, Created: created})
}
