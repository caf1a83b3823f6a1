package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/pdv_backoffice/internal/core/ports/services"
	"github.com/SscSPs/pdv_backoffice/internal/dto"
	"github.com/SscSPs/pdv_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// shiftHandler exposes the cash-register shift lifecycle of one terminal.
type shiftHandler struct {
	shiftService portssvc.ShiftSvcFacade
}

func newShiftHandler(ss portssvc.ShiftSvcFacade) *shiftHandler {
	return &shiftHandler{shiftService: ss}
}

// RegisterShiftRoutes registers the routes under /terminals/:terminal_id/shift.
func RegisterShiftRoutes(rg *gin.RouterGroup, shiftService portssvc.ShiftSvcFacade) {
	h := newShiftHandler(shiftService)

	shift := rg.Group("/terminals/:terminal_id/shift")
	{
		shift.GET("", h.getCurrentShift)
		shift.POST("/open", h.openShift)
		shift.POST("/supplies", h.addSupply)
		shift.POST("/withdrawals", h.addWithdrawal)
		shift.GET("/transactions", h.pollTransactions)
		shift.POST("/count", h.confirmCount)
		shift.POST("/count/reopen", h.reopenCount)
		shift.GET("/report", h.closeReport)
		shift.POST("/close", h.commitClose)
		shift.GET("/history", h.shiftHistory)
	}
}

func terminalLogger(c *gin.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("terminal_id", c.Param("terminal_id")))
}

// getCurrentShift godoc
// @Summary Get the terminal's shift
// @Description Returns the live session, or the OPEN view with the seed opening balance
// @Tags shifts
// @Produce  json
// @Param   terminal_id path string true "Terminal ID"
// @Success 200 {object} domain.ShiftView
// @Failure 400 {object} map[string]string "Invalid terminal"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to load shift"
// @Security BearerAuth
// @Router /terminals/{terminal_id}/shift [get]
func (h *shiftHandler) getCurrentShift(c *gin.Context) {
	logger := terminalLogger(c)

	view, err := h.shiftService.GetCurrentShift(c.Request.Context(), c.Param("terminal_id"))
	if err != nil {
		respondError(c, logger, err, "Failed to load shift")
		return
	}
	c.JSON(http.StatusOK, view)
}

// openShift godoc
// @Summary Open a shift
// @Description Opens today's shift. Omitting openingBalance uses the reserve left by the previous close.
// @Tags shifts
// @Accept  json
// @Produce  json
// @Param   terminal_id path string true "Terminal ID"
// @Param   shift body dto.OpenShiftRequest false "Opening balance"
// @Success 201 {object} domain.ShiftSession
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Shift already opened or closed today"
// @Failure 500 {object} map[string]string "Failed to open shift"
// @Security BearerAuth
// @Router /terminals/{terminal_id}/shift/open [post]
func (h *shiftHandler) openShift(c *gin.Context) {
	logger := terminalLogger(c)
	var req dto.OpenShiftRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, logger, "OpenShift", err)
			return
		}
	}

	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	session, err := h.shiftService.OpenShift(c.Request.Context(), c.Param("terminal_id"), req, middleware.GetUserNameFromContext(c))
	if err != nil {
		respondError(c, logger, err, "Failed to open shift")
		return
	}
	logger.Info("Shift opened", slog.String("session_id", session.ID), slog.String("user_id", userID))
	c.JSON(http.StatusCreated, session)
}

// addSupply godoc
// @Summary Add a cash supply
// @Description Records cash added to the till during an active shift
// @Tags shifts
// @Accept  json
// @Produce  json
// @Param   terminal_id path string true "Terminal ID"
// @Param   supply body dto.TillMovementRequest true "Supply"
// @Success 201 {object} domain.FinancialTransaction
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "No active shift"
// @Failure 500 {object} map[string]string "Failed to record supply"
// @Security BearerAuth
// @Router /terminals/{terminal_id}/shift/supplies [post]
func (h *shiftHandler) addSupply(c *gin.Context) {
	logger := terminalLogger(c)
	var req dto.TillMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "AddSupply", err)
		return
	}

	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	txn, err := h.shiftService.AddSupply(c.Request.Context(), c.Param("terminal_id"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to record supply")
		return
	}
	c.JSON(http.StatusCreated, txn)
}

// addWithdrawal godoc
// @Summary Add a cash withdrawal
// @Description Records cash removed from the till (sangria) during an active shift
// @Tags shifts
// @Accept  json
// @Produce  json
// @Param   terminal_id path string true "Terminal ID"
// @Param   withdrawal body dto.TillMovementRequest true "Withdrawal"
// @Success 201 {object} domain.FinancialTransaction
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "No active shift"
// @Failure 500 {object} map[string]string "Failed to record withdrawal"
// @Security BearerAuth
// @Router /terminals/{terminal_id}/shift/withdrawals [post]
func (h *shiftHandler) addWithdrawal(c *gin.Context) {
	logger := terminalLogger(c)
	var req dto.TillMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "AddWithdrawal", err)
		return
	}

	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	txn, err := h.shiftService.AddWithdrawal(c.Request.Context(), c.Param("terminal_id"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to record withdrawal")
		return
	}
	c.JSON(http.StatusCreated, txn)
}

// pollTransactions godoc
// @Summary Poll the shift's transactions
// @Description Returns today's terminal transactions with a live cash breakdown. Poll again after pollAfterSeconds.
// @Tags shifts
// @Produce  json
// @Param   terminal_id path string true "Terminal ID"
// @Success 200 {object} dto.ShiftPollResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "No live shift"
// @Failure 500 {object} map[string]string "Failed to poll transactions"
// @Security BearerAuth
// @Router /terminals/{terminal_id}/shift/transactions [get]
func (h *shiftHandler) pollTransactions(c *gin.Context) {
	logger := terminalLogger(c)

	snapshot, err := h.shiftService.PollTransactions(c.Request.Context(), c.Param("terminal_id"))
	if err != nil {
		respondError(c, logger, err, "Failed to poll transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ShiftPollResponse{
		ShiftSnapshot:    *snapshot,
		PollAfterSeconds: int(h.shiftService.PollInterval().Seconds()),
	})
}

// confirmCount godoc
// @Summary Confirm the cash count
// @Description Moves an ACTIVE shift to CLOSING with the physically counted cash
// @Tags shifts
// @Accept  json
// @Produce  json
// @Param   terminal_id path string true "Terminal ID"
// @Param   count body dto.ConfirmCountRequest true "Counted cash"
// @Success 200 {object} domain.ShiftSession
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Shift is not active"
// @Failure 500 {object} map[string]string "Failed to confirm count"
// @Security BearerAuth
// @Router /terminals/{terminal_id}/shift/count [post]
func (h *shiftHandler) confirmCount(c *gin.Context) {
	logger := terminalLogger(c)
	var req dto.ConfirmCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "ConfirmCount", err)
		return
	}

	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	session, err := h.shiftService.ConfirmCount(c.Request.Context(), c.Param("terminal_id"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to confirm count")
		return
	}
	c.JSON(http.StatusOK, session)
}

// reopenCount godoc
// @Summary Reopen the cash count
// @Description Moves a CLOSING shift back to ACTIVE, discarding the count
// @Tags shifts
// @Produce  json
// @Param   terminal_id path string true "Terminal ID"
// @Success 200 {object} domain.ShiftSession
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Shift is not closing"
// @Failure 500 {object} map[string]string "Failed to reopen count"
// @Security BearerAuth
// @Router /terminals/{terminal_id}/shift/count/reopen [post]
func (h *shiftHandler) reopenCount(c *gin.Context) {
	logger := terminalLogger(c)

	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	session, err := h.shiftService.ReopenCount(c.Request.Context(), c.Param("terminal_id"), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to reopen count")
		return
	}
	c.JSON(http.StatusOK, session)
}

// closeReport godoc
// @Summary Get the closing report
// @Description Returns the full reconciliation of a CLOSING shift for review
// @Tags shifts
// @Produce  json
// @Param   terminal_id path string true "Terminal ID"
// @Success 200 {object} domain.ShiftReport
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Shift is not closing"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Security BearerAuth
// @Router /terminals/{terminal_id}/shift/report [get]
func (h *shiftHandler) closeReport(c *gin.Context) {
	logger := terminalLogger(c)

	report, err := h.shiftService.CloseReport(c.Request.Context(), c.Param("terminal_id"))
	if err != nil {
		respondError(c, logger, err, "Failed to build report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// commitClose godoc
// @Summary Close the shift
// @Description Records the cash audit and closes the shift. Safe to retry.
// @Tags shifts
// @Accept  json
// @Produce  json
// @Param   terminal_id path string true "Terminal ID"
// @Param   close body dto.CommitCloseRequest true "Reserve and notes"
// @Success 201 {object} domain.CashAudit
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Shift is not closing"
// @Failure 500 {object} map[string]string "Failed to close shift"
// @Security BearerAuth
// @Router /terminals/{terminal_id}/shift/close [post]
func (h *shiftHandler) commitClose(c *gin.Context) {
	logger := terminalLogger(c)
	var req dto.CommitCloseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "CommitClose", err)
		return
	}

	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	audit, err := h.shiftService.CommitClose(c.Request.Context(), c.Param("terminal_id"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to close shift")
		return
	}
	logger.Info("Shift closed", slog.String("audit_id", audit.ID))
	c.JSON(http.StatusCreated, audit)
}

// shiftHistory godoc
// @Summary List past closings
// @Description Returns the terminal's cash audits, newest first
// @Tags shifts
// @Produce  json
// @Param   terminal_id path string true "Terminal ID"
// @Param   limit query int false "Maximum entries (default 30)"
// @Success 200 {array} domain.CashAudit
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to load history"
// @Security BearerAuth
// @Router /terminals/{terminal_id}/shift/history [get]
func (h *shiftHandler) shiftHistory(c *gin.Context) {
	logger := terminalLogger(c)
	var query dto.ShiftHistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, logger, "ShiftHistory", err)
		return
	}

	audits, err := h.shiftService.ShiftHistory(c.Request.Context(), c.Param("terminal_id"), query.Limit)
	if err != nil {
		respondError(c, logger, err, "Failed to load history")
		return
	}
	c.JSON(http.StatusOK, audits)
}
