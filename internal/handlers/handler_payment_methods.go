package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/pdv_backoffice/internal/core/ports/services"
	"github.com/SscSPs/pdv_backoffice/internal/dto"
	"github.com/SscSPs/pdv_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentMethodHandler handles the card and PIX fee settings.
type paymentMethodHandler struct {
	paymentMethodService portssvc.PaymentMethodSvcFacade
}

func newPaymentMethodHandler(ps portssvc.PaymentMethodSvcFacade) *paymentMethodHandler {
	return &paymentMethodHandler{paymentMethodService: ps}
}

// RegisterPaymentMethodRoutes registers routes related to payment methods.
func RegisterPaymentMethodRoutes(rg *gin.RouterGroup, paymentMethodService portssvc.PaymentMethodSvcFacade) {
	h := newPaymentMethodHandler(paymentMethodService)

	methods := rg.Group("/payment-methods")
	{
		methods.POST("", h.createPaymentMethod)
		methods.GET("", h.listPaymentMethods)
		methods.GET("/:id", h.getPaymentMethod)
		methods.PUT("/:id", h.updatePaymentMethod)
		methods.DELETE("/:id", h.deletePaymentMethod)
	}
}

// activeOnly reads the ?active= flag; anything but "true" lists everything.
func activeOnly(c *gin.Context) bool {
	v, err := strconv.ParseBool(c.Query("active"))
	return err == nil && v
}

// createPaymentMethod godoc
// @Summary Create a payment method
// @Tags payment-methods
// @Accept  json
// @Produce  json
// @Param   method body dto.CreatePaymentMethodRequest true "Payment method"
// @Success 201 {object} domain.PaymentMethod
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create payment method"
// @Security BearerAuth
// @Router /payment-methods [post]
func (h *paymentMethodHandler) createPaymentMethod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "CreatePaymentMethod", err)
		return
	}

	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	method, err := h.paymentMethodService.CreatePaymentMethod(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create payment method")
		return
	}
	logger.Info("Payment method created", slog.String("payment_method_id", method.ID))
	c.JSON(http.StatusCreated, method)
}

// listPaymentMethods godoc
// @Summary List payment methods
// @Tags payment-methods
// @Produce  json
// @Param   active query bool false "Only active methods"
// @Success 200 {array} domain.PaymentMethod
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list payment methods"
// @Security BearerAuth
// @Router /payment-methods [get]
func (h *paymentMethodHandler) listPaymentMethods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	methods, err := h.paymentMethodService.ListPaymentMethods(c.Request.Context(), activeOnly(c))
	if err != nil {
		respondError(c, logger, err, "Failed to list payment methods")
		return
	}
	c.JSON(http.StatusOK, methods)
}

// getPaymentMethod godoc
// @Summary Get a payment method
// @Tags payment-methods
// @Produce  json
// @Param   id path string true "Payment method ID"
// @Success 200 {object} domain.PaymentMethod
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Payment method not found"
// @Failure 500 {object} map[string]string "Failed to retrieve payment method"
// @Security BearerAuth
// @Router /payment-methods/{id} [get]
func (h *paymentMethodHandler) getPaymentMethod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	method, err := h.paymentMethodService.GetPaymentMethod(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve payment method")
		return
	}
	c.JSON(http.StatusOK, method)
}

// updatePaymentMethod godoc
// @Summary Update a payment method
// @Tags payment-methods
// @Accept  json
// @Produce  json
// @Param   id path string true "Payment method ID"
// @Param   method body dto.UpdatePaymentMethodRequest true "Fields to change"
// @Success 200 {object} domain.PaymentMethod
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Payment method not found"
// @Failure 500 {object} map[string]string "Failed to update payment method"
// @Security BearerAuth
// @Router /payment-methods/{id} [put]
func (h *paymentMethodHandler) updatePaymentMethod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "UpdatePaymentMethod", err)
		return
	}

	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	method, err := h.paymentMethodService.UpdatePaymentMethod(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update payment method")
		return
	}
	c.JSON(http.StatusOK, method)
}

// deletePaymentMethod godoc
// @Summary Delete a payment method
// @Tags payment-methods
// @Param   id path string true "Payment method ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Payment method not found"
// @Failure 500 {object} map[string]string "Failed to delete payment method"
// @Security BearerAuth
// @Router /payment-methods/{id} [delete]
func (h *paymentMethodHandler) deletePaymentMethod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.paymentMethodService.DeletePaymentMethod(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to delete payment method")
		return
	}
	c.Status(http.StatusNoContent)
}
