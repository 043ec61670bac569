package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/flowpay/flow_backend/internal/core/domain"
	portssvc "github.com/flowpay/flow_backend/internal/core/ports/services"
	"github.com/flowpay/flow_backend/internal/dto"
	"github.com/flowpay/flow_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles HTTP requests for the payment workflow.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// registerPaymentRoutes registers routes for the maker-checker payment flow.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.createDraft)
		payments.GET("", h.listPayments)
		payments.GET("/pending-approvals", h.listPendingApprovals)
		payments.GET("/:id", h.getPayment)
		payments.GET("/:id/approvals", h.getApprovals)
		payments.PATCH("/:id", h.updateDraft)
		payments.POST("/:id/quote", h.attachQuote)
		payments.POST("/:id/submit", h.submit)
		payments.POST("/:id/decision", h.decide)
		payments.POST("/:id/processing", h.markProcessing)
		payments.POST("/:id/outcome", h.reportOutcome)
		payments.POST("/:id/reopen", h.reopen)
	}
}

// createDraft godoc
// @Summary Create a draft payment
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body dto.CreateDraftRequest true "Draft details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) createDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindingError(c, logger, err)
		return
	}

	userID, companyID, ok := h.identity(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.CreateDraft(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Draft payment created", slog.String("payment_id", payment.PaymentID))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// updateDraft godoc
// @Summary Edit a draft payment
// @Description Applies a partial update; only fields present in the body change
// @Tags payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param payment body dto.UpdateDraftRequest true "Fields to change"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 409 {object} map[string]string "Payment is not a draft"
// @Security BearerAuth
// @Router /payments/{id} [patch]
func (h *paymentHandler) updateDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindingError(c, logger, err)
		return
	}

	userID, companyID, ok := h.identity(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.UpdateDraft(c.Request.Context(), companyID, c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// attachQuote godoc
// @Summary Attach a quote to a draft payment
// @Tags payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param body body dto.AttachQuoteRequest true "Quote reference"
// @Success 200 {object} dto.PaymentResponse
// @Failure 409 {object} map[string]string "Quote already in use or payment not a draft"
// @Failure 422 {object} map[string]string "Quote expired"
// @Security BearerAuth
// @Router /payments/{id}/quote [post]
func (h *paymentHandler) attachQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AttachQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindingError(c, logger, err)
		return
	}

	userID, companyID, ok := h.identity(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.AttachQuote(c.Request.Context(), companyID, c.Param("id"), req.QuoteID, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// submit godoc
// @Summary Submit a draft for approval
// @Description Freezes the converted amounts from the attached quote and moves the payment to PENDING_APPROVAL
// @Tags payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 422 {object} map[string]string "Quote expired; the payment stays in DRAFT"
// @Security BearerAuth
// @Router /payments/{id}/submit [post]
func (h *paymentHandler) submit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, companyID, ok := h.identity(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.Submit(c.Request.Context(), companyID, c.Param("id"), userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Payment submitted", slog.String("payment_id", payment.PaymentID))
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// decide godoc
// @Summary Approve or reject a pending payment
// @Description The decider must hold the approver or admin role and must not be the payment's maker
// @Tags payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param decision body dto.DecisionRequest true "Decision"
// @Success 200 {object} dto.PaymentResponse
// @Failure 403 {object} map[string]string "Self-approval or insufficient role"
// @Security BearerAuth
// @Router /payments/{id}/decision [post]
func (h *paymentHandler) decide(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindingError(c, logger, err)
		return
	}

	userID, companyID, ok := h.identity(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.Decide(c.Request.Context(), companyID, c.Param("id"), userID, domain.ApprovalAction(req.Action), req.Comment)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Payment decision recorded", slog.String("payment_id", payment.PaymentID), slog.String("status", string(payment.Status)))
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// markProcessing godoc
// @Summary Move an approved payment into processing
// @Tags payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Security BearerAuth
// @Router /payments/{id}/processing [post]
func (h *paymentHandler) markProcessing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := h.identity(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.MarkProcessing(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// reportOutcome godoc
// @Summary Report the execution result of a processing payment
// @Tags payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param outcome body dto.ExecutionOutcomeRequest true "Execution outcome"
// @Success 200 {object} dto.PaymentResponse
// @Security BearerAuth
// @Router /payments/{id}/outcome [post]
func (h *paymentHandler) reportOutcome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ExecutionOutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindingError(c, logger, err)
		return
	}

	_, companyID, ok := h.identity(c)
	if !ok {
		return
	}

	referenceOrReason := req.ExternalID
	if domain.ExecutionOutcome(req.Outcome) == domain.ExecutionFailed {
		referenceOrReason = req.FailureReason
	}

	payment, err := h.paymentService.ReportExecutionOutcome(c.Request.Context(), companyID, c.Param("id"), domain.ExecutionOutcome(req.Outcome), referenceOrReason)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Execution outcome recorded", slog.String("payment_id", payment.PaymentID), slog.String("status", string(payment.Status)))
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// reopen godoc
// @Summary Reopen a rejected payment as a draft
// @Tags payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 403 {object} map[string]string "Only the maker can reopen"
// @Security BearerAuth
// @Router /payments/{id}/reopen [post]
func (h *paymentHandler) reopen(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, companyID, ok := h.identity(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.ReopenRejected(c.Request.Context(), companyID, c.Param("id"), userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// getPayment godoc
// @Summary Get a payment
// @Tags payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} map[string]string "Payment not found"
// @Security BearerAuth
// @Router /payments/{id} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := h.identity(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// listPayments godoc
// @Summary List the company's payments
// @Tags payments
// @Produce json
// @Param status query string false "Filter by status"
// @Param limit query int false "Maximum rows"
// @Success 200 {array} dto.PaymentResponse
// @Security BearerAuth
// @Router /payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := h.identity(c)
	if !ok {
		return
	}

	var status *domain.PaymentStatus
	if v := c.Query("status"); v != "" {
		st := domain.PaymentStatus(v)
		status = &st
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	payments, err := h.paymentService.ListCompanyPayments(c.Request.Context(), companyID, status, limit)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponses(payments))
}

// listPendingApprovals godoc
// @Summary List payments awaiting a decision
// @Tags payments
// @Produce json
// @Param limit query int false "Maximum rows"
// @Success 200 {array} dto.PaymentResponse
// @Security BearerAuth
// @Router /payments/pending-approvals [get]
func (h *paymentHandler) listPendingApprovals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := h.identity(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	payments, err := h.paymentService.ListPendingApprovals(c.Request.Context(), companyID, limit)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponses(payments))
}

// getApprovals godoc
// @Summary Get a payment's decision history
// @Tags payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {array} dto.ApprovalResponse
// @Security BearerAuth
// @Router /payments/{id}/approvals [get]
func (h *paymentHandler) getApprovals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := h.identity(c)
	if !ok {
		return
	}

	approvals, err := h.paymentService.GetApprovals(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToApprovalResponses(approvals))
}

// identity pulls the authenticated user and company from the request context,
// responding 401 when either is missing.
func (h *paymentHandler) identity(c *gin.Context) (userID, companyID string, ok bool) {
	userID, uok := middleware.GetUserIDFromContext(c)
	companyID, cok := middleware.GetCompanyIDFromContext(c)
	if !uok || !cok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	return userID, companyID, true
}
