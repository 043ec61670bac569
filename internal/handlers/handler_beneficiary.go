package handlers

import (
	"net/http"

	portssvc "github.com/flowpay/flow_backend/internal/core/ports/services"
	"github.com/flowpay/flow_backend/internal/dto"
	"github.com/flowpay/flow_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// beneficiaryHandler handles HTTP requests for beneficiaries and their bank
// accounts.
type beneficiaryHandler struct {
	beneficiaryService portssvc.BeneficiarySvcFacade
}

func newBeneficiaryHandler(bs portssvc.BeneficiarySvcFacade) *beneficiaryHandler {
	return &beneficiaryHandler{beneficiaryService: bs}
}

// registerBeneficiaryRoutes registers beneficiary and bank account routes.
func registerBeneficiaryRoutes(rg *gin.RouterGroup, beneficiaryService portssvc.BeneficiarySvcFacade) {
	h := newBeneficiaryHandler(beneficiaryService)

	beneficiaries := rg.Group("/beneficiaries")
	{
		beneficiaries.POST("", h.createBeneficiary)
		beneficiaries.GET("", h.listBeneficiaries)
		beneficiaries.GET("/:id", h.getBeneficiary)
		beneficiaries.PATCH("/:id", h.updateBeneficiary)
		beneficiaries.POST("/:id/enable", h.enableBeneficiary)
		beneficiaries.POST("/:id/disable", h.disableBeneficiary)
		beneficiaries.POST("/:id/bank-accounts", h.addBankAccount)
		beneficiaries.GET("/:id/bank-accounts", h.listBankAccounts)
	}

	bankAccounts := rg.Group("/bank-accounts")
	{
		bankAccounts.DELETE("/:id", h.deleteBankAccount)
		bankAccounts.POST("/:id/default", h.setDefaultBankAccount)
	}
}

// createBeneficiary godoc
// @Summary Create a beneficiary
// @Tags beneficiaries
// @Accept json
// @Produce json
// @Param beneficiary body dto.CreateBeneficiaryRequest true "Beneficiary details"
// @Success 201 {object} dto.BeneficiaryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Security BearerAuth
// @Router /beneficiaries [post]
func (h *beneficiaryHandler) createBeneficiary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBeneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindingError(c, logger, err)
		return
	}

	userID, companyID, ok := h.identity(c)
	if !ok {
		return
	}

	beneficiary, err := h.beneficiaryService.CreateBeneficiary(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToBeneficiaryResponse(beneficiary))
}

// listBeneficiaries godoc
// @Summary List the company's beneficiaries
// @Tags beneficiaries
// @Produce json
// @Param includeInactive query bool false "Include disabled beneficiaries"
// @Success 200 {array} dto.BeneficiaryResponse
// @Security BearerAuth
// @Router /beneficiaries [get]
func (h *beneficiaryHandler) listBeneficiaries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	items, err := h.beneficiaryService.ListCompanyBeneficiaries(c.Request.Context(), companyID, c.Query("includeInactive") == "true")
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBeneficiaryResponses(items))
}

// getBeneficiary godoc
// @Summary Get a beneficiary
// @Tags beneficiaries
// @Produce json
// @Param id path string true "Beneficiary ID"
// @Success 200 {object} dto.BeneficiaryResponse
// @Failure 404 {object} map[string]string "Beneficiary not found"
// @Security BearerAuth
// @Router /beneficiaries/{id} [get]
func (h *beneficiaryHandler) getBeneficiary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := h.identity(c)
	if !ok {
		return
	}

	beneficiary, err := h.beneficiaryService.GetBeneficiary(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBeneficiaryResponse(beneficiary))
}

// updateBeneficiary godoc
// @Summary Edit a beneficiary
// @Tags beneficiaries
// @Accept json
// @Produce json
// @Param id path string true "Beneficiary ID"
// @Param beneficiary body dto.UpdateBeneficiaryRequest true "Fields to change"
// @Success 200 {object} dto.BeneficiaryResponse
// @Security BearerAuth
// @Router /beneficiaries/{id} [patch]
func (h *beneficiaryHandler) updateBeneficiary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateBeneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindingError(c, logger, err)
		return
	}

	userID, companyID, ok := h.identity(c)
	if !ok {
		return
	}

	beneficiary, err := h.beneficiaryService.UpdateBeneficiary(c.Request.Context(), companyID, c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBeneficiaryResponse(beneficiary))
}

func (h *beneficiaryHandler) enableBeneficiary(c *gin.Context) {
	h.setActive(c, true)
}

func (h *beneficiaryHandler) disableBeneficiary(c *gin.Context) {
	h.setActive(c, false)
}

func (h *beneficiaryHandler) setActive(c *gin.Context, active bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, companyID, ok := h.identity(c)
	if !ok {
		return
	}

	if err := h.beneficiaryService.SetBeneficiaryActive(c.Request.Context(), companyID, c.Param("id"), active, userID); err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// addBankAccount godoc
// @Summary Add a receiving bank account to a beneficiary
// @Description Validates IBAN (mod-97) and SWIFT/BIC before storing the normalized values
// @Tags beneficiaries
// @Accept json
// @Produce json
// @Param id path string true "Beneficiary ID"
// @Param account body dto.AddBankAccountRequest true "Account details"
// @Success 201 {object} dto.BankAccountResponse
// @Failure 400 {object} map[string]string "Invalid IBAN, SWIFT or currency"
// @Security BearerAuth
// @Router /beneficiaries/{id}/bank-accounts [post]
func (h *beneficiaryHandler) addBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AddBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindingError(c, logger, err)
		return
	}

	userID, companyID, ok := h.identity(c)
	if !ok {
		return
	}

	account, err := h.beneficiaryService.AddBankAccount(c.Request.Context(), companyID, c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(account))
}

// listBankAccounts godoc
// @Summary List a beneficiary's bank accounts
// @Tags beneficiaries
// @Produce json
// @Param id path string true "Beneficiary ID"
// @Success 200 {array} dto.BankAccountResponse
// @Security BearerAuth
// @Router /beneficiaries/{id}/bank-accounts [get]
func (h *beneficiaryHandler) listBankAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := h.identity(c)
	if !ok {
		return
	}

	accounts, err := h.beneficiaryService.ListBankAccounts(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBankAccountResponses(accounts))
}

// deleteBankAccount godoc
// @Summary Delete a bank account
// @Tags beneficiaries
// @Param id path string true "Bank account ID"
// @Success 204
// @Security BearerAuth
// @Router /bank-accounts/{id} [delete]
func (h *beneficiaryHandler) deleteBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, companyID, ok := h.identity(c)
	if !ok {
		return
	}

	if err := h.beneficiaryService.DeleteBankAccount(c.Request.Context(), companyID, c.Param("id"), userID); err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// setDefaultBankAccount godoc
// @Summary Make a bank account the beneficiary's default
// @Tags beneficiaries
// @Produce json
// @Param id path string true "Bank account ID"
// @Success 200 {object} dto.BankAccountResponse
// @Security BearerAuth
// @Router /bank-accounts/{id}/default [post]
func (h *beneficiaryHandler) setDefaultBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, companyID, ok := h.identity(c)
	if !ok {
		return
	}

	account, err := h.beneficiaryService.SetDefaultBankAccount(c.Request.Context(), companyID, c.Param("id"), userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

// identity pulls the authenticated user and company from the request context,
// responding 401 when either is missing.
func (h *beneficiaryHandler) identity(c *gin.Context) (userID, companyID string, ok bool) {
	userID, uok := middleware.GetUserIDFromContext(c)
	companyID, cok := middleware.GetCompanyIDFromContext(c)
	if !uok || !cok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	return userID, companyID, true
}
