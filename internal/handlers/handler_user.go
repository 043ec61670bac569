package handlers

import (
	"net/http"
	"strconv"

	portssvc "github.com/flowpay/flow_backend/internal/core/ports/services"
	"github.com/flowpay/flow_backend/internal/dto"
	"github.com/flowpay/flow_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests for users and the audit trail.
type userHandler struct {
	userService  portssvc.UserSvcFacade
	auditService portssvc.AuditSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade, as portssvc.AuditSvcFacade) *userHandler {
	return &userHandler{userService: us, auditService: as}
}

// registerUserRoutes registers user and audit trail routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, auditService portssvc.AuditSvcFacade) {
	h := newUserHandler(userService, auditService)

	users := rg.Group("/users")
	{
		users.POST("", h.createUser)
		users.GET("/:id", h.getUser)
	}

	companies := rg.Group("/companies")
	{
		companies.POST("", h.createCompany)
		companies.GET("/me", h.getOwnCompany)
	}

	rg.GET("/audit/:entityType/:entityID", h.listAuditEntries)
}

// createUser godoc
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 409 {object} map[string]string "Email already registered"
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindingError(c, logger, err)
		return
	}

	creatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req, creatorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// getUser godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok || companyID != user.CompanyID {
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// createCompany godoc
// @Summary Register a company
// @Tags companies
// @Accept json
// @Produce json
// @Param company body dto.CreateCompanyRequest true "Company details"
// @Success 201 {object} dto.CompanyResponse
// @Security BearerAuth
// @Router /companies [post]
func (h *userHandler) createCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindingError(c, logger, err)
		return
	}

	creatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	company, err := h.userService.CreateCompany(c.Request.Context(), req, creatorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCompanyResponse(company))
}

// getOwnCompany godoc
// @Summary Get the authenticated user's company
// @Tags companies
// @Produce json
// @Success 200 {object} dto.CompanyResponse
// @Failure 404 {object} map[string]string "Company not found"
// @Security BearerAuth
// @Router /companies/me [get]
func (h *userHandler) getOwnCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	company, err := h.userService.GetCompany(c.Request.Context(), companyID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// listAuditEntries godoc
// @Summary List the audit trail for an entity
// @Description Returns recorded actions newest first
// @Tags audit
// @Produce json
// @Param entityType path string true "Entity type (payment, quote, beneficiary, ...)"
// @Param entityID path string true "Entity ID"
// @Param limit query int false "Maximum entries to return" default(100)
// @Success 200 {array} dto.AuditEntryResponse
// @Security BearerAuth
// @Router /audit/{entityType}/{entityID} [get]
func (h *userHandler) listAuditEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	entries, err := h.auditService.ListByEntity(c.Request.Context(), c.Param("entityType"), c.Param("entityID"), limit)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAuditEntryResponses(entries))
}
