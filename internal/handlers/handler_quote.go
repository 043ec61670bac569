package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	portssvc "github.com/flowpay/flow_backend/internal/core/ports/services"
	"github.com/flowpay/flow_backend/internal/dto"
	"github.com/flowpay/flow_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// quoteHandler handles HTTP requests related to FX rates and quotes.
type quoteHandler struct {
	quoteService portssvc.QuoteSvcFacade
}

func newQuoteHandler(qs portssvc.QuoteSvcFacade) *quoteHandler {
	return &quoteHandler{quoteService: qs}
}

// registerQuoteRoutes registers rate and quote routes. Quote creation hits the
// upstream provider, so it takes the tighter limiter.
func registerQuoteRoutes(rg *gin.RouterGroup, quoteService portssvc.QuoteSvcFacade, quoteLimiter gin.HandlerFunc) {
	h := newQuoteHandler(quoteService)

	rates := rg.Group("/rates")
	{
		rates.GET("/currencies", h.listCurrencies)
		rates.GET("/:from/:to", h.getRate)
	}

	quotes := rg.Group("/quotes")
	{
		quotes.POST("", quoteLimiter, h.requestQuote)
		quotes.GET("", h.listQuotes)
		quotes.GET("/statistics", h.getStatistics)
		quotes.GET("/:id", h.getQuote)
		quotes.GET("/:id/breakdown", h.getBreakdown)
	}
}

// getRate godoc
// @Summary Get the current raw exchange rate
// @Description Retrieves the provider's live rate for a currency pair, before markup
// @Tags rates
// @Produce json
// @Param from path string true "Source currency code (3 letters)"
// @Param to path string true "Target currency code (3 letters)"
// @Success 200 {object} dto.RateResponse
// @Failure 400 {object} map[string]string "Invalid or unsupported currency code"
// @Failure 503 {object} map[string]string "Rate provider unavailable"
// @Security BearerAuth
// @Router /rates/{from}/{to} [get]
func (h *quoteHandler) getRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rate, err := h.quoteService.GetRate(c.Request.Context(), c.Param("from"), c.Param("to"))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRateResponse(rate))
}

// listCurrencies godoc
// @Summary List supported currencies
// @Tags rates
// @Produce json
// @Success 200 {object} map[string][]string
// @Security BearerAuth
// @Router /rates/currencies [get]
func (h *quoteHandler) listCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"currencies": h.quoteService.SupportedCurrencies()})
}

// requestQuote godoc
// @Summary Request a fixed FX quote
// @Description Locks the current rate plus markup for the configured validity window
// @Tags quotes
// @Accept json
// @Produce json
// @Param quote body dto.RequestQuoteRequest true "Quote details"
// @Success 201 {object} dto.QuoteResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Rate provider unavailable"
// @Security BearerAuth
// @Router /quotes [post]
func (h *quoteHandler) requestQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RequestQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindingError(c, logger, err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received quote request",
		slog.String("source", req.SourceCurrency),
		slog.String("target", req.TargetCurrency),
		slog.String("amount", req.Amount.String()),
	)

	quote, err := h.quoteService.RequestQuote(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	remaining := h.quoteService.TimeRemaining(quote, time.Now())
	c.JSON(http.StatusCreated, dto.ToQuoteResponse(quote, remaining))
}

// getQuote godoc
// @Summary Get a quote
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} map[string]string "Quote not found"
// @Security BearerAuth
// @Router /quotes/{id} [get]
func (h *quoteHandler) getQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	quote, err := h.quoteService.GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	if !h.forCompany(c, quote.CompanyID) {
		return
	}

	remaining := h.quoteService.TimeRemaining(quote, time.Now())
	c.JSON(http.StatusOK, dto.ToQuoteResponse(quote, remaining))
}

// getBreakdown godoc
// @Summary Get a quote's rate breakdown
// @Description Decomposes the quote into base rate, markup and inverse rate
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} domain.RateBreakdown
// @Failure 404 {object} map[string]string "Quote not found"
// @Security BearerAuth
// @Router /quotes/{id}/breakdown [get]
func (h *quoteHandler) getBreakdown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	quote, err := h.quoteService.GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	if !h.forCompany(c, quote.CompanyID) {
		return
	}

	c.JSON(http.StatusOK, h.quoteService.RateBreakdown(quote))
}

// listQuotes godoc
// @Summary List the company's quotes
// @Description active=true returns only currently usable quotes; otherwise history, newest first
// @Tags quotes
// @Produce json
// @Param active query bool false "Only currently usable quotes"
// @Param includeExpired query bool false "Include expired quotes in history"
// @Param limit query int false "Maximum rows"
// @Success 200 {array} dto.QuoteResponse
// @Security BearerAuth
// @Router /quotes [get]
func (h *quoteHandler) listQuotes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var (
		quotes []dto.QuoteResponse
		now    = time.Now()
	)

	if c.Query("active") == "true" {
		var source, target *string
		if v := c.Query("sourceCurrency"); v != "" {
			source = &v
		}
		if v := c.Query("targetCurrency"); v != "" {
			target = &v
		}
		items, err := h.quoteService.GetActiveQuotes(c.Request.Context(), companyID, source, target)
		if err != nil {
			respondWithError(c, logger, err)
			return
		}
		quotes = make([]dto.QuoteResponse, len(items))
		for i := range items {
			quotes[i] = dto.ToQuoteResponse(&items[i], h.quoteService.TimeRemaining(&items[i], now))
		}
		c.JSON(http.StatusOK, quotes)
		return
	}

	includeExpired := c.Query("includeExpired") == "true"
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := h.quoteService.GetCompanyQuotes(c.Request.Context(), companyID, includeExpired, limit)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	quotes = make([]dto.QuoteResponse, len(items))
	for i := range items {
		quotes[i] = dto.ToQuoteResponse(&items[i], h.quoteService.TimeRemaining(&items[i], now))
	}
	c.JSON(http.StatusOK, quotes)
}

// getStatistics godoc
// @Summary Get quote activity statistics
// @Tags quotes
// @Produce json
// @Param windowDays query int false "Trailing window in days (default 30)"
// @Success 200 {object} domain.QuoteStatistics
// @Security BearerAuth
// @Router /quotes/statistics [get]
func (h *quoteHandler) getStatistics(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	windowDays, _ := strconv.Atoi(c.DefaultQuery("windowDays", "30"))
	stats, err := h.quoteService.GetQuoteStatistics(c.Request.Context(), companyID, windowDays)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// forCompany rejects cross-company access to a quote. Returns false after
// writing the response when the caller's company does not own the resource.
func (h *quoteHandler) forCompany(c *gin.Context, ownerCompanyID string) bool {
	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok || companyID != ownerCompanyID {
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
		return false
	}
	return true
}
