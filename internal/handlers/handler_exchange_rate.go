package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/placement_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/placement_ledger/internal/core/ports/services"
	"github.com/SscSPs/placement_ledger/internal/dto"
	"github.com/SscSPs/placement_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const dateLayout = time.DateOnly

// exchangeRateHandler handles HTTP requests related to exchange rates and conversions.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
	converter           portssvc.CurrencyConverterSvc
	now                 func() time.Time
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade, conv portssvc.CurrencyConverterSvc) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
		converter:           conv,
		now:                 time.Now,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade, converter portssvc.CurrencyConverterSvc) {
	h := newExchangeRateHandler(exchangeRateService, converter)

	rates := rg.Group("/exchange-rates")
	{
		rates.POST("", h.createExchangeRate)
		rates.GET("/:from/:to", h.getExchangeRate)
		rates.GET("/:from/:to/history", h.listExchangeRates)
	}
	rg.GET("/convert", h.convert)
}

// parseDateParam parses an optional YYYY-MM-DD value, defaulting to today.
func parseDateParam(value string, now func() time.Time) (time.Time, error) {
	if value == "" {
		return domain.DateOnly(now()), nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// createExchangeRate godoc
// @Summary Create a new exchange rate
// @Description Records the rate of one currency pair effective from a date. One rate per pair and date.
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.CreateExchangeRateRequest true "Exchange Rate details"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Rate already recorded for this pair and date"
// @Failure 500 {object} map[string]string "Failed to create exchange rate"
// @Security BearerAuth
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExchangeRateRequest
	if !bindJSON(c, &req) {
		return
	}

	creatorUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	logger = logger.With(
		slog.String("creator_user_id", creatorUserID),
		slog.String("from_code", req.FromCurrencyCode),
		slog.String("to_code", req.ToCurrencyCode),
	)
	logger.Info("Received request to create exchange rate")

	rate, err := h.exchangeRateService.CreateExchangeRate(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWithError(c, err, "Failed to create exchange rate")
		return
	}

	logger.Info("Exchange rate created successfully", slog.String("exchange_rate_id", rate.ExchangeRateID))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// getExchangeRate godoc
// @Summary Get an exchange rate
// @Description Retrieves the rate in force for a currency pair on a date: the latest one effective on or before it
// @Tags exchange rates
// @Produce  json
// @Param   from path string true "From Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Param   to   path string true "To Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Param   asOf query string false "Date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid currency code or date format"
// @Failure 404 {object} map[string]string "Exchange rate not found"
// @Failure 500 {object} map[string]string "Failed to retrieve exchange rate"
// @Security BearerAuth
// @Router /exchange-rates/{from}/{to} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fromCode := strings.ToUpper(c.Param("from"))
	toCode := strings.ToUpper(c.Param("to"))

	if len(fromCode) != 3 || len(toCode) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency codes must be 3 letters"})
		return
	}

	asOf, err := parseDateParam(c.Query("asOf"), h.now)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date format, use YYYY-MM-DD"})
		return
	}

	logger = logger.With(slog.String("from_code", fromCode), slog.String("to_code", toCode))
	logger.Info("Received request to get exchange rate", slog.String("as_of", asOf.Format(dateLayout)))

	rate, err := h.exchangeRateService.GetRateAsOf(c.Request.Context(), fromCode, toCode, asOf)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve exchange rate")
		return
	}

	logger.Info("Exchange rate retrieved successfully")
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// listExchangeRates godoc
// @Summary List the rate history of a currency pair
// @Tags exchange rates
// @Produce  json
// @Param   from path string true "From Currency Code (3 letters)"
// @Param   to   path string true "To Currency Code (3 letters)"
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 500 {object} map[string]string "Failed to list exchange rates"
// @Security BearerAuth
// @Router /exchange-rates/{from}/{to}/history [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	fromCode := strings.ToUpper(c.Param("from"))
	toCode := strings.ToUpper(c.Param("to"))

	rates, err := h.exchangeRateService.ListExchangeRates(c.Request.Context(), fromCode, toCode)
	if err != nil {
		respondWithError(c, err, "Failed to list exchange rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Strict conversions fail when no rate exists; lenient ones return the amount unconverted and flagged.
// @Tags exchange rates
// @Produce  json
// @Param   amount query string true "Amount"
// @Param   from   query string true "From Currency Code"
// @Param   to     query string true "To Currency Code"
// @Param   date   query string false "Date (YYYY-MM-DD)" default(current date)
// @Param   policy query string false "strict or lenient" default(strict)
// @Success 200 {object} domain.Conversion
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "No rate available"
// @Security BearerAuth
// @Router /convert [get]
func (h *exchangeRateHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ConvertParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	amount, err := decimal.NewFromString(params.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}
	asOf, err := parseDateParam(params.Date, h.now)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, use YYYY-MM-DD"})
		return
	}
	policy := domain.PolicyStrict
	if params.Policy == string(domain.PolicyLenient) {
		policy = domain.PolicyLenient
	}

	conversion, err := h.converter.Convert(c.Request.Context(), amount,
		strings.ToUpper(params.From), strings.ToUpper(params.To), asOf, policy)
	if err != nil {
		respondWithError(c, err, "Failed to convert amount")
		return
	}
	c.JSON(http.StatusOK, conversion)
}
