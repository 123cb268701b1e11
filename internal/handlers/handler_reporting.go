package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/placement_ledger/internal/core/ports/services"
	"github.com/SscSPs/placement_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	rg.GET("/companies/:companyID/trial-balance", h.getTrialBalance)
	rg.GET("/candidates/:candidateID/profitability", h.getCandidateProfitability)
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Sums every posted line of the company per account, in the base currency
// @Tags reports
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 200 {object} domain.TrialBalance
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /companies/{companyID}/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	report, err := h.reportingService.TrialBalance(c.Request.Context(), companyID)
	if err != nil {
		respondWithError(c, err, "Failed to generate trial balance")
		return
	}

	logger.Info("Trial balance generated", slog.String("company_id", companyID), slog.Int("accounts", len(report.Rows)))
	c.JSON(http.StatusOK, report)
}

// getCandidateProfitability godoc
// @Summary Candidate profitability
// @Description Compares the placement fee with the candidate's costs. Amounts without a rate are included unconverted and flagged.
// @Tags reports
// @Produce json
// @Param candidateID path string true "Candidate ID"
// @Success 200 {object} domain.CandidateProfitability
// @Failure 404 {object} map[string]string "Candidate not found"
// @Security BearerAuth
// @Router /candidates/{candidateID}/profitability [get]
func (h *reportingHandler) getCandidateProfitability(c *gin.Context) {
	candidateID := c.Param("candidateID")

	report, err := h.reportingService.CandidateProfitability(c.Request.Context(), candidateID)
	if err != nil {
		respondWithError(c, err, "Failed to compute profitability")
		return
	}
	c.JSON(http.StatusOK, report)
}
