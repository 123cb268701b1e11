package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/placement_ledger/internal/core/ports/services"
	"github.com/SscSPs/placement_ledger/internal/dto"
	"github.com/SscSPs/placement_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler serves posted journals. Journals are only ever written by
// business events, so there is no create route.
type journalHandler struct {
	journalService portssvc.JournalReaderSvc
}

func newJournalHandler(journalService portssvc.JournalReaderSvc) *journalHandler {
	return &journalHandler{journalService: journalService}
}

// registerJournalRoutes registers journal specific routes
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalReaderSvc) {
	h := newJournalHandler(journalService)

	rg.GET("/journals/:journalID", h.getJournal)
	rg.GET("/companies/:companyID/journals", h.listJournals)
}

// getJournal godoc
// @Summary Get a journal by ID
// @Description Retrieves a posted journal with its lines
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal"
// @Security BearerAuth
// @Router /journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), journalID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve journal")
		return
	}

	logger.Debug("Journal retrieved successfully", slog.String("journal_id", journalID))
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// listJournals godoc
// @Summary List a company's journals
// @Description Newest first, paginated with an opaque token
// @Tags journals
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   limit query int false "Page size (max 100)" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 404 {object} map[string]string "Company not found"
// @Security BearerAuth
// @Router /companies/{companyID}/journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for ListJournals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListJournals(c.Request.Context(), companyID, params)
	if err != nil {
		respondWithError(c, err, "Failed to list journals")
		return
	}
	c.JSON(http.StatusOK, resp)
}
