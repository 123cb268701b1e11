package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/placement_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/placement_ledger/internal/core/ports/services"
	"github.com/SscSPs/placement_ledger/internal/dto"
	"github.com/SscSPs/placement_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// recruitmentHandler handles job orders, candidates, their costs and stage moves.
type recruitmentHandler struct {
	recruitmentService portssvc.RecruitmentSvcFacade
	postingService     portssvc.PostingSvcFacade
	bulkService        portssvc.BulkSvc
}

// registerRecruitmentRoutes registers job order and candidate routes.
func registerRecruitmentRoutes(
	rg *gin.RouterGroup,
	recruitmentService portssvc.RecruitmentSvcFacade,
	postingService portssvc.PostingSvcFacade,
	bulkService portssvc.BulkSvc,
) {
	h := &recruitmentHandler{
		recruitmentService: recruitmentService,
		postingService:     postingService,
		bulkService:        bulkService,
	}

	jobOrders := rg.Group("/job-orders")
	{
		jobOrders.POST("", h.createJobOrder)
		jobOrders.GET("/:jobOrderID", h.getJobOrder)
	}

	candidates := rg.Group("/candidates")
	{
		candidates.POST("", h.createCandidate)
		candidates.POST("/bulk/stage", h.bulkMoveStage)
		candidates.POST("/bulk/costs", h.bulkAddCost)
		candidates.GET("/:candidateID", h.getCandidate)
		candidates.GET("/:candidateID/costs", h.listCosts)
		candidates.POST("/:candidateID/costs", h.recordCost)
		candidates.PUT("/:candidateID/stage", h.moveStage)
		candidates.GET("/:candidateID/stage-history", h.getStageHistory)
		candidates.POST("/:candidateID/deployment-journal", h.postDeploymentJournal)
	}

	rg.POST("/costs/:costID/journal", h.postCostJournal)
}

// createJobOrder godoc
// @Summary Open a job order
// @Tags recruitment
// @Accept  json
// @Produce  json
// @Param   jobOrder body dto.CreateJobOrderRequest true "Job order"
// @Success 201 {object} domain.JobOrder
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Company not found"
// @Security BearerAuth
// @Router /job-orders [post]
func (h *recruitmentHandler) createJobOrder(c *gin.Context) {
	var req dto.CreateJobOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	jobOrder, err := h.recruitmentService.CreateJobOrder(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create job order")
		return
	}
	c.JSON(http.StatusCreated, jobOrder)
}

// getJobOrder godoc
// @Summary Get a job order
// @Tags recruitment
// @Produce  json
// @Param   jobOrderID path string true "Job order ID"
// @Success 200 {object} domain.JobOrder
// @Failure 404 {object} map[string]string "Job order not found"
// @Security BearerAuth
// @Router /job-orders/{jobOrderID} [get]
func (h *recruitmentHandler) getJobOrder(c *gin.Context) {
	jobOrder, err := h.recruitmentService.GetJobOrder(c.Request.Context(), c.Param("jobOrderID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve job order")
		return
	}
	c.JSON(http.StatusOK, jobOrder)
}

// createCandidate godoc
// @Summary Add a candidate to a job order
// @Tags recruitment
// @Accept  json
// @Produce  json
// @Param   candidate body dto.CreateCandidateRequest true "Candidate"
// @Success 201 {object} domain.Candidate
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /candidates [post]
func (h *recruitmentHandler) createCandidate(c *gin.Context) {
	var req dto.CreateCandidateRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	candidate, err := h.recruitmentService.CreateCandidate(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create candidate")
		return
	}
	c.JSON(http.StatusCreated, candidate)
}

// getCandidate godoc
// @Summary Get a candidate
// @Tags recruitment
// @Produce  json
// @Param   candidateID path string true "Candidate ID"
// @Success 200 {object} domain.Candidate
// @Failure 404 {object} map[string]string "Candidate not found"
// @Security BearerAuth
// @Router /candidates/{candidateID} [get]
func (h *recruitmentHandler) getCandidate(c *gin.Context) {
	candidate, err := h.recruitmentService.GetCandidate(c.Request.Context(), c.Param("candidateID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve candidate")
		return
	}
	c.JSON(http.StatusOK, candidate)
}

// listCosts godoc
// @Summary List a candidate's costs
// @Tags recruitment
// @Produce  json
// @Param   candidateID path string true "Candidate ID"
// @Success 200 {array} domain.CandidateCost
// @Failure 404 {object} map[string]string "Candidate not found"
// @Security BearerAuth
// @Router /candidates/{candidateID}/costs [get]
func (h *recruitmentHandler) listCosts(c *gin.Context) {
	costs, err := h.recruitmentService.ListCandidateCosts(c.Request.Context(), c.Param("candidateID"))
	if err != nil {
		respondWithError(c, err, "Failed to list costs")
		return
	}
	c.JSON(http.StatusOK, costs)
}

// recordCost godoc
// @Summary Record a candidate cost
// @Description Stores the cost and posts Dr WIP / Cr AP at the incurred-date rate in one transaction.
// @Tags recruitment
// @Accept  json
// @Produce  json
// @Param   candidateID path string true "Candidate ID"
// @Param   cost body dto.CostInput true "Cost"
// @Success 201 {object} dto.RecordCostResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "No exchange rate for the incurred date"
// @Security BearerAuth
// @Router /candidates/{candidateID}/costs [post]
func (h *recruitmentHandler) recordCost(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordCostRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	req.CandidateID = c.Param("candidateID")

	cost, journal, err := h.postingService.RecordCost(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to record cost")
		return
	}

	logger.Info("Cost recorded", slog.String("cost_id", cost.CostID), slog.String("candidate_id", req.CandidateID))
	c.JSON(http.StatusCreated, dto.RecordCostResponse{Cost: *cost, Journal: dto.ToJournalResponsePtr(journal)})
}

// postCostJournal godoc
// @Summary Post an existing cost
// @Tags recruitment
// @Produce  json
// @Param   costID path string true "Cost ID"
// @Success 201 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Cost not found"
// @Failure 409 {object} map[string]string "Cost already posted"
// @Security BearerAuth
// @Router /costs/{costID}/journal [post]
func (h *recruitmentHandler) postCostJournal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	journal, err := h.postingService.PostCostJournal(c.Request.Context(), c.Param("costID"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to post cost")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// moveStage godoc
// @Summary Move a candidate to a stage
// @Description The first move into DEPLOYED recognises revenue and moves WIP to COGS in the same transaction.
// @Tags recruitment
// @Accept  json
// @Produce  json
// @Param   candidateID path string true "Candidate ID"
// @Param   stage body dto.MoveStageRequest true "Target stage"
// @Success 200 {object} domain.StageChange
// @Failure 400 {object} map[string]string "Unknown stage"
// @Failure 422 {object} map[string]string "No exchange rate"
// @Security BearerAuth
// @Router /candidates/{candidateID}/stage [put]
func (h *recruitmentHandler) moveStage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.MoveStageRequest
	if !bindJSON(c, &req) {
		return
	}
	stage, valid := domain.ParseStage(req.Stage)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown stage " + req.Stage})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	candidateID := c.Param("candidateID")

	change, err := h.postingService.MoveStage(c.Request.Context(), candidateID, stage, userID)
	if err != nil {
		respondWithError(c, err, "Failed to move candidate")
		return
	}

	logger.Info("Candidate stage changed",
		slog.String("candidate_id", candidateID),
		slog.String("old_stage", string(change.OldStage)),
		slog.String("new_stage", string(change.Candidate.CurrentStage)),
		slog.Bool("deployed", change.Deployed()))
	c.JSON(http.StatusOK, change)
}

// getStageHistory godoc
// @Summary Candidate stage history
// @Tags recruitment
// @Produce  json
// @Param   candidateID path string true "Candidate ID"
// @Success 200 {array} domain.StageTransition
// @Failure 404 {object} map[string]string "Candidate not found"
// @Security BearerAuth
// @Router /candidates/{candidateID}/stage-history [get]
func (h *recruitmentHandler) getStageHistory(c *gin.Context) {
	history, err := h.recruitmentService.GetStageHistory(c.Request.Context(), c.Param("candidateID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve stage history")
		return
	}
	c.JSON(http.StatusOK, history)
}

// postDeploymentJournal godoc
// @Summary Post the deployment journal
// @Description Returns the existing journal if it was already posted, and a null journal if the candidate is not deployed.
// @Tags recruitment
// @Produce  json
// @Param   candidateID path string true "Candidate ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Candidate not found"
// @Failure 422 {object} map[string]string "No exchange rate"
// @Security BearerAuth
// @Router /candidates/{candidateID}/deployment-journal [post]
func (h *recruitmentHandler) postDeploymentJournal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	journal, err := h.postingService.PostDeploymentJournal(c.Request.Context(), c.Param("candidateID"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to post deployment journal")
		return
	}
	c.JSON(http.StatusOK, gin.H{"journal": dto.ToJournalResponsePtr(journal)})
}

// bulkMoveStage godoc
// @Summary Move many candidates to a stage
// @Description Each candidate is moved in its own transaction; failures are reported per candidate.
// @Tags recruitment
// @Accept  json
// @Produce  json
// @Param   request body dto.BulkMoveStageRequest true "Candidates and stage"
// @Success 200 {object} domain.BulkStageResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /candidates/bulk/stage [post]
func (h *recruitmentHandler) bulkMoveStage(c *gin.Context) {
	var req dto.BulkMoveStageRequest
	if !bindJSON(c, &req) {
		return
	}
	stage, valid := domain.ParseStage(req.Stage)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown stage " + req.Stage})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.bulkService.BulkMoveStage(c.Request.Context(), req.CandidateIDs, stage, userID))
}

// bulkAddCost godoc
// @Summary Add the same cost to many candidates
// @Description Each cost is recorded and posted in its own transaction; failures are reported per candidate.
// @Tags recruitment
// @Accept  json
// @Produce  json
// @Param   request body dto.BulkAddCostRequest true "Candidates and cost"
// @Success 200 {object} domain.BulkCostResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /candidates/bulk/costs [post]
func (h *recruitmentHandler) bulkAddCost(c *gin.Context) {
	var req dto.BulkAddCostRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.bulkService.BulkAddCost(c.Request.Context(), req.CandidateIDs, req.Cost.ToCostTemplate(), userID))
}
