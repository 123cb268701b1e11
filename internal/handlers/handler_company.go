package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/placement_ledger/internal/core/ports/services"
	"github.com/SscSPs/placement_ledger/internal/dto"
	"github.com/SscSPs/placement_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// companyHandler handles HTTP requests related to companies.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
}

// registerCompanyRoutes registers routes related to companies.
func registerCompanyRoutes(rg *gin.RouterGroup, companyService portssvc.CompanySvcFacade) {
	h := &companyHandler{companyService: companyService}

	companies := rg.Group("/companies")
	{
		companies.POST("", h.createCompany)
		companies.GET("", h.listCompanies)
		companies.GET("/:companyID", h.getCompany)
		companies.PUT("/:companyID", h.updateCompany)
	}
}

// createCompany godoc
// @Summary Create a company
// @Description Creates a group company with its base currency and tax settings
// @Tags companies
// @Accept  json
// @Produce  json
// @Param   company body dto.CreateCompanyRequest true "Company details"
// @Success 201 {object} dto.CompanyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Company code already exists"
// @Security BearerAuth
// @Router /companies [post]
func (h *companyHandler) createCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCompanyRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create company")
		return
	}

	logger.Info("Company created successfully", slog.String("company_id", company.CompanyID), slog.String("code", company.Code))
	c.JSON(http.StatusCreated, dto.ToCompanyResponse(company))
}

// listCompanies godoc
// @Summary List companies
// @Tags companies
// @Produce  json
// @Success 200 {object} dto.ListCompaniesResponse
// @Security BearerAuth
// @Router /companies [get]
func (h *companyHandler) listCompanies(c *gin.Context) {
	companies, err := h.companyService.ListCompanies(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to list companies")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCompaniesResponse(companies))
}

// getCompany godoc
// @Summary Get a company
// @Tags companies
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Success 200 {object} dto.CompanyResponse
// @Failure 404 {object} map[string]string "Company not found"
// @Security BearerAuth
// @Router /companies/{companyID} [get]
func (h *companyHandler) getCompany(c *gin.Context) {
	company, err := h.companyService.GetCompanyByID(c.Request.Context(), c.Param("companyID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve company")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// updateCompany godoc
// @Summary Update a company
// @Description The base currency can no longer change once anything has been posted for the company.
// @Tags companies
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   company body dto.UpdateCompanyRequest true "Fields to change"
// @Success 200 {object} dto.CompanyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Company not found"
// @Security BearerAuth
// @Router /companies/{companyID} [put]
func (h *companyHandler) updateCompany(c *gin.Context) {
	var req dto.UpdateCompanyRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), c.Param("companyID"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to update company")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}
