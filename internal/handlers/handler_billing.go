package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/placement_ledger/internal/core/ports/services"
	"github.com/SscSPs/placement_ledger/internal/dto"
	"github.com/SscSPs/placement_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// billingHandler handles invoices, bills, receipts and payments.
type billingHandler struct {
	postingService portssvc.BillingPostingSvc
	billingService portssvc.BillingSvcFacade
}

// registerBillingRoutes registers billing document routes.
func registerBillingRoutes(rg *gin.RouterGroup, postingService portssvc.BillingPostingSvc, billingService portssvc.BillingSvcFacade) {
	h := &billingHandler{postingService: postingService, billingService: billingService}

	company := rg.Group("/companies/:companyID")
	{
		company.POST("/invoices", h.createInvoice)
		company.POST("/bills", h.createBill)
		company.POST("/receipts", h.recordReceipt)
		company.POST("/payments", h.recordPayment)
	}

	rg.GET("/invoices/:invoiceID", h.getInvoice)
	rg.POST("/invoices/:invoiceID/journal", h.postInvoiceJournal)
	rg.GET("/bills/:billID", h.getBill)
}

// createInvoice godoc
// @Summary Raise an invoice
// @Description Numbers the invoice and, unless draft is set, posts Dr AR / Cr Revenue / Cr Tax in the company base currency.
// @Tags billing
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "No exchange rate for the invoice date"
// @Security BearerAuth
// @Router /companies/{companyID}/invoices [post]
func (h *billingHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	req.CompanyID = c.Param("companyID")

	invoice, journal, err := h.postingService.CreateInvoice(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create invoice")
		return
	}

	logger.Info("Invoice created", slog.String("invoice_id", invoice.InvoiceID), slog.String("invoice_number", invoice.InvoiceNumber))
	c.JSON(http.StatusCreated, dto.InvoiceResponse{Invoice: *invoice, Journal: dto.ToJournalResponsePtr(journal)})
}

// postInvoiceJournal godoc
// @Summary Post a draft invoice
// @Tags billing
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 201 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice already posted"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/journal [post]
func (h *billingHandler) postInvoiceJournal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	journal, err := h.postingService.PostInvoiceJournal(c.Request.Context(), c.Param("invoiceID"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to post invoice")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// getInvoice godoc
// @Summary Get an invoice
// @Tags billing
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} domain.Invoice
// @Failure 404 {object} map[string]string "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{invoiceID} [get]
func (h *billingHandler) getInvoice(c *gin.Context) {
	invoice, err := h.billingService.GetInvoice(c.Request.Context(), c.Param("invoiceID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// createBill godoc
// @Summary Record a vendor bill
// @Description Numbers the bill and links the listed candidate costs to it. Bills do not post; their costs already did.
// @Tags billing
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   bill body dto.CreateBillRequest true "Bill"
// @Success 201 {object} domain.Bill
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /companies/{companyID}/bills [post]
func (h *billingHandler) createBill(c *gin.Context) {
	var req dto.CreateBillRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	req.CompanyID = c.Param("companyID")

	bill, err := h.billingService.CreateBill(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create bill")
		return
	}
	c.JSON(http.StatusCreated, bill)
}

// getBill godoc
// @Summary Get a bill
// @Tags billing
// @Produce  json
// @Param   billID path string true "Bill ID"
// @Success 200 {object} domain.Bill
// @Failure 404 {object} map[string]string "Bill not found"
// @Security BearerAuth
// @Router /bills/{billID} [get]
func (h *billingHandler) getBill(c *gin.Context) {
	bill, err := h.billingService.GetBill(c.Request.Context(), c.Param("billID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve bill")
		return
	}
	c.JSON(http.StatusOK, bill)
}

// recordReceipt godoc
// @Summary Record money received
// @Description Posts Dr Bank / Cr AR. Against an invoice, AR is cleared at the invoice-date rate and the difference goes to FX gain/loss.
// @Tags billing
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   receipt body dto.RecordReceiptRequest true "Receipt"
// @Success 201 {object} dto.ReceiptResponse
// @Failure 400 {object} map[string]string "Invalid input or overpayment"
// @Failure 422 {object} map[string]string "No exchange rate"
// @Security BearerAuth
// @Router /companies/{companyID}/receipts [post]
func (h *billingHandler) recordReceipt(c *gin.Context) {
	var req dto.RecordReceiptRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	req.CompanyID = c.Param("companyID")

	receipt, journal, err := h.postingService.RecordReceipt(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to record receipt")
		return
	}
	c.JSON(http.StatusCreated, dto.ReceiptResponse{Receipt: *receipt, Journal: dto.ToJournalResponsePtr(journal)})
}

// recordPayment godoc
// @Summary Record money paid
// @Description Posts Dr AP / Cr Bank at the payment-date rate.
// @Tags billing
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   payment body dto.RecordPaymentRequest true "Payment"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "No exchange rate"
// @Security BearerAuth
// @Router /companies/{companyID}/payments [post]
func (h *billingHandler) recordPayment(c *gin.Context) {
	var req dto.RecordPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	req.CompanyID = c.Param("companyID")

	payment, journal, err := h.postingService.RecordPayment(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to record payment")
		return
	}
	c.JSON(http.StatusCreated, dto.PaymentResponse{Payment: *payment, Journal: dto.ToJournalResponsePtr(journal)})
}
