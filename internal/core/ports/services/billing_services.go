package services

import (
	"context"

	"github.com/SscSPs/placement_ledger/internal/core/domain"
	"github.com/SscSPs/placement_ledger/internal/dto"
)

// BillingSvcFacade covers billing documents that do not post on their own.
type BillingSvcFacade interface {
	GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	GetBill(ctx context.Context, billID string) (*domain.Bill, error)

	// CreateBill numbers and stores a vendor bill and links the listed costs to it.
	CreateBill(ctx context.Context, req dto.CreateBillRequest, userID string) (*domain.Bill, error)
}
