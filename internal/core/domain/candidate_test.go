package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/placement_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidate_MoveTo(t *testing.T) {
	first := time.Date(2024, 3, 10, 15, 4, 5, 0, time.UTC)
	later := first.AddDate(0, 1, 0)

	c := domain.Candidate{CurrentStage: domain.StageTicket}

	old := c.MoveTo(domain.StageDeployed, first)
	assert.Equal(t, domain.StageTicket, old)
	require.NotNil(t, c.DeployedDate)
	assert.Equal(t, domain.DateOnly(first), *c.DeployedDate)

	// leaving and re-entering DEPLOYED keeps the first date
	c.MoveTo(domain.StageVisa, later)
	c.MoveTo(domain.StageDeployed, later)
	require.NotNil(t, c.DeployedDate)
	assert.Equal(t, domain.DateOnly(first), *c.DeployedDate)
}

func TestParseStage(t *testing.T) {
	st, ok := domain.ParseStage(" deployed ")
	assert.True(t, ok)
	assert.Equal(t, domain.StageDeployed, st)

	_, ok = domain.ParseStage("HIRED")
	assert.False(t, ok)
}

func TestInvoice_RecalculateTotals(t *testing.T) {
	inv := domain.Invoice{
		Lines: []domain.DocumentLine{
			{Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("1500.00")},
			{Quantity: decimal.RequireFromString("0.5"), UnitPrice: decimal.RequireFromString("100.01")},
		},
		TaxAmount:  decimal.RequireFromString("150.00"),
		AmountPaid: decimal.RequireFromString("1000.00"),
	}

	inv.RecalculateTotals()

	assert.Equal(t, "3000.00", inv.Lines[0].Amount.StringFixed(2))
	assert.Equal(t, "50.01", inv.Lines[1].Amount.StringFixed(2))
	assert.Equal(t, "3050.01", inv.TotalAmount.StringFixed(2))
	assert.Equal(t, "2900.01", inv.NetAmount().StringFixed(2))
	assert.Equal(t, "2050.01", inv.Outstanding().StringFixed(2))
}

func TestFormatDocumentNumber(t *testing.T) {
	c := domain.Company{}
	assert.Equal(t, "INV-000042", domain.FormatDocumentNumber(c.DocumentPrefix(domain.DocumentInvoice), 42))

	c.InvoicePrefix = "AE"
	assert.Equal(t, "AE-000001", domain.FormatDocumentNumber(c.DocumentPrefix(domain.DocumentInvoice), 1))
	assert.Equal(t, "BILL-000007", domain.FormatDocumentNumber(c.DocumentPrefix(domain.DocumentBill), 7))
}

func TestChartOfAccounts_Account(t *testing.T) {
	chart := domain.ChartOfAccounts{WIP: "1300", Bank: "1000"}
	assert.Equal(t, "1300", chart.Account(domain.RoleWIP))
	assert.Equal(t, "1000", chart.Account(domain.RoleBank))
	assert.Equal(t, "", chart.Account(domain.RoleRevenue))
}
