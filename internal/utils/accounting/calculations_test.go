package accounting

import (
	"errors"
	"testing"

	"github.com/SscSPs/placement_ledger/internal/apperrors"
	"github.com/SscSPs/placement_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestValidateJournalLines(t *testing.T) {
	tests := []struct {
		name       string
		lines      []domain.JournalLine
		wantErr    error
		unbalanced bool
	}{
		{
			name: "balanced",
			lines: []domain.JournalLine{
				domain.DebitLine("1300", dec("100.00"), ""),
				domain.CreditLine("2100", dec("100.00"), ""),
			},
		},
		{
			name: "within tolerance",
			lines: []domain.JournalLine{
				domain.DebitLine("1300", dec("100.01"), ""),
				domain.CreditLine("2100", dec("100.00"), ""),
			},
		},
		{
			name: "outside tolerance",
			lines: []domain.JournalLine{
				domain.DebitLine("1300", dec("100.02"), ""),
				domain.CreditLine("2100", dec("100.00"), ""),
			},
			wantErr:    apperrors.ErrUnbalancedJournal,
			unbalanced: true,
		},
		{
			name:    "single line",
			lines:   []domain.JournalLine{domain.DebitLine("1300", dec("1"), "")},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "negative amount",
			lines: []domain.JournalLine{
				domain.DebitLine("1300", dec("-5"), ""),
				domain.CreditLine("2100", dec("-5"), ""),
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "missing account",
			lines: []domain.JournalLine{
				domain.DebitLine("", dec("5"), ""),
				domain.CreditLine("2100", dec("5"), ""),
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "zero lines are allowed when balanced",
			lines: []domain.JournalLine{
				domain.DebitLine("5000", decimal.Zero, ""),
				domain.CreditLine("1300", decimal.Zero, ""),
				domain.DebitLine("1200", dec("10"), ""),
				domain.CreditLine("4000", dec("10"), ""),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJournalLines(tt.lines)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
			if tt.unbalanced {
				var ue *apperrors.UnbalancedJournalError
				require.True(t, errors.As(err, &ue))
				assert.True(t, ue.TotalDebit.Equal(dec("100.02")))
				assert.True(t, ue.TotalCredit.Equal(dec("100.00")))
			}
		})
	}
}

func TestRoundLines(t *testing.T) {
	lines := []domain.JournalLine{
		domain.DebitLine("1300", dec("10.005"), ""),
		domain.CreditLine("2100", dec("10.004"), ""),
	}

	rounded := RoundLines(lines)

	assert.Equal(t, "10.01", rounded[0].Debit.StringFixed(2))
	assert.Equal(t, "10.00", rounded[1].Credit.StringFixed(2))
	// input untouched
	assert.Equal(t, "10.005", lines[0].Debit.String())
}

func TestTotalsAndSignedBalance(t *testing.T) {
	debit, credit := Totals([]domain.JournalLine{
		domain.DebitLine("a", dec("3"), ""),
		domain.DebitLine("b", dec("4"), ""),
		domain.CreditLine("c", dec("7"), ""),
	})
	assert.True(t, debit.Equal(dec("7")))
	assert.True(t, credit.Equal(dec("7")))

	row := domain.TrialBalanceRow{AccountCode: "1200", Debit: dec("50"), Credit: dec("20")}
	assert.True(t, SignedBalance(row).Equal(dec("30")))
}
