package accounting

import (
	"fmt"

	"github.com/SscSPs/placement_ledger/internal/apperrors"
	"github.com/SscSPs/placement_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the largest debit/credit difference a journal may carry.
var BalanceTolerance = decimal.New(1, -2)

// RoundMoney rounds an amount to two decimal places, half away from zero.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RoundLines returns a copy of lines with every debit and credit rounded to
// two decimal places.
func RoundLines(lines []domain.JournalLine) []domain.JournalLine {
	out := make([]domain.JournalLine, len(lines))
	for i, l := range lines {
		l.Debit = RoundMoney(l.Debit)
		l.Credit = RoundMoney(l.Credit)
		out[i] = l
	}
	return out
}

// Totals sums both sides of lines.
func Totals(lines []domain.JournalLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// IsBalanced reports whether debits and credits agree within BalanceTolerance.
func IsBalanced(debit, credit decimal.Decimal) bool {
	return debit.Sub(credit).Abs().LessThanOrEqual(BalanceTolerance)
}

// ValidateJournalLines checks the structural rules of a posting: at least two
// lines, an account on every line, no negative amounts, and balanced totals.
func ValidateJournalLines(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: journal must have at least two lines", apperrors.ErrValidation)
	}

	for i, l := range lines {
		if l.AccountCode == "" {
			return fmt.Errorf("%w: line %d has no account", apperrors.ErrValidation, i+1)
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
	}

	debit, credit := Totals(lines)
	if !IsBalanced(debit, credit) {
		return &apperrors.UnbalancedJournalError{TotalDebit: debit, TotalCredit: credit}
	}
	return nil
}

// SignedBalance returns debit minus credit for a trial balance row.
func SignedBalance(row domain.TrialBalanceRow) decimal.Decimal {
	return row.Debit.Sub(row.Credit)
}
