package apperrors

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrAlreadyPosted indicates that a business event already has its journal.
var ErrAlreadyPosted = errors.New("business event already posted to the ledger")

// ErrInternal indicates an unexpected failure in a lower layer.
var ErrInternal = errors.New("internal error")

var (
	ErrUnbalancedJournal           = errors.New("journal unbalanced")
	ErrMissingFxRate               = errors.New("missing fx rate")
	ErrMissingAccountConfiguration = errors.New("missing account configuration")
)

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an AppError wrapping ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationError returns an AppError wrapping ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// UnbalancedJournalError is returned by the ledger poster when debits and
// credits differ by more than the posting tolerance.
type UnbalancedJournalError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func (e *UnbalancedJournalError) Error() string {
	return fmt.Sprintf("journal unbalanced: debit %s, credit %s",
		e.TotalDebit.StringFixed(2), e.TotalCredit.StringFixed(2))
}

func (e *UnbalancedJournalError) Is(target error) bool {
	return target == ErrUnbalancedJournal
}

// MissingFxRateError is returned by strict conversions when neither a direct
// nor a reverse rate exists on or before the requested date.
type MissingFxRateError struct {
	From string
	To   string
	AsOf time.Time
}

func (e *MissingFxRateError) Error() string {
	return fmt.Sprintf("no fx rate found: %s -> %s on or before %s", e.From, e.To, e.AsOf.Format(time.DateOnly))
}

func (e *MissingFxRateError) Is(target error) bool {
	return target == ErrMissingFxRate
}

// MissingAccountConfigurationError is returned when a company's chart of
// accounts lacks a role required by a posting.
type MissingAccountConfigurationError struct {
	CompanyCode string
	Role        string
}

func (e *MissingAccountConfigurationError) Error() string {
	if e.Role == "" {
		return fmt.Sprintf("no chart of accounts configured for company %s", e.CompanyCode)
	}
	return fmt.Sprintf("chart of accounts for company %s has no %s account", e.CompanyCode, e.Role)
}

func (e *MissingAccountConfigurationError) Is(target error) bool {
	return target == ErrMissingAccountConfiguration
}
