// Package chartofaccounts loads the per-company account code mapping used by
// the posting rules.
package chartofaccounts

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/SscSPs/placement_ledger/internal/apperrors"
	"github.com/SscSPs/placement_ledger/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type file struct {
	Companies []domain.ChartOfAccounts `yaml:"companies" validate:"required,min=1,dive"`
}

// Registry resolves charts by company code. It is immutable after Load.
type Registry struct {
	charts map[string]domain.ChartOfAccounts
}

// Load reads and validates a chart of accounts YAML file.
func Load(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open chart of accounts %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes and validates a chart of accounts document. Every role is
// required for every company and company codes must be unique.
func Parse(r io.Reader) (*Registry, error) {
	var doc file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode chart of accounts: %w", err)
	}

	if err := validator.New().Struct(doc); err != nil {
		return nil, fmt.Errorf("%w: invalid chart of accounts: %v", apperrors.ErrValidation, err)
	}

	return NewRegistry(doc.Companies...)
}

// NewRegistry builds a registry from charts already in memory.
func NewRegistry(charts ...domain.ChartOfAccounts) (*Registry, error) {
	reg := &Registry{charts: make(map[string]domain.ChartOfAccounts, len(charts))}
	for _, chart := range charts {
		code := strings.ToUpper(strings.TrimSpace(chart.CompanyCode))
		if _, dup := reg.charts[code]; dup {
			return nil, fmt.Errorf("%w: company %s appears twice in the chart of accounts", apperrors.ErrValidation, code)
		}
		chart.CompanyCode = code
		reg.charts[code] = chart
	}
	return reg, nil
}

// ChartFor implements services.ChartOfAccountsProvider.
func (r *Registry) ChartFor(companyCode string) (domain.ChartOfAccounts, error) {
	chart, ok := r.charts[strings.ToUpper(companyCode)]
	if !ok {
		return domain.ChartOfAccounts{}, &apperrors.MissingAccountConfigurationError{CompanyCode: companyCode}
	}
	return chart, nil
}

// Companies lists the configured company codes.
func (r *Registry) Companies() []string {
	codes := make([]string, 0, len(r.charts))
	for code := range r.charts {
		codes = append(codes, code)
	}
	return codes
}
