package domain

// AccountRole names a logical account a posting rule needs.
type AccountRole string

const (
	RoleWIP                AccountRole = "wip"
	RoleAccountsPayable    AccountRole = "accounts_payable"
	RoleAccountsReceivable AccountRole = "accounts_receivable"
	RoleRevenue            AccountRole = "revenue"
	RoleCOGS               AccountRole = "cogs"
	RoleTaxPayable         AccountRole = "tax_payable"
	RoleFXGainLoss         AccountRole = "fx_gain_loss"
	RoleBank               AccountRole = "bank"
)

// ChartOfAccounts maps each logical role to the company's account code.
type ChartOfAccounts struct {
	CompanyCode        string `yaml:"code" validate:"required"`
	WIP                string `yaml:"wip" validate:"required"`
	AccountsPayable    string `yaml:"accounts_payable" validate:"required"`
	AccountsReceivable string `yaml:"accounts_receivable" validate:"required"`
	Revenue            string `yaml:"revenue" validate:"required"`
	COGS               string `yaml:"cogs" validate:"required"`
	TaxPayable         string `yaml:"tax_payable" validate:"required"`
	FXGainLoss         string `yaml:"fx_gain_loss" validate:"required"`
	Bank               string `yaml:"bank" validate:"required"`
}

// Account returns the code configured for role, or "" when unset.
func (c ChartOfAccounts) Account(role AccountRole) string {
	switch role {
	case RoleWIP:
		return c.WIP
	case RoleAccountsPayable:
		return c.AccountsPayable
	case RoleAccountsReceivable:
		return c.AccountsReceivable
	case RoleRevenue:
		return c.Revenue
	case RoleCOGS:
		return c.COGS
	case RoleTaxPayable:
		return c.TaxPayable
	case RoleFXGainLoss:
		return c.FXGainLoss
	case RoleBank:
		return c.Bank
	}
	return ""
}
