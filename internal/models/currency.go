package models

// Currency represents a row of the currencies table.
type Currency struct {
	CurrencyCode string `db:"currency_code"` // Primary Key (e.g., "USD")
	Symbol       string `db:"symbol"`
	Name         string `db:"name"`
}
