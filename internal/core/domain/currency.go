package domain

import "strings"

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
}

// SupportedCurrencies lists the ISO codes companies and documents may use.
var SupportedCurrencies = []Currency{
	{CurrencyCode: "INR", Symbol: "₹", Name: "Indian Rupee"},
	{CurrencyCode: "KES", Symbol: "KSh", Name: "Kenyan Shilling"},
	{CurrencyCode: "AED", Symbol: "د.إ", Name: "UAE Dirham"},
	{CurrencyCode: "QAR", Symbol: "ر.ق", Name: "Qatari Riyal"},
	{CurrencyCode: "PHP", Symbol: "₱", Name: "Philippine Peso"},
	{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar"},
	{CurrencyCode: "EUR", Symbol: "€", Name: "Euro"},
}

// IsSupportedCurrency reports whether code is one of SupportedCurrencies.
func IsSupportedCurrency(code string) bool {
	code = strings.ToUpper(code)
	for _, c := range SupportedCurrencies {
		if c.CurrencyCode == code {
			return true
		}
	}
	return false
}
