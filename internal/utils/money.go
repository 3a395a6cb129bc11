package utils

import "github.com/shopspring/decimal"

// FormatMoney keeps consistent two-decimal formatting for currency fields.
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixedBank(2)
}

// RoundMoney rounds to cents using banker's rounding.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.RoundBank(2)
}

// FormatPercent renders a percentage such as "10%".
func FormatPercent(p decimal.Decimal) string {
	return p.String() + "%"
}
