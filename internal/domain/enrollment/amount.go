package enrollment

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders a provider price as a dollar string with two decimals.
// Unparseable prices are passed through behind the currency sign; empty stays empty.
func FormatAmount(price string) string {
	price = strings.TrimSpace(price)
	if price == "" {
		return ""
	}

	d, err := decimal.NewFromString(price)
	if err != nil {
		return "$" + price
	}
	return "$" + d.StringFixed(2)
}
