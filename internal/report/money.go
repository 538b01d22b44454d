package report

import (
	"strings"

	"expenso/internal/core"

	"github.com/Rhymond/go-money"
)

// FormatMoney renders a in the given currency, e.g. ₹1,234.50. Unknown
// currency codes fall back to "CODE 1234.50".
func FormatMoney(a core.Amount, code string) string {
	code = strings.ToUpper(code)
	cur := money.GetCurrency(code)
	if cur == nil {
		return code + " " + a.StringFixed(2)
	}
	minor := a.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}
