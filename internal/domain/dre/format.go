package dre

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brl = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL formata em reais no padrão brasileiro: "R$ 1.234,56", "-R$ 10,00".
// A parte inteira passa pelo agrupamento pt-BR; os centavos vêm do decimal, sem float.
func FormatBRL(v decimal.Decimal) string {
	sign := ""
	if v.Round(2).Sign() < 0 {
		sign = "-"
	}
	fixed := v.Abs().StringFixed(2)
	intPart, cents, _ := strings.Cut(fixed, ".")
	whole := decimal.RequireFromString(intPart).IntPart()
	return sign + "R$ " + brl.Sprintf("%d", whole) + "," + cents
}
