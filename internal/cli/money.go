package cli

import (
	"fmt"
	"strings"
)

// currencySymbols maps the common currency codes to their display symbols.
// Anything else renders as "CODE 1,234.56".
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CAD": "CA$",
	"AUD": "A$",
}

// FormatCents renders an amount of cents as a currency string, e.g.
// FormatCents(123456, "USD") == "$1,234.56". Negative amounts keep a leading
// minus sign.
func FormatCents(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	whole := groupThousands(cents / 100)
	amount := fmt.Sprintf("%s.%02d", whole, cents%100)

	if symbol, ok := currencySymbols[currency]; ok {
		return sign + symbol + amount
	}
	if currency == "" {
		return sign + amount
	}
	return fmt.Sprintf("%s%s %s", sign, currency, amount)
}

// groupThousands renders n with comma separators.
func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
