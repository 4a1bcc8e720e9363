package customs

import (
	"strings"

	"ordersync/pkg/domain"
	"ordersync/pkg/tariff"

	"github.com/shopspring/decimal"
)

// Sanitize forces each line into the fulfillment API's accepted domain:
// quantity at least 1, value non-negative with two decimals, trimmed text with
// defaults, upper-case country, digits-only tariff code and a line ID only when
// it is positive. Sanitize is idempotent and does not modify its input.
func Sanitize(lines []domain.DeclarationLine) []domain.DeclarationLine {
	out := make([]domain.DeclarationLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, sanitizeLine(l))
	}

	return out
}

func sanitizeLine(l domain.DeclarationLine) domain.DeclarationLine {
	if l.Quantity < 1 {
		l.Quantity = 1
	}

	l.Value = l.Value.Round(2)
	if l.Value.IsNegative() {
		l.Value = decimal.Zero
	}

	l.Description = strings.TrimSpace(l.Description)
	if l.Description == "" {
		l.Description = tariff.DefaultDescription
	}

	l.CountryOfOrigin = strings.ToUpper(strings.TrimSpace(l.CountryOfOrigin))
	if l.CountryOfOrigin == "" {
		l.CountryOfOrigin = tariff.DefaultCountry
	}

	l.TariffCode = digitsOnly(l.TariffCode)
	if l.TariffCode == "" {
		l.TariffCode = tariff.DefaultTariffCode
	}

	if l.ExternalLineID != nil {
		if *l.ExternalLineID > 0 {
			id := *l.ExternalLineID
			l.ExternalLineID = &id
		} else {
			l.ExternalLineID = nil
		}
	}

	return l
}

// digitsOnly drops the dots and spaces of formatted codes like "4820.10.2000".
func digitsOnly(code string) string {
	var b strings.Builder
	for _, r := range code {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}
