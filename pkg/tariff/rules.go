package tariff

import (
	"strings"

	"ordersync/pkg/domain"
)

type rule struct {
	keywords    []string
	description string
	tariffCode  string
}

// rules are evaluated in order against the tokens of the upper-cased SKU,
// split on hyphens, underscores and spaces; the first rule with any matching
// keyword wins. Keywords of three letters or fewer must be a whole token
// ("GEL-PEN" but not "PENDANT"); longer ones may also start a token
// ("STICKERS-SET" but not "DISCARDED").
var rules = []rule{ //nolint: gochecknoglobals
	{
		keywords:    []string{"PLANNER", "PLNR", "DIARY", "AGENDA", "JOURNAL"},
		description: "Paper planner / diary",
		tariffCode:  "4820102000",
	},
	{
		keywords:    []string{"NOTEBOOK", "NOTEPAD"},
		description: "Paper notebook",
		tariffCode:  "4820102010",
	},
	{
		keywords:    []string{"STICKER"},
		description: "Printed paper stickers",
		tariffCode:  "4911998000",
	},
	{
		keywords:    []string{"PEN", "PENCIL", "MARKER", "HIGHLIGHTER"},
		description: "Writing instrument",
		tariffCode:  "9608100000",
	},
	{
		keywords:    []string{"BOOKMARK"},
		description: "Printed bookmark",
		tariffCode:  "4911910040",
	},
	{
		keywords:    []string{"GIFT", "CARD"},
		description: "Printed greeting card",
		tariffCode:  "4909000000",
	},
}

func matchRules(sku string) domain.TariffRecord {
	tokens := strings.FieldsFunc(sku, func(r rune) bool { return r == '-' || r == '_' || r == ' ' })
	for _, r := range rules {
		for _, kw := range r.keywords {
			if matches(tokens, kw) {
				return domain.TariffRecord{
					Description:     r.description,
					TariffCode:      r.tariffCode,
					CountryOfOrigin: DefaultCountry,
				}
			}
		}
	}

	return Fallback()
}

func matches(tokens []string, kw string) bool {
	for _, t := range tokens {
		if t == kw || (len(kw) > 3 && strings.HasPrefix(t, kw)) {
			return true
		}
	}

	return false
}

// Fallback returns the universal record used when nothing else matches.
func Fallback() domain.TariffRecord {
	return domain.TariffRecord{
		Description:     DefaultDescription,
		TariffCode:      DefaultTariffCode,
		CountryOfOrigin: DefaultCountry,
	}
}
