package domain

import "github.com/shopspring/decimal"

// TariffRecord is the harmonized tariff classification of a SKU.
type TariffRecord struct {
	SKU             string `json:"sku"`
	Description     string `json:"description"`
	TariffCode      string `json:"tariffCode"`
	CountryOfOrigin string `json:"countryOfOrigin"`
}

// DeclarationLine is one customs item handed to the fulfillment platform.
// ExternalLineID is a pointer so that absence is encoded by omission; the
// upstream API rejects explicit nulls.
type DeclarationLine struct {
	Description     string          `json:"description"`
	Quantity        int             `json:"quantity"`
	Value           decimal.Decimal `json:"value"`
	TariffCode      string          `json:"harmonizedTariffCode"`
	CountryOfOrigin string          `json:"countryOfOrigin"`
	ExternalLineID  *int64          `json:"customsItemId,omitempty"`
}
