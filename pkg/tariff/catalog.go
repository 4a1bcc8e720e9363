// Package tariff maps product SKUs to harmonized tariff metadata.
//
// A Catalog is loaded once from a CSV export with the columns
// sku, description, tariffCode, countryOfOrigin and then answers lookups for
// any SKU. Lookups never fail: unknown SKUs resolve through base-SKU matching,
// keyword rules and finally a universal fallback record, so a missing or
// broken catalog degrades customs output instead of blocking order processing.
package tariff

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	"ordersync/pkg/domain"
)

// Defaults applied to missing columns and to SKUs nothing else matches.
const (
	DefaultDescription = "General merchandise"
	DefaultTariffCode  = "9999999999"
	DefaultCountry     = "CA"
)

// ComplimentarySKU is the SKU the gift flows add to orders. It always resolves,
// even when the loaded CSV does not list it.
const ComplimentarySKU = "GIFT-NOTE"

var complimentaryRecord = domain.TariffRecord{ //nolint: gochecknoglobals
	SKU:             ComplimentarySKU,
	Description:     "Complimentary gift note",
	TariffCode:      "4909000000",
	CountryOfOrigin: DefaultCountry,
}

// Catalog is an in-memory SKU to tariff record index. It is safe for
// concurrent use; Load may be called again to replace the contents.
type Catalog struct {
	mu      sync.RWMutex
	records map[string]domain.TariffRecord
	loaded  bool
}

// New returns an empty, unloaded catalog. Lookups on it fall through to the
// keyword rules and the universal fallback.
func New() *Catalog {
	return &Catalog{records: map[string]domain.TariffRecord{}}
}

// LoadFile opens path and loads it with Load.
func (c *Catalog) LoadFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer func() {
		_ = f.Close()
	}()

	return c.Load(f)
}

// Load replaces the catalog contents with the rows read from r. The first
// row is a header and is skipped. Rows with missing fields get the documented
// defaults and rows without a SKU are ignored. Load returns false, leaving
// the previous contents in place, only when r cannot be read as CSV at all.
func (c *Catalog) Load(r io.Reader) bool {
	records, err := parse(r)
	if err != nil {
		return false
	}

	// injected after parsing so the gift flows resolve regardless of the file
	records[ComplimentarySKU] = complimentaryRecord

	c.mu.Lock()
	c.records = records
	c.loaded = true
	c.mu.Unlock()

	return true
}

func parse(r io.Reader) (map[string]domain.TariffRecord, error) {
	br := bufio.NewReader(r)
	// strip a UTF-8 BOM left by spreadsheet exports
	if b, err := br.Peek(3); err == nil && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = br.Discard(3)
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	records := map[string]domain.TariffRecord{}
	header := true
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) && !errors.Is(perr.Err, csv.ErrFieldCount) {
				// a single broken row must not discard the whole catalog
				continue
			}

			return nil, err //nolint: wrapcheck
		}
		if header {
			header = false

			continue
		}

		rec, ok := recordFromRow(row)
		if !ok {
			continue
		}
		records[rec.SKU] = rec
	}

	return records, nil
}

func recordFromRow(row []string) (domain.TariffRecord, bool) {
	field := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}

		return ""
	}

	sku := normalizeSKU(field(0))
	if sku == "" {
		return domain.TariffRecord{}, false
	}

	return domain.TariffRecord{
		SKU:             sku,
		Description:     orDefault(field(1), DefaultDescription),
		TariffCode:      orDefault(field(2), DefaultTariffCode),
		CountryOfOrigin: strings.ToUpper(orDefault(field(3), DefaultCountry)),
	}, true
}

// Lookup resolves sku to a tariff record. Resolution order: exact match,
// base SKU with the trailing variant segment removed, keyword rules, then the
// universal fallback. The returned record always carries the normalized
// queried SKU.
func (c *Catalog) Lookup(sku string) domain.TariffRecord {
	key := normalizeSKU(sku)

	c.mu.RLock()
	rec, ok := c.records[key]
	if !ok {
		if base := baseSKU(key); base != "" {
			rec, ok = c.records[base]
		}
	}
	c.mu.RUnlock()

	if !ok {
		rec = matchRules(key)
	}
	rec.SKU = key

	return rec
}

// Len returns the number of loaded records, including the complimentary entry.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.records)
}

// Loaded reports whether a Load call has succeeded.
func (c *Catalog) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.loaded
}

func normalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

// baseSKU strips the last hyphen-delimited segment: "PLNR-A5-BLUE" -> "PLNR-A5".
func baseSKU(sku string) string {
	i := strings.LastIndex(sku, "-")
	if i <= 0 {
		return ""
	}

	return sku[:i]
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}

	return v
}
