package domain

// ScanStatus is the terminal state of one order in a reconciliation scan.
type ScanStatus string

const (
	ScanStatusHasChanges ScanStatus = "has_changes"
	ScanStatusNoChanges  ScanStatus = "no_changes"
	ScanStatusNoMatch    ScanStatus = "no_counterpart_match"
	ScanStatusError      ScanStatus = "error"
)

// ScanOutcome records what happened to a single candidate order.
type ScanOutcome struct {
	OrderID     int64      `json:"orderId"`
	OrderNumber string     `json:"orderNumber"`
	Status      ScanStatus `json:"status"`
	// CounterpartID is the storefront order ID when a match was found.
	CounterpartID      int64          `json:"counterpartId,omitempty"`
	CounterpartMatched bool           `json:"counterpartMatched"`
	ChangeCount        int            `json:"changeCount"`
	Changes            []ChangeRecord `json:"changes,omitempty"`
	Error              string         `json:"error,omitempty"`
	// AlreadyTagged is informational: the reconciliation tag is already on
	// the order. It never triggers a write.
	AlreadyTagged bool `json:"alreadyTagged"`
}

// ScanSummary aggregates the outcomes of a scan in candidate fetch order.
type ScanSummary struct {
	Outcomes       []ScanOutcome `json:"outcomes"`
	Scanned        int           `json:"scanned"`
	WithChanges    int           `json:"withChanges"`
	WithoutChanges int           `json:"withoutChanges"`
	Unmatched      int           `json:"unmatched"`
	Errors         int           `json:"errors"`
	// TagID is the resolved reconciliation tag, zero when it does not exist.
	TagID int64 `json:"tagId,omitempty"`
	// Truncated is set when a page fetch failed after the first page or a cap
	// stopped pagination while more pages were available.
	Truncated bool `json:"truncated"`
}

// ChangedOrderIDs returns the IDs of orders with detected changes, in scan order.
func (s ScanSummary) ChangedOrderIDs() []int64 {
	ids := make([]int64, 0, s.WithChanges)
	for _, o := range s.Outcomes {
		if o.Status == ScanStatusHasChanges {
			ids = append(ids, o.OrderID)
		}
	}

	return ids
}

// TagError describes a failed tag write.
type TagError struct {
	OrderID int64  `json:"orderId"`
	Error   string `json:"error"`
}

// BulkTagResult summarizes a sequential tagging batch.
type BulkTagResult struct {
	Success int        `json:"success"`
	Skipped int        `json:"skipped"`
	Failed  int        `json:"failed"`
	Errors  []TagError `json:"errors"`
}
