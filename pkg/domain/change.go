package domain

// ChangeKind classifies a discrepancy between the source and mirror copies of
// an order.
type ChangeKind string

const (
	// ChangeAdded means the line exists only in the mirror (fulfillment) copy.
	ChangeAdded ChangeKind = "added"
	// ChangeRemoved means the line exists only in the source (storefront) copy.
	ChangeRemoved ChangeKind = "removed"
	// ChangeQuantity means both copies have the line with different totals.
	ChangeQuantity ChangeKind = "quantity_changed"
)

// Direction of a quantity change, read as mirror relative to source.
type Direction string

const (
	DirectionIncreased Direction = "increased"
	DirectionDecreased Direction = "decreased"
)

// ChangeRecord describes a single discrepancy. Records are values and are
// never modified after the differ emits them.
type ChangeRecord struct {
	Kind ChangeKind `json:"kind"`
	SKU  string     `json:"sku"`
	Name string     `json:"name"`
	// Quantity is the full line quantity for added and removed records.
	Quantity int `json:"quantity"`
	// OldQuantity and NewQuantity are the source and mirror totals of a
	// quantity change.
	OldQuantity int `json:"oldQuantity"`
	NewQuantity int `json:"newQuantity"`
	// Difference is NewQuantity - OldQuantity.
	Difference  int       `json:"difference,omitempty"`
	Direction   Direction `json:"direction,omitempty"`
	Description string    `json:"description"`
}

// ComparisonResult is the outcome of diffing two line item collections.
type ComparisonResult struct {
	HasChanges  bool           `json:"hasChanges"`
	Changes     []ChangeRecord `json:"changes"`
	SourceCount int            `json:"sourceCount"`
	MirrorCount int            `json:"mirrorCount"`
}
