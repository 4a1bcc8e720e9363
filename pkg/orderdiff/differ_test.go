package orderdiff_test

import (
	"encoding/json"
	"testing"

	"ordersync/pkg/domain"
	"ordersync/pkg/orderdiff"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func item(sku string, qty int) domain.LineItem {
	return domain.LineItem{SKU: sku, Name: "Item " + sku, Quantity: qty, UnitPrice: decimal.NewFromInt(10)}
}

func TestCompare_AddedAndRemoved(t *testing.T) {
	res := orderdiff.Compare(
		[]domain.LineItem{item("A", 2), item("B", 1)},
		[]domain.LineItem{item("A", 2), item("C", 1)},
	)

	require.True(t, res.HasChanges)
	require.Equal(t, 2, res.SourceCount)
	require.Equal(t, 2, res.MirrorCount)
	require.Len(t, res.Changes, 2)

	require.Equal(t, domain.ChangeRemoved, res.Changes[0].Kind)
	require.Equal(t, "B", res.Changes[0].SKU)
	require.Equal(t, 1, res.Changes[0].Quantity)
	require.Equal(t, "Removed: Item B (x1)", res.Changes[0].Description)

	require.Equal(t, domain.ChangeAdded, res.Changes[1].Kind)
	require.Equal(t, "C", res.Changes[1].SKU)
	require.Equal(t, 1, res.Changes[1].Quantity)
	require.Equal(t, "Added: Item C (x1)", res.Changes[1].Description)
}

func TestCompare_QuantityIncreased(t *testing.T) {
	res := orderdiff.Compare([]domain.LineItem{item("A", 1)}, []domain.LineItem{item("A", 3)})

	require.True(t, res.HasChanges)
	require.Len(t, res.Changes, 1)
	c := res.Changes[0]
	require.Equal(t, domain.ChangeQuantity, c.Kind)
	require.Equal(t, domain.DirectionIncreased, c.Direction)
	require.Equal(t, 2, c.Difference)
	require.Equal(t, 1, c.OldQuantity)
	require.Equal(t, 3, c.NewQuantity)
	require.Equal(t, "Quantity increased: Item A (1 → 3)", c.Description)
}

func TestCompare_QuantityDecreased(t *testing.T) {
	res := orderdiff.Compare([]domain.LineItem{item("A", 4)}, []domain.LineItem{item("A", 1)})

	require.Len(t, res.Changes, 1)
	require.Equal(t, domain.DirectionDecreased, res.Changes[0].Direction)
	require.Equal(t, -3, res.Changes[0].Difference)
}

func TestCompare_SameSideAggregation(t *testing.T) {
	res := orderdiff.Compare(
		[]domain.LineItem{item("X", 2), item("X", 3)},
		[]domain.LineItem{item("X", 5)},
	)
	require.False(t, res.HasChanges)
	require.Empty(t, res.Changes)

	res = orderdiff.Compare(
		[]domain.LineItem{item("X", 2), item("X", 3)},
		[]domain.LineItem{item("X", 2)},
	)
	require.Len(t, res.Changes, 1)
	require.Equal(t, 5, res.Changes[0].OldQuantity)
}

func TestCompare_NameFallbackKey(t *testing.T) {
	res := orderdiff.Compare(
		[]domain.LineItem{{Name: "Custom engraving", Quantity: 1}},
		[]domain.LineItem{{Name: "Custom engraving", Quantity: 1}, {Name: "Free sticker", Quantity: 1}},
	)

	require.Len(t, res.Changes, 1)
	require.Equal(t, domain.ChangeAdded, res.Changes[0].Kind)
	require.Empty(t, res.Changes[0].SKU)
	require.Equal(t, "Free sticker", res.Changes[0].Name)
}

func TestCompare_IgnoresKeylessAndPrice(t *testing.T) {
	src := []domain.LineItem{{Quantity: 4}, {SKU: "A", Quantity: 1, UnitPrice: decimal.NewFromFloat(9.99)}}
	mir := []domain.LineItem{{SKU: "A", Quantity: 1, UnitPrice: decimal.NewFromFloat(12.50)}}

	res := orderdiff.Compare(src, mir)
	require.False(t, res.HasChanges)
}

func TestCompare_ZeroQuantityParticipates(t *testing.T) {
	res := orderdiff.Compare([]domain.LineItem{item("A", 0)}, []domain.LineItem{item("A", 2)})

	require.Len(t, res.Changes, 1)
	require.Equal(t, domain.ChangeQuantity, res.Changes[0].Kind)

	res = orderdiff.Compare([]domain.LineItem{item("A", 0)}, nil)
	require.Len(t, res.Changes, 1)
	require.Equal(t, domain.ChangeRemoved, res.Changes[0].Kind)
}

func TestCompare_ZeroQuantitiesSurviveJSON(t *testing.T) {
	encode := func(rec domain.ChangeRecord) map[string]any {
		b, err := json.Marshal(rec)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(b, &m))

		return m
	}

	res := orderdiff.Compare([]domain.LineItem{item("A", 0)}, []domain.LineItem{item("A", 3)})
	m := encode(res.Changes[0])
	require.Contains(t, m, "oldQuantity")
	require.InDelta(t, 0, m["oldQuantity"], 0)
	require.InDelta(t, 3, m["newQuantity"], 0)

	res = orderdiff.Compare([]domain.LineItem{item("A", 0)}, nil)
	m = encode(res.Changes[0])
	require.Contains(t, m, "quantity")
	require.InDelta(t, 0, m["quantity"], 0)
}

func TestCompare_Empty(t *testing.T) {
	res := orderdiff.Compare(nil, nil)
	require.False(t, res.HasChanges)
	require.NotNil(t, res.Changes)
	require.Empty(t, res.Changes)
}

// genItems produces small item lists over a narrow SKU alphabet so keys
// collide across and within sides.
func genItems() gopter.Gen {
	return gen.SliceOf(gopter.CombineGens(
		gen.OneConstOf("A", "B", "C", "D", ""),
		gen.IntRange(0, 5),
	).Map(func(vals []any) domain.LineItem {
		sku := vals[0].(string)
		name := "name-" + sku
		if sku == "" {
			name = "unnamed"
		}

		return domain.LineItem{SKU: sku, Name: name, Quantity: vals[1].(int)}
	}))
}

type change struct {
	kind domain.ChangeKind
	key  string
	diff int
}

func keyed(res domain.ComparisonResult) map[string]change {
	out := map[string]change{}
	for _, c := range res.Changes {
		key := c.SKU
		if key == "" {
			key = c.Name
		}
		out[key] = change{kind: c.Kind, key: key, diff: c.Difference}
	}

	return out
}

func TestCompare_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("compare(a, a) has no changes", prop.ForAll(
		func(a []domain.LineItem) bool {
			res := orderdiff.Compare(a, a)

			return !res.HasChanges && len(res.Changes) == 0
		},
		genItems(),
	))

	properties.Property("compare(a, b) mirrors compare(b, a)", prop.ForAll(
		func(a, b []domain.LineItem) bool {
			ab := orderdiff.Compare(a, b)
			ba := orderdiff.Compare(b, a)
			if len(ab.Changes) != len(ba.Changes) || ab.HasChanges != ba.HasChanges {
				return false
			}

			swapped := map[domain.ChangeKind]domain.ChangeKind{
				domain.ChangeAdded:    domain.ChangeRemoved,
				domain.ChangeRemoved:  domain.ChangeAdded,
				domain.ChangeQuantity: domain.ChangeQuantity,
			}
			forward, backward := keyed(ab), keyed(ba)
			for key, c := range forward {
				other, ok := backward[key]
				if !ok || other.kind != swapped[c.kind] || other.diff != -c.diff {
					return false
				}
			}

			return true
		},
		genItems(),
		genItems(),
	))

	properties.Property("hasChanges iff changes non-empty", prop.ForAll(
		func(a, b []domain.LineItem) bool {
			res := orderdiff.Compare(a, b)

			return res.HasChanges == (len(res.Changes) > 0)
		},
		genItems(),
		genItems(),
	))

	properties.TestingRun(t)
}
