// Package engine groups spreadsheet rows into pallets.
package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/piwi3910/palletlabel/internal/model"
	"github.com/shopspring/decimal"
)

var maxBoxCount = decimal.NewFromInt(math.MaxInt64)

// Aggregate groups rows by pallet number. Groups appear in the order
// their pallet number is first seen; within a group, product codes and
// barcodes keep source row order and duplicates. Zero rows yield an
// empty aggregation and no error.
func Aggregate(rows []model.SourceRow) (model.Aggregation, error) {
	const op = "aggregate pallets"

	index := make(map[string]int)
	var groups []model.PalletGroup

	for _, row := range rows {
		qty, err := ParseQuantity(row.Quantity)
		if err != nil {
			return model.Aggregation{}, model.DataError(op, "row %d, pallet %s: %v", row.Line, row.PalletNumber, err)
		}

		i, ok := index[row.PalletNumber]
		if !ok {
			i = len(groups)
			index[row.PalletNumber] = i
			groups = append(groups, model.PalletGroup{PalletNumber: row.PalletNumber})
		}

		g := &groups[i]
		if g.BoxCount > math.MaxInt64-qty {
			return model.Aggregation{}, model.DataError(op, "row %d, pallet %s: box count overflows", row.Line, row.PalletNumber)
		}
		g.BoxCount += qty
		g.ProductCodes = append(g.ProductCodes, row.ProductCode)
		g.Barcodes = append(g.Barcodes, row.Barcode)
	}

	return model.Aggregation{Groups: groups, TotalPallets: len(groups)}, nil
}

// ParseQuantity parses a box quantity cell. The value must be a
// non-negative whole number that fits in an int64; "3", "3.0" and
// "3e0" are accepted, "", "abc", "2.5" and "-1" are not.
func ParseQuantity(s string) (int64, error) {
	if s == "" {
		return 0, errors.New("quantity is empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("quantity %q is not a number", s)
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("quantity %q is not a whole number", s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("quantity %q is negative", s)
	}
	if d.GreaterThan(maxBoxCount) {
		return 0, fmt.Errorf("quantity %q is too large", s)
	}
	return d.IntPart(), nil
}
