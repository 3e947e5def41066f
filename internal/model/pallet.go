package model

// SourceRow is one data row of the uploaded spreadsheet.
type SourceRow struct {
	Line         int // 1-based row number in the source sheet
	PalletNumber string
	Quantity     string // raw cell text; parsed during aggregation
	ProductCode  string
	Barcode      string
}

// PalletGroup aggregates all rows sharing a pallet number.
// ProductCodes and Barcodes hold one entry per row, in source order.
type PalletGroup struct {
	PalletNumber string
	BoxCount     int64
	ProductCodes []string
	Barcodes     []string
}

// RowCount returns the number of source rows folded into the group.
func (g PalletGroup) RowCount() int {
	return len(g.ProductCodes)
}

// FirstBarcode returns the first non-empty barcode of the group.
func (g PalletGroup) FirstBarcode() (string, bool) {
	for _, b := range g.Barcodes {
		if b != "" {
			return b, true
		}
	}
	return "", false
}

// DistinctBarcodes returns the non-empty barcodes of the group without
// repetition, keeping first-seen order.
func (g PalletGroup) DistinctBarcodes() []string {
	seen := make(map[string]bool, len(g.Barcodes))
	var out []string
	for _, b := range g.Barcodes {
		if b == "" || seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	return out
}

// Aggregation is the result of grouping a spreadsheet by pallet.
type Aggregation struct {
	Groups       []PalletGroup // first-seen order of pallet numbers
	TotalPallets int
}

// BoxTotal returns the number of boxes across all pallets.
func (a Aggregation) BoxTotal() int64 {
	var total int64
	for _, g := range a.Groups {
		total += g.BoxCount
	}
	return total
}
