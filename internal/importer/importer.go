// Package importer reads pallet line items from Excel and CSV files.
// Columns are located by header name, case-insensitively, in either
// Russian or English.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/palletlabel/internal/model"
	"github.com/xuri/excelize/v2"
)

// Result holds the rows read from a spreadsheet and any non-fatal notes.
type Result struct {
	Rows     []model.SourceRow
	Warnings []string
}

// ColumnMapping maps column roles to their indices in the header row.
type ColumnMapping struct {
	Pallet      int
	Quantity    int
	ProductCode int
	Barcode     int
}

// headerAliases maps column roles to their accepted header names (lowercase).
var headerAliases = map[string][]string{
	"pallet":   {"номер", "номер палеты", "номер паллеты", "палета", "pallet", "pallet number", "pallet no"},
	"quantity": {"количество", "кол-во", "количество коробок", "quantity", "qty", "boxes"},
	"code":     {"код товара", "артикул", "product code", "code", "sku"},
	"barcode":  {"штрихкод", "баркод", "barcode", "ean"},
}

// Extensions lists the file extensions ReadRows accepts.
var Extensions = []string{".xlsx", ".xlsm", ".xls", ".csv"}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns the column mapping.
// Roles that were not found are left at -1 and listed in missing.
func DetectColumns(row []string) (mapping ColumnMapping, missing []string) {
	mapping = ColumnMapping{Pallet: -1, Quantity: -1, ProductCode: -1, Barcode: -1}

	for i, cell := range row {
		normalized := strings.ToLower(strings.Join(strings.Fields(cell), " "))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				switch role {
				case "pallet":
					if mapping.Pallet == -1 {
						mapping.Pallet = i
					}
				case "quantity":
					if mapping.Quantity == -1 {
						mapping.Quantity = i
					}
				case "code":
					if mapping.ProductCode == -1 {
						mapping.ProductCode = i
					}
				case "barcode":
					if mapping.Barcode == -1 {
						mapping.Barcode = i
					}
				}
			}
		}
	}

	if mapping.Pallet == -1 {
		missing = append(missing, "Номер")
	}
	if mapping.Quantity == -1 {
		missing = append(missing, "Количество")
	}
	if mapping.ProductCode == -1 {
		missing = append(missing, "Код товара")
	}
	if mapping.Barcode == -1 {
		missing = append(missing, "Штрихкод")
	}
	return mapping, missing
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ReadRows reads a spreadsheet, choosing the reader by file extension.
func ReadRows(path string) (Result, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return ReadExcel(path)
	case ".csv":
		return ReadCSV(path)
	default:
		return Result{}, model.InputError("read spreadsheet", "unsupported file type %q", filepath.Ext(path))
	}
}

// ReadExcel reads line items from the first sheet of an Excel workbook.
func ReadExcel(path string) (Result, error) {
	const op = "read excel"

	f, err := excelize.OpenFile(path)
	if err != nil {
		return Result{}, model.InputError(op, "cannot open %s: %v", filepath.Base(path), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Result{}, model.InputError(op, "workbook has no sheets")
	}

	// Stored values, not display text: number formats would round or
	// group quantities.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return Result{}, model.InputError(op, "cannot read sheet %q: %v", sheets[0], err)
	}

	return fromRows(rows, nil)
}

// ReadCSV reads line items from a CSV file, detecting its delimiter.
func ReadCSV(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, model.InputError("read csv", "cannot open %s: %v", filepath.Base(path), err)
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	return readCSV(bytes.NewReader(data), delimiter, warnings)
}

// ReadCSVFromReader reads line items from CSV data with a known delimiter.
func ReadCSVFromReader(r io.Reader, delimiter rune) (Result, error) {
	return readCSV(r, delimiter, nil)
}

func readCSV(r io.Reader, delimiter rune, warnings []string) (Result, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return Result{}, model.InputError("read csv", "cannot parse CSV: %v", err)
	}
	return fromRows(records, warnings)
}

// fromRows is the shared logic for Excel and CSV data: the first
// non-empty row is the header, every later non-empty row is a line item.
func fromRows(rows [][]string, warnings []string) (Result, error) {
	const op = "read spreadsheet"
	result := Result{Warnings: warnings}

	headerIdx := -1
	for i, row := range rows {
		if !isEmptyRow(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		result.Warnings = append(result.Warnings, "Spreadsheet is empty")
		return result, nil
	}

	mapping, missing := DetectColumns(rows[headerIdx])
	if len(missing) > 0 {
		return Result{}, model.InputError(op, "required columns not found in header: %s", strings.Join(missing, ", "))
	}

	skipped := 0
	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		line := i + 1

		if isEmptyRow(row) {
			skipped++
			continue
		}

		pallet := getCell(row, mapping.Pallet)
		if pallet == "" {
			return Result{}, model.InputError(op, "row %d: missing pallet number", line)
		}

		result.Rows = append(result.Rows, model.SourceRow{
			Line:         line,
			PalletNumber: pallet,
			Quantity:     getCell(row, mapping.Quantity),
			ProductCode:  getCell(row, mapping.ProductCode),
			Barcode:      getCell(row, mapping.Barcode),
		})
	}

	if skipped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped %d empty rows", skipped))
	}
	return result, nil
}
