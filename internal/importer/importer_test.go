package importer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/palletlabel/internal/model"
	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Номер,Количество,Код товара,Штрихкод\n1,3,A1,100\n1,2,A2,100\n")
	got := DetectCSVDelimiter(data)
	if got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Номер;Количество;Код товара;Штрихкод\n1;3;A1;100\n1;2;A2;100\n")
	got := DetectCSVDelimiter(data)
	if got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Номер\tКоличество\tКод товара\tШтрихкод\n1\t3\tA1\t100\n")
	got := DetectCSVDelimiter(data)
	if got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_RussianHeaders(t *testing.T) {
	mapping, missing := DetectColumns([]string{"Номер", "Количество", "Код товара", "Штрихкод"})

	if len(missing) != 0 {
		t.Fatalf("expected no missing columns, got %v", missing)
	}
	if mapping.Pallet != 0 || mapping.Quantity != 1 || mapping.ProductCode != 2 || mapping.Barcode != 3 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_EnglishReordered(t *testing.T) {
	mapping, missing := DetectColumns([]string{"Barcode", "SKU", "Pallet", "Qty", "Comment"})

	if len(missing) != 0 {
		t.Fatalf("expected no missing columns, got %v", missing)
	}
	if mapping.Barcode != 0 || mapping.ProductCode != 1 || mapping.Pallet != 2 || mapping.Quantity != 3 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_CaseAndSpacing(t *testing.T) {
	mapping, missing := DetectColumns([]string{" НОМЕР ", "количество", "КОД  ТОВАРА", "штрихкод"})

	if len(missing) != 0 {
		t.Fatalf("expected no missing columns, got %v", missing)
	}
	if mapping.ProductCode != 2 {
		t.Errorf("expected product code at 2, got %d", mapping.ProductCode)
	}
}

func TestDetectColumns_Missing(t *testing.T) {
	_, missing := DetectColumns([]string{"Номер", "Код товара"})

	want := []string{"Количество", "Штрихкод"}
	if strings.Join(missing, ",") != strings.Join(want, ",") {
		t.Errorf("expected missing %v, got %v", want, missing)
	}
}

// ─── CSV Tests ─────────────────────────────────────────────

func TestReadCSVFromReader_Rows(t *testing.T) {
	data := "Номер,Количество,Код товара,Штрихкод\n1,3,A1,100\n1,2,A2,100\n2,5,B1,200\n"
	result, err := ReadCSVFromReader(strings.NewReader(data), ',')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(result.Rows))
	}
	first := result.Rows[0]
	if first.Line != 2 || first.PalletNumber != "1" || first.Quantity != "3" ||
		first.ProductCode != "A1" || first.Barcode != "100" {
		t.Errorf("unexpected first row %+v", first)
	}
	if result.Rows[2].PalletNumber != "2" {
		t.Errorf("expected pallet 2 in last row, got %q", result.Rows[2].PalletNumber)
	}
}

func TestReadCSVFromReader_HeaderOnly(t *testing.T) {
	result, err := ReadCSVFromReader(strings.NewReader("Номер,Количество,Код товара,Штрихкод\n"), ',')
	if err != nil {
		t.Fatalf("header-only file should not be an error: %v", err)
	}
	if len(result.Rows) != 0 {
		t.Errorf("expected 0 rows, got %d", len(result.Rows))
	}
}

func TestReadCSVFromReader_MissingColumns(t *testing.T) {
	_, err := ReadCSVFromReader(strings.NewReader("Номер,Код товара\n1,A1\n"), ',')
	if !errors.Is(err, model.ErrInput) {
		t.Fatalf("expected input error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Количество") {
		t.Errorf("error should name the missing column: %v", err)
	}
}

func TestReadCSVFromReader_MissingPallet(t *testing.T) {
	data := "Номер,Количество,Код товара,Штрихкод\n,3,A1,100\n"
	_, err := ReadCSVFromReader(strings.NewReader(data), ',')
	if !errors.Is(err, model.ErrInput) {
		t.Fatalf("expected input error, got %v", err)
	}
	if !strings.Contains(err.Error(), "row 2") {
		t.Errorf("error should name the row: %v", err)
	}
}

func TestReadCSV_SemicolonWarning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pallets.csv")
	data := "Номер;Количество;Код товара;Штрихкод\n1;3;A1;100\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := ReadRows(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Rows))
	}
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "semicolon") {
		t.Errorf("expected semicolon warning, got %v", result.Warnings)
	}
}

func TestReadRows_UnsupportedExtension(t *testing.T) {
	_, err := ReadRows(filepath.Join(t.TempDir(), "pallets.ods"))
	if !errors.Is(err, model.ErrInput) {
		t.Fatalf("expected input error, got %v", err)
	}
}

// ─── Excel Tests ───────────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pallets.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestReadExcel_NumericCells(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Номер", "Количество", "Код товара", "Штрихкод"},
		{1, 3, "A1", "100"},
		{1, 2, "A2", "100"},
		{2, 5, "B1", "200"},
	})

	result, err := ReadRows(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(result.Rows))
	}
	if result.Rows[0].PalletNumber != "1" || result.Rows[0].Quantity != "3" {
		t.Errorf("numeric cells should read as plain text, got %+v", result.Rows[0])
	}
	if result.Rows[2].ProductCode != "B1" || result.Rows[2].Barcode != "200" {
		t.Errorf("unexpected last row %+v", result.Rows[2])
	}
}

// createFormattedExcel writes one line item whose quantity cell carries
// the given built-in number format.
func createFormattedExcel(t *testing.T, qty interface{}, numFmt int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "formatted.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []interface{}{"Номер", "Количество", "Код товара", "Штрихкод"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatal(err)
	}
	row := []interface{}{1, qty, "A1", "100"}
	if err := f.SetSheetRow(sheet, "A2", &row); err != nil {
		t.Fatal(err)
	}
	style, err := f.NewStyle(&excelize.Style{NumFmt: numFmt})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellStyle(sheet, "B2", "B2", style); err != nil {
		t.Fatal(err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestReadExcel_IgnoresNumberFormats(t *testing.T) {
	tests := []struct {
		name   string
		qty    interface{}
		numFmt int
		want   string
	}{
		{"fraction under integer format", 2.5, 1, "2.5"},
		{"thousands separator", 1500, 3, "1500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ReadExcel(createFormattedExcel(t, tt.qty, tt.numFmt))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(result.Rows) != 1 {
				t.Fatalf("expected 1 row, got %d", len(result.Rows))
			}
			if got := result.Rows[0].Quantity; got != tt.want {
				t.Errorf("expected stored quantity %q, got %q", tt.want, got)
			}
		})
	}
}

func TestReadExcel_SkipsEmptyRows(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Номер", "Количество", "Код товара", "Штрихкод"},
		{1, 3, "A1", "100"},
		{"", "", "", ""},
		{2, 5, "B1", "200"},
	})

	result, err := ReadExcel(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Rows))
	}
	if result.Rows[1].Line != 4 {
		t.Errorf("expected second row on line 4, got %d", result.Rows[1].Line)
	}
}

func TestReadExcel_Empty(t *testing.T) {
	path := createTestExcel(t, nil)

	result, err := ReadExcel(path)
	if err != nil {
		t.Fatalf("empty workbook should not be an error: %v", err)
	}
	if len(result.Rows) != 0 {
		t.Errorf("expected 0 rows, got %d", len(result.Rows))
	}
}

func TestReadExcel_MissingFile(t *testing.T) {
	_, err := ReadExcel(filepath.Join(t.TempDir(), "missing.xlsx"))
	if !errors.Is(err, model.ErrInput) {
		t.Fatalf("expected input error, got %v", err)
	}
}
