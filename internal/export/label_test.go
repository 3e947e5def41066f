package export

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/piwi3910/palletlabel/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testShipment() model.ShipmentContext {
	return model.ShipmentContext{
		DeliveryNumber: "D50",
		Destination:    "Электросталь",
		DeliveryType:   "Монопалета",
		CompanyName:    "ИП Иванов Иван Иванович",
		DeliveryDate:   time.Date(2024, time.March, 7, 0, 0, 0, 0, time.Local),
	}
}

func testGroup() model.PalletGroup {
	return model.PalletGroup{
		PalletNumber: "1",
		BoxCount:     5,
		ProductCodes: []string{"A1", "A2"},
		Barcodes:     []string{"100", "100"},
	}
}

func testRenderer(t *testing.T) (*Renderer, string) {
	t.Helper()
	tmp := filepath.Join(t.TempDir(), "barcodes")
	require.NoError(t, os.Mkdir(tmp, 0755))
	r := NewRenderer(model.DefaultAppConfig())
	r.TempDir = tmp
	return r, tmp
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary barcode images must be removed")
}

func TestBuildLabel_ReferencePallet(t *testing.T) {
	label, err := BuildLabel(testShipment(), testGroup(), 2, model.LanguageRussian)
	require.NoError(t, err)

	require.Len(t, label.Rows, 8)
	assert.Equal(t, LabelRow{"Номер палеты", "1"}, label.Rows[0])
	assert.Equal(t, LabelRow{"Количество палет в поставке", "2"}, label.Rows[1])
	assert.Equal(t, LabelRow{"Количество коробок на данной палете", "5"}, label.Rows[2])
	assert.Equal(t, "D50", label.Rows[3].Value)
	assert.Equal(t, "Электросталь", label.Rows[4].Value)
	assert.Equal(t, "Монопалета", label.Rows[5].Value)
	assert.Equal(t, "ИП Иванов Иван Иванович", label.Rows[6].Value)
	assert.Equal(t, "07.03.2024", label.Rows[7].Value)

	assert.Equal(t, "Баркоды:", label.Heading)
	assert.Equal(t, []string{"A1", "A2"}, label.Codes)
	assert.Equal(t, "100", label.Barcode)
}

func TestBuildLabel_English(t *testing.T) {
	label, err := BuildLabel(testShipment(), testGroup(), 2, model.LanguageEnglish)
	require.NoError(t, err)

	assert.Equal(t, "Pallet number", label.Rows[0].Label)
	assert.Equal(t, "Delivery date", label.Rows[7].Label)
	assert.Equal(t, "Barcodes:", label.Heading)
}

func TestBuildLabel_FirstBarcodeOnly(t *testing.T) {
	g := testGroup()
	g.Barcodes = []string{"", "300", "100"}
	g.ProductCodes = []string{"A1", "A2", "A3"}

	label, err := BuildLabel(testShipment(), g, 1, model.LanguageRussian)
	require.NoError(t, err)
	assert.Equal(t, "300", label.Barcode)
}

func TestBuildLabel_NoBarcode(t *testing.T) {
	g := testGroup()
	g.Barcodes = []string{"", ""}

	_, err := BuildLabel(testShipment(), g, 1, model.LanguageRussian)
	assert.ErrorIs(t, err, model.ErrRender)
}

func TestRender_CreatesSinglePagePDF(t *testing.T) {
	r, tmp := testRenderer(t)
	path := filepath.Join(t.TempDir(), "1.pdf")

	label, err := BuildLabel(testShipment(), testGroup(), 2, model.LanguageRussian)
	require.NoError(t, err)
	require.NoError(t, r.Render(path, label, NewLabelInfo(testShipment(), testGroup(), 2)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(500))

	f, reader, err := pdf.Open(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, 1, reader.NumPage())

	assertDirEmpty(t, tmp)
}

func TestRender_WithQRCodeAndManyCodes(t *testing.T) {
	r, tmp := testRenderer(t)
	r.QRCode = true
	path := filepath.Join(t.TempDir(), "7.pdf")

	g := testGroup()
	g.PalletNumber = "7"
	for i := 0; i < 30; i++ {
		g.ProductCodes = append(g.ProductCodes, "CODE-LONG-PRODUCT-IDENTIFIER")
		g.Barcodes = append(g.Barcodes, "4600000000000")
	}

	label, err := BuildLabel(testShipment(), g, 9, model.LanguageEnglish)
	require.NoError(t, err)
	require.NoError(t, r.Render(path, label, NewLabelInfo(testShipment(), g, 9)))

	_, err = os.Stat(path)
	require.NoError(t, err)
	assertDirEmpty(t, tmp)
}

func TestRender_BarcodeNotEncodable(t *testing.T) {
	r, tmp := testRenderer(t)
	path := filepath.Join(t.TempDir(), "1.pdf")

	label, err := BuildLabel(testShipment(), testGroup(), 1, model.LanguageRussian)
	require.NoError(t, err)
	label.Barcode = "штрихкод"

	err = r.Render(path, label, LabelInfo{})
	assert.ErrorIs(t, err, model.ErrRender)
	assert.NoFileExists(t, path)
	assertDirEmpty(t, tmp)
}

func TestRender_UnwritablePath(t *testing.T) {
	r, tmp := testRenderer(t)
	path := filepath.Join(t.TempDir(), "missing", "dir", "1.pdf")

	label, err := BuildLabel(testShipment(), testGroup(), 1, model.LanguageRussian)
	require.NoError(t, err)

	err = r.Render(path, label, LabelInfo{})
	assert.ErrorIs(t, err, model.ErrIO)
	assertDirEmpty(t, tmp)
}

func TestRender_MissingFont(t *testing.T) {
	r, tmp := testRenderer(t)
	r.Fonts.Regular = filepath.Join(t.TempDir(), "calibri.ttf")
	path := filepath.Join(t.TempDir(), "1.pdf")

	label, err := BuildLabel(testShipment(), testGroup(), 1, model.LanguageRussian)
	require.NoError(t, err)

	err = r.Render(path, label, LabelInfo{})
	assert.ErrorIs(t, err, model.ErrIO)
	assert.NoFileExists(t, path)
	assertDirEmpty(t, tmp)
}

func TestWithBarcodeImage_RemovedOnError(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("boom")
	var seen string

	err := withBarcodeImage(dir, "1", "100", 2, 80, func(path string) error {
		seen = path
		assert.FileExists(t, path)
		assert.Contains(t, filepath.Base(path), "barcode_1_")
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NotEmpty(t, seen)
	assert.NoFileExists(t, seen)
	assertDirEmpty(t, dir)
}

func TestWithBarcodeImage_ReadablePNG(t *testing.T) {
	dir := t.TempDir()

	err := withBarcodeImage(dir, "2", "200", 2, 80, func(path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		assert.Equal(t, "\x89PNG", string(data[:4]))
		return nil
	})

	require.NoError(t, err)
	assertDirEmpty(t, dir)
}
