// Package export renders pallet shipping labels as PDF documents.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/palletlabel/internal/model"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const fontFamily = "label"

// LabelRow is one key/value line of the label table.
type LabelRow struct {
	Label string
	Value string
}

// Label is everything printed on one pallet document.
type Label struct {
	PalletNumber string
	Rows         []LabelRow
	Heading      string
	Codes        []string
	Barcode      string // value rendered as the Code128 image
}

// LabelInfo is the payload of the optional QR code.
type LabelInfo struct {
	Pallet       string `json:"pallet"`
	TotalPallets int    `json:"total_pallets"`
	Boxes        int64  `json:"boxes"`
	Delivery     string `json:"delivery"`
	Destination  string `json:"destination"`
	Date         string `json:"date"`
	CodeCount    int    `json:"code_count"`
}

// BuildLabel assembles the printed content for one pallet. Only the
// first non-empty barcode of the group is rendered; a group without any
// barcode cannot be labelled.
func BuildLabel(ship model.ShipmentContext, group model.PalletGroup, totalPallets int, lang model.Language) (Label, error) {
	barcode, ok := group.FirstBarcode()
	if !ok {
		return Label{}, model.RenderError("build label", fmt.Errorf("pallet %s has no barcode", group.PalletNumber))
	}

	t := textsFor(lang)
	values := [8]string{
		group.PalletNumber,
		strconv.Itoa(totalPallets),
		strconv.FormatInt(group.BoxCount, 10),
		ship.DeliveryNumber,
		ship.Destination,
		ship.DeliveryType,
		ship.CompanyName,
		ship.FormattedDate(),
	}

	rows := make([]LabelRow, len(values))
	for i := range values {
		rows[i] = LabelRow{Label: t.Rows[i], Value: values[i]}
	}

	return Label{
		PalletNumber: group.PalletNumber,
		Rows:         rows,
		Heading:      t.Heading,
		Codes:        append([]string(nil), group.ProductCodes...),
		Barcode:      barcode,
	}, nil
}

// Fonts points at TrueType files for the label text. Empty paths use
// the embedded Go fonts, which cover Latin and Cyrillic.
type Fonts struct {
	Regular string
	Bold    string
}

// Renderer draws pallet labels.
type Renderer struct {
	Layout  Layout
	Fonts   Fonts
	TempDir string // barcode images; empty means the OS temp directory
	QRCode  bool
}

// NewRenderer creates a Renderer from the application config.
func NewRenderer(cfg model.AppConfig) *Renderer {
	return &Renderer{
		Layout: DefaultLayout(),
		Fonts:  Fonts{Regular: cfg.FontRegular, Bold: cfg.FontBold},
		QRCode: cfg.QRCode,
	}
}

// Render writes label to path as a single landscape A4 page.
func (r *Renderer) Render(path string, label Label, info LabelInfo) error {
	regular, bold, err := r.fontData()
	if err != nil {
		return err
	}

	pdf := fpdf.New("L", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("Pallet "+label.PalletNumber, true)
	pdf.SetCreator("PalletLabel", true)
	pdf.AddUTF8FontFromBytes(fontFamily, "", regular)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", bold)
	if err := pdf.Error(); err != nil {
		return model.RenderError("load fonts", err)
	}

	pdf.AddPage()
	r.drawTable(pdf, label.Rows)
	codesEnd := r.drawCodes(pdf, label.Heading, label.Codes)

	err = withBarcodeImage(r.TempDir, label.PalletNumber, label.Barcode, r.Layout.BarcodeScale, int(r.Layout.BarcodeH)*2, func(img string) error {
		r.drawBarcode(pdf, img, label.Barcode, codesEnd)
		if r.QRCode {
			if err := r.drawQRCode(pdf, info, codesEnd); err != nil {
				return err
			}
		}
		if err := pdf.Error(); err != nil {
			return model.RenderError("draw label", err)
		}
		if err := pdf.OutputFileAndClose(path); err != nil {
			return model.IOError("write pdf", err)
		}
		return nil
	})
	return err
}

func (r *Renderer) fontData() (regular, bold []byte, err error) {
	regular, bold = goregular.TTF, gobold.TTF
	if r.Fonts.Regular != "" {
		if regular, err = os.ReadFile(r.Fonts.Regular); err != nil {
			return nil, nil, model.IOError("load font", err)
		}
	}
	if r.Fonts.Bold != "" {
		if bold, err = os.ReadFile(r.Fonts.Bold); err != nil {
			return nil, nil, model.IOError("load font", err)
		}
	}
	return regular, bold, nil
}

// drawTable draws the two-column key/value grid. Wrapped text grows
// downward from the cell top; cells never resize.
func (r *Renderer) drawTable(pdf *fpdf.Fpdf, rows []LabelRow) {
	l := r.Layout
	pdf.SetFont(fontFamily, "", l.FontSize)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetTextColor(0, 0, 0)

	for i, row := range rows {
		top := l.TableTop + float64(i)*l.RowHeight
		pdf.Rect(l.TableX, top, l.LabelWidth, l.RowHeight, "D")
		pdf.Rect(l.TableX+l.LabelWidth, top, l.ValueWidth, l.RowHeight, "D")

		for j, line := range WrapText(row.Label, l.WrapWidth) {
			pdf.Text(l.TableX+l.CellInset, top+l.FirstLine+float64(j)*l.LineStep, line)
		}
		for j, line := range WrapText(row.Value, l.WrapWidth) {
			pdf.Text(l.TableX+l.LabelWidth+l.CellInset, top+l.FirstLine+float64(j)*l.LineStep, line)
		}
	}
}

// drawCodes prints the heading and one product code per line, returning
// the vertical position just below the list.
func (r *Renderer) drawCodes(pdf *fpdf.Fpdf, heading string, codes []string) float64 {
	l := r.Layout
	pdf.SetFont(fontFamily, "B", l.FontSize)
	pdf.Text(l.CodesX, l.HeadingY, heading)

	pdf.SetFont(fontFamily, "", l.FontSize)
	for i, code := range codes {
		pdf.Text(l.CodesX+l.CodesIndent, l.CodesTop+float64(i)*l.CodeStep, code)
	}
	return l.CodesTop + l.BarcodeGap + float64(len(codes))*l.CodeStep
}

// drawBarcode places the Code128 image with its value printed beneath
// the bars, all inside the BarcodeW x BarcodeH box.
func (r *Renderer) drawBarcode(pdf *fpdf.Fpdf, imgPath, value string, top float64) {
	l := r.Layout
	textH := l.BarcodeText * 1.3
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.ImageOptions(imgPath, l.CodesX, top, l.BarcodeW, l.BarcodeH-textH, false, opts, 0, "")

	pdf.SetFont(fontFamily, "", l.BarcodeText)
	w := pdf.GetStringWidth(value)
	pdf.Text(l.CodesX+(l.BarcodeW-w)/2, top+l.BarcodeH-textH*0.25, value)
}

// drawQRCode places a QR code with the pallet facts right of the barcode.
func (r *Renderer) drawQRCode(pdf *fpdf.Fpdf, info LabelInfo, top float64) error {
	l := r.Layout
	data, err := json.Marshal(info)
	if err != nil {
		return model.RenderError("encode qr payload", err)
	}
	qrPNG, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return model.RenderError("encode qr code", err)
	}

	name := "qr_" + info.Pallet
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions(name, l.CodesX+l.BarcodeW+l.QRGap, top, l.QRSize, l.QRSize, false, opts, 0, "")
	return nil
}

// NewLabelInfo collects the QR payload for a pallet.
func NewLabelInfo(ship model.ShipmentContext, group model.PalletGroup, totalPallets int) LabelInfo {
	return LabelInfo{
		Pallet:       group.PalletNumber,
		TotalPallets: totalPallets,
		Boxes:        group.BoxCount,
		Delivery:     ship.DeliveryNumber,
		Destination:  ship.Destination,
		Date:         ship.FormattedDate(),
		CodeCount:    group.RowCount(),
	}
}
