package export

import "github.com/piwi3910/palletlabel/internal/model"

// Layout holds the fixed geometry of a pallet label page. All lengths
// are in points on an A4 landscape page, measured from the top-left.
type Layout struct {
	FontSize float64

	// Key/value table
	TableX     float64
	TableTop   float64
	RowHeight  float64
	LabelWidth float64
	ValueWidth float64
	CellInset  float64 // left text inset inside a cell
	FirstLine  float64 // baseline of the first text line below the cell top
	LineStep   float64 // distance between wrapped lines
	WrapWidth  int     // characters per wrapped line

	// Product code list, right of the table
	CodesX       float64
	HeadingY     float64
	CodesTop     float64 // baseline of the first code
	CodesIndent  float64
	CodeStep     float64
	BarcodeGap   float64 // from the last code slot to the barcode image
	BarcodeW     float64
	BarcodeH     float64
	BarcodeText  float64 // font size of the human-readable value
	QRSize       float64
	QRGap        float64
	BarcodeScale int // pixels per module in the rendered PNG
}

// DefaultLayout returns the stock label geometry.
func DefaultLayout() Layout {
	return Layout{
		FontSize: 20,

		TableX:     50,
		TableTop:   45,
		RowHeight:  48,
		LabelWidth: 200,
		ValueWidth: 205,
		CellInset:  5,
		FirstLine:  20,
		LineStep:   20,
		WrapWidth:  20,

		CodesX:       500,
		HeadingY:     60,
		CodesTop:     88,
		CodesIndent:  20,
		CodeStep:     24,
		BarcodeGap:   20,
		BarcodeW:     250,
		BarcodeH:     150,
		BarcodeText:  14,
		QRSize:       70,
		QRGap:        10,
		BarcodeScale: 3,
	}
}

// labelTexts is the printed wording for one language.
type labelTexts struct {
	Rows    [8]string
	Heading string
}

var texts = map[model.Language]labelTexts{
	model.LanguageRussian: {
		Rows: [8]string{
			"Номер палеты",
			"Количество палет в поставке",
			"Количество коробок на данной палете",
			"Номер поставки",
			"Склад назначения",
			"Тип поставки",
			"Наименование Юр. Лица",
			"Дата поставки",
		},
		Heading: "Баркоды:",
	},
	model.LanguageEnglish: {
		Rows: [8]string{
			"Pallet number",
			"Pallets in delivery",
			"Boxes on this pallet",
			"Delivery number",
			"Destination warehouse",
			"Delivery type",
			"Company name",
			"Delivery date",
		},
		Heading: "Barcodes:",
	},
}

func textsFor(lang model.Language) labelTexts {
	if t, ok := texts[lang]; ok {
		return t
	}
	return texts[model.LanguageRussian]
}
