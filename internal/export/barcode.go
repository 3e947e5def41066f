package export

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/piwi3910/palletlabel/internal/model"
)

// withBarcodeImage renders value as a Code128 PNG in a temporary file
// named after the pallet, calls use with its path, and removes the file
// afterwards whatever the outcome.
func withBarcodeImage(tempDir, pallet, value string, scale, height int, use func(path string) error) (err error) {
	bc, err := code128.Encode(value)
	if err != nil {
		return model.RenderError("encode barcode", fmt.Errorf("Code128 %q: %w", value, err))
	}

	if scale < 1 {
		scale = 1
	}
	scaled, err := barcode.Scale(bc, bc.Bounds().Dx()*scale, height)
	if err != nil {
		return model.RenderError("scale barcode", err)
	}

	f, err := os.CreateTemp(tempDir, "barcode_"+pallet+"_*.png")
	if err != nil {
		return model.IOError("create barcode image", err)
	}
	path := f.Name()
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) && err == nil {
			err = model.IOError("remove barcode image", rmErr)
		}
	}()

	// Barcodes use a 16-bit gray model, which the PDF writer rejects.
	gray := image.NewGray(scaled.Bounds())
	draw.Draw(gray, gray.Bounds(), scaled, scaled.Bounds().Min, draw.Src)

	if err := png.Encode(f, gray); err != nil {
		f.Close()
		return model.IOError("write barcode image", err)
	}
	if err := f.Close(); err != nil {
		return model.IOError("write barcode image", err)
	}

	return use(path)
}
