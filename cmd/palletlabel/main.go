// PalletLabel: pallet shipping labels from a spreadsheet
//
// A desktop form that reads pallet line items from an Excel or CSV file
// and writes one A4 label PDF per pallet into a folder named after the
// delivery number.
//
// Build:
//   go build -o palletlabel ./cmd/palletlabel
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o palletlabel.exe ./cmd/palletlabel
//
// Configuration is read from ~/.palletlabel/config.json, or from the
// file named by PALLETLABEL_CONFIG. A .env file in the working
// directory is loaded first.

package main

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	"github.com/joho/godotenv"

	"github.com/piwi3910/palletlabel/internal/project"
	"github.com/piwi3910/palletlabel/internal/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfgPath := project.ConfigPath()
	cfg, err := project.LoadAppConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config %s: %v", cfgPath, err)
	}

	application := app.NewWithID("com.piwi3910.palletlabel")
	application.Settings().SetTheme(ui.NewPalletTheme(cfg.Theme))

	window := application.NewWindow("PalletLabel: Excel to PDF")

	appUI := ui.NewApp(window, cfg)
	appUI.SetupMenus()
	window.SetContent(fynetooltip.AddWindowToolTipLayer(appUI.Build(), window.Canvas()))
	window.Resize(fyne.NewSize(720, 520))
	window.CenterOnScreen()
	window.ShowAndRun()
}
