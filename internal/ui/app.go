package ui

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"slices"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/palletlabel/internal/importer"
	"github.com/piwi3910/palletlabel/internal/model"
	"github.com/piwi3910/palletlabel/internal/project"
)

// App holds all application state and UI references.
type App struct {
	window fyne.Window
	config model.AppConfig
	form   FormState

	// cancels an in-flight run when the window closes
	ctx    context.Context
	cancel context.CancelFunc

	// UI references for dynamic updates
	fileLabel      *widget.Label
	generateButton *widget.Button
	destination    *widget.Select
	deliveryType   *widget.Select
	company        *widget.Select
}

func NewApp(window fyne.Window, config model.AppConfig) *App {
	config.Normalize()
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		window: window,
		config: config,
		form:   NewFormState(config, time.Now()),
		ctx:    ctx,
		cancel: cancel,
	}
	window.SetOnClosed(cancel)
	return a
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Load Spreadsheet...", func() {
			a.loadFile()
		}),
		fyne.NewMenuItem("Create Pallet PDFs", func() {
			a.generate()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings...", func() {
			a.showSettingsDialog()
		}),
		fyne.NewMenuItem("Import / Export Settings...", func() {
			a.showImportExportDialog()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About PalletLabel",
		"PalletLabel: Excel to PDF pallet labels\n\n"+
			"Reads pallet line items from a spreadsheet and writes\n"+
			"one shipping label per pallet with a Code128 barcode.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the shipment form and returns the root container.
// Field labels are in Russian, the language of the warehouse operators.
func (a *App) Build() fyne.CanvasObject {
	numberEntry := widget.NewEntry()
	numberEntry.SetPlaceHolder("WB-0000000")
	numberEntry.OnChanged = func(s string) { a.form.DeliveryNumber = s }

	a.destination = a.newSelect(a.config.Destinations, &a.form.Destination)
	a.deliveryType = a.newSelect(a.config.DeliveryTypes, &a.form.DeliveryType)
	a.company = a.newSelect(a.config.Companies, &a.form.CompanyName)

	dateEntry := widget.NewDateEntry()
	dateEntry.SetDate(a.form.DeliveryDate)
	dateEntry.OnChanged = func(d *time.Time) { a.form.DeliveryDate = d }

	a.fileLabel = widget.NewLabel("Выберите Excel файл с данными:")
	a.fileLabel.Wrapping = fyne.TextWrapBreak
	loadButton := newIconButtonWithTooltip(theme.FolderOpenIcon(), "Загрузить файл", a.loadFile)

	form := widget.NewForm(
		widget.NewFormItem("Номер поставки", numberEntry),
		widget.NewFormItem("Склад назначения", a.destination),
		widget.NewFormItem("Тип поставки", a.deliveryType),
		widget.NewFormItem("Наименование Юр. Лица", a.company),
		widget.NewFormItem("Дата поставки", dateEntry),
	)

	a.generateButton = widget.NewButtonWithIcon("Создать PDF для паллетов", theme.DocumentSaveIcon(), a.generate)
	a.generateButton.Importance = widget.HighImportance

	return container.NewPadded(container.NewVBox(
		form,
		widget.NewSeparator(),
		container.NewBorder(nil, nil, nil, loadButton, a.fileLabel),
		a.generateButton,
	))
}

func (a *App) newSelect(options []string, target *string) *widget.Select {
	s := widget.NewSelect(options, func(selected string) { *target = selected })
	s.SetSelected(*target)
	return s
}

// refreshOptions swaps in the option lists of the active config, keeping
// the current selection where it is still offered.
func (a *App) refreshOptions() {
	for _, s := range []struct {
		sel     *widget.Select
		options []string
	}{
		{a.destination, a.config.Destinations},
		{a.deliveryType, a.config.DeliveryTypes},
		{a.company, a.config.Companies},
	} {
		if s.sel == nil {
			continue
		}
		current := s.sel.Selected
		s.sel.Options = s.options
		s.sel.Refresh()
		if !slices.Contains(s.options, current) {
			s.sel.SetSelected(first(s.options))
		}
	}
}

func (a *App) loadFile() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.form.SpreadsheetPath = reader.URI().Path()
		a.fileLabel.SetText("Файл: " + a.form.SpreadsheetPath)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter(importer.Extensions))
	d.Show()
}

// generate runs the pipeline off the UI goroutine and reports the
// outcome in a single dialog.
func (a *App) generate() {
	req, err := a.form.Request(a.config)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	a.generateButton.Disable()
	progress := dialog.NewCustomWithoutButtons("Создание PDF", widget.NewProgressBarInfinite(), a.window)
	progress.Show()

	go func() {
		report, err := project.Generate(a.ctx, req)
		fyne.Do(func() {
			progress.Hide()
			a.generateButton.Enable()
			a.showResult(report, err)
		})
	}()
}

func (a *App) showResult(report project.Report, err error) {
	if err != nil {
		log.Printf("run_id=%s generation failed: %v", report.RunID, err)
		dialog.ShowError(fmt.Errorf("Не удалось создать PDF: %w", err), a.window)
		return
	}
	if report.Err() != nil {
		dialog.ShowError(fmt.Errorf("%s", report.Summary()), a.window)
		return
	}

	dir, _ := filepath.Abs(report.OutputDir)
	msg := report.Summary()
	if report.TotalPallets > 0 {
		msg = fmt.Sprintf("PDF файлы успешно созданы!\n%s\n\n%s", dir, msg)
	}
	dialog.ShowInformation("Успех", msg, a.window)
}
