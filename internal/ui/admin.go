package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/palletlabel/internal/model"
	"github.com/piwi3910/palletlabel/internal/project"
)

// showSettingsDialog displays the application settings editor.
func (a *App) showSettingsDialog() {
	cfg := a.config

	// One option per line
	listEntry := func(val *[]string) *widget.Entry {
		e := widget.NewMultiLineEntry()
		e.SetText(strings.Join(*val, "\n"))
		e.SetMinRowsVisible(3)
		e.OnChanged = func(text string) {
			*val = splitOptions(text)
		}
		return e
	}

	pathEntry := func(val *string, placeholder string) *widget.Entry {
		e := widget.NewEntry()
		e.SetPlaceHolder(placeholder)
		e.SetText(*val)
		e.OnChanged = func(text string) { *val = strings.TrimSpace(text) }
		return e
	}

	languageSelect := widget.NewSelect([]string{string(model.LanguageRussian), string(model.LanguageEnglish)}, func(selected string) {
		cfg.Language = model.Language(selected)
	})
	languageSelect.SetSelected(string(cfg.Language))

	themeSelect := widget.NewSelect(model.Themes, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	qrCheck := widget.NewCheck("Print QR code with pallet facts", func(on bool) { cfg.QRCode = on })
	qrCheck.SetChecked(cfg.QRCode)

	stopCheck := widget.NewCheck("Stop at the first pallet that fails", func(on bool) { cfg.StopOnFirstError = on })
	stopCheck.SetChecked(cfg.StopOnFirstError)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Destinations", listEntry(&cfg.Destinations)),
		widget.NewFormItem("Delivery Types", listEntry(&cfg.DeliveryTypes)),
		widget.NewFormItem("Companies", listEntry(&cfg.Companies)),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Label Language", languageSelect),
		widget.NewFormItem("Regular Font (TTF)", pathEntry(&cfg.FontRegular, "embedded")),
		widget.NewFormItem("Bold Font (TTF)", pathEntry(&cfg.FontBold, "embedded")),
		widget.NewFormItem("", qrCheck),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Output Folder", pathEntry(&cfg.OutputRoot, ".")),
		widget.NewFormItem("", stopCheck),
		widget.NewFormItem("Theme", themeSelect),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			a.applyConfig(cfg)
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
			} else {
				dialog.ShowInformation("Settings Saved", "Application settings have been saved.", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(520, 640))
	d.Show()
}

// showImportExportDialog moves settings between workstations.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export Settings...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()
			path := writer.URI().Path()
			if err := project.ExportSettings(path, a.config); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("Settings exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("palletlabel-settings.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import Settings...", func() {
		dialog.ShowConfirm("Import Settings",
			"Importing will replace the current option lists and preferences.\n\nContinue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					defer reader.Close()
					backup, err := project.ImportSettings(reader.URI().Path())
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.applyConfig(backup.Config)
					if err := a.saveConfig(); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
						return
					}
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Settings imported from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export the option lists and preferences to a file,\nor import them from another workstation."),
		widget.NewSeparator(),
		exportBtn,
		importBtn,
	)

	d := dialog.NewCustom("Import / Export Settings", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 220))
	d.Show()
}

// applyConfig replaces the active config and refreshes the theme.
func (a *App) applyConfig(cfg model.AppConfig) {
	cfg.Normalize()
	a.config = cfg
	a.refreshOptions()
	if app := fyne.CurrentApp(); app != nil {
		app.Settings().SetTheme(NewPalletTheme(cfg.Theme))
	}
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.ConfigPath(), a.config)
}

func splitOptions(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
