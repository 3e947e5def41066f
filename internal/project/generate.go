package project

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/piwi3910/palletlabel/internal/engine"
	"github.com/piwi3910/palletlabel/internal/export"
	"github.com/piwi3910/palletlabel/internal/importer"
	"github.com/piwi3910/palletlabel/internal/model"
	"github.com/piwi3910/palletlabel/internal/platform/obs"
)

// GenerateRequest is the explicit state of one generation run.
type GenerateRequest struct {
	Shipment        model.ShipmentContext
	SpreadsheetPath string
	Config          model.AppConfig

	// Renderer overrides the renderer built from Config.
	Renderer *export.Renderer
}

// PalletFailure records a pallet whose document could not be written.
type PalletFailure struct {
	Pallet string
	Err    error
}

// Report summarizes a generation run.
type Report struct {
	RunID        string
	Shipment     model.ShipmentContext // as printed on the labels
	OutputDir    string
	TotalPallets int
	Written      []string // document paths in pallet order
	Failures     []PalletFailure
	Warnings     []string
}

// Err joins the per-pallet failures, or returns nil if every document
// was written.
func (r Report) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = fmt.Errorf("pallet %s: %w", f.Pallet, f.Err)
	}
	return errors.Join(errs...)
}

// Summary returns a human-readable outcome for the completion dialog.
func (r Report) Summary() string {
	var b strings.Builder
	switch {
	case r.TotalPallets == 0:
		b.WriteString("The spreadsheet contains no pallets; no files were created.")
	case len(r.Failures) == 0:
		fmt.Fprintf(&b, "Created %d PDF files in %s.", len(r.Written), r.OutputDir)
	default:
		fmt.Fprintf(&b, "Created %d of %d PDF files in %s.\n\nFailed:\n%v",
			len(r.Written), r.TotalPallets, r.OutputDir, r.Err())
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n\nWarnings:\n")
		b.WriteString(strings.Join(r.Warnings, "\n"))
	}
	return b.String()
}

// Generate reads the spreadsheet, groups its rows by pallet and writes
// one label document per pallet into <output root>/<delivery number>/.
//
// Input and data errors abort before any file is written. A pallet that
// fails to render is recorded in the report and the run moves on, unless
// Config.StopOnFirstError is set, in which case Generate returns the
// error; documents written before the failure stay on disk.
func Generate(ctx context.Context, req GenerateRequest) (report Report, err error) {
	report.RunID = uuid.New().String()[:8]
	ctx = obs.WithRunID(ctx, report.RunID)
	defer obs.Time(ctx, "generate")(&err)

	cfg := req.Config
	cfg.Normalize()

	ship := req.Shipment.Normalized()
	report.Shipment = ship
	if err := ship.Validate(cfg); err != nil {
		return report, err
	}

	agg, warnings, err := loadPallets(ctx, req.SpreadsheetPath)
	if err != nil {
		return report, err
	}
	report.Warnings = warnings
	report.TotalPallets = agg.TotalPallets

	if len(agg.Groups) == 0 {
		return report, nil
	}
	if err := checkFileNames(agg.Groups); err != nil {
		return report, err
	}

	report.OutputDir = OutputDir(cfg.OutputRoot, ship.DeliveryNumber)
	if err := EnsureOutputDir(report.OutputDir); err != nil {
		return report, err
	}

	renderer := req.Renderer
	if renderer == nil {
		renderer = export.NewRenderer(cfg)
	}

	for _, group := range agg.Groups {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if distinct := group.DistinctBarcodes(); len(distinct) > 1 {
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"Pallet %s has %d different barcodes; only %s is printed", group.PalletNumber, len(distinct), distinct[0]))
		}

		path := PalletPath(report.OutputDir, group.PalletNumber)
		if err := renderPallet(ctx, renderer, path, ship, group, agg.TotalPallets, cfg.Language); err != nil {
			if cfg.StopOnFirstError {
				return report, fmt.Errorf("pallet %s: %w", group.PalletNumber, err)
			}
			log.Printf("run_id=%s pallet=%s skipped: %v", report.RunID, group.PalletNumber, err)
			report.Failures = append(report.Failures, PalletFailure{Pallet: group.PalletNumber, Err: err})
			continue
		}
		report.Written = append(report.Written, path)
	}

	return report, nil
}

func loadPallets(ctx context.Context, path string) (agg model.Aggregation, warnings []string, err error) {
	defer obs.Time(ctx, "load pallets")(&err)

	if strings.TrimSpace(path) == "" {
		return agg, nil, model.InputError("read spreadsheet", "no spreadsheet selected")
	}

	result, err := importer.ReadRows(path)
	if err != nil {
		return agg, nil, err
	}
	for _, w := range result.Warnings {
		log.Printf("run_id=%s import warning: %s", obs.RunID(ctx), w)
	}

	agg, err = engine.Aggregate(result.Rows)
	if err != nil {
		return agg, nil, err
	}
	return agg, result.Warnings, nil
}

func renderPallet(ctx context.Context, r *export.Renderer, path string, ship model.ShipmentContext, group model.PalletGroup, total int, lang model.Language) (err error) {
	defer obs.Time(ctx, "render pallet "+group.PalletNumber)(&err)

	label, err := export.BuildLabel(ship, group, total, lang)
	if err != nil {
		return err
	}
	return r.Render(path, label, export.NewLabelInfo(ship, group, total))
}
