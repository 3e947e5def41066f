package ui

import (
	"time"

	"github.com/piwi3910/palletlabel/internal/model"
	"github.com/piwi3910/palletlabel/internal/project"
)

// FormState is the typed content of the shipment form.
type FormState struct {
	DeliveryNumber  string
	Destination     string
	DeliveryType    string
	CompanyName     string
	DeliveryDate    *time.Time
	SpreadsheetPath string
}

// NewFormState preselects the first option of every list and today's date.
func NewFormState(cfg model.AppConfig, now time.Time) FormState {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return FormState{
		Destination:  first(cfg.Destinations),
		DeliveryType: first(cfg.DeliveryTypes),
		CompanyName:  first(cfg.Companies),
		DeliveryDate: &today,
	}
}

func first(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[0]
}

// Shipment converts the form into a validated ShipmentContext.
func (f FormState) Shipment(cfg model.AppConfig) (model.ShipmentContext, error) {
	if f.DeliveryDate == nil {
		return model.ShipmentContext{}, model.InputError("read form", "delivery date is required")
	}
	ship := model.ShipmentContext{
		DeliveryNumber: f.DeliveryNumber,
		Destination:    f.Destination,
		DeliveryType:   f.DeliveryType,
		CompanyName:    f.CompanyName,
		DeliveryDate:   *f.DeliveryDate,
	}.Normalized()
	if err := ship.Validate(cfg); err != nil {
		return model.ShipmentContext{}, err
	}
	return ship, nil
}

// Request builds the generation request for the current form.
func (f FormState) Request(cfg model.AppConfig) (project.GenerateRequest, error) {
	ship, err := f.Shipment(cfg)
	if err != nil {
		return project.GenerateRequest{}, err
	}
	if f.SpreadsheetPath == "" {
		return project.GenerateRequest{}, model.InputError("read form", "select a spreadsheet first")
	}
	return project.GenerateRequest{
		Shipment:        ship,
		SpreadsheetPath: f.SpreadsheetPath,
		Config:          cfg,
	}, nil
}
