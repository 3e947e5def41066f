package model

import "slices"

// Language selects the label text printed on pallet documents.
type Language string

const (
	LanguageRussian Language = "ru"
	LanguageEnglish Language = "en"
)

// AppConfig holds application-wide preferences and the selectable
// form options.
type AppConfig struct {
	// Form options
	Destinations  []string `json:"destinations"`
	DeliveryTypes []string `json:"delivery_types"`
	Companies     []string `json:"companies"`

	// Label rendering
	Language    Language `json:"language"`     // "ru", "en"
	FontRegular string   `json:"font_regular"` // TTF path; empty uses the embedded font
	FontBold    string   `json:"font_bold"`
	QRCode      bool     `json:"qr_code"`

	// Output
	OutputRoot       string `json:"output_root"`
	StopOnFirstError bool   `json:"stop_on_first_error"`

	Theme string `json:"theme"` // "system", "light", "dark"
}

// Themes lists the accepted values of AppConfig.Theme.
var Themes = []string{"system", "light", "dark"}

// DefaultAppConfig returns an AppConfig with the stock warehouse options.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Destinations:  []string{"Электросталь", "Белые Столбы"},
		DeliveryTypes: []string{"Монопалета"},
		Companies:     []string{"ИП Иванов Иван Иванович", "ИП Дмитров Двитрий Дмитрович"},
		Language:      LanguageRussian,
		OutputRoot:    ".",
		Theme:         "system",
	}
}

// Normalize fills empty fields with their defaults so a partially
// written config file still yields a usable form.
func (c *AppConfig) Normalize() {
	defaults := DefaultAppConfig()
	if len(c.Destinations) == 0 {
		c.Destinations = defaults.Destinations
	}
	if len(c.DeliveryTypes) == 0 {
		c.DeliveryTypes = defaults.DeliveryTypes
	}
	if len(c.Companies) == 0 {
		c.Companies = defaults.Companies
	}
	if c.Language != LanguageRussian && c.Language != LanguageEnglish {
		c.Language = defaults.Language
	}
	if c.OutputRoot == "" {
		c.OutputRoot = defaults.OutputRoot
	}
	if !slices.Contains(Themes, c.Theme) {
		c.Theme = defaults.Theme
	}
}
