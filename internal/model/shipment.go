package model

import (
	"slices"
	"strings"
	"time"
)

// DateLayout is the day.month.year format printed on labels.
const DateLayout = "02.01.2006"

// ShipmentContext holds the delivery facts entered on the form. It is
// shared read-only by every pallet document of a run.
type ShipmentContext struct {
	DeliveryNumber string
	Destination    string
	DeliveryType   string
	CompanyName    string
	DeliveryDate   time.Time
}

// FormattedDate returns the delivery date as printed on the label.
func (s ShipmentContext) FormattedDate() string {
	return s.DeliveryDate.Format(DateLayout)
}

// Normalized returns a copy with the delivery number trimmed, the form
// in which it names the output folder and appears on labels.
func (s ShipmentContext) Normalized() ShipmentContext {
	s.DeliveryNumber = strings.TrimSpace(s.DeliveryNumber)
	return s
}

// Validate checks the context against the selectable options of cfg.
func (s ShipmentContext) Validate(cfg AppConfig) error {
	const op = "validate shipment"

	number := strings.TrimSpace(s.DeliveryNumber)
	if number == "" {
		return InputError(op, "delivery number is required")
	}
	if !IsSafeFileName(number) {
		return InputError(op, "delivery number %q cannot be used as a directory name", s.DeliveryNumber)
	}
	if !slices.Contains(cfg.Destinations, s.Destination) {
		return InputError(op, "unknown destination %q", s.Destination)
	}
	if !slices.Contains(cfg.DeliveryTypes, s.DeliveryType) {
		return InputError(op, "unknown delivery type %q", s.DeliveryType)
	}
	if !slices.Contains(cfg.Companies, s.CompanyName) {
		return InputError(op, "unknown company %q", s.CompanyName)
	}
	if s.DeliveryDate.IsZero() {
		return InputError(op, "delivery date is required")
	}
	return nil
}

// reservedChars cannot appear in a file name on Windows or Unix.
const reservedChars = `/\:*?"<>|`

// IsSafeFileName reports whether name can be used as a single path
// element on every supported platform: non-empty, not "." or "..", free
// of separators, Windows-reserved and control characters, and not
// ending in a dot or space.
func IsSafeFileName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, reservedChars) {
		return false
	}
	for _, r := range name {
		if r < 0x20 {
			return false
		}
	}
	return !strings.HasSuffix(name, ".") && !strings.HasSuffix(name, " ")
}
