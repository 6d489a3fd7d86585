package domain

import "github.com/shopspring/decimal"

// QuoteLineKind is the origin of a quote line
type QuoteLineKind string

const (
	LineService     QuoteLineKind = "service"
	LineFormula     QuoteLineKind = "formula"
	LineVehicleSize QuoteLineKind = "vehicle_size"
	LineAddOn       QuoteLineKind = "add_on"
)

// Selection is what the client picked in the booking wizard
type Selection struct {
	ServiceID     int64
	FormulaID     *int64
	VehicleSizeID *int64
	AddOnIDs      []int64
}

// QuoteLine is one additive component of a quote
type QuoteLine struct {
	Kind            QuoteLineKind
	RefID           int64
	Name            string
	Price           decimal.Decimal
	DurationMinutes int
}

// Quote is the price and duration of a selection
type Quote struct {
	Selection            Selection
	ServiceName          string
	FormulaName          *string
	Lines                []QuoteLine
	TotalPrice           decimal.Decimal
	TotalDurationMinutes int
}
