package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceCategory groups services in the public catalog
type ServiceCategory struct {
	ID       int64
	ShopID   int64
	Name     string
	Position int
}

// VehicleSize is a size class chosen by the client (city car, SUV, van...)
type VehicleSize struct {
	ID          int64
	ShopID      int64
	Name        string
	Description *string
	Position    int
}

// Service is a detailing service with a base price and duration
type Service struct {
	ID                  int64
	ShopID              int64
	CategoryID          *int64
	Name                string
	Description         *string
	ImageURL            *string
	BasePrice           decimal.Decimal
	BaseDurationMinutes int
	Position            int
	IsActive            bool

	Formulas        []Formula
	SizeSupplements []SizeSupplement

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Formula is a variant of a service adding price and duration on top of the base
type Formula struct {
	ID                        int64
	ServiceID                 int64
	Name                      string
	Description               *string
	AdditionalPrice           decimal.Decimal
	AdditionalDurationMinutes int
	Position                  int
}

// SizeSupplement is the extra price and duration of a vehicle size for one service
type SizeSupplement struct {
	ServiceID                 int64
	VehicleSizeID             int64
	AdditionalPrice           decimal.Decimal
	AdditionalDurationMinutes int
}

// AddOn is an optional extra selectable with any service of the shop
type AddOn struct {
	ID              int64
	ShopID          int64
	Name            string
	Description     *string
	Price           decimal.Decimal
	DurationMinutes int
	Position        int
	IsActive        bool
}

// FindFormula returns the formula of the service with the given id
func (s *Service) FindFormula(id int64) (*Formula, bool) {
	for i := range s.Formulas {
		if s.Formulas[i].ID == id {
			return &s.Formulas[i], true
		}
	}
	return nil, false
}

// SupplementFor returns the supplement for a vehicle size, zero value when not configured
func (s *Service) SupplementFor(vehicleSizeID int64) SizeSupplement {
	for _, sup := range s.SizeSupplements {
		if sup.VehicleSizeID == vehicleSizeID {
			return sup
		}
	}
	return SizeSupplement{ServiceID: s.ID, VehicleSizeID: vehicleSizeID, AdditionalPrice: decimal.Zero}
}

// ReorderableList identifies a list whose order is edited by drag and drop
type ReorderableList string

const (
	ListCategories   ReorderableList = "categories"
	ListVehicleSizes ReorderableList = "vehicle_sizes"
	ListServices     ReorderableList = "services"
	ListAddOns       ReorderableList = "add_ons"
	ListFormulas     ReorderableList = "formulas"
)

// IsValid returns true for a known list
func (l ReorderableList) IsValid() bool {
	switch l {
	case ListCategories, ListVehicleSizes, ListServices, ListAddOns, ListFormulas:
		return true
	default:
		return false
	}
}

// Catalog is everything the public booking flow shows for a shop
type Catalog struct {
	Shop         *Shop
	Categories   []ServiceCategory
	VehicleSizes []VehicleSize
	Services     []*Service
	AddOns       []AddOn
	Schedule     WeeklySchedule
}
