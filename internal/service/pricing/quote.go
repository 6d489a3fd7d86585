package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/pkg/ptr"
)

// Input components of a quote
// Formula, Size and Supplement are optional; a size without a supplement costs nothing extra
type Input struct {
	Service    *domain.Service
	Formula    *domain.Formula
	Size       *domain.VehicleSize
	Supplement *domain.SizeSupplement
	AddOns     []domain.AddOn
}

// BuildQuote sums base, formula, vehicle size and add-on components into a quote
// Lines keep a stable order: service, formula, vehicle size, add-ons in the caller's order
func BuildQuote(in Input) (*domain.Quote, error) {
	service := in.Service
	if service == nil {
		return nil, ErrMissingService
	}
	if !service.IsActive {
		return nil, fmt.Errorf("%w: service id=%d", ErrInactiveService, service.ID)
	}
	if len(in.AddOns) > domain.MaxAddOnsPerReservation {
		return nil, fmt.Errorf("%w: max %d", ErrTooManyAddOns, domain.MaxAddOnsPerReservation)
	}

	quote := &domain.Quote{
		Selection:   domain.Selection{ServiceID: service.ID, AddOnIDs: make([]int64, 0, len(in.AddOns))},
		ServiceName: service.Name,
		Lines:       make([]domain.QuoteLine, 0, 3+len(in.AddOns)),
	}

	quote.Lines = append(quote.Lines, domain.QuoteLine{
		Kind:            domain.LineService,
		RefID:           service.ID,
		Name:            service.Name,
		Price:           service.BasePrice,
		DurationMinutes: service.BaseDurationMinutes,
	})

	if f := in.Formula; f != nil {
		if f.ServiceID != service.ID {
			return nil, fmt.Errorf("%w: formula id=%d, service id=%d", ErrFormulaMismatch, f.ID, service.ID)
		}
		quote.Selection.FormulaID = ptr.Ptr(f.ID)
		quote.FormulaName = ptr.Ptr(f.Name)
		quote.Lines = append(quote.Lines, domain.QuoteLine{
			Kind:            domain.LineFormula,
			RefID:           f.ID,
			Name:            f.Name,
			Price:           f.AdditionalPrice,
			DurationMinutes: f.AdditionalDurationMinutes,
		})
	}

	if size := in.Size; size != nil {
		line := domain.QuoteLine{
			Kind:  domain.LineVehicleSize,
			RefID: size.ID,
			Name:  size.Name,
			Price: decimal.Zero,
		}
		if sup := in.Supplement; sup != nil {
			if sup.ServiceID != service.ID || sup.VehicleSizeID != size.ID {
				return nil, fmt.Errorf("%w: service id=%d, size id=%d", ErrSupplementMismatch, service.ID, size.ID)
			}
			line.Price = sup.AdditionalPrice
			line.DurationMinutes = sup.AdditionalDurationMinutes
		}
		quote.Selection.VehicleSizeID = ptr.Ptr(size.ID)
		quote.Lines = append(quote.Lines, line)
	}

	seen := make(map[int64]struct{}, len(in.AddOns))
	for _, a := range in.AddOns {
		if _, ok := seen[a.ID]; ok {
			return nil, fmt.Errorf("%w: add-on id=%d", ErrDuplicateAddOn, a.ID)
		}
		seen[a.ID] = struct{}{}
		if !a.IsActive {
			return nil, fmt.Errorf("%w: add-on id=%d", ErrInactiveAddOn, a.ID)
		}
		quote.Selection.AddOnIDs = append(quote.Selection.AddOnIDs, a.ID)
		quote.Lines = append(quote.Lines, domain.QuoteLine{
			Kind:            domain.LineAddOn,
			RefID:           a.ID,
			Name:            a.Name,
			Price:           a.Price,
			DurationMinutes: a.DurationMinutes,
		})
	}

	total := decimal.Zero
	duration := 0
	for _, line := range quote.Lines {
		total = total.Add(line.Price)
		duration += line.DurationMinutes
	}

	if duration <= 0 {
		return nil, fmt.Errorf("%w: got %d minutes", ErrNonPositiveDuration, duration)
	}
	if total.IsNegative() {
		return nil, fmt.Errorf("%w: got %s", ErrNegativePrice, total.StringFixed(2))
	}

	quote.TotalPrice = total.Round(2)
	quote.TotalDurationMinutes = duration
	return quote, nil
}
