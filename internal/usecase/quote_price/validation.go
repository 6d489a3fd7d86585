package quote_price

import (
	"fmt"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

// ValidateSelection проверяет идентификаторы выбора клиента
func ValidateSelection(sel domain.Selection) error {
	if sel.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	if sel.FormulaID != nil && *sel.FormulaID <= 0 {
		return fmt.Errorf("%w: formulaId must be positive", ErrInvalidInput)
	}

	if sel.VehicleSizeID != nil && *sel.VehicleSizeID <= 0 {
		return fmt.Errorf("%w: vehicleSizeId must be positive", ErrInvalidInput)
	}

	if len(sel.AddOnIDs) > domain.MaxAddOnsPerReservation {
		return fmt.Errorf("%w: at most %d add-ons", ErrInvalidInput, domain.MaxAddOnsPerReservation)
	}

	seen := make(map[int64]struct{}, len(sel.AddOnIDs))
	for _, id := range sel.AddOnIDs {
		if id <= 0 {
			return fmt.Errorf("%w: addOnIds must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: add-on %d selected twice", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	return nil
}
