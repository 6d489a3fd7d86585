package get_shop_reservations

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-DetailingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/reservations/models"
)

// parseListRequest разбирает query параметры startDate, endDate, status, includeInactive, limit, offset
func parseListRequest(r *http.Request, userID, shopID int64) (*models.ListRequest, error) {
	startDate, err := handlers.QueryDate(r, "startDate")
	if err != nil {
		return nil, err
	}
	endDate, err := handlers.QueryDate(r, "endDate")
	if err != nil {
		return nil, err
	}
	limit, offset, err := handlers.QueryPage(r)
	if err != nil {
		return nil, err
	}

	req := &models.ListRequest{
		UserID:    userID,
		ShopID:    shopID,
		StartDate: startDate,
		EndDate:   endDate,
		Limit:     limit,
		Offset:    offset,
	}

	query := r.URL.Query()
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	if raw := query.Get("includeInactive"); raw != "" {
		req.IncludeInactive, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
	}

	return req, nil
}
