package reservation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

func TestListQuery_SingleDayForUpdate(t *testing.T) {
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	filter := domain.ReservationsFilter{ShopID: 7, StartDate: &date, EndDate: &date}

	query, args, err := listQuery(filter, true).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM reservations WHERE shop_id = $1")
	assert.Contains(t, query, "reservation_date >= $2")
	assert.Contains(t, query, "reservation_date <= $3")
	assert.Contains(t, query, "status NOT IN ($4,$5,$6)")
	assert.Contains(t, query, "ORDER BY start_time ASC, id ASC")
	assert.True(t, strings.HasSuffix(query, "FOR UPDATE"))
	assert.Equal(t, []interface{}{int64(7), date, date, "cancelled_by_client", "cancelled_by_shop", "no_show"}, args)
}

func TestListQuery_RangeNeverLocks(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	filter := domain.ReservationsFilter{ShopID: 7, StartDate: &start, EndDate: &end, Limit: 50, Offset: 100}

	query, _, err := listQuery(filter, true).ToSql()
	require.NoError(t, err)

	assert.NotContains(t, query, "FOR UPDATE")
	assert.Contains(t, query, "ORDER BY reservation_date DESC, start_time DESC, id DESC")
	assert.Contains(t, query, "LIMIT 50 OFFSET 100")
}

func TestListQuery_StatusFilter(t *testing.T) {
	status := domain.StatusNoShow
	filter := domain.ReservationsFilter{ShopID: 1, Status: &status}

	query, args, err := listQuery(filter, false).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "status = $2")
	assert.NotContains(t, query, "NOT IN")
	assert.Equal(t, []interface{}{int64(1), "no_show"}, args)
}

func TestListQuery_IncludeInactive(t *testing.T) {
	query, args, err := listQuery(domain.ReservationsFilter{ShopID: 1, IncludeInactive: true}, false).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE shop_id = $1 ORDER BY")
	assert.NotContains(t, query, "NOT IN")
	assert.NotContains(t, query, "status =")
	assert.Len(t, args, 1)
}
