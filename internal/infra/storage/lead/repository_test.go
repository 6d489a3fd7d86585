package lead

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

func TestListQuery(t *testing.T) {
	source := domain.LeadSourceContactForm
	query, args, err := listQuery(domain.LeadsFilter{ShopID: 3, Source: &source, Limit: 20}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE shop_id = $1 AND source = $2")
	assert.Contains(t, query, "ORDER BY created_at DESC, id DESC LIMIT 20")
	assert.NotContains(t, query, "OFFSET")
	assert.Equal(t, []interface{}{int64(3), "contact_form"}, args)
}
