package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testService() *domain.Service {
	return &domain.Service{
		ID:                  1,
		Name:                "Полировка",
		BasePrice:           dec("100.00"),
		BaseDurationMinutes: 120,
		IsActive:            true,
	}
}

func TestBuildQuote_BaseOnly(t *testing.T) {
	q, err := BuildQuote(Input{Service: testService()})
	require.NoError(t, err)

	assert.Equal(t, "100.00", q.TotalPrice.StringFixed(2))
	assert.Equal(t, 120, q.TotalDurationMinutes)
	require.Len(t, q.Lines, 1)
	assert.Equal(t, domain.LineService, q.Lines[0].Kind)
	assert.Nil(t, q.FormulaName)
	assert.Empty(t, q.Selection.AddOnIDs)
}

func TestBuildQuote_NilService(t *testing.T) {
	q, err := BuildQuote(Input{AddOns: []domain.AddOn{{ID: 1, IsActive: true, DurationMinutes: 10}}})

	assert.ErrorIs(t, err, ErrMissingService)
	assert.Nil(t, q)
}

func TestBuildQuote_AllComponents(t *testing.T) {
	service := testService()
	formula := &domain.Formula{ID: 7, ServiceID: 1, Name: "Премиум", AdditionalPrice: dec("50"), AdditionalDurationMinutes: 60}
	size := &domain.VehicleSize{ID: 3, Name: "SUV"}
	sup := &domain.SizeSupplement{ServiceID: 1, VehicleSizeID: 3, AdditionalPrice: dec("20.50"), AdditionalDurationMinutes: 30}
	addOns := []domain.AddOn{
		{ID: 11, Name: "Чернение шин", Price: dec("10"), DurationMinutes: 15, IsActive: true},
		{ID: 10, Name: "Озонирование", Price: dec("15.25"), DurationMinutes: 30, IsActive: true},
	}

	q, err := BuildQuote(Input{Service: service, Formula: formula, Size: size, Supplement: sup, AddOns: addOns})
	require.NoError(t, err)

	assert.Equal(t, "195.75", q.TotalPrice.StringFixed(2))
	assert.Equal(t, 255, q.TotalDurationMinutes)
	assert.Equal(t, "Премиум", *q.FormulaName)
	assert.Equal(t, int64(7), *q.Selection.FormulaID)
	assert.Equal(t, int64(3), *q.Selection.VehicleSizeID)
	assert.Equal(t, []int64{11, 10}, q.Selection.AddOnIDs)

	kinds := make([]domain.QuoteLineKind, 0, len(q.Lines))
	for _, l := range q.Lines {
		kinds = append(kinds, l.Kind)
	}
	assert.Equal(t, []domain.QuoteLineKind{
		domain.LineService, domain.LineFormula, domain.LineVehicleSize, domain.LineAddOn, domain.LineAddOn,
	}, kinds)
}

func TestBuildQuote_SizeWithoutSupplement(t *testing.T) {
	q, err := BuildQuote(Input{Service: testService(), Size: &domain.VehicleSize{ID: 2, Name: "Citadine"}})
	require.NoError(t, err)

	assert.Equal(t, "100.00", q.TotalPrice.StringFixed(2))
	assert.Equal(t, 120, q.TotalDurationMinutes)
	assert.Len(t, q.Lines, 2)
	assert.True(t, q.Lines[1].Price.IsZero())
}

func TestBuildQuote_DiscountFormula(t *testing.T) {
	formula := &domain.Formula{ID: 2, ServiceID: 1, Name: "Экспресс", AdditionalPrice: dec("-30"), AdditionalDurationMinutes: -60}

	q, err := BuildQuote(Input{Service: testService(), Formula: formula})
	require.NoError(t, err)
	assert.Equal(t, "70.00", q.TotalPrice.StringFixed(2))
	assert.Equal(t, 60, q.TotalDurationMinutes)
}

func TestBuildQuote_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   func() Input
		wantErr error
	}{
		{
			name: "inactive service",
			input: func() Input {
				s := testService()
				s.IsActive = false
				return Input{Service: s}
			},
			wantErr: ErrInactiveService,
		},
		{
			name: "formula of another service",
			input: func() Input {
				return Input{Service: testService(), Formula: &domain.Formula{ID: 5, ServiceID: 99}}
			},
			wantErr: ErrFormulaMismatch,
		},
		{
			name: "supplement of another size",
			input: func() Input {
				return Input{
					Service:    testService(),
					Size:       &domain.VehicleSize{ID: 3},
					Supplement: &domain.SizeSupplement{ServiceID: 1, VehicleSizeID: 4},
				}
			},
			wantErr: ErrSupplementMismatch,
		},
		{
			name: "duplicate add-on",
			input: func() Input {
				a := domain.AddOn{ID: 1, IsActive: true, Price: dec("1")}
				return Input{Service: testService(), AddOns: []domain.AddOn{a, a}}
			},
			wantErr: ErrDuplicateAddOn,
		},
		{
			name: "inactive add-on",
			input: func() Input {
				return Input{Service: testService(), AddOns: []domain.AddOn{{ID: 1}}}
			},
			wantErr: ErrInactiveAddOn,
		},
		{
			name: "zero duration",
			input: func() Input {
				f := &domain.Formula{ID: 1, ServiceID: 1, AdditionalDurationMinutes: -120}
				return Input{Service: testService(), Formula: f}
			},
			wantErr: ErrNonPositiveDuration,
		},
		{
			name: "negative total",
			input: func() Input {
				f := &domain.Formula{ID: 1, ServiceID: 1, AdditionalPrice: dec("-100.01")}
				return Input{Service: testService(), Formula: f}
			},
			wantErr: ErrNegativePrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := BuildQuote(tt.input())
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, q)
		})
	}
}
