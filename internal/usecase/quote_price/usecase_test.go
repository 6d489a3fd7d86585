package quote_price

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/catalog"
	shopRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/shop"
	"github.com/m04kA/SMC-DetailingBooking/pkg/logger"
	"github.com/m04kA/SMC-DetailingBooking/pkg/ptr"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeShops struct {
	shops map[string]*domain.Shop
	err   error
}

func (f *fakeShops) GetBySlug(_ context.Context, slug string) (*domain.Shop, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.shops[slug]
	if !ok {
		return nil, shopRepo.ErrShopNotFound
	}
	return s, nil
}

type fakeCatalog struct {
	services map[int64]*domain.Service
	formulas map[int64]*domain.Formula
	sizes    map[int64]*domain.VehicleSize
	addOns   map[int64]domain.AddOn
	err      error
}

func (f *fakeCatalog) GetService(_ context.Context, shopID, serviceID int64) (*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.services[serviceID]
	if !ok || s.ShopID != shopID {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

func (f *fakeCatalog) GetFormula(_ context.Context, serviceID, formulaID int64) (*domain.Formula, error) {
	fm, ok := f.formulas[formulaID]
	if !ok || fm.ServiceID != serviceID {
		return nil, catalogRepo.ErrFormulaNotFound
	}
	return fm, nil
}

func (f *fakeCatalog) GetVehicleSize(_ context.Context, shopID, sizeID int64) (*domain.VehicleSize, error) {
	s, ok := f.sizes[sizeID]
	if !ok || s.ShopID != shopID {
		return nil, catalogRepo.ErrVehicleSizeNotFound
	}
	return s, nil
}

func (f *fakeCatalog) GetAddOnsByIDs(_ context.Context, _ int64, ids []int64) ([]domain.AddOn, error) {
	result := make([]domain.AddOn, 0, len(ids))
	for _, id := range ids {
		a, ok := f.addOns[id]
		if !ok {
			return nil, catalogRepo.ErrAddOnNotFound
		}
		result = append(result, a)
	}
	return result, nil
}

type fakeMetrics struct {
	mu      sync.Mutex
	results []string
}

func (m *fakeMetrics) QuoteServed(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, result)
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newFixture() (*UseCase, *fakeCatalog, *fakeMetrics) {
	shops := &fakeShops{shops: map[string]*domain.Shop{
		"shine":  {ID: 1, Slug: "shine", IsPublished: true},
		"hidden": {ID: 2, Slug: "hidden"},
	}}
	catalog := &fakeCatalog{
		services: map[int64]*domain.Service{
			10: {
				ID: 10, ShopID: 1, Name: "Полировка", BasePrice: d("100"), BaseDurationMinutes: 120, IsActive: true,
				SizeSupplements: []domain.SizeSupplement{
					{ServiceID: 10, VehicleSizeID: 30, AdditionalPrice: d("25"), AdditionalDurationMinutes: 30},
				},
			},
			11: {ID: 11, ShopID: 1, Name: "Старая услуга", BasePrice: d("10"), BaseDurationMinutes: 30},
		},
		formulas: map[int64]*domain.Formula{
			20: {ID: 20, ServiceID: 10, Name: "Премиум", AdditionalPrice: d("40"), AdditionalDurationMinutes: 45},
		},
		sizes: map[int64]*domain.VehicleSize{
			30: {ID: 30, ShopID: 1, Name: "SUV"},
			31: {ID: 31, ShopID: 1, Name: "Citadine"},
		},
		addOns: map[int64]domain.AddOn{
			40: {ID: 40, ShopID: 1, Name: "Озон", Price: d("15.5"), DurationMinutes: 15, IsActive: true},
			41: {ID: 41, ShopID: 1, Name: "Воск", Price: d("9.99"), DurationMinutes: 10},
		},
	}
	m := &fakeMetrics{}
	return NewUseCase(shops, catalog, m, logger.NewNop()), catalog, m
}

func TestExecute_FullSelection(t *testing.T) {
	uc, _, m := newFixture()

	resp, err := uc.Execute(context.Background(), &Request{
		Slug: "shine",
		Selection: domain.Selection{
			ServiceID:     10,
			FormulaID:     ptr.Ptr(int64(20)),
			VehicleSizeID: ptr.Ptr(int64(30)),
			AddOnIDs:      []int64{40},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ShopID)
	assert.Equal(t, "180.50", resp.Quote.TotalPrice.StringFixed(2))
	assert.Equal(t, 210, resp.Quote.TotalDurationMinutes)
	assert.Len(t, resp.Quote.Lines, 4)
	assert.Equal(t, []string{"ok"}, m.results)
}

func TestExecute_SizeWithoutSupplementAddsNothing(t *testing.T) {
	uc, _, _ := newFixture()

	resp, err := uc.Execute(context.Background(), &Request{
		Slug:      "shine",
		Selection: domain.Selection{ServiceID: 10, VehicleSizeID: ptr.Ptr(int64(31))},
	})
	require.NoError(t, err)
	assert.Equal(t, "100.00", resp.Quote.TotalPrice.StringFixed(2))
	assert.Equal(t, 120, resp.Quote.TotalDurationMinutes)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{name: "unknown shop", req: Request{Slug: "nope", Selection: domain.Selection{ServiceID: 10}}, wantErr: ErrShopNotFound},
		{name: "unpublished shop", req: Request{Slug: "hidden", Selection: domain.Selection{ServiceID: 10}}, wantErr: ErrShopNotFound},
		{name: "invalid slug", req: Request{Slug: "A!", Selection: domain.Selection{ServiceID: 10}}, wantErr: ErrShopNotFound},
		{name: "missing service id", req: Request{Slug: "shine"}, wantErr: ErrInvalidInput},
		{name: "unknown service", req: Request{Slug: "shine", Selection: domain.Selection{ServiceID: 99}}, wantErr: ErrServiceNotFound},
		{name: "inactive service", req: Request{Slug: "shine", Selection: domain.Selection{ServiceID: 11}}, wantErr: ErrServiceNotFound},
		{
			name:    "formula of another service",
			req:     Request{Slug: "shine", Selection: domain.Selection{ServiceID: 11, FormulaID: ptr.Ptr(int64(20))}},
			wantErr: ErrFormulaNotFound,
		},
		{
			name:    "unknown size",
			req:     Request{Slug: "shine", Selection: domain.Selection{ServiceID: 10, VehicleSizeID: ptr.Ptr(int64(77))}},
			wantErr: ErrVehicleSizeNotFound,
		},
		{
			name:    "inactive add-on",
			req:     Request{Slug: "shine", Selection: domain.Selection{ServiceID: 10, AddOnIDs: []int64{41}}},
			wantErr: ErrAddOnNotFound,
		},
		{
			name:    "duplicate add-on",
			req:     Request{Slug: "shine", Selection: domain.Selection{ServiceID: 10, AddOnIDs: []int64{40, 40}}},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, _ := newFixture()
			resp, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, resp)
		})
	}
}

func TestExecute_RepositoryFailureIsInternal(t *testing.T) {
	uc, catalog, _ := newFixture()
	catalog.err = errors.New("connection reset")

	_, err := uc.Execute(context.Background(), &Request{Slug: "shine", Selection: domain.Selection{ServiceID: 10}})
	assert.ErrorIs(t, err, ErrInternal)
}
