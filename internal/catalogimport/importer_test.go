package catalogimport

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	shopRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/shop"
	"github.com/m04kA/SMC-DetailingBooking/pkg/logger"
)

const sample = `
[shop]
slug = "shine-lyon"
name = "Shine Lyon"
timezone = "Europe/Paris"
published = true

[settings]
slot_step_minutes = 30
auto_confirm = true

[[schedule]]
day = "monday"
open = "09:00"
close = "12:00"

[[schedule]]
day = "mon"
open = "14:00"
close = "18:00"

[[categories]]
key = "ext"
name = "Extérieur"

[[vehicle_sizes]]
key = "city"
name = "Citadine"

[[vehicle_sizes]]
key = "suv"
name = "SUV"

[[services]]
category = "ext"
name = "Lavage complet"
base_price = "49.90"
duration = 60

  [[services.formulas]]
  name = "Premium"
  price = "20"
  duration = 30

  [[services.supplements]]
  size = "suv"
  price = "15.00"
  duration = 15

[[add_ons]]
name = "Cire"
price = "12.50"
duration = 20
`

type txKey struct{}

type fakeTx struct{ calls int }

func (f *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(context.WithValue(ctx, txKey{}, true))
}

type fakeShops struct {
	created *domain.Shop
	err     error
}

func (f *fakeShops) Create(ctx context.Context, shop *domain.Shop) (*domain.Shop, error) {
	if ctx.Value(txKey{}) == nil {
		return nil, errors.New("not in tx")
	}
	if f.err != nil {
		return nil, f.err
	}
	shop.ID = 42
	f.created = shop
	return shop, nil
}

type fakeSchedule struct {
	shopID   int64
	schedule domain.WeeklySchedule
}

func (f *fakeSchedule) ReplaceForShop(_ context.Context, shopID int64, schedule domain.WeeklySchedule) error {
	f.shopID = shopID
	f.schedule = schedule
	return nil
}

type fakeCatalog struct {
	nextID     int64
	categories []*domain.ServiceCategory
	sizes      []*domain.VehicleSize
	services   []*domain.Service
	addOns     []*domain.AddOn
}

func (f *fakeCatalog) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeCatalog) CreateCategory(_ context.Context, c *domain.ServiceCategory) error {
	c.ID = f.id()
	f.categories = append(f.categories, c)
	return nil
}

func (f *fakeCatalog) CreateVehicleSize(_ context.Context, s *domain.VehicleSize) error {
	s.ID = f.id()
	f.sizes = append(f.sizes, s)
	return nil
}

func (f *fakeCatalog) CreateService(_ context.Context, s *domain.Service) error {
	s.ID = f.id()
	f.services = append(f.services, s)
	return nil
}

func (f *fakeCatalog) CreateAddOn(_ context.Context, a *domain.AddOn) error {
	a.ID = f.id()
	f.addOns = append(f.addOns, a)
	return nil
}

type fixture struct {
	tx       *fakeTx
	shops    *fakeShops
	schedule *fakeSchedule
	catalog  *fakeCatalog
	importer *Importer
}

func newFixture() *fixture {
	f := &fixture{tx: &fakeTx{}, shops: &fakeShops{}, schedule: &fakeSchedule{}, catalog: &fakeCatalog{}}
	f.importer = NewImporter(f.shops, f.schedule, f.catalog, f.tx, domain.DefaultBookingSettings(), "UTC", logger.NewNop())
	return f
}

func decodeSample(t *testing.T, mutate func(string) string) *File {
	t.Helper()
	body := sample
	if mutate != nil {
		body = mutate(body)
	}
	file, err := Decode(strings.NewReader(body))
	require.NoError(t, err)
	return file
}

func TestImport_CreatesEverythingInOneTransaction(t *testing.T) {
	f := newFixture()

	result, err := f.importer.Import(context.Background(), 7, decodeSample(t, nil))
	require.NoError(t, err)

	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, &Result{
		ShopID: 42, Slug: "shine-lyon", Windows: 2, Categories: 1, VehicleSizes: 2, Services: 1, Formulas: 1, AddOns: 1,
	}, result)

	shop := f.shops.created
	assert.Equal(t, int64(7), shop.OwnerID)
	assert.Equal(t, "Europe/Paris", shop.Timezone)
	assert.True(t, shop.IsPublished)
	assert.Equal(t, 30, shop.Settings.SlotStepMinutes)
	assert.True(t, shop.Settings.AutoConfirm)
	assert.Equal(t, domain.DefaultMinBookingNoticeMinutes, shop.Settings.MinBookingNoticeMinutes)

	assert.Equal(t, int64(42), f.schedule.shopID)
	require.Len(t, f.schedule.schedule, 2)
	for _, w := range f.schedule.schedule {
		assert.Equal(t, int64(42), w.ShopID)
		assert.Equal(t, time.Monday, w.Weekday)
	}

	require.Len(t, f.catalog.services, 1)
	service := f.catalog.services[0]
	require.NotNil(t, service.CategoryID)
	assert.Equal(t, f.catalog.categories[0].ID, *service.CategoryID)
	assert.Equal(t, "49.9", service.BasePrice.String())
	assert.True(t, service.IsActive)
	require.Len(t, service.SizeSupplements, 1)
	assert.Equal(t, f.catalog.sizes[1].ID, service.SizeSupplements[0].VehicleSizeID)
	assert.Equal(t, "15", service.SizeSupplements[0].AdditionalPrice.String())
	assert.Equal(t, 1, f.catalog.sizes[1].Position)

	require.Len(t, f.catalog.addOns, 1)
	assert.Equal(t, "12.50", f.catalog.addOns[0].Price.StringFixed(2))
}

func TestImport_RejectsInvalidFiles(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(string) string
	}{
		{
			name:   "bad slug",
			mutate: func(s string) string { return strings.Replace(s, `"shine-lyon"`, `"Shine Lyon"`, 1) },
		},
		{
			name:   "unknown timezone",
			mutate: func(s string) string { return strings.Replace(s, "Europe/Paris", "Mars/Olympus", 1) },
		},
		{
			name:   "bad weekday",
			mutate: func(s string) string { return strings.Replace(s, `"mon"`, `"lundi"`, 1) },
		},
		{
			name:   "overlapping windows",
			mutate: func(s string) string { return strings.Replace(s, `"14:00"`, `"11:00"`, 1) },
		},
		{
			name:   "unknown category",
			mutate: func(s string) string { return strings.Replace(s, `category = "ext"`, `category = "int"`, 1) },
		},
		{
			name:   "unknown size",
			mutate: func(s string) string { return strings.Replace(s, `size = "suv"`, `size = "van"`, 1) },
		},
		{
			name:   "zero duration",
			mutate: func(s string) string { return strings.Replace(s, "duration = 60", "duration = 0", 1) },
		},
		{
			name:   "invalid slot step",
			mutate: func(s string) string { return strings.Replace(s, "slot_step_minutes = 30", "slot_step_minutes = 7", 1) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.importer.Import(context.Background(), 7, decodeSample(t, tt.mutate))
			assert.ErrorIs(t, err, ErrInvalidFile)
			assert.Zero(t, f.tx.calls)
		})
	}
}

func TestImport_PublishedNeedsSchedule(t *testing.T) {
	f := newFixture()
	file := decodeSample(t, nil)
	file.Schedule = nil

	_, err := f.importer.Import(context.Background(), 7, file)
	assert.ErrorIs(t, err, ErrInvalidFile)
}

func TestImport_DuplicateSlug(t *testing.T) {
	f := newFixture()
	f.shops.err = shopRepo.ErrDuplicateSlug

	_, err := f.importer.Import(context.Background(), 7, decodeSample(t, nil))
	assert.ErrorIs(t, err, ErrDuplicateSlug)
}

func TestDecode_UnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader(sample + "\n[extras]\ncolor = \"red\"\n"))
	assert.ErrorIs(t, err, ErrInvalidFile)
	assert.Contains(t, err.Error(), "extras")
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode(strings.NewReader("[shop\nslug = 1"))
	assert.ErrorIs(t, err, ErrInvalidFile)
}
