package catalogimport

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	shopRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/shop"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/shops"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/shops/models"
)

type ShopRepository interface {
	Create(ctx context.Context, shop *domain.Shop) (*domain.Shop, error)
}

type ScheduleRepository interface {
	ReplaceForShop(ctx context.Context, shopID int64, schedule domain.WeeklySchedule) error
}

type CatalogRepository interface {
	CreateCategory(ctx context.Context, c *domain.ServiceCategory) error
	CreateVehicleSize(ctx context.Context, s *domain.VehicleSize) error
	CreateService(ctx context.Context, s *domain.Service) error
	CreateAddOn(ctx context.Context, a *domain.AddOn) error
}

type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Result итог импорта
type Result struct {
	ShopID       int64
	Slug         string
	Windows      int
	Categories   int
	VehicleSizes int
	Services     int
	Formulas     int
	AddOns       int
}

// Importer создает автомойку с расписанием и каталогом из TOML файла
type Importer struct {
	shopRepo        ShopRepository
	scheduleRepo    ScheduleRepository
	catalogRepo     CatalogRepository
	txManager       TransactionManager
	defaults        domain.BookingSettings
	defaultTimezone string
	logger          Logger
}

func NewImporter(
	shopRepo ShopRepository,
	scheduleRepo ScheduleRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	defaults domain.BookingSettings,
	defaultTimezone string,
	logger Logger,
) *Importer {
	return &Importer{
		shopRepo:        shopRepo,
		scheduleRepo:    scheduleRepo,
		catalogRepo:     catalogRepo,
		txManager:       txManager,
		defaults:        defaults,
		defaultTimezone: defaultTimezone,
		logger:          logger,
	}
}

// Import проверяет файл целиком и записывает все в одной транзакции
func (im *Importer) Import(ctx context.Context, ownerID int64, f *File) (*Result, error) {
	if ownerID <= 0 {
		return nil, fmt.Errorf("%w: owner id must be positive", ErrInvalidFile)
	}

	shop, err := im.buildShop(ownerID, f)
	if err != nil {
		return nil, err
	}
	// ShopID окон проставляется после создания автомойки
	schedule, err := im.buildSchedule(0, f.Schedule)
	if err != nil {
		return nil, err
	}
	if err := validateCatalog(f); err != nil {
		return nil, err
	}

	result := &Result{Slug: shop.Slug}

	err = im.txManager.Do(ctx, func(ctx context.Context) error {
		created, err := im.shopRepo.Create(ctx, shop)
		if err != nil {
			if errors.Is(err, shopRepo.ErrDuplicateSlug) {
				return fmt.Errorf("%w: %s", ErrDuplicateSlug, shop.Slug)
			}
			return fmt.Errorf("%w: create shop: %v", ErrImport, err)
		}
		result.ShopID = created.ID

		for i := range schedule {
			schedule[i].ShopID = created.ID
		}
		if err := im.scheduleRepo.ReplaceForShop(ctx, created.ID, schedule); err != nil {
			return fmt.Errorf("%w: schedule: %v", ErrImport, err)
		}
		result.Windows = len(schedule)

		return im.importCatalog(ctx, created.ID, f, result)
	})
	if err != nil {
		im.logger.Error("Import: shop=%s failed: %v", shop.Slug, err)
		return nil, err
	}

	im.logger.Info("Import: shop=%s created id=%d (windows=%d, services=%d, add-ons=%d)",
		result.Slug, result.ShopID, result.Windows, result.Services, result.AddOns)
	return result, nil
}

func (im *Importer) importCatalog(ctx context.Context, shopID int64, f *File, result *Result) error {
	categoryIDs := make(map[string]int64, len(f.Categories))
	for i, c := range f.Categories {
		category := &domain.ServiceCategory{ShopID: shopID, Name: strings.TrimSpace(c.Name), Position: i}
		if err := im.catalogRepo.CreateCategory(ctx, category); err != nil {
			return fmt.Errorf("%w: category %q: %v", ErrImport, c.Key, err)
		}
		categoryIDs[c.Key] = category.ID
	}
	result.Categories = len(f.Categories)

	sizeIDs := make(map[string]int64, len(f.VehicleSizes))
	for i, s := range f.VehicleSizes {
		size := &domain.VehicleSize{ShopID: shopID, Name: strings.TrimSpace(s.Name), Description: s.Description, Position: i}
		if err := im.catalogRepo.CreateVehicleSize(ctx, size); err != nil {
			return fmt.Errorf("%w: vehicle size %q: %v", ErrImport, s.Key, err)
		}
		sizeIDs[s.Key] = size.ID
	}
	result.VehicleSizes = len(f.VehicleSizes)

	for i, entry := range f.Services {
		service := &domain.Service{
			ShopID:              shopID,
			Name:                strings.TrimSpace(entry.Name),
			Description:         entry.Description,
			ImageURL:            entry.ImageURL,
			BasePrice:           entry.BasePrice,
			BaseDurationMinutes: entry.Duration,
			Position:            i,
			IsActive:            !entry.Inactive,
		}
		if entry.Category != "" {
			id := categoryIDs[entry.Category]
			service.CategoryID = &id
		}
		for j, fe := range entry.Formulas {
			service.Formulas = append(service.Formulas, domain.Formula{
				Name:                      strings.TrimSpace(fe.Name),
				Description:               fe.Description,
				AdditionalPrice:           fe.Price,
				AdditionalDurationMinutes: fe.Duration,
				Position:                  j,
			})
		}
		for _, se := range entry.Supplements {
			service.SizeSupplements = append(service.SizeSupplements, domain.SizeSupplement{
				VehicleSizeID:             sizeIDs[se.Size],
				AdditionalPrice:           se.Price,
				AdditionalDurationMinutes: se.Duration,
			})
		}

		if err := im.catalogRepo.CreateService(ctx, service); err != nil {
			return fmt.Errorf("%w: service %q: %v", ErrImport, entry.Name, err)
		}
		result.Formulas += len(service.Formulas)
	}
	result.Services = len(f.Services)

	for i, a := range f.AddOns {
		addOn := &domain.AddOn{
			ShopID:          shopID,
			Name:            strings.TrimSpace(a.Name),
			Description:     a.Description,
			Price:           a.Price,
			DurationMinutes: a.Duration,
			Position:        i,
			IsActive:        !a.Inactive,
		}
		if err := im.catalogRepo.CreateAddOn(ctx, addOn); err != nil {
			return fmt.Errorf("%w: add-on %q: %v", ErrImport, a.Name, err)
		}
	}
	result.AddOns = len(f.AddOns)

	return nil
}

func (im *Importer) buildShop(ownerID int64, f *File) (*domain.Shop, error) {
	s := f.Shop

	if !domain.IsValidSlug(s.Slug) {
		return nil, fmt.Errorf("%w: shop.slug %q must be 3..64 lowercase letters, digits or dashes", ErrInvalidFile, s.Slug)
	}
	name := strings.TrimSpace(s.Name)
	if name == "" || len([]rune(name)) > domain.MaxShopNameLength {
		return nil, fmt.Errorf("%w: shop.name must be 1..%d characters", ErrInvalidFile, domain.MaxShopNameLength)
	}

	timezone := s.Timezone
	if timezone == "" {
		timezone = im.defaultTimezone
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return nil, fmt.Errorf("%w: shop.timezone: %v", ErrInvalidFile, err)
	}

	settings := f.Settings.apply(im.defaults)
	if err := shops.ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("%w: settings: %v", ErrInvalidFile, err)
	}

	if s.Published && (len(f.Schedule) == 0 || !hasActiveService(f.Services)) {
		return nil, fmt.Errorf("%w: a published shop needs a schedule and an active service", ErrInvalidFile)
	}

	return &domain.Shop{
		OwnerID:     ownerID,
		Slug:        s.Slug,
		Name:        name,
		Timezone:    timezone,
		Phone:       s.Phone,
		Email:       s.Email,
		AddressLine: s.AddressLine,
		IsPublished: s.Published,
		Settings:    settings,
	}, nil
}

func (im *Importer) buildSchedule(shopID int64, entries []WindowEntry) (domain.WeeklySchedule, error) {
	windows := make([]models.WindowInput, 0, len(entries))
	for i, e := range entries {
		day, ok := parseWeekday(e.Day)
		if !ok {
			return nil, fmt.Errorf("%w: schedule[%d].day %q is not a weekday", ErrInvalidFile, i, e.Day)
		}
		windows = append(windows, models.WindowInput{Weekday: int(day), OpenTime: e.Open, CloseTime: e.Close})
	}

	schedule, err := shops.BuildSchedule(shopID, windows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	return schedule, nil
}

func validateCatalog(f *File) error {
	categories, err := uniqueKeys("categories", len(f.Categories), func(i int) (string, string) {
		return f.Categories[i].Key, f.Categories[i].Name
	})
	if err != nil {
		return err
	}
	sizes, err := uniqueKeys("vehicle_sizes", len(f.VehicleSizes), func(i int) (string, string) {
		return f.VehicleSizes[i].Key, f.VehicleSizes[i].Name
	})
	if err != nil {
		return err
	}

	for i, s := range f.Services {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("%w: services[%d].name is required", ErrInvalidFile, i)
		}
		if s.Duration <= 0 {
			return fmt.Errorf("%w: service %q: duration must be positive", ErrInvalidFile, s.Name)
		}
		if s.BasePrice.IsNegative() {
			return fmt.Errorf("%w: service %q: base_price must not be negative", ErrInvalidFile, s.Name)
		}
		if s.Category != "" && !categories[s.Category] {
			return fmt.Errorf("%w: service %q: unknown category %q", ErrInvalidFile, s.Name, s.Category)
		}
		for j, fe := range s.Formulas {
			if strings.TrimSpace(fe.Name) == "" {
				return fmt.Errorf("%w: service %q: formulas[%d].name is required", ErrInvalidFile, s.Name, j)
			}
		}
		seen := make(map[string]bool, len(s.Supplements))
		for _, se := range s.Supplements {
			if !sizes[se.Size] {
				return fmt.Errorf("%w: service %q: unknown vehicle size %q", ErrInvalidFile, s.Name, se.Size)
			}
			if seen[se.Size] {
				return fmt.Errorf("%w: service %q: vehicle size %q listed twice", ErrInvalidFile, s.Name, se.Size)
			}
			seen[se.Size] = true
		}
	}

	for i, a := range f.AddOns {
		if strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("%w: add_ons[%d].name is required", ErrInvalidFile, i)
		}
		if a.Duration < 0 {
			return fmt.Errorf("%w: add-on %q: duration must not be negative", ErrInvalidFile, a.Name)
		}
	}
	return nil
}

func uniqueKeys(section string, n int, at func(i int) (key, name string)) (map[string]bool, error) {
	keys := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		key, name := at(i)
		if key == "" || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: %s[%d]: key and name are required", ErrInvalidFile, section, i)
		}
		if keys[key] {
			return nil, fmt.Errorf("%w: %s: duplicate key %q", ErrInvalidFile, section, key)
		}
		keys[key] = true
	}
	return keys, nil
}

func hasActiveService(services []ServiceEntry) bool {
	for _, s := range services {
		if !s.Inactive {
			return true
		}
	}
	return false
}
