package shops

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/catalog"
	shopRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/shop"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/shops/models"
)

// Service сервис для работы с автомойкой, её каталогом и расписанием
type Service struct {
	shopRepo     ShopRepository
	scheduleRepo ScheduleRepository
	catalogRepo  CatalogRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса автомоек
func NewService(
	shopRepo ShopRepository,
	scheduleRepo ScheduleRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		shopRepo:     shopRepo,
		scheduleRepo: scheduleRepo,
		catalogRepo:  catalogRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetPublicCatalog возвращает публичный каталог опубликованной автомойки
// Категории, размеры, активные услуги, активные опции и расписание читаются параллельно
func (s *Service) GetPublicCatalog(ctx context.Context, slug string) (*models.CatalogResponse, error) {
	s.logger.Info("GetPublicCatalog: fetching catalog for shop=%s", slug)

	if !domain.IsValidSlug(slug) {
		return nil, ErrShopNotFound
	}

	shop, err := s.shopRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, s.shopError("GetPublicCatalog", err)
	}
	if !shop.IsPublished {
		s.logger.Warn("GetPublicCatalog: shop=%s is not published", slug)
		return nil, ErrShopNotFound
	}

	catalog := &domain.Catalog{Shop: shop}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		catalog.Categories, err = s.catalogRepo.ListCategories(gctx, shop.ID)
		return err
	})
	g.Go(func() error {
		var err error
		catalog.VehicleSizes, err = s.catalogRepo.ListVehicleSizes(gctx, shop.ID)
		return err
	})
	g.Go(func() error {
		var err error
		catalog.Services, err = s.catalogRepo.ListServices(gctx, shop.ID, true)
		return err
	})
	g.Go(func() error {
		var err error
		catalog.AddOns, err = s.catalogRepo.ListAddOns(gctx, shop.ID, true)
		return err
	})
	g.Go(func() error {
		var err error
		catalog.Schedule, err = s.scheduleRepo.GetByShop(gctx, shop.ID)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("GetPublicCatalog: failed to load catalog for shop=%d: %v", shop.ID, err)
		return nil, fmt.Errorf("%w: GetPublicCatalog - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPublicCatalog: shop=%d has %d services and %d add-ons",
		shop.ID, len(catalog.Services), len(catalog.AddOns))
	return models.FromDomainCatalog(catalog), nil
}

// GetSettings возвращает данные и настройки автомойки
// Доступно только владельцу
func (s *Service) GetSettings(ctx context.Context, userID, shopID int64) (*models.ShopResponse, error) {
	s.logger.Info("GetSettings: shop=%d, user=%d", shopID, userID)

	shop, err := s.ownedShop(ctx, "GetSettings", shopID, userID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainShop(shop), nil
}

// UpdateSettings частично обновляет настройки бронирования
// Доступно только владельцу
func (s *Service) UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.ShopResponse, error) {
	s.logger.Info("UpdateSettings: shop=%d, user=%d", req.ShopID, req.UserID)

	// 1. Проверяем, что есть что обновлять
	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	// 2. Проверяем права доступа
	shop, err := s.ownedShop(ctx, "UpdateSettings", req.ShopID, req.UserID)
	if err != nil {
		return nil, err
	}

	// 3. Накладываем изменения и валидируем результат целиком
	settings := req.Apply(shop.Settings)
	if err := ValidateSettings(settings); err != nil {
		s.logger.Warn("UpdateSettings: validation failed for shop=%d: %v", req.ShopID, err)
		return nil, err
	}

	// 4. Сохраняем
	if err := s.shopRepo.UpdateSettings(ctx, req.ShopID, settings); err != nil {
		return nil, s.shopError("UpdateSettings", err)
	}

	shop.Settings = settings
	s.logger.Info("UpdateSettings: successfully updated settings of shop=%d", req.ShopID)
	return models.FromDomainShop(shop), nil
}

// ReplaceSchedule полностью заменяет недельное расписание
// Доступно только владельцу. Опубликованной автомойке нужно хотя бы одно окно
func (s *Service) ReplaceSchedule(ctx context.Context, req *models.ReplaceScheduleRequest) ([]models.WindowResponse, error) {
	s.logger.Info("ReplaceSchedule: shop=%d, user=%d, windows=%d", req.ShopID, req.UserID, len(req.Windows))

	schedule, err := BuildSchedule(req.ShopID, req.Windows)
	if err != nil {
		s.logger.Warn("ReplaceSchedule: validation failed for shop=%d: %v", req.ShopID, err)
		return nil, err
	}

	shop, err := s.ownedShop(ctx, "ReplaceSchedule", req.ShopID, req.UserID)
	if err != nil {
		return nil, err
	}
	if shop.IsPublished && len(schedule) == 0 {
		s.logger.Warn("ReplaceSchedule: shop=%d is published, empty schedule rejected", req.ShopID)
		return nil, ErrEmptyPublishedSchedule
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.scheduleRepo.ReplaceForShop(txCtx, req.ShopID, schedule)
	})
	if err != nil {
		s.logger.Error("ReplaceSchedule: repository error for shop=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: ReplaceSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceSchedule: shop=%d now has %d windows", req.ShopID, len(schedule))
	return models.FromDomainSchedule(schedule), nil
}

// Reorder задаёт новый порядок элементов списка каталога
// Для формул порядок задаётся внутри услуги, остальные списки принадлежат автомойке
func (s *Service) Reorder(ctx context.Context, req *models.ReorderRequest) error {
	s.logger.Info("Reorder: shop=%d, list=%s, ids=%v by user=%d", req.ShopID, req.List, req.IDs, req.UserID)

	list := domain.ReorderableList(req.List)
	if !list.IsValid() {
		return fmt.Errorf("%w: unknown list %q", ErrInvalidInput, req.List)
	}
	if err := validateReorderIDs(req.IDs); err != nil {
		return err
	}

	if _, err := s.ownedShop(ctx, "Reorder", req.ShopID, req.UserID); err != nil {
		return err
	}

	parentID := req.ShopID
	if list == domain.ListFormulas {
		if req.ServiceID == nil {
			return fmt.Errorf("%w: serviceId is required to reorder formulas", ErrInvalidInput)
		}
		// Услуга должна принадлежать автомойке
		if _, err := s.catalogRepo.GetService(ctx, req.ShopID, *req.ServiceID); err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				return ErrServiceNotFound
			}
			s.logger.Error("Reorder: failed to get service id=%d: %v", *req.ServiceID, err)
			return fmt.Errorf("%w: Reorder - failed to get service: %v", ErrInternal, err)
		}
		parentID = *req.ServiceID
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.catalogRepo.Reorder(txCtx, list, parentID, req.IDs)
	})
	if err != nil {
		if errors.Is(err, catalogRepo.ErrReorderMismatch) {
			s.logger.Warn("Reorder: ids do not match list=%s of parent=%d", list, parentID)
			return ErrReorderMismatch
		}
		s.logger.Error("Reorder: repository error for shop=%d: %v", req.ShopID, err)
		return fmt.Errorf("%w: Reorder - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Reorder: successfully reordered list=%s of parent=%d", list, parentID)
	return nil
}

// Publish открывает публичную страницу бронирования
// Нужны хотя бы одно окно расписания и одна активная услуга
func (s *Service) Publish(ctx context.Context, userID, shopID int64) (*models.ShopResponse, error) {
	s.logger.Info("Publish: shop=%d, user=%d", shopID, userID)

	shop, err := s.ownedShop(ctx, "Publish", shopID, userID)
	if err != nil {
		return nil, err
	}

	var schedule domain.WeeklySchedule
	var services []*domain.Service

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		schedule, err = s.scheduleRepo.GetByShop(gctx, shopID)
		return err
	})
	g.Go(func() error {
		var err error
		services, err = s.catalogRepo.ListServices(gctx, shopID, true)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Publish: failed to load shop=%d: %v", shopID, err)
		return nil, fmt.Errorf("%w: Publish - repository error: %v", ErrInternal, err)
	}

	if len(schedule) == 0 || len(services) == 0 {
		s.logger.Warn("Publish: shop=%d has %d windows and %d active services", shopID, len(schedule), len(services))
		return nil, ErrNotPublishable
	}

	return s.setPublished(ctx, shop, true)
}

// Unpublish скрывает публичную страницу бронирования
func (s *Service) Unpublish(ctx context.Context, userID, shopID int64) (*models.ShopResponse, error) {
	s.logger.Info("Unpublish: shop=%d, user=%d", shopID, userID)

	shop, err := s.ownedShop(ctx, "Unpublish", shopID, userID)
	if err != nil {
		return nil, err
	}

	return s.setPublished(ctx, shop, false)
}

// Вспомогательные методы

func (s *Service) setPublished(ctx context.Context, shop *domain.Shop, published bool) (*models.ShopResponse, error) {
	if err := s.shopRepo.SetPublished(ctx, shop.ID, published); err != nil {
		return nil, s.shopError("SetPublished", err)
	}
	shop.IsPublished = published
	s.logger.Info("SetPublished: shop=%d published=%t", shop.ID, published)
	return models.FromDomainShop(shop), nil
}

// ownedShop получает автомойку и проверяет, что пользователь её владелец
func (s *Service) ownedShop(ctx context.Context, op string, shopID, userID int64) (*domain.Shop, error) {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, s.shopError(op, err)
	}

	if !shop.IsOwnedBy(userID) {
		s.logger.Warn("%s: user=%d is not the owner of shop=%d", op, userID, shopID)
		return nil, ErrAccessDenied
	}
	return shop, nil
}

func (s *Service) shopError(op string, err error) error {
	if errors.Is(err, shopRepo.ErrShopNotFound) {
		s.logger.Warn("%s: shop not found", op)
		return ErrShopNotFound
	}
	s.logger.Error("%s: shop repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
