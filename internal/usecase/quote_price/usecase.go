package quote_price

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/catalog"
	shopRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/shop"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/pricing"
)

// UseCase use case расчета стоимости и длительности выбора клиента
type UseCase struct {
	shopRepo    ShopRepository
	catalogRepo CatalogRepository
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	shopRepo ShopRepository,
	catalogRepo CatalogRepository,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		shopRepo:    shopRepo,
		catalogRepo: catalogRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет use case расчета сметы
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuotePrice: shop=%s, service=%d", req.Slug, req.Selection.ServiceID)

	shop, err := uc.GetPublishedShop(ctx, req.Slug)
	if err != nil {
		return nil, err
	}

	quote, err := uc.QuoteForShop(ctx, shop, req.Selection)
	if err != nil {
		return nil, err
	}

	return &Response{ShopID: shop.ID, Quote: quote}, nil
}

// GetPublishedShop получает опубликованную автомойку по slug
func (uc *UseCase) GetPublishedShop(ctx context.Context, slug string) (*domain.Shop, error) {
	if !domain.IsValidSlug(slug) {
		return nil, ErrShopNotFound
	}

	shop, err := uc.shopRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, shopRepo.ErrShopNotFound) {
			uc.logger.Warn("QuotePrice: shop slug=%s not found", slug)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("QuotePrice: failed to get shop slug=%s: %v", slug, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}

	if !shop.IsPublished {
		uc.logger.Warn("QuotePrice: shop slug=%s is not published", slug)
		return nil, ErrShopNotFound
	}

	return shop, nil
}

// QuoteForShop загружает компоненты выбора параллельно и считает смету
func (uc *UseCase) QuoteForShop(ctx context.Context, shop *domain.Shop, sel domain.Selection) (*domain.Quote, error) {
	if err := ValidateSelection(sel); err != nil {
		uc.logger.Warn("QuotePrice: validation failed: %v", err)
		uc.metrics.QuoteServed("invalid")
		return nil, err
	}

	var (
		service *domain.Service
		formula *domain.Formula
		size    *domain.VehicleSize
		addOns  []domain.AddOn
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s, err := uc.catalogRepo.GetService(gctx, shop.ID, sel.ServiceID)
		if err != nil {
			return uc.mapCatalogError("service", err)
		}
		service = s
		return nil
	})

	if sel.FormulaID != nil {
		g.Go(func() error {
			f, err := uc.catalogRepo.GetFormula(gctx, sel.ServiceID, *sel.FormulaID)
			if err != nil {
				return uc.mapCatalogError("formula", err)
			}
			formula = f
			return nil
		})
	}

	if sel.VehicleSizeID != nil {
		g.Go(func() error {
			s, err := uc.catalogRepo.GetVehicleSize(gctx, shop.ID, *sel.VehicleSizeID)
			if err != nil {
				return uc.mapCatalogError("vehicle size", err)
			}
			size = s
			return nil
		})
	}

	if len(sel.AddOnIDs) > 0 {
		g.Go(func() error {
			a, err := uc.catalogRepo.GetAddOnsByIDs(gctx, shop.ID, sel.AddOnIDs)
			if err != nil {
				return uc.mapCatalogError("add-ons", err)
			}
			addOns = a
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		uc.metrics.QuoteServed("not_found")
		return nil, err
	}

	in := pricing.Input{Service: service, Formula: formula, AddOns: addOns}
	if size != nil {
		sup := service.SupplementFor(size.ID)
		in.Size = size
		in.Supplement = &sup
	}

	quote, err := pricing.BuildQuote(in)
	if err != nil {
		uc.logger.Warn("QuotePrice: shop=%d, service=%d: %v", shop.ID, sel.ServiceID, err)
		uc.metrics.QuoteServed("rejected")
		return nil, mapPricingError(err)
	}

	uc.metrics.QuoteServed("ok")
	uc.logger.Info("QuotePrice: shop=%d, service=%d, total=%s, duration=%d",
		shop.ID, sel.ServiceID, quote.TotalPrice.StringFixed(2), quote.TotalDurationMinutes)

	return quote, nil
}

func (uc *UseCase) mapCatalogError(what string, err error) error {
	switch {
	case errors.Is(err, catalogRepo.ErrServiceNotFound):
		return ErrServiceNotFound
	case errors.Is(err, catalogRepo.ErrFormulaNotFound):
		return ErrFormulaNotFound
	case errors.Is(err, catalogRepo.ErrVehicleSizeNotFound):
		return ErrVehicleSizeNotFound
	case errors.Is(err, catalogRepo.ErrAddOnNotFound):
		return fmt.Errorf("%w: %v", ErrAddOnNotFound, err)
	case errors.Is(err, context.Canceled):
		return err
	default:
		uc.logger.Error("QuotePrice: failed to get %s: %v", what, err)
		return fmt.Errorf("%w: failed to get %s: %v", ErrInternal, what, err)
	}
}

// mapPricingError переводит ошибки расчета в ошибки use case
// Выключенные услуги и опции для клиента выглядят как несуществующие
func mapPricingError(err error) error {
	switch {
	case errors.Is(err, pricing.ErrInactiveService):
		return ErrServiceNotFound
	case errors.Is(err, pricing.ErrInactiveAddOn):
		return fmt.Errorf("%w: %v", ErrAddOnNotFound, err)
	case errors.Is(err, pricing.ErrFormulaMismatch):
		return ErrFormulaNotFound
	case errors.Is(err, pricing.ErrSupplementMismatch):
		return ErrVehicleSizeNotFound
	case errors.Is(err, pricing.ErrDuplicateAddOn), errors.Is(err, pricing.ErrTooManyAddOns):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}
}
