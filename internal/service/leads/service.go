package leads

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/catalog"
	shopRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/shop"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/leads/models"
	"github.com/m04kA/SMC-DetailingBooking/pkg/contact"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Service сервис заявок потенциальных клиентов
type Service struct {
	leadRepo    LeadRepository
	shopRepo    ShopRepository
	catalogRepo CatalogRepository
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	leadRepo LeadRepository,
	shopRepo ShopRepository,
	catalogRepo CatalogRepository,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		leadRepo:    leadRepo,
		shopRepo:    shopRepo,
		catalogRepo: catalogRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// Create сохраняет заявку из публичной контактной формы
func (s *Service) Create(ctx context.Context, req *models.CreateRequest) (*models.LeadResponse, error) {
	s.logger.Info("Create: contact form for shop=%s", req.Slug)

	// 1. Валидация
	lead, err := validateCreate(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Автомойка должна быть опубликована
	if !domain.IsValidSlug(req.Slug) {
		return nil, ErrShopNotFound
	}
	shop, err := s.shopRepo.GetBySlug(ctx, req.Slug)
	if err != nil {
		return nil, s.shopError("Create", err)
	}
	if !shop.IsPublished {
		s.logger.Warn("Create: shop=%s is not published", req.Slug)
		return nil, ErrShopNotFound
	}
	lead.ShopID = shop.ID

	// 3. Выбранная услуга должна принадлежать автомойке
	if lead.ServiceID != nil {
		if _, err := s.catalogRepo.GetService(ctx, shop.ID, *lead.ServiceID); err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				s.logger.Warn("Create: service id=%d not found in shop=%d", *lead.ServiceID, shop.ID)
				return nil, ErrServiceNotFound
			}
			s.logger.Error("Create: failed to get service id=%d: %v", *lead.ServiceID, err)
			return nil, fmt.Errorf("%w: Create - failed to get service: %v", ErrInternal, err)
		}
	}

	// 4. Сохраняем
	created, err := s.leadRepo.Create(ctx, lead)
	if err != nil {
		s.logger.Error("Create: repository error for shop=%d: %v", shop.ID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.metrics.LeadCreated(string(domain.LeadSourceContactForm))
	s.logger.Info("Create: created lead id=%d for shop=%d", created.ID, shop.ID)
	return models.FromDomainLead(created), nil
}

// ListForShop возвращает заявки автомойки, сначала новые
// Доступно только владельцу
func (s *Service) ListForShop(ctx context.Context, req *models.ListRequest) (*models.LeadListResponse, error) {
	s.logger.Info("ListForShop: leads of shop=%d, user=%d", req.ShopID, req.UserID)

	shop, err := s.shopRepo.GetByID(ctx, req.ShopID)
	if err != nil {
		return nil, s.shopError("ListForShop", err)
	}
	if !shop.IsOwnedBy(req.UserID) {
		s.logger.Warn("ListForShop: user=%d is not the owner of shop=%d", req.UserID, req.ShopID)
		return nil, ErrAccessDenied
	}

	filter := domain.LeadsFilter{ShopID: req.ShopID, Limit: req.Limit, Offset: req.Offset}
	if req.Source != nil {
		source := domain.LeadSource(*req.Source)
		if source != domain.LeadSourceBookingFlow && source != domain.LeadSourceContactForm {
			return nil, fmt.Errorf("%w: invalid source %q", ErrInvalidInput, *req.Source)
		}
		filter.Source = &source
	}
	switch {
	case filter.Limit == 0:
		filter.Limit = defaultListLimit
	case filter.Limit > maxListLimit:
		filter.Limit = maxListLimit
	}

	leads, err := s.leadRepo.ListByShop(ctx, filter)
	if err != nil {
		s.logger.Error("ListForShop: repository error for shop=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: ListForShop - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLeadList(leads), nil
}

func (s *Service) shopError(op string, err error) error {
	if errors.Is(err, shopRepo.ErrShopNotFound) {
		s.logger.Warn("%s: shop not found", op)
		return ErrShopNotFound
	}
	s.logger.Error("%s: shop repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// validateCreate проверяет форму и собирает заявку с нормализованными контактами
func validateCreate(req *models.CreateRequest) (*domain.Lead, error) {
	name := strings.TrimSpace(req.Name)
	if n := utf8.RuneCountInString(name); n < domain.MinClientNameLength || n > domain.MaxClientNameLength {
		return nil, fmt.Errorf("%w: name must be %d..%d characters",
			ErrInvalidInput, domain.MinClientNameLength, domain.MaxClientNameLength)
	}

	email, err := contact.NormalizeEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	lead := &domain.Lead{
		Name:      name,
		Email:     email,
		ServiceID: req.ServiceID,
		Source:    domain.LeadSourceContactForm,
	}

	if req.Phone != nil && strings.TrimSpace(*req.Phone) != "" {
		phone, err := contact.NormalizePhone(*req.Phone)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		lead.Phone = &phone
	}

	if req.Message != nil {
		message := strings.TrimSpace(*req.Message)
		if utf8.RuneCountInString(message) > domain.MaxLeadMessageLength {
			return nil, fmt.Errorf("%w: message must be at most %d characters", ErrInvalidInput, domain.MaxLeadMessageLength)
		}
		if message != "" {
			lead.Message = &message
		}
	}

	return lead, nil
}
