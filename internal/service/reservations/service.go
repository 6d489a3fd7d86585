package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/reservation"
	shopRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/shop"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/reservations/models"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	shopRepo        ShopRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	shopRepo ShopRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		shopRepo:        shopRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByReference получает бронирование по публичному идентификатору
// Бронирование другой автомойки считается не найденным
func (s *Service) GetByReference(ctx context.Context, slug, reference string) (*models.ReservationResponse, error) {
	s.logger.Info("GetByReference: fetching reservation %s for shop=%s", reference, slug)

	ref, err := parseReference(reference)
	if err != nil {
		return nil, err
	}

	reservation, err := s.getByReference(ctx, "GetByReference", ref)
	if err != nil {
		return nil, err
	}

	if err := s.checkSlug(ctx, "GetByReference", reservation, slug); err != nil {
		return nil, err
	}

	return models.FromDomainReservation(reservation), nil
}

// ListForShop получает бронирования автомойки с фильтрацией
// Доступно только владельцу
//
// Примеры использования:
// - Все активные бронирования: ListForShop(ctx, &ListRequest{ShopID: 1, UserID: 7})
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Только подтвержденные: Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) ListForShop(ctx context.Context, req *models.ListRequest) (*models.ReservationListResponse, error) {
	logMsg := fmt.Sprintf("ListForShop: fetching reservations for shop=%d, user=%d", req.ShopID, req.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info(logMsg)

	if err := s.checkOwner(ctx, req.ShopID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := toDomainFilter(req)
	if err != nil {
		s.logger.Warn("ListForShop: invalid filter for shop=%d: %v", req.ShopID, err)
		return nil, err
	}

	reservations, err := s.reservationRepo.ListByShop(ctx, filter)
	if err != nil {
		s.logger.Error("ListForShop: repository error for shop=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: ListForShop - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForShop: fetched %d reservations for shop=%d", len(reservations), req.ShopID)
	return models.FromDomainReservationList(reservations), nil
}

// UpdateStatus меняет статус бронирования по таблице переходов
// Доступно только владельцу. Переход в отменённый статус фиксирует время отмены
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: reservation id=%d to status=%s by user=%d", req.ReservationID, req.Status, req.UserID)

	next, ok := domain.ParseReservationStatus(req.Status)
	if !ok {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, req.Status)
	}

	if err := s.checkOwner(ctx, req.ShopID, req.UserID); err != nil {
		return nil, err
	}

	var result *domain.Reservation
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Строка блокируется до конца транзакции (FOR UPDATE)
		reservation, err := s.getForShop(txCtx, "UpdateStatus", req.ShopID, req.ReservationID)
		if err != nil {
			return err
		}

		if !reservation.Status.CanTransitionTo(next) {
			s.logger.Warn("UpdateStatus: transition %s -> %s rejected for id=%d", reservation.Status, next, reservation.ID)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, reservation.Status, next)
		}

		if next == domain.StatusCancelledByClient || next == domain.StatusCancelledByShop {
			err = s.reservationRepo.Cancel(txCtx, reservation.ID, next, nil)
		} else {
			err = s.reservationRepo.UpdateStatus(txCtx, reservation.ID, next)
		}
		if err != nil {
			return s.repositoryError("UpdateStatus", reservation.ID, err)
		}

		result, err = s.reservationRepo.GetByID(txCtx, reservation.ID)
		if err != nil {
			return s.repositoryError("UpdateStatus", reservation.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: reservation id=%d is now %s", result.ID, result.Status)
	return models.FromDomainReservation(result), nil
}

// CancelByClient отменяет бронирование по публичному идентификатору
// Email должен совпадать с указанным при бронировании
func (s *Service) CancelByClient(ctx context.Context, req *models.CancelByClientRequest) (*models.ReservationResponse, error) {
	s.logger.Info("CancelByClient: cancelling reservation %s for shop=%s", req.Reference, req.Slug)

	if err := validateReason(req.Reason); err != nil {
		return nil, err
	}

	var result *domain.Reservation
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, err := s.getByReference(txCtx, "CancelByClient", req.Reference)
		if err != nil {
			return err
		}

		if err := s.checkSlug(txCtx, "CancelByClient", reservation, req.Slug); err != nil {
			return err
		}

		// Несовпадение email не раскрывает существование бронирования
		if !strings.EqualFold(strings.TrimSpace(req.Email), reservation.ClientEmail) {
			s.logger.Warn("CancelByClient: email mismatch for reservation %s", req.Reference)
			return ErrReservationNotFound
		}

		result, err = s.cancel(txCtx, "CancelByClient", reservation, domain.StatusCancelledByClient, req.Reason)
		return err
	})
	if err != nil {
		return nil, err
	}

	return models.FromDomainReservation(result), nil
}

// CancelByShop отменяет бронирование от имени автомойки
// Доступно только владельцу
func (s *Service) CancelByShop(ctx context.Context, req *models.CancelByShopRequest) (*models.ReservationResponse, error) {
	s.logger.Info("CancelByShop: cancelling reservation id=%d by user=%d", req.ReservationID, req.UserID)

	if err := validateReason(req.Reason); err != nil {
		return nil, err
	}

	if err := s.checkOwner(ctx, req.ShopID, req.UserID); err != nil {
		return nil, err
	}

	var result *domain.Reservation
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, err := s.getForShop(txCtx, "CancelByShop", req.ShopID, req.ReservationID)
		if err != nil {
			return err
		}

		result, err = s.cancel(txCtx, "CancelByShop", reservation, domain.StatusCancelledByShop, req.Reason)
		return err
	})
	if err != nil {
		return nil, err
	}

	return models.FromDomainReservation(result), nil
}

// Вспомогательные методы

func (s *Service) cancel(
	ctx context.Context,
	op string,
	reservation *domain.Reservation,
	status domain.ReservationStatus,
	reason *string,
) (*domain.Reservation, error) {
	if !reservation.CanBeCancelled() {
		s.logger.Warn("%s: reservation id=%d cannot be cancelled, status=%s", op, reservation.ID, reservation.Status)
		return nil, ErrCannotCancel
	}

	if err := s.reservationRepo.Cancel(ctx, reservation.ID, status, reason); err != nil {
		return nil, s.repositoryError(op, reservation.ID, err)
	}

	updated, err := s.reservationRepo.GetByID(ctx, reservation.ID)
	if err != nil {
		return nil, s.repositoryError(op, reservation.ID, err)
	}

	s.logger.Info("%s: cancelled reservation id=%d with status=%s", op, reservation.ID, status)
	return updated, nil
}

// getForShop получает бронирование и проверяет, что оно принадлежит автомойке
func (s *Service) getForShop(ctx context.Context, op string, shopID, id int64) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.repositoryError(op, id, err)
	}
	if reservation.ShopID != shopID {
		s.logger.Warn("%s: reservation id=%d does not belong to shop=%d", op, id, shopID)
		return nil, ErrReservationNotFound
	}
	return reservation, nil
}

func (s *Service) getByReference(ctx context.Context, op string, ref uuid.UUID) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByReference(ctx, ref)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation %s not found", op, ref)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation %s: %v", op, ref, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return reservation, nil
}

// checkSlug сверяет автомойку бронирования с публичным адресом
func (s *Service) checkSlug(ctx context.Context, op string, reservation *domain.Reservation, slug string) error {
	shop, err := s.shopRepo.GetByID(ctx, reservation.ShopID)
	if err != nil {
		if errors.Is(err, shopRepo.ErrShopNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("%s: failed to get shop id=%d: %v", op, reservation.ShopID, err)
		return fmt.Errorf("%w: %s - failed to get shop: %v", ErrInternal, op, err)
	}
	if shop.Slug != slug {
		s.logger.Warn("%s: reservation %s does not belong to shop=%s", op, reservation.Reference, slug)
		return ErrReservationNotFound
	}
	return nil
}

// checkOwner проверяет, что пользователь является владельцем автомойки
func (s *Service) checkOwner(ctx context.Context, shopID, userID int64) error {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, shopRepo.ErrShopNotFound) {
			s.logger.Warn("checkOwner: shop id=%d not found", shopID)
			return ErrShopNotFound
		}
		s.logger.Error("checkOwner: failed to get shop id=%d: %v", shopID, err)
		return fmt.Errorf("%w: checkOwner - failed to get shop: %v", ErrInternal, err)
	}

	if !shop.IsOwnedBy(userID) {
		s.logger.Warn("checkOwner: user=%d is not the owner of shop=%d", userID, shopID)
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) repositoryError(op string, id int64, err error) error {
	if errors.Is(err, reservationRepo.ErrReservationNotFound) {
		s.logger.Warn("%s: reservation id=%d not found", op, id)
		return ErrReservationNotFound
	}
	s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// parseReference разбирает публичный идентификатор, некорректный считается не найденным
func parseReference(raw string) (uuid.UUID, error) {
	ref, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrReservationNotFound
	}
	return ref, nil
}

func validateReason(reason *string) error {
	if reason != nil && utf8.RuneCountInString(*reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	return nil
}

func toDomainFilter(req *models.ListRequest) (domain.ReservationsFilter, error) {
	filter := domain.ReservationsFilter{
		ShopID:          req.ShopID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		IncludeInactive: req.IncludeInactive,
		Limit:           req.Limit,
		Offset:          req.Offset,
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return filter, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	if req.Status != nil {
		status, ok := domain.ParseReservationStatus(*req.Status)
		if !ok {
			return filter, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	switch {
	case filter.Limit == 0:
		filter.Limit = defaultListLimit
	case filter.Limit > maxListLimit:
		filter.Limit = maxListLimit
	}

	return filter, nil
}
