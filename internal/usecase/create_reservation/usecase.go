package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/availability"
	"github.com/m04kA/SMC-DetailingBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-DetailingBooking/pkg/ptr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	scheduleRepo    ScheduleRepository
	leadRepo        LeadRepository
	quoter          Quoter
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	newReference    func() uuid.UUID
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	scheduleRepo ScheduleRepository,
	leadRepo LeadRepository,
	quoter Quoter,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		scheduleRepo:    scheduleRepo,
		leadRepo:        leadRepo,
		quoter:          quoter,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		newReference:    uuid.New,
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
// Проверка слота и вставка выполняются в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Reservation, error) {
	uc.logger.Info("CreateReservation: shop=%s, service=%d, date=%s, time=%s",
		req.Slug, req.Selection.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Автомойка и смета
	shop, err := uc.quoter.GetPublishedShop(ctx, req.Slug)
	if err != nil {
		return nil, err
	}

	quote, err := uc.quoter.QuoteForShop(ctx, shop, req.Selection)
	if err != nil {
		return nil, err
	}

	// 3. Текущее время в часовом поясе автомойки
	loc := shop.Location()
	now := uc.timeProvider.Now().In(loc)
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, time.UTC)

	if err := validateDate(date, now, shop.Settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateReservation: date validation failed: %v", err)
		return nil, err
	}

	status := domain.StatusPending
	if shop.Settings.AutoConfirm {
		status = domain.StatusConfirmed
	}

	var result *domain.Reservation

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Окна расписания на дату
		schedule, err := uc.scheduleRepo.GetByShop(txCtx, shop.ID)
		if err != nil {
			return uc.internal("failed to get schedule", err)
		}
		windows := availability.WindowsFor(schedule, date)
		if len(windows) == 0 {
			uc.logger.Warn("CreateReservation: shop=%d is closed on %s", shop.ID, date.Format(domain.DateFormat))
			return ErrShopClosed
		}

		// 4.2. Активные бронирования дня с блокировкой (FOR UPDATE)
		reservations, err := uc.reservationRepo.ListForDay(txCtx, shop.ID, date)
		if err != nil {
			return uc.internal("failed to get reservations", err)
		}

		// 4.3. Проверяем слот по тем же правилам, что и список слотов
		err = availability.IsBookable(availability.Input{
			Date:             date,
			Now:              now,
			Location:         loc,
			Windows:          windows,
			DurationMinutes:  quote.TotalDurationMinutes,
			StepMinutes:      shop.Settings.SlotStepMinutes,
			MinNoticeMinutes: shop.Settings.MinBookingNoticeMinutes,
			Capacity:         shop.Settings.MaxConcurrentReservations,
			Reservations:     reservations,
		}, req.StartTime)
		if err != nil {
			reason, mapped := mapSlotError(err)
			uc.metrics.SlotConflict(reason)
			uc.logger.Warn("CreateReservation: slot %s rejected: %v", req.StartTime, err)
			return mapped
		}

		// 4.4. Создаем бронирование с денормализацией данных услуги
		reservation := &domain.Reservation{
			Reference:       uc.newReference(),
			ShopID:          shop.ID,
			ServiceID:       quote.Selection.ServiceID,
			FormulaID:       quote.Selection.FormulaID,
			VehicleSizeID:   quote.Selection.VehicleSizeID,
			AddOnIDs:        quote.Selection.AddOnIDs,
			Date:            date,
			StartTime:       req.StartTime,
			DurationMinutes: quote.TotalDurationMinutes,
			TotalPrice:      quote.TotalPrice,
			Status:          status,
			ClientName:      req.Client.Name,
			ClientEmail:     req.Client.Email,
			ClientPhone:     req.Client.Phone,
			VehicleMake:     req.Client.VehicleMake,
			VehicleModel:    req.Client.VehicleModel,
			Notes:           req.Client.Notes,
			ServiceName:     quote.ServiceName,
			FormulaName:     quote.FormulaName,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			return uc.internal("failed to create reservation", err)
		}

		// 4.5. Контакт клиента сохраняется как заявка
		_, err = uc.leadRepo.Create(txCtx, &domain.Lead{
			ShopID:    shop.ID,
			Name:      req.Client.Name,
			Email:     req.Client.Email,
			Phone:     ptr.Ptr(req.Client.Phone),
			Message:   req.Client.Notes,
			ServiceID: ptr.Ptr(quote.Selection.ServiceID),
			Source:    domain.LeadSourceBookingFlow,
		})
		if err != nil {
			return uc.internal("failed to record lead", err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Конфликт сериализации после всех повторов: слот занял параллельный запрос
		if pgerrors.IsRetryable(err) {
			uc.metrics.SlotConflict("serialization")
			uc.logger.Warn("CreateReservation: serialization conflict for shop=%d, %s %s: %v",
				shop.ID, date.Format(domain.DateFormat), req.StartTime, err)
			return nil, fmt.Errorf("%w: concurrent reservation", ErrSlotNotAvailable)
		}
		if !isKnown(err) {
			uc.logger.Error("CreateReservation: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.metrics.ReservationCreated(string(result.Status))
	uc.metrics.LeadCreated(string(domain.LeadSourceBookingFlow))
	uc.logger.Info("CreateReservation: created reservation id=%d, reference=%s, status=%s",
		result.ID, result.Reference, result.Status)

	return result, nil
}

// internal оборачивает ошибку репозитория
// Конфликты сериализации возвращаются как есть, чтобы менеджер транзакций повторил попытку
func (uc *UseCase) internal(msg string, err error) error {
	if pgerrors.IsRetryable(err) {
		return err
	}
	uc.logger.Error("CreateReservation: %s: %v", msg, err)
	return fmt.Errorf("%w: %s: %v", ErrInternal, msg, err)
}

func isKnown(err error) bool {
	for _, known := range []error{
		ErrShopClosed, ErrSlotNotAvailable, ErrInvalidTimeSlot, ErrTooLateToBook, ErrInvalidInput, ErrInternal,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
