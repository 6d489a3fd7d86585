package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/availability"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	scheduleRepo    ScheduleRepository
	quoter          Quoter
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	scheduleRepo ScheduleRepository,
	quoter Quoter,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		scheduleRepo:    scheduleRepo,
		quoter:          quoter,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: shop=%s, service=%d, date=%s",
		req.Slug, req.Selection.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Автомойка и смета: длительность выбора определяет слоты
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

	// 4. Валидация даты с учетом настроек
	if err := validateDate(date, now, shop.Settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 5. Расписание и бронирования дня читаются параллельно
	var (
		schedule     domain.WeeklySchedule
		reservations []*domain.Reservation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := uc.scheduleRepo.GetByShop(gctx, shop.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}
		schedule = s
		return nil
	})
	g.Go(func() error {
		r, err := uc.reservationRepo.ListForDay(gctx, shop.ID, date)
		if err != nil {
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}
		reservations = r
		return nil
	})
	if err := g.Wait(); err != nil {
		uc.logger.Error("GetAvailableSlots: %v", err)
		return nil, err
	}

	resp := &Response{
		Date:   date,
		ShopID: shop.ID,
		Quote:  quote,
		Slots:  []domain.Slot{},
	}

	// 6. Закрытый день - пустой список, не ошибка
	if !schedule.IsOpenOn(date.Weekday()) {
		uc.logger.Info("GetAvailableSlots: shop=%d is closed on %s", shop.ID, date.Format(domain.DateFormat))
		resp.Closed = true
		return resp, nil
	}

	// 7. Вычисляем доступность
	windows := availability.WindowsFor(schedule, date)
	resp.Slots = availability.Compute(availability.Input{
		Date:             date,
		Now:              now,
		Location:         loc,
		Windows:          windows,
		DurationMinutes:  quote.TotalDurationMinutes,
		StepMinutes:      shop.Settings.SlotStepMinutes,
		MinNoticeMinutes: shop.Settings.MinBookingNoticeMinutes,
		Capacity:         shop.Settings.MaxConcurrentReservations,
		Reservations:     reservations,
	})

	uc.logger.Info("GetAvailableSlots: generated %d slots for shop=%d, service=%d, date=%s",
		len(resp.Slots), shop.ID, req.Selection.ServiceID, date.Format(domain.DateFormat))

	return resp, nil
}
