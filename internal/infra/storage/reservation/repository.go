package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-DetailingBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-DetailingBooking/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"reference",
	"shop_id",
	"service_id",
	"formula_id",
	"vehicle_size_id",
	"add_on_ids",
	"reservation_date",
	"start_time",
	"duration_minutes",
	"total_price",
	"status",
	"client_name",
	"client_email",
	"client_phone",
	"vehicle_make",
	"vehicle_model",
	"notes",
	"service_name",
	"formula_name",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	addOnIDs := res.AddOnIDs
	if addOnIDs == nil {
		addOnIDs = []int64{}
	}

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"reference",
			"shop_id",
			"service_id",
			"formula_id",
			"vehicle_size_id",
			"add_on_ids",
			"reservation_date",
			"start_time",
			"duration_minutes",
			"total_price",
			"status",
			"client_name",
			"client_email",
			"client_phone",
			"vehicle_make",
			"vehicle_model",
			"notes",
			"service_name",
			"formula_name",
		).
		Values(
			res.Reference,
			res.ShopID,
			res.ServiceID,
			res.FormulaID,
			res.VehicleSizeID,
			pq.Array(addOnIDs),
			res.Date,
			res.StartTime,
			res.DurationMinutes,
			res.TotalPrice,
			res.Status,
			res.ClientName,
			res.ClientEmail,
			res.ClientPhone,
			res.VehicleMake,
			res.VehicleModel,
			res.Notes,
			res.ServiceName,
			res.FormulaName,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateReference, res.Reference)
		}
		if pgerrors.IsRetryable(err) {
			// конфликт сериализации пробрасывается как есть, чтобы менеджер транзакций повторил попытку
			return nil, err
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByReference получает бронирование по публичному идентификатору
func (r *Repository) GetByReference(ctx context.Context, reference uuid.UUID) (*domain.Reservation, error) {
	return r.getOne(ctx, "GetByReference", squirrel.Eq{"reference": reference})
}

// ListByShop получает бронирования автомойки с фильтрацией
//
// Примеры использования:
//
// 1. Все активные бронирования:
//    filter := domain.ReservationsFilter{ShopID: 123}
//
// 2. Бронирования на конкретную дату:
//    filter := domain.ReservationsFilter{ShopID: 123, StartDate: &date, EndDate: &date}
//
// 3. Только ожидающие подтверждения:
//    status := domain.StatusPending
//    filter := domain.ReservationsFilter{ShopID: 123, Status: &status}
func (r *Repository) ListByShop(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listQuery(filter, false).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByShop - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByShop - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListForDay получает активные бронирования автомойки на дату, отсортированные по времени
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы параллельные бронирования не заняли тот же слот
func (r *Repository) ListForDay(ctx context.Context, shopID int64, date time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	filter := domain.ReservationsFilter{ShopID: shopID, StartDate: &date, EndDate: &date}
	query, args, err := listQuery(filter, dbmetrics.IsInTransaction(ctx)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if pgerrors.IsRetryable(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: ListForDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, "UpdateStatus", query, args)
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.ReservationStatus, reason *string) error {
	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, "Cancel", query, args)
}

// listQuery строит выборку по фильтру
// Для одной даты сортировка по времени начала, иначе сначала новые
func listQuery(filter domain.ReservationsFilter, forUpdate bool) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(columns...).
		From("reservations").
		Where(squirrel.Eq{"shop_id": filter.ShopID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"reservation_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"reservation_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	} else if !filter.IncludeInactive {
		inactive := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactive[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactive})
	}

	if filter.IsSingleDay() {
		selectBuilder = selectBuilder.OrderBy("start_time ASC", "id ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("reservation_date DESC", "start_time DESC", "id DESC")
	}

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(filter.Offset)
	}

	if forUpdate && filter.IsSingleDay() {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return selectBuilder
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("reservations").
		Where(where)
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan reservation: %v", ErrScanRow, op, err)
	}

	return res, nil
}

func (r *Repository) execOne(ctx context.Context, op, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row scanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var cancelledAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.Reference,
		&res.ShopID,
		&res.ServiceID,
		&res.FormulaID,
		&res.VehicleSizeID,
		pq.Array(&res.AddOnIDs),
		&res.Date,
		&res.StartTime,
		&res.DurationMinutes,
		&res.TotalPrice,
		&res.Status,
		&res.ClientName,
		&res.ClientEmail,
		&res.ClientPhone,
		&res.VehicleMake,
		&res.VehicleModel,
		&res.Notes,
		&res.ServiceName,
		&res.FormulaName,
		&res.CancellationReason,
		&cancelledAt,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if cancelledAt.Valid {
		res.CancelledAt = &cancelledAt.Time
	}
	if res.AddOnIDs == nil {
		res.AddOnIDs = []int64{}
	}

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		if pgerrors.IsRetryable(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
