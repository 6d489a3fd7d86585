package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-DetailingBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-DetailingBooking/pkg/psqlbuilder"
)

// Repository репозиторий недельного расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByShop возвращает все окна расписания автомойки
func (r *Repository) GetByShop(ctx context.Context, shopID int64) (domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("shop_id", "weekday", "open_time", "close_time").
		From("schedule_windows").
		Where(squirrel.Eq{"shop_id": shopID}).
		OrderBy("weekday ASC", "open_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByShop - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		// читается внутри SERIALIZABLE транзакции бронирования, 40001 должен дойти до менеджера транзакций
		if pgerrors.IsRetryable(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: GetByShop - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedule := make(domain.WeeklySchedule, 0)
	for rows.Next() {
		var w domain.ScheduleWindow
		var weekday int
		if err := rows.Scan(&w.ShopID, &weekday, &w.OpenTime, &w.CloseTime); err != nil {
			return nil, fmt.Errorf("%w: GetByShop - scan row: %v", ErrScanRow, err)
		}
		w.Weekday = time.Weekday(weekday) // 0 = воскресенье, как в time.Weekday
		schedule = append(schedule, w)
	}
	if err := rows.Err(); err != nil {
		if pgerrors.IsRetryable(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: GetByShop - rows error: %v", ErrScanRow, err)
	}

	return schedule, nil
}

// ReplaceForShop заменяет расписание целиком
// Должен вызываться внутри транзакции, чтобы удаление и вставка применились вместе
func (r *Repository) ReplaceForShop(ctx context.Context, shopID int64, schedule domain.WeeklySchedule) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrTransactionRequired
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_windows").
		Where(squirrel.Eq{"shop_id": shopID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceForShop - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceForShop - execute delete: %v", ErrExecQuery, err)
	}

	if len(schedule) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("schedule_windows").Columns("shop_id", "weekday", "open_time", "close_time")
	for _, w := range schedule {
		insert = insert.Values(shopID, int(w.Weekday), w.OpenTime, w.CloseTime)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceForShop - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceForShop - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
