package shop

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-DetailingBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-DetailingBooking/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"owner_id",
	"slug",
	"name",
	"timezone",
	"phone",
	"email",
	"address_line",
	"is_published",
	"slot_step_minutes",
	"min_booking_notice_minutes",
	"advance_booking_days",
	"max_concurrent_reservations",
	"auto_confirm",
	"created_at",
	"updated_at",
}

// Repository репозиторий автомоек
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория автомоек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает автомойку
func (r *Repository) Create(ctx context.Context, shop *domain.Shop) (*domain.Shop, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("shops").
		Columns(
			"owner_id",
			"slug",
			"name",
			"timezone",
			"phone",
			"email",
			"address_line",
			"is_published",
			"slot_step_minutes",
			"min_booking_notice_minutes",
			"advance_booking_days",
			"max_concurrent_reservations",
			"auto_confirm",
		).
		Values(
			shop.OwnerID,
			shop.Slug,
			shop.Name,
			shop.Timezone,
			shop.Phone,
			shop.Email,
			shop.AddressLine,
			shop.IsPublished,
			shop.Settings.SlotStepMinutes,
			shop.Settings.MinBookingNoticeMinutes,
			shop.Settings.AdvanceBookingDays,
			shop.Settings.MaxConcurrentReservations,
			shop.Settings.AutoConfirm,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&shop.ID, &shop.CreatedAt, &shop.UpdatedAt)
	if err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSlug, shop.Slug)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return shop, nil
}

// GetByID получает автомойку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Shop, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetBySlug получает автомойку по публичному идентификатору
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Shop, error) {
	return r.getOne(ctx, "GetBySlug", squirrel.Eq{"slug": slug})
}

// GetByOwner получает все автомойки владельца
func (r *Repository) GetByOwner(ctx context.Context, ownerID int64) ([]*domain.Shop, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("shops").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	shops := make([]*domain.Shop, 0)
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByOwner - scan row: %v", ErrScanRow, err)
		}
		shops = append(shops, shop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - rows error: %v", ErrScanRow, err)
	}

	return shops, nil
}

// UpdateSettings сохраняет настройки бронирования (последняя запись побеждает)
func (r *Repository) UpdateSettings(ctx context.Context, shopID int64, settings domain.BookingSettings) error {
	query, args, err := psqlbuilder.Update("shops").
		Set("slot_step_minutes", settings.SlotStepMinutes).
		Set("min_booking_notice_minutes", settings.MinBookingNoticeMinutes).
		Set("advance_booking_days", settings.AdvanceBookingDays).
		Set("max_concurrent_reservations", settings.MaxConcurrentReservations).
		Set("auto_confirm", settings.AutoConfirm).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": shopID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSettings - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, "UpdateSettings", query, args)
}

// SetPublished публикует или скрывает автомойку
func (r *Repository) SetPublished(ctx context.Context, shopID int64, published bool) error {
	query, args, err := psqlbuilder.Update("shops").
		Set("is_published", published).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": shopID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetPublished - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, "SetPublished", query, args)
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Shop, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("shops").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	shop, err := scanShop(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShopNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan shop: %v", ErrScanRow, op, err)
	}

	return shop, nil
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
		return ErrShopNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanShop(row scanner) (*domain.Shop, error) {
	var shop domain.Shop
	err := row.Scan(
		&shop.ID,
		&shop.OwnerID,
		&shop.Slug,
		&shop.Name,
		&shop.Timezone,
		&shop.Phone,
		&shop.Email,
		&shop.AddressLine,
		&shop.IsPublished,
		&shop.Settings.SlotStepMinutes,
		&shop.Settings.MinBookingNoticeMinutes,
		&shop.Settings.AdvanceBookingDays,
		&shop.Settings.MaxConcurrentReservations,
		&shop.Settings.AutoConfirm,
		&shop.CreatedAt,
		&shop.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &shop, nil
}
