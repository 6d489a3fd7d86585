package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-DetailingBooking/pkg/psqlbuilder"
)

var (
	serviceColumns = []string{
		"id", "shop_id", "category_id", "name", "description", "image_url",
		"base_price", "base_duration_minutes", "position", "is_active", "created_at", "updated_at",
	}
	formulaColumns = []string{
		"id", "service_id", "name", "description", "additional_price", "additional_duration_minutes", "position",
	}
	supplementColumns = []string{
		"service_id", "vehicle_size_id", "additional_price", "additional_duration_minutes",
	}
	addOnColumns = []string{
		"id", "shop_id", "name", "description", "price", "duration_minutes", "position", "is_active",
	}
)

// Repository репозиторий каталога автомойки: категории, размеры, услуги, формулы, опции
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListCategories возвращает категории автомойки в порядке отображения
func (r *Repository) ListCategories(ctx context.Context, shopID int64) ([]domain.ServiceCategory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "shop_id", "name", "position").
		From("service_categories").
		Where(squirrel.Eq{"shop_id": shopID}).
		OrderBy("position ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCategories - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCategories - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.ServiceCategory, 0)
	for rows.Next() {
		var c domain.ServiceCategory
		if err := rows.Scan(&c.ID, &c.ShopID, &c.Name, &c.Position); err != nil {
			return nil, fmt.Errorf("%w: ListCategories - scan row: %v", ErrScanRow, err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCategories - rows error: %v", ErrScanRow, err)
	}
	return result, nil
}

// ListVehicleSizes возвращает размеры автомобилей автомойки
func (r *Repository) ListVehicleSizes(ctx context.Context, shopID int64) ([]domain.VehicleSize, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "shop_id", "name", "description", "position").
		From("vehicle_sizes").
		Where(squirrel.Eq{"shop_id": shopID}).
		OrderBy("position ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListVehicleSizes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListVehicleSizes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.VehicleSize, 0)
	for rows.Next() {
		var s domain.VehicleSize
		if err := rows.Scan(&s.ID, &s.ShopID, &s.Name, &s.Description, &s.Position); err != nil {
			return nil, fmt.Errorf("%w: ListVehicleSizes - scan row: %v", ErrScanRow, err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListVehicleSizes - rows error: %v", ErrScanRow, err)
	}
	return result, nil
}

// GetVehicleSize получает размер автомобиля автомойки
func (r *Repository) GetVehicleSize(ctx context.Context, shopID, sizeID int64) (*domain.VehicleSize, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "shop_id", "name", "description", "position").
		From("vehicle_sizes").
		Where(squirrel.Eq{"id": sizeID, "shop_id": shopID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetVehicleSize - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.VehicleSize
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.ShopID, &s.Name, &s.Description, &s.Position)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVehicleSizeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetVehicleSize - scan row: %v", ErrScanRow, err)
	}
	return &s, nil
}

// ListServices возвращает услуги автомойки вместе с формулами и доплатами за размер
func (r *Repository) ListServices(ctx context.Context, shopID int64, activeOnly bool) ([]*domain.Service, error) {
	where := squirrel.And{squirrel.Eq{"shop_id": shopID}}
	if activeOnly {
		where = append(where, squirrel.Eq{"is_active": true})
	}

	services, err := r.selectServices(ctx, "ListServices", where)
	if err != nil {
		return nil, err
	}
	if err := r.attachDetails(ctx, services); err != nil {
		return nil, err
	}
	return services, nil
}

// GetService получает услугу автомойки вместе с формулами и доплатами
func (r *Repository) GetService(ctx context.Context, shopID, serviceID int64) (*domain.Service, error) {
	services, err := r.selectServices(ctx, "GetService", squirrel.Eq{"id": serviceID, "shop_id": shopID})
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return nil, ErrServiceNotFound
	}
	if err := r.attachDetails(ctx, services); err != nil {
		return nil, err
	}
	return services[0], nil
}

// GetFormula получает формулу услуги
func (r *Repository) GetFormula(ctx context.Context, serviceID, formulaID int64) (*domain.Formula, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(formulaColumns...).
		From("formulas").
		Where(squirrel.Eq{"id": formulaID, "service_id": serviceID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetFormula - build select query: %v", ErrBuildQuery, err)
	}

	f, err := scanFormula(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFormulaNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetFormula - scan row: %v", ErrScanRow, err)
	}
	return f, nil
}

// ListAddOns возвращает опции автомойки
func (r *Repository) ListAddOns(ctx context.Context, shopID int64, activeOnly bool) ([]domain.AddOn, error) {
	where := squirrel.And{squirrel.Eq{"shop_id": shopID}}
	if activeOnly {
		where = append(where, squirrel.Eq{"is_active": true})
	}
	return r.selectAddOns(ctx, "ListAddOns", where)
}

// GetAddOnsByIDs возвращает опции в порядке ids
// Если хотя бы одна опция не найдена у автомойки, возвращает ErrAddOnNotFound
func (r *Repository) GetAddOnsByIDs(ctx context.Context, shopID int64, ids []int64) ([]domain.AddOn, error) {
	if len(ids) == 0 {
		return []domain.AddOn{}, nil
	}

	found, err := r.selectAddOns(ctx, "GetAddOnsByIDs", squirrel.Eq{"shop_id": shopID, "id": ids})
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]domain.AddOn, len(found))
	for _, a := range found {
		byID[a.ID] = a
	}

	result := make([]domain.AddOn, 0, len(ids))
	for _, id := range ids {
		a, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: id=%d", ErrAddOnNotFound, id)
		}
		result = append(result, a)
	}
	return result, nil
}

func (r *Repository) selectServices(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(where).
		OrderBy("position ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		var s domain.Service
		err := rows.Scan(
			&s.ID,
			&s.ShopID,
			&s.CategoryID,
			&s.Name,
			&s.Description,
			&s.ImageURL,
			&s.BasePrice,
			&s.BaseDurationMinutes,
			&s.Position,
			&s.IsActive,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		s.Formulas = []domain.Formula{}
		s.SizeSupplements = []domain.SizeSupplement{}
		services = append(services, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}
	return services, nil
}

// attachDetails загружает формулы и доплаты двумя запросами для всех услуг сразу
func (r *Repository) attachDetails(ctx context.Context, services []*domain.Service) error {
	if len(services) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	ids := make([]int64, 0, len(services))
	byID := make(map[int64]*domain.Service, len(services))
	for _, s := range services {
		ids = append(ids, s.ID)
		byID[s.ID] = s
	}

	query, args, err := psqlbuilder.Select(formulaColumns...).
		From("formulas").
		Where(squirrel.Eq{"service_id": ids}).
		OrderBy("position ASC", "id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachDetails - build formulas query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachDetails - execute formulas query: %v", ErrExecQuery, err)
	}
	for rows.Next() {
		f, err := scanFormula(rows)
		if err != nil {
			rows.Close()
			return fmt.Errorf("%w: attachDetails - scan formula: %v", ErrScanRow, err)
		}
		if s, ok := byID[f.ServiceID]; ok {
			s.Formulas = append(s.Formulas, *f)
		}
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return fmt.Errorf("%w: attachDetails - formulas rows error: %v", ErrScanRow, err)
	}

	query, args, err = psqlbuilder.Select(supplementColumns...).
		From("size_supplements").
		Where(squirrel.Eq{"service_id": ids}).
		OrderBy("service_id ASC", "vehicle_size_id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachDetails - build supplements query: %v", ErrBuildQuery, err)
	}

	rows, err = executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachDetails - execute supplements query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var sup domain.SizeSupplement
		if err := rows.Scan(&sup.ServiceID, &sup.VehicleSizeID, &sup.AdditionalPrice, &sup.AdditionalDurationMinutes); err != nil {
			return fmt.Errorf("%w: attachDetails - scan supplement: %v", ErrScanRow, err)
		}
		if s, ok := byID[sup.ServiceID]; ok {
			s.SizeSupplements = append(s.SizeSupplements, sup)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachDetails - supplements rows error: %v", ErrScanRow, err)
	}
	return nil
}

func (r *Repository) selectAddOns(ctx context.Context, op string, where squirrel.Sqlizer) ([]domain.AddOn, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(addOnColumns...).
		From("add_ons").
		Where(where).
		OrderBy("position ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]domain.AddOn, 0)
	for rows.Next() {
		var a domain.AddOn
		err := rows.Scan(&a.ID, &a.ShopID, &a.Name, &a.Description, &a.Price, &a.DurationMinutes, &a.Position, &a.IsActive)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanFormula(row scanner) (*domain.Formula, error) {
	var f domain.Formula
	err := row.Scan(&f.ID, &f.ServiceID, &f.Name, &f.Description, &f.AdditionalPrice, &f.AdditionalDurationMinutes, &f.Position)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
