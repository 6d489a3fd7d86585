package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-DetailingBooking/pkg/psqlbuilder"
)

// reorderTarget таблица и родительская колонка списка
type reorderTarget struct {
	table  string
	parent string
}

var reorderTargets = map[domain.ReorderableList]reorderTarget{
	domain.ListCategories:   {table: "service_categories", parent: "shop_id"},
	domain.ListVehicleSizes: {table: "vehicle_sizes", parent: "shop_id"},
	domain.ListServices:     {table: "services", parent: "shop_id"},
	domain.ListAddOns:       {table: "add_ons", parent: "shop_id"},
	domain.ListFormulas:     {table: "formulas", parent: "service_id"},
}

// CreateCategory создает категорию
func (r *Repository) CreateCategory(ctx context.Context, c *domain.ServiceCategory) error {
	query, args, err := psqlbuilder.Insert("service_categories").
		Columns("shop_id", "name", "position").
		Values(c.ShopID, c.Name, c.Position).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateCategory - build insert query: %v", ErrBuildQuery, err)
	}
	return r.insertReturningID(ctx, "CreateCategory", query, args, &c.ID)
}

// CreateVehicleSize создает размер автомобиля
func (r *Repository) CreateVehicleSize(ctx context.Context, s *domain.VehicleSize) error {
	query, args, err := psqlbuilder.Insert("vehicle_sizes").
		Columns("shop_id", "name", "description", "position").
		Values(s.ShopID, s.Name, s.Description, s.Position).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateVehicleSize - build insert query: %v", ErrBuildQuery, err)
	}
	return r.insertReturningID(ctx, "CreateVehicleSize", query, args, &s.ID)
}

// CreateService создает услугу вместе с формулами и доплатами за размер
// Должен вызываться внутри транзакции
func (r *Repository) CreateService(ctx context.Context, s *domain.Service) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrTransactionRequired
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("services").
		Columns(
			"shop_id",
			"category_id",
			"name",
			"description",
			"image_url",
			"base_price",
			"base_duration_minutes",
			"position",
			"is_active",
		).
		Values(
			s.ShopID,
			s.CategoryID,
			s.Name,
			s.Description,
			s.ImageURL,
			s.BasePrice,
			s.BaseDurationMinutes,
			s.Position,
			s.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateService - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return fmt.Errorf("%w: CreateService - execute insert: %v", ErrExecQuery, err)
	}

	for i := range s.Formulas {
		f := &s.Formulas[i]
		f.ServiceID = s.ID

		query, args, err := psqlbuilder.Insert("formulas").
			Columns("service_id", "name", "description", "additional_price", "additional_duration_minutes", "position").
			Values(f.ServiceID, f.Name, f.Description, f.AdditionalPrice, f.AdditionalDurationMinutes, f.Position).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: CreateService - build formula insert: %v", ErrBuildQuery, err)
		}
		if err := r.insertReturningID(ctx, "CreateService", query, args, &f.ID); err != nil {
			return err
		}
	}

	if len(s.SizeSupplements) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("size_supplements").Columns(supplementColumns...)
	for i := range s.SizeSupplements {
		sup := &s.SizeSupplements[i]
		sup.ServiceID = s.ID
		insert = insert.Values(sup.ServiceID, sup.VehicleSizeID, sup.AdditionalPrice, sup.AdditionalDurationMinutes)
	}
	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateService - build supplements insert: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateService - execute supplements insert: %v", ErrExecQuery, err)
	}

	return nil
}

// CreateAddOn создает опцию
func (r *Repository) CreateAddOn(ctx context.Context, a *domain.AddOn) error {
	query, args, err := psqlbuilder.Insert("add_ons").
		Columns("shop_id", "name", "description", "price", "duration_minutes", "position", "is_active").
		Values(a.ShopID, a.Name, a.Description, a.Price, a.DurationMinutes, a.Position, a.IsActive).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateAddOn - build insert query: %v", ErrBuildQuery, err)
	}
	return r.insertReturningID(ctx, "CreateAddOn", query, args, &a.ID)
}

// Reorder переписывает позиции списка в порядке ids (0..n-1)
// parentID - id автомойки, а для формул - id услуги
// ids должен в точности совпадать с набором элементов списка, иначе ErrReorderMismatch
func (r *Repository) Reorder(ctx context.Context, list domain.ReorderableList, parentID int64, ids []int64) error {
	target, ok := reorderTargets[list]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownList, list)
	}
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrTransactionRequired
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From(target.table).
		Where(squirrel.Eq{target.parent: parentID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Reorder - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Reorder - execute select: %v", ErrExecQuery, err)
	}
	existing := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("%w: Reorder - scan id: %v", ErrScanRow, err)
		}
		existing = append(existing, id)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return fmt.Errorf("%w: Reorder - rows error: %v", ErrScanRow, err)
	}

	if !sameIDSet(existing, ids) {
		return fmt.Errorf("%w: %s of %d", ErrReorderMismatch, list, parentID)
	}

	for position, id := range ids {
		query, args, err := psqlbuilder.Update(target.table).
			Set("position", position).
			Where(squirrel.Eq{"id": id, target.parent: parentID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: Reorder - build update query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: Reorder - execute update: %v", ErrExecQuery, err)
		}
	}

	return nil
}

func (r *Repository) insertReturningID(ctx context.Context, op, query string, args []interface{}, id *int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	if err := executor.QueryRowContext(ctx, query, args...).Scan(id); err != nil {
		return fmt.Errorf("%w: %s - execute insert: %v", ErrExecQuery, op, err)
	}
	return nil
}

// sameIDSet совпадают ли множества id без повторов
func sameIDSet(existing, ids []int64) bool {
	if len(existing) != len(ids) {
		return false
	}
	a := append([]int64(nil), existing...)
	b := append([]int64(nil), ids...)
	sort.Slice(a, func(i, j int) bool { return a[i] < a[j] })
	sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
	for i := range a {
		if a[i] != b[i] || (i > 0 && b[i] == b[i-1]) {
			return false
		}
	}
	return true
}
