package lead

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-DetailingBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-DetailingBooking/pkg/psqlbuilder"
)

// Repository репозиторий заявок (контакты потенциальных клиентов)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет заявку
func (r *Repository) Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("leads").
		Columns("shop_id", "name", "email", "phone", "message", "service_id", "source").
		Values(lead.ShopID, lead.Name, lead.Email, lead.Phone, lead.Message, lead.ServiceID, lead.Source).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&lead.ID, &lead.CreatedAt); err != nil {
		if pgerrors.IsRetryable(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return lead, nil
}

// ListByShop возвращает заявки автомойки, сначала новые
func (r *Repository) ListByShop(ctx context.Context, filter domain.LeadsFilter) ([]*domain.Lead, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByShop - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByShop - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	leads := make([]*domain.Lead, 0)
	for rows.Next() {
		var l domain.Lead
		err := rows.Scan(&l.ID, &l.ShopID, &l.Name, &l.Email, &l.Phone, &l.Message, &l.ServiceID, &l.Source, &l.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByShop - scan row: %v", ErrScanRow, err)
		}
		leads = append(leads, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByShop - rows error: %v", ErrScanRow, err)
	}

	return leads, nil
}

func listQuery(filter domain.LeadsFilter) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select("id", "shop_id", "name", "email", "phone", "message", "service_id", "source", "created_at").
		From("leads").
		Where(squirrel.Eq{"shop_id": filter.ShopID})

	if filter.Source != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"source": string(*filter.Source)})
	}

	selectBuilder = selectBuilder.OrderBy("created_at DESC", "id DESC")
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(filter.Offset)
	}
	return selectBuilder
}
