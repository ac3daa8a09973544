package business

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/appointment-booking/internal/domain"
	"github.com/m04kA/appointment-booking/pkg/dbmetrics"
	"github.com/m04kA/appointment-booking/pkg/psqlbuilder"
)

const tableBusinesses = "businesses"

var businessColumns = []string{
	"id",
	"owner_id",
	"name",
	"description",
	"category",
	"address",
	"phone",
	"email",
	"working_hours",
	"slot_duration_minutes",
	"is_active",
	"created_at",
	"updated_at",
}

// likeEscaper экранирует спецсимволы LIKE в поисковой строке
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Repository репозиторий для работы с бизнесами (профиль, расписание и длительность слота)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бизнесов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый бизнес
func (r *Repository) Create(ctx context.Context, business *domain.Business) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBusinesses).
		Columns(
			"owner_id",
			"name",
			"description",
			"category",
			"address",
			"phone",
			"email",
			"working_hours",
			"slot_duration_minutes",
			"is_active",
		).
		Values(
			business.OwnerID,
			business.Name,
			business.Description,
			business.Category,
			business.Address,
			business.Phone,
			business.Email,
			business.WorkingHours,
			business.SlotDurationMinutes,
			business.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&business.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	business.CreatedAt = createdAt.Time
	business.UpdatedAt = updatedAt.Time

	return business, nil
}

// GetByID получает бизнес по ID без блокировки строки
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает бизнес по ID и блокирует строку до конца транзакции.
// Вне транзакции работает как GetByID.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Business, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, id int64, lock bool) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(businessColumns...).
		From(tableBusinesses).
		Where(squirrel.Eq{"id": id})
	if lock {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	business, err := scanBusiness(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan business: %v", ErrScanRow, err)
	}

	return business, nil
}

// List получает бизнесы по фильтру, сортировка по ID
func (r *Repository) List(ctx context.Context, filter domain.BusinessesFilter) ([]*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(psqlbuilder.Select(businessColumns...).From(tableBusinesses), filter).
		OrderBy("id ASC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	businesses := make([]*domain.Business, 0)
	for rows.Next() {
		business, err := scanBusiness(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		businesses = append(businesses, business)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return businesses, nil
}

// Count возвращает количество бизнесов по фильтру (Limit и Offset игнорируются)
func (r *Repository) Count(ctx context.Context, filter domain.BusinessesFilter) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := applyFilter(psqlbuilder.Select("COUNT(*)").From(tableBusinesses), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: Count - scan count: %v", ErrScanRow, err)
	}

	return total, nil
}

// Update обновляет профиль, рабочие часы и длительность слота
func (r *Repository) Update(ctx context.Context, business *domain.Business) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBusinesses).
		Set("name", business.Name).
		Set("description", business.Description).
		Set("category", business.Category).
		Set("address", business.Address).
		Set("phone", business.Phone).
		Set("email", business.Email).
		Set("working_hours", business.WorkingHours).
		Set("slot_duration_minutes", business.SlotDurationMinutes).
		Set("is_active", business.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": business.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	business.UpdatedAt = updatedAt.Time
	return business, nil
}

// Delete удаляет бизнес. Бронирования удаляются каскадно (ON DELETE CASCADE).
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableBusinesses).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBusinessNotFound
	}

	return nil
}

// applyFilter добавляет условия фильтра к запросу
func applyFilter(b squirrel.SelectBuilder, filter domain.BusinessesFilter) squirrel.SelectBuilder {
	if search := strings.TrimSpace(filter.Search); search != "" {
		b = b.Where(squirrel.ILike{"name": "%" + likeEscaper.Replace(search) + "%"})
	}
	if filter.Category != "" {
		b = b.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.OwnerID != nil {
		b = b.Where(squirrel.Eq{"owner_id": *filter.OwnerID})
	}
	return b
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBusiness(row rowScanner) (*domain.Business, error) {
	var business domain.Business
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&business.ID,
		&business.OwnerID,
		&business.Name,
		&business.Description,
		&business.Category,
		&business.Address,
		&business.Phone,
		&business.Email,
		&business.WorkingHours,
		&business.SlotDurationMinutes,
		&business.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	business.CreatedAt = createdAt.Time
	business.UpdatedAt = updatedAt.Time

	return &business, nil
}
