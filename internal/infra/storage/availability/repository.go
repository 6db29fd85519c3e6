package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/mentara/scheduling-service/internal/domain"
	"github.com/mentara/scheduling-service/pkg/dbmetrics"
	"github.com/mentara/scheduling-service/pkg/psqlbuilder"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var overrideColumns = []string{
	"id",
	"expert_id",
	"override_date",
	"period_index",
	"blocked",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с ограничениями доступности эксперта
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySlot получает ограничение для одного слота
func (r *Repository) GetBySlot(ctx context.Context, expertID int64, date time.Time, periodIndex int) (*domain.AvailabilityOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From("availability_overrides").
		Where(squirrel.Eq{
			"expert_id":     expertID,
			"override_date": date,
			"period_index":  periodIndex,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlot - build select query: %v", ErrBuildQuery, err)
	}

	var o domain.AvailabilityOverride
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&o.ID,
		&o.ExpertID,
		&o.Date,
		&o.PeriodIndex,
		&o.Blocked,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlot - scan override: %v", ErrScanRow, err)
	}

	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time

	return &o, nil
}

// ListByExpertDateRange получает все ограничения эксперта в диапазоне дат
// Одна range-выборка на всё окно, в пару к такой же выборке записей на приём
func (r *Repository) ListByExpertDateRange(ctx context.Context, expertID int64, from, to time.Time) ([]*domain.AvailabilityOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(overrideColumns...).
		From("availability_overrides").
		Where(squirrel.Eq{"expert_id": expertID}).
		Where(squirrel.GtOrEq{"override_date": from}).
		Where(squirrel.LtOrEq{"override_date": to}).
		OrderBy("override_date ASC, period_index ASC")

	// Пакетный редактор читает-сравнивает-пишет в транзакции;
	// блокируем строки, чтобы конкурирующие batch-вызовы не теряли записи
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByExpertDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByExpertDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]*domain.AvailabilityOverride, 0)
	for rows.Next() {
		var o domain.AvailabilityOverride
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&o.ID,
			&o.ExpertID,
			&o.Date,
			&o.PeriodIndex,
			&o.Blocked,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByExpertDateRange - scan row: %v", ErrScanRow, err)
		}

		o.CreatedAt = createdAt.Time
		o.UpdatedAt = updatedAt.Time

		overrides = append(overrides, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByExpertDateRange - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// Upsert записывает ограничение для слота; повторная запись по тому же адресу
// обновляет значение blocked (последняя запись выигрывает)
func (r *Repository) Upsert(ctx context.Context, o *domain.AvailabilityOverride) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_overrides").
		Columns("expert_id", "override_date", "period_index", "blocked").
		Values(o.ExpertID, o.Date, o.PeriodIndex, o.Blocked).
		Suffix(`ON CONFLICT (expert_id, override_date, period_index)
			DO UPDATE SET blocked = EXCLUDED.blocked, updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// UpsertBatch записывает набор ограничений одним запросом
func (r *Repository) UpsertBatch(ctx context.Context, overrides []*domain.AvailabilityOverride) error {
	if len(overrides) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("availability_overrides").
		Columns("expert_id", "override_date", "period_index", "blocked")

	for _, o := range overrides {
		insertBuilder = insertBuilder.Values(o.ExpertID, o.Date, o.PeriodIndex, o.Blocked)
	}

	query, args, err := insertBuilder.
		Suffix(`ON CONFLICT (expert_id, override_date, period_index)
			DO UPDATE SET blocked = EXCLUDED.blocked, updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertBatch - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertBatch - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteBefore удаляет ограничения эксперта старше указанной даты
// Записи за пределами окна не читаются, удаление только экономит место
func (r *Repository) DeleteBefore(ctx context.Context, expertID int64, cutoff time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_overrides").
		Where(squirrel.Eq{"expert_id": expertID}).
		Where(squirrel.Lt{"override_date": cutoff}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteBefore - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteBefore - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteBefore - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}
