package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
	"github.com/m04kA/SMC-AppointmentBot/pkg/psqlbuilder"
)

// Repository репозиторий для работы с записями на приём
//
// Таблица append-only: записи создаются один раз и никогда не удаляются.
// Единственное обновляемое поле — reminded_at, его выставляет планировщик
// после отправки напоминания.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую запись на приём
// Вставка атомарна: параллельный ListByScheduledAt никогда не увидит
// частично записанную строку
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"user_id",
			"display_name",
			"email",
			"scheduled_at",
		).
		Values(
			appt.UserID,
			appt.DisplayName,
			appt.Email,
			appt.ScheduledAt,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time

	return appt, nil
}

// ListByScheduledAt возвращает все записи, отсортированные по времени приёма
// по возрастанию. Сортировка позволяет обходу окна напоминаний прерываться
// на первой записи за пределами окна
func (r *Repository) ListByScheduledAt(ctx context.Context) ([]*domain.Appointment, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"display_name",
		"email",
		"scheduled_at",
		"reminded_at",
		"created_at",
	).
		From("appointments").
		OrderBy("scheduled_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByScheduledAt - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByScheduledAt - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// MarkReminded помечает запись как напомненную
// Условие reminded_at IS NULL защищает от повторной отметки
func (r *Repository) MarkReminded(ctx context.Context, id int64, at time.Time) error {
	query, args, err := psqlbuilder.Update("appointments").
		Set("reminded_at", at).
		Where(squirrel.Eq{"id": id}).
		Where("reminded_at IS NULL").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkReminded - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkReminded - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkReminded - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appt domain.Appointment
		var remindedAt sql.NullTime
		var createdAt sql.NullTime

		err := rows.Scan(
			&appt.ID,
			&appt.UserID,
			&appt.DisplayName,
			&appt.Email,
			&appt.ScheduledAt,
			&remindedAt,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		if remindedAt.Valid {
			t := remindedAt.Time
			appt.RemindedAt = &t
		}
		appt.CreatedAt = createdAt.Time

		appointments = append(appointments, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
