package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/shenikar/geo_monitoring_pipeline/internal/models"
)

// TxBeginner - часть pgxpool.Pool, нужная для транзакционной записи
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// AuditRepository - append-only журнал классификаций в PostgreSQL
type AuditRepository struct {
	db TxBeginner
}

func NewAuditRepository(db TxBeginner) *AuditRepository {
	return &AuditRepository{db: db}
}

// AppendAudit добавляет строку журнала в отдельной транзакции.
// Одна попытка: при ошибке транзакция откатывается, повтора нет.
func (r *AuditRepository) AppendAudit(ctx context.Context, entry models.AuditEntry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin audit transaction: %w", err)
	}
	// после Commit откат ничего не делает
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO location_audit (subject_id, subject_display, latitude, longitude, risk_state, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.Exec(ctx, query,
		entry.SubjectID,
		entry.SubjectDisplay,
		entry.Latitude,
		entry.Longitude,
		string(entry.RiskState),
		entry.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit audit entry: %w", err)
	}
	return nil
}
