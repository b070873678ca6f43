package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shenikar/geo_monitoring_pipeline/internal/models"
)

type fakeTx struct {
	pgx.Tx
	execErr    error
	commitErr  error
	args       []any
	committed  bool
	rolledBack bool
}

func (tx *fakeTx) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	tx.args = args
	if tx.execErr != nil {
		return pgconn.CommandTag{}, tx.execErr
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (tx *fakeTx) Commit(context.Context) error {
	if tx.commitErr != nil {
		return tx.commitErr
	}
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	if tx.committed {
		return pgx.ErrTxClosed
	}
	tx.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx  *fakeTx
	err error
}

func (b *fakeBeginner) Begin(context.Context) (pgx.Tx, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.tx, nil
}

func auditEntry() models.AuditEntry {
	return models.AuditEntry{
		SubjectID:      "X",
		SubjectDisplay: "Lucia",
		Latitude:       39.4699,
		Longitude:      -0.3763,
		RiskState:      models.RiskWarning,
		OccurredAt:     time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}
}

func TestAppendAudit_Commit(t *testing.T) {
	tx := &fakeTx{}
	repo := NewAuditRepository(&fakeBeginner{tx: tx})

	require.NoError(t, repo.AppendAudit(context.Background(), auditEntry()))
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
	assert.Equal(t, []any{"X", "Lucia", 39.4699, -0.3763, "WARNING", auditEntry().OccurredAt}, tx.args)
}

func TestAppendAudit_ExecFailureRollsBack(t *testing.T) {
	execErr := errors.New("relation does not exist")
	tx := &fakeTx{execErr: execErr}
	repo := NewAuditRepository(&fakeBeginner{tx: tx})

	err := repo.AppendAudit(context.Background(), auditEntry())
	assert.ErrorIs(t, err, execErr)
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}

func TestAppendAudit_CommitFailureRollsBack(t *testing.T) {
	commitErr := errors.New("serialization failure")
	tx := &fakeTx{commitErr: commitErr}
	repo := NewAuditRepository(&fakeBeginner{tx: tx})

	err := repo.AppendAudit(context.Background(), auditEntry())
	assert.ErrorIs(t, err, commitErr)
	assert.True(t, tx.rolledBack)
}

func TestAppendAudit_BeginFailure(t *testing.T) {
	beginErr := errors.New("pool closed")
	repo := NewAuditRepository(&fakeBeginner{err: beginErr})

	assert.ErrorIs(t, repo.AppendAudit(context.Background(), auditEntry()), beginErr)
}
