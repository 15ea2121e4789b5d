// Package audit implements the append-only audit log using PostgreSQL.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/asvabprep/backend/internal/adapter/postgres"
	"github.com/asvabprep/backend/internal/domain"
)

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `
INSERT INTO audit_log (id, user_id, entity_type, entity_id, action, changes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const getByEntitySQL = `
SELECT user_id, entity_type, entity_id, action, changes
FROM audit_log
WHERE entity_type = $1 AND entity_id = $2
ORDER BY created_at DESC
LIMIT $3`

// Log appends an audit record. Fire-and-forget from the caller's point of
// view: the record is never read back on the hot path.
func (r *Repo) Log(ctx context.Context, record domain.AuditRecord) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	changesJSON, err := json.Marshal(record.Changes)
	if err != nil {
		return fmt.Errorf("audit_record marshal changes: %w", err)
	}

	id := uuid.New()
	_, err = q.Exec(ctx, createSQL,
		id, record.UserID, record.EntityType, record.EntityID,
		record.Action, changesJSON, time.Now().UTC(),
	)
	if err != nil {
		return postgres.MapError(err, "audit_record", id)
	}

	return nil
}

// GetByEntity returns the change history for a specific entity, newest first.
func (r *Repo) GetByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, getByEntitySQL, entityType, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("get audit records by entity: %w", err)
	}
	defer rows.Close()

	records := []domain.AuditRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("get audit records by entity: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit records: %w", err)
	}

	return records, nil
}

func scanRecord(row pgx.Row) (domain.AuditRecord, error) {
	var (
		rec         domain.AuditRecord
		changesJSON []byte
	)
	err := row.Scan(&rec.UserID, &rec.EntityType, &rec.EntityID, &rec.Action, &changesJSON)
	if err != nil {
		return domain.AuditRecord{}, err
	}

	if len(changesJSON) > 0 {
		if err := json.Unmarshal(changesJSON, &rec.Changes); err != nil {
			return domain.AuditRecord{}, fmt.Errorf("unmarshal changes: %w", err)
		}
	}

	return rec, nil
}
