package database

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/arogyahealth/triage-server/internal/domain/entities"
	"github.com/arogyahealth/triage-server/internal/domain/repositories"
	"github.com/arogyahealth/triage-server/internal/infrastructure/clients/postgres"
	apperrors "github.com/arogyahealth/triage-server/pkg/errors"
)

const triageHistoryTable = "triage_history"

// HistoryAdapter implements triage history persistence in Postgres.
type HistoryAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewHistoryAdapter creates a new triage history adapter.
func NewHistoryAdapter(client *postgres.Client) repositories.HistoryRepository {
	return &HistoryAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts one triage record.
func (a *HistoryAdapter) Create(ctx context.Context, record *entities.TriageRecord) error {
	if record == nil {
		return apperrors.NewInternalError("triage record is nil", fmt.Errorf("triage record is nil"))
	}

	row := goqu.Record{
		"id":               record.ID,
		"uid":              record.UID,
		"timestamp":        record.Timestamp,
		"risk_level":       record.RiskLevel,
		"department":       record.Department,
		"symptoms":         record.Symptoms,
		"summary":          record.Summary,
		"urgency_score":    record.UrgencyScore,
		"confidence_score": record.ConfidenceScore,
	}

	query, args, err := a.db.Insert(triageHistoryTable).Rows(row).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build triage history insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create triage record", err)
	}

	return nil
}

// RecentByUID returns the most recent triage records for a patient,
// newest first.
func (a *HistoryAdapter) RecentByUID(ctx context.Context, uid string, limit int) ([]*entities.TriageRecord, error) {
	if limit <= 0 {
		limit = 5
	}

	query, args, err := a.db.From(triageHistoryTable).
		Select("id", "uid", "timestamp", "risk_level", "department", "symptoms", "summary", "urgency_score", "confidence_score").
		Where(goqu.C("uid").Eq(uid)).
		Order(goqu.C("timestamp").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build triage history query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query triage history", err)
	}
	defer rows.Close()

	records := make([]*entities.TriageRecord, 0, limit)
	for rows.Next() {
		var r entities.TriageRecord
		if err := rows.Scan(
			&r.ID,
			&r.UID,
			&r.Timestamp,
			&r.RiskLevel,
			&r.Department,
			&r.Symptoms,
			&r.Summary,
			&r.UrgencyScore,
			&r.ConfidenceScore,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan triage record", err)
		}
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read triage history rows", err)
	}

	return records, nil
}
