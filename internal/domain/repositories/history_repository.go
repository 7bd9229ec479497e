package repositories

import (
	"context"

	"github.com/arogyahealth/triage-server/internal/domain/entities"
)

// HistoryRepository persists triage outcomes per patient.
type HistoryRepository interface {
	// Create stores one triage record.
	Create(ctx context.Context, record *entities.TriageRecord) error

	// RecentByUID returns up to limit records for a patient, newest first.
	RecentByUID(ctx context.Context, uid string, limit int) ([]*entities.TriageRecord, error)
}
