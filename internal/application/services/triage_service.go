package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/arogyahealth/triage-server/internal/domain/entities"
	"github.com/arogyahealth/triage-server/internal/domain/repositories"
	"github.com/arogyahealth/triage-server/internal/infrastructure/observability"
	apperrors "github.com/arogyahealth/triage-server/pkg/errors"
)

// TriageService runs the full triage pipeline for one request: vitals
// validation, document ingestion, evidence merge, structured prediction,
// narrative synthesis, response assembly, and a best-effort history write.
type TriageService struct {
	documents  *DocumentService
	prediction *PredictionService
	narrative  *NarrativeService
	history    repositories.HistoryRepository
}

// NewTriageService wires the pipeline. history may be nil; triage then
// runs without persistence.
func NewTriageService(documents *DocumentService, prediction *PredictionService, narrative *NarrativeService, history repositories.HistoryRepository) *TriageService {
	return &TriageService{
		documents:  documents,
		prediction: prediction,
		narrative:  narrative,
		history:    history,
	}
}

// Analyze executes the pipeline sequentially. Mandatory vitals are checked
// before any collaborator call; the structured-prediction attempt always
// precedes narrative synthesis because its outcome shapes the prompt.
func (s *TriageService) Analyze(ctx context.Context, intake *entities.PatientIntake) (*entities.TriageResult, error) {
	logger := observability.LoggerFromContext(ctx)

	if err := ValidateVitals(intake); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	ingested := s.documents.Ingest(ctx, intake.Document)
	merged := MergeEvidence(intake, ingested.Extraction)

	prediction := s.prediction.Predict(ctx, merged)

	assessment, err := s.narrative.Synthesize(ctx, merged, ingested.ReportText, prediction)
	if err != nil {
		return nil, apperrors.NewExternalError("narrative synthesis failed", err)
	}

	result := AssembleResult(prediction, assessment)

	if s.history != nil && intake.UID != "" {
		record := &entities.TriageRecord{
			ID:              uuid.New().String(),
			UID:             intake.UID,
			Timestamp:       time.Now().UTC(),
			RiskLevel:       result.FinalRecommendation.RiskLevel,
			Department:      result.FinalRecommendation.Department,
			Symptoms:        intake.Symptoms,
			Summary:         result.FinalRecommendation.Summary,
			UrgencyScore:    result.FinalRecommendation.UrgencyScore,
			ConfidenceScore: result.ConfidenceScore,
		}
		if err := s.history.Create(ctx, record); err != nil {
			// Persistence is best-effort; the triage result already exists.
			logger.Warn().Err(err).Str("uid", intake.UID).Msg("failed to persist triage record")
		}
	}

	return result, nil
}
