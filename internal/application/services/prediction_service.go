package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/arogyahealth/triage-server/internal/domain/entities"
	"github.com/arogyahealth/triage-server/internal/domain/providers"
	"github.com/arogyahealth/triage-server/internal/infrastructure/observability"
)

var (
	predictionFailCounterOnce sync.Once
	predictionFailCounter     metric.Int64Counter
)

// PredictionService wraps the classifier and absorbs its failures. This is
// the sole soft-fail boundary in the pipeline: a nil prediction with a nil
// error means the classifier was unusable and triage proceeds without it.
type PredictionService struct {
	classifier providers.ClassifierProvider
}

func NewPredictionService(classifier providers.ClassifierProvider) *PredictionService {
	return &PredictionService{classifier: classifier}
}

// Predict builds the feature vector from a merged intake and attempts a
// structured prediction. Classifier failures are logged and counted, never
// propagated.
func (s *PredictionService) Predict(ctx context.Context, intake *entities.PatientIntake) *entities.StructuredPrediction {
	logger := observability.LoggerFromContext(ctx)

	systolic, _ := ParseBloodPressure(intake.BloodPressure)
	features := &entities.PatientFeatures{
		Age:         intake.Age,
		Gender:      strings.TrimSpace(intake.Gender),
		Symptoms:    intake.Symptoms,
		BPSystolic:  systolic,
		HeartRate:   intake.HeartRate,
		Temperature: intake.Temperature,
	}

	prediction, err := s.classifier.Predict(ctx, features)
	if err != nil {
		reason := "prediction_error"
		if errors.Is(err, providers.ErrArtifactUnavailable) {
			reason = "artifact_unavailable"
		}
		logger.Warn().
			Err(err).
			Str("reason", reason).
			Int("age", features.Age).
			Float64("heart_rate", features.HeartRate).
			Msg("structured prediction unavailable, continuing without it")
		recordPredictionFailure(reason)
		return nil
	}

	return prediction
}

func initPredictionFailCounter() {
	meter := otel.Meter("github.com/arogyahealth/triage-server/triage")
	counter, err := meter.Int64Counter(
		"triage.prediction_failure.count",
		metric.WithDescription("Count of triage requests that proceeded without a structured prediction"),
	)
	if err == nil {
		predictionFailCounter = counter
	}
}

func recordPredictionFailure(reason string) {
	predictionFailCounterOnce.Do(initPredictionFailCounter)
	if predictionFailCounter == nil {
		return
	}
	predictionFailCounter.Add(
		context.Background(),
		1,
		metric.WithAttributes(attribute.String("failure.reason", reason)),
	)
}
