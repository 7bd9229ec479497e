package providers

import (
	"context"

	"github.com/arogyahealth/triage-server/internal/domain/entities"
)

// ClassifierProvider is the narrow predict contract over the trained
// statistical classifier. Implementations load artifacts lazily and must
// return ErrArtifactUnavailable when the backing model files are missing
// or undecodable, and ErrPrediction on any other internal failure.
type ClassifierProvider interface {
	Predict(ctx context.Context, features *entities.PatientFeatures) (*entities.StructuredPrediction, error)
}
