package classifier

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arogyahealth/triage-server/internal/domain/entities"
	"github.com/arogyahealth/triage-server/internal/domain/providers"
)

func writeArtifact(t *testing.T, dir, name string, head modelHead) {
	t.Helper()
	data, err := json.Marshal(head)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

// testModelDir writes a pair of small but deterministic model artifacts.
// The risk head leans on heart rate, the department head on symptom keywords.
func testModelDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeArtifact(t, dir, riskModelFile, modelHead{
		Labels:     []string{entities.RiskLow, entities.RiskMedium, entities.RiskHigh},
		Intercepts: []float64{1.0, 0.0, -1.0},
		Numeric: []numericFeature{
			{Name: "heart_rate", Mean: 80, Std: 15, Weights: []float64{-2.0, 0.5, 2.0}},
			{Name: "temperature", Mean: 37, Std: 0.8, Weights: []float64{-1.0, 0.2, 1.5}},
		},
		Keywords: []keywordFeature{
			{Term: "chest pain", Weights: []float64{-3.0, 0.0, 3.0}},
		},
	})

	writeArtifact(t, dir, deptModelFile, modelHead{
		Labels:     []string{"General Medicine", "Cardiology", "Pulmonology"},
		Intercepts: []float64{0.5, 0.0, 0.0},
		Keywords: []keywordFeature{
			{Term: "chest pain", Weights: []float64{0.0, 4.0, 0.0}},
			{Term: "shortness of breath", Weights: []float64{0.0, 0.5, 3.0}},
		},
	})

	return dir
}

func TestPredictHighRiskPatient(t *testing.T) {
	clf := NewArtifactClassifier(testModelDir(t))

	pred, err := clf.Predict(context.Background(), &entities.PatientFeatures{
		Age:         64,
		Gender:      "male",
		Symptoms:    "severe chest pain radiating to left arm",
		BPSystolic:  150,
		HeartRate:   130,
		Temperature: 37.2,
	})
	require.NoError(t, err)
	require.NotNil(t, pred)

	assert.Equal(t, entities.RiskHigh, pred.RiskLevel)
	assert.Equal(t, "Cardiology", pred.Department)
	assert.Greater(t, pred.RiskConfidence, 0.5)
	assert.LessOrEqual(t, pred.RiskConfidence, 1.0)
}

func TestPredictLowRiskPatient(t *testing.T) {
	clf := NewArtifactClassifier(testModelDir(t))

	pred, err := clf.Predict(context.Background(), &entities.PatientFeatures{
		Age:         30,
		Gender:      "female",
		Symptoms:    "mild headache",
		BPSystolic:  118,
		HeartRate:   72,
		Temperature: 36.8,
	})
	require.NoError(t, err)

	assert.Equal(t, entities.RiskLow, pred.RiskLevel)
	assert.Equal(t, "General Medicine", pred.Department)
}

func TestPredictConfidenceRounding(t *testing.T) {
	clf := NewArtifactClassifier(testModelDir(t))

	pred, err := clf.Predict(context.Background(), &entities.PatientFeatures{
		Age: 45, Symptoms: "cough", BPSystolic: 120, HeartRate: 80, Temperature: 37,
	})
	require.NoError(t, err)

	assert.Equal(t, pred.RiskConfidence, round4(pred.RiskConfidence))
	assert.Equal(t, pred.DepartmentConfidence, round4(pred.DepartmentConfidence))
}

func TestPredictMissingArtifacts(t *testing.T) {
	clf := NewArtifactClassifier(t.TempDir())

	pred, err := clf.Predict(context.Background(), &entities.PatientFeatures{Symptoms: "fever"})
	assert.Nil(t, pred)
	assert.ErrorIs(t, err, providers.ErrArtifactUnavailable)

	// The failed load is remembered, not retried.
	_, err2 := clf.Predict(context.Background(), &entities.PatientFeatures{Symptoms: "fever"})
	assert.ErrorIs(t, err2, providers.ErrArtifactUnavailable)
}

func TestPredictCorruptArtifact(t *testing.T) {
	dir := testModelDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, riskModelFile), []byte("not json"), 0o644))

	clf := NewArtifactClassifier(dir)
	_, err := clf.Predict(context.Background(), &entities.PatientFeatures{Symptoms: "fever"})
	assert.ErrorIs(t, err, providers.ErrArtifactUnavailable)
}

func TestPredictMismatchedWeights(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, riskModelFile, modelHead{
		Labels:     []string{entities.RiskLow, entities.RiskHigh},
		Intercepts: []float64{0.0}, // wrong length
	})
	writeArtifact(t, dir, deptModelFile, modelHead{
		Labels:     []string{"General Medicine"},
		Intercepts: []float64{0.0},
	})

	clf := NewArtifactClassifier(dir)
	_, err := clf.Predict(context.Background(), &entities.PatientFeatures{Symptoms: "fever"})
	assert.ErrorIs(t, err, providers.ErrArtifactUnavailable)
}

func TestPredictAlternateArtifactNames(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, riskModelAltFile, modelHead{
		Labels:     []string{entities.RiskLow},
		Intercepts: []float64{0.0},
	})
	writeArtifact(t, dir, deptModelAltFile, modelHead{
		Labels:     []string{"General Medicine"},
		Intercepts: []float64{0.0},
	})

	clf := NewArtifactClassifier(dir)
	pred, err := clf.Predict(context.Background(), &entities.PatientFeatures{Symptoms: "fever"})
	require.NoError(t, err)
	assert.Equal(t, entities.RiskLow, pred.RiskLevel)
}

func TestPredictConcurrentFirstUse(t *testing.T) {
	clf := NewArtifactClassifier(testModelDir(t))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pred, err := clf.Predict(context.Background(), &entities.PatientFeatures{
				Age: 50, Symptoms: "chest pain", BPSystolic: 140, HeartRate: 110, Temperature: 37,
			})
			assert.NoError(t, err)
			assert.NotNil(t, pred)
		}()
	}
	wg.Wait()
}
