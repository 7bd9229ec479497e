package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arogyahealth/triage-server/internal/domain/entities"
)

func TestMergeEvidenceNilExtraction(t *testing.T) {
	intake := &entities.PatientIntake{Symptoms: "fever", BloodPressure: "120/80"}
	merged := MergeEvidence(intake, nil)

	assert.Equal(t, intake.Symptoms, merged.Symptoms)
	assert.Equal(t, intake.BloodPressure, merged.BloodPressure)
	assert.NotSame(t, intake, merged)
}

func TestMergeEvidenceSymptomsAppended(t *testing.T) {
	intake := &entities.PatientIntake{Symptoms: "fever and chills"}
	extraction := &entities.DocumentExtraction{ExtractedSymptoms: "elevated white cell count"}

	merged := MergeEvidence(intake, extraction)

	assert.Equal(t, "fever and chills. Document notes: elevated white cell count", merged.Symptoms)
}

func TestMergeEvidenceConditionsFillOnlyWhenEmpty(t *testing.T) {
	extraction := &entities.DocumentExtraction{ExtractedConditions: "type 2 diabetes"}

	empty := MergeEvidence(&entities.PatientIntake{}, extraction)
	assert.Equal(t, "type 2 diabetes", empty.Conditions)

	filled := MergeEvidence(&entities.PatientIntake{Conditions: "hypertension"}, extraction)
	assert.Equal(t, "hypertension", filled.Conditions)
}

// Form-supplied vitals always outrank document-extracted ones, across every
// present/absent combination of the two sources.
func TestMergeEvidenceVitalPrecedence(t *testing.T) {
	formValues := []entities.PatientIntake{
		{},
		{BloodPressure: "140/90", HeartRate: 95, Temperature: 38.2},
	}
	docValues := []entities.ExtractedVitals{
		{},
		{BloodPressure: "110/70", HeartRate: "60 bpm", Temperature: "36.5"},
	}

	for _, form := range formValues {
		for _, doc := range docValues {
			merged := MergeEvidence(&form, &entities.DocumentExtraction{ExtractedVitals: doc})

			if form.BloodPressure != "" {
				assert.Equal(t, form.BloodPressure, merged.BloodPressure)
			} else {
				assert.Equal(t, doc.BloodPressure, merged.BloodPressure)
			}
			if form.HeartRate != 0 {
				assert.Equal(t, form.HeartRate, merged.HeartRate)
			}
			if form.Temperature != 0 {
				assert.Equal(t, form.Temperature, merged.Temperature)
			}
		}
	}
}

func TestMergeEvidenceParsesDocumentVitalNumbers(t *testing.T) {
	merged := MergeEvidence(&entities.PatientIntake{}, &entities.DocumentExtraction{
		ExtractedVitals: entities.ExtractedVitals{
			HeartRate:   "88 bpm",
			Temperature: "37.9 C",
		},
	})

	assert.Equal(t, 88.0, merged.HeartRate)
	assert.Equal(t, 37.9, merged.Temperature)
}

func TestMergeEvidenceUnparseableDocumentVitalStaysUnset(t *testing.T) {
	merged := MergeEvidence(&entities.PatientIntake{}, &entities.DocumentExtraction{
		ExtractedVitals: entities.ExtractedVitals{HeartRate: "normal"},
	})

	assert.Zero(t, merged.HeartRate)
}
