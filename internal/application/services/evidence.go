package services

import (
	"strconv"
	"strings"

	"github.com/arogyahealth/triage-server/internal/domain/entities"
)

// MergeEvidence folds document-extracted evidence into a copy of the
// intake. Explicit form input always outranks document evidence: extracted
// symptoms are appended as an extra clause, extracted conditions and vitals
// only fill fields the patient left at their unset sentinel.
func MergeEvidence(intake *entities.PatientIntake, extraction *entities.DocumentExtraction) *entities.PatientIntake {
	merged := *intake
	if extraction == nil {
		return &merged
	}

	if s := strings.TrimSpace(extraction.ExtractedSymptoms); s != "" {
		if strings.TrimSpace(merged.Symptoms) == "" {
			merged.Symptoms = s
		} else {
			merged.Symptoms = merged.Symptoms + ". Document notes: " + s
		}
	}

	if strings.TrimSpace(merged.Conditions) == "" {
		merged.Conditions = strings.TrimSpace(extraction.ExtractedConditions)
	}

	if strings.TrimSpace(merged.BloodPressure) == "" {
		merged.BloodPressure = strings.TrimSpace(extraction.ExtractedVitals.BloodPressure)
	}
	if merged.HeartRate == 0 {
		merged.HeartRate = parseVitalNumber(extraction.ExtractedVitals.HeartRate)
	}
	if merged.Temperature == 0 {
		merged.Temperature = parseVitalNumber(extraction.ExtractedVitals.Temperature)
	}

	return &merged
}

// parseVitalNumber reads the leading numeric portion of a free-text vital
// like "88 bpm" or "37.9°C". Returns 0 when no number is present.
func parseVitalNumber(raw string) float64 {
	raw = strings.TrimSpace(raw)
	end := 0
	for end < len(raw) {
		c := raw[end]
		if (c >= '0' && c <= '9') || c == '.' {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0
	}
	value, err := strconv.ParseFloat(raw[:end], 64)
	if err != nil {
		return 0
	}
	return value
}
