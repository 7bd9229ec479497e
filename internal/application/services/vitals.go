package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arogyahealth/triage-server/internal/domain/entities"
)

// Population-default blood pressure used when the submitted reading cannot
// be parsed.
const (
	defaultSystolic  = 120.0
	defaultDiastolic = 80.0
)

// MissingVitalsError reports which required vital signs were absent from
// an intake. Missing preserves presentation order: blood pressure, heart
// rate, temperature.
type MissingVitalsError struct {
	Missing []string
}

func (e *MissingVitalsError) Error() string {
	return fmt.Sprintf("missing required vital signs: %s", strings.Join(e.Missing, ", "))
}

// ValidateVitals checks that all three required vital signs are present.
// Presence only: a malformed blood pressure string still counts as present
// and falls back to population defaults at parse time.
func ValidateVitals(intake *entities.PatientIntake) error {
	var missing []string
	if strings.TrimSpace(intake.BloodPressure) == "" {
		missing = append(missing, "Blood Pressure")
	}
	if intake.HeartRate <= 0 {
		missing = append(missing, "Heart Rate")
	}
	if intake.Temperature <= 0 {
		missing = append(missing, "Temperature")
	}
	if len(missing) > 0 {
		return &MissingVitalsError{Missing: missing}
	}
	return nil
}

// ParseBloodPressure splits a "systolic/diastolic" reading into its parts.
// An unparseable systolic value degrades the whole reading to 120/80; a
// missing or unparseable diastolic value degrades only the diastolic to 80.
func ParseBloodPressure(raw string) (systolic, diastolic float64) {
	parts := strings.Split(strings.TrimSpace(raw), "/")

	systolic, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return defaultSystolic, defaultDiastolic
	}

	if len(parts) < 2 {
		return systolic, defaultDiastolic
	}
	diastolic, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return defaultSystolic, defaultDiastolic
	}
	return systolic, diastolic
}
