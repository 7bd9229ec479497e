package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arogyahealth/triage-server/internal/domain/entities"
)

func TestValidateVitals(t *testing.T) {
	tests := []struct {
		name        string
		intake      entities.PatientIntake
		wantMissing []string
	}{
		{
			name:   "All vitals present",
			intake: entities.PatientIntake{BloodPressure: "120/80", HeartRate: 72, Temperature: 36.8},
		},
		{
			name:        "All vitals missing, fixed order",
			intake:      entities.PatientIntake{},
			wantMissing: []string{"Blood Pressure", "Heart Rate", "Temperature"},
		},
		{
			name:        "Whitespace blood pressure counts as missing",
			intake:      entities.PatientIntake{BloodPressure: "   ", HeartRate: 72, Temperature: 36.8},
			wantMissing: []string{"Blood Pressure"},
		},
		{
			name:        "Zero heart rate",
			intake:      entities.PatientIntake{BloodPressure: "120/80", Temperature: 36.8},
			wantMissing: []string{"Heart Rate"},
		},
		{
			name:        "Negative temperature",
			intake:      entities.PatientIntake{BloodPressure: "120/80", HeartRate: 72, Temperature: -1},
			wantMissing: []string{"Temperature"},
		},
		{
			name:        "Malformed blood pressure still counts as present",
			intake:      entities.PatientIntake{BloodPressure: "notanumber", HeartRate: 72, Temperature: 36.8},
			wantMissing: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVitals(&tt.intake)
			if tt.wantMissing == nil {
				assert.NoError(t, err)
				return
			}
			var missingErr *MissingVitalsError
			require.ErrorAs(t, err, &missingErr)
			assert.Equal(t, tt.wantMissing, missingErr.Missing)
		})
	}
}

func TestParseBloodPressure(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		wantSystolic  float64
		wantDiastolic float64
	}{
		{"Well formed", "120/80", 120, 80},
		{"High reading", "185/122", 185, 122},
		{"Missing diastolic defaults to 80", "135", 135, 80},
		{"Unparseable systolic falls back entirely", "notanumber", 120, 80},
		{"Unparseable diastolic falls back entirely", "130/high", 120, 80},
		{"Whitespace tolerated", " 118 / 76 ", 118, 76},
		{"Empty string falls back", "", 120, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			systolic, diastolic := ParseBloodPressure(tt.raw)
			assert.Equal(t, tt.wantSystolic, systolic)
			assert.Equal(t, tt.wantDiastolic, diastolic)
		})
	}
}
