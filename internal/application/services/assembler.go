package services

import (
	"strings"

	"github.com/arogyahealth/triage-server/internal/domain/entities"
)

const (
	defaultDepartment      = "General Medicine"
	defaultRiskLevel       = "Unknown"
	defaultUrgencyScore    = 5
	defaultConfidenceScore = 50
)

// AssembleResult merges the structured prediction and the narrative
// assessment into the response envelope. The prediction's risk level and
// department win when a prediction exists; otherwise the narrative's own
// risk level (or "Unknown") and the default department are used. Absent
// narrative fields are replaced with fixed defaults so the envelope shape
// is always complete.
func AssembleResult(prediction *entities.StructuredPrediction, assessment *entities.NarrativeAssessment) *entities.TriageResult {
	riskLevel := strings.TrimSpace(assessment.RiskLevel)
	if riskLevel == "" {
		riskLevel = defaultRiskLevel
	}
	department := defaultDepartment
	if prediction != nil {
		riskLevel = prediction.RiskLevel
		department = prediction.Department
	}

	urgency := assessment.UrgencyScore
	if urgency == 0 {
		urgency = defaultUrgencyScore
	}
	confidence := assessment.ConfidenceScore
	if confidence == 0 {
		confidence = defaultConfidenceScore
	}

	riskFactors := assessment.RiskFactors
	if riskFactors == nil {
		riskFactors = []string{}
	}
	vitalAnalysis := assessment.VitalAnalysis
	if vitalAnalysis == nil {
		vitalAnalysis = []entities.VitalAnalysis{}
	}

	carePlan := assessment.CarePlan
	if carePlan.CareInstructions == nil {
		carePlan.CareInstructions = []string{}
	}
	if carePlan.DietaryRecommendations == nil {
		carePlan.DietaryRecommendations = []string{}
	}
	if carePlan.DietaryRestrictions == nil {
		carePlan.DietaryRestrictions = []string{}
	}

	return &entities.TriageResult{
		MLPrediction:  prediction,
		AIExplanation: *assessment,
		FinalRecommendation: entities.FinalRecommendation{
			RiskLevel:         riskLevel,
			Department:        department,
			Summary:           assessment.Summary,
			RecommendedAction: assessment.RecommendedAction,
			UrgencyScore:      urgency,
		},
		RiskFactors:     riskFactors,
		VitalAnalysis:   vitalAnalysis,
		DeptInsights:    assessment.DeptInsights,
		CarePlan:        carePlan,
		ConfidenceScore: confidence,
	}
}
