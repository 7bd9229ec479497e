package entities

// FinalRecommendation is the headline of a triage result. When a structured
// prediction exists its risk level and department win; otherwise the
// narrative's own values (or fixed defaults) are used.
type FinalRecommendation struct {
	RiskLevel         string `json:"risk_level"`
	Department        string `json:"department"`
	Summary           string `json:"summary"`
	RecommendedAction string `json:"recommended_action"`
	UrgencyScore      int    `json:"urgency_score"`
}

// TriageResult is the response envelope assembled once per request.
// MLPrediction is null exactly when the classifier was unavailable.
type TriageResult struct {
	MLPrediction        *StructuredPrediction `json:"ml_prediction"`
	AIExplanation       NarrativeAssessment   `json:"ai_explanation"`
	FinalRecommendation FinalRecommendation   `json:"final_recommendation"`
	RiskFactors         []string              `json:"risk_factors"`
	VitalAnalysis       []VitalAnalysis       `json:"vital_analysis"`
	DeptInsights        DepartmentInsights    `json:"dept_insights"`
	CarePlan            CarePlan              `json:"care_plan"`
	ConfidenceScore     int                   `json:"confidence_score"`
}
