package entities

// VitalAnalysis grades a single vital sign in the narrative assessment.
// Status is one of "normal", "warning", "critical"; Score is 0-100.
type VitalAnalysis struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Status string `json:"status"`
	Score  int    `json:"score"`
}

// DepartmentInsights carries the narrative model's department guidance.
type DepartmentInsights struct {
	DepartmentName   string `json:"department_name"`
	WaitTimeEstimate string `json:"wait_time_estimate"`
	ImmediateAction  string `json:"immediate_action"`
	SpecialistType   string `json:"specialist_type"`
}

// CarePlan lists home-care guidance produced by the narrative model.
type CarePlan struct {
	CareInstructions       []string `json:"care_instructions"`
	DietaryRecommendations []string `json:"dietary_recommendations"`
	DietaryRestrictions    []string `json:"dietary_restrictions"`
}

// NarrativeAssessment is the generative model's structured explanation.
// Its risk scale ({Low, Moderate, High, Critical}) is finer-grained than
// the classifier's and the two are deliberately not unified.
type NarrativeAssessment struct {
	RiskLevel         string             `json:"risk_level"`
	Summary           string             `json:"summary"`
	KeyFindings       []string           `json:"key_findings"`
	RecommendedAction string             `json:"recommended_action"`
	UrgencyScore      int                `json:"urgency_score"`
	RiskFactors       []string           `json:"risk_factors"`
	VitalAnalysis     []VitalAnalysis    `json:"vital_analysis"`
	DeptInsights      DepartmentInsights `json:"dept_insights"`
	CarePlan          CarePlan           `json:"care_plan"`
	ConfidenceScore   int                `json:"confidence_score"`
}
