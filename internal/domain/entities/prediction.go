package entities

// Risk levels emitted by the structured classifier.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// DepartmentLabels are the destinations the department classifier can emit.
var DepartmentLabels = []string{
	"General Medicine",
	"Cardiology",
	"Neurology",
	"Orthopedics",
	"Pediatrics",
	"Pulmonology",
	"Emergency",
}

// StructuredPrediction is the statistical classifier's output. Confidence
// values are the maximum class probability of each independent head.
type StructuredPrediction struct {
	RiskLevel            string  `json:"risk_level"`
	RiskConfidence       float64 `json:"risk_confidence"`
	Department           string  `json:"department"`
	DepartmentConfidence float64 `json:"department_confidence"`
}
