package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arogyahealth/triage-server/internal/domain/entities"
	"github.com/arogyahealth/triage-server/internal/domain/providers"
	"github.com/arogyahealth/triage-server/internal/infrastructure/observability"
)

// NarrativeService produces the generative triage explanation. Exactly one
// completion call is issued per request; any call or parse failure is a
// hard failure because no other component supplies the narrative fields.
type NarrativeService struct {
	completions providers.CompletionProvider
}

func NewNarrativeService(completions providers.CompletionProvider) *NarrativeService {
	return &NarrativeService{completions: completions}
}

// Synthesize builds the triage prompt, calls the completion provider once,
// and parses the response into a narrative assessment.
func (s *NarrativeService) Synthesize(ctx context.Context, intake *entities.PatientIntake, reportText string, prediction *entities.StructuredPrediction) (*entities.NarrativeAssessment, error) {
	logger := observability.LoggerFromContext(ctx)

	prompt := buildTriagePrompt(intake, reportText, prediction)

	raw, err := s.completions.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: completion call: %v", providers.ErrNarrativeGeneration, err)
	}

	var assessment entities.NarrativeAssessment
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &assessment); err != nil {
		logger.Error().Err(err).Msg("narrative response did not conform to the assessment schema")
		return nil, fmt.Errorf("%w: malformed response: %v", providers.ErrNarrativeGeneration, err)
	}

	return &assessment, nil
}

func buildTriagePrompt(intake *entities.PatientIntake, reportText string, prediction *entities.StructuredPrediction) string {
	systolic, diastolic := ParseBloodPressure(intake.BloodPressure)

	conditions := strings.TrimSpace(intake.Conditions)
	if conditions == "" {
		conditions = "none reported"
	}
	report := strings.TrimSpace(reportText)
	if report == "" {
		report = "no report attached"
	}

	var sb strings.Builder
	sb.WriteString("You are an AI medical triage assistant. Analyze the following patient information and provide a triage assessment.\n\n")

	fmt.Fprintf(&sb, "Patient Demographics:\n- Age: %d\n- Gender: %s\n\n", intake.Age, intake.Gender)
	fmt.Fprintf(&sb, "Vital Signs:\n- Blood Pressure: %.0f/%.0f mmHg\n- Heart Rate: %.0f bpm\n- Temperature: %.1f C\n\n", systolic, diastolic, intake.HeartRate, intake.Temperature)
	fmt.Fprintf(&sb, "Reported Symptoms: %s\n", intake.Symptoms)
	fmt.Fprintf(&sb, "Pre-existing Conditions: %s\n\n", conditions)
	fmt.Fprintf(&sb, "Medical Report Content:\n%s\n\n", report)

	if prediction != nil {
		sb.WriteString("A statistical triage model has already evaluated this patient:\n")
		fmt.Fprintf(&sb, "- Predicted risk level: %s (confidence %.1f%%)\n", prediction.RiskLevel, prediction.RiskConfidence*100)
		fmt.Fprintf(&sb, "- Predicted department: %s (confidence %.1f%%)\n", prediction.Department, prediction.DepartmentConfidence*100)
		sb.WriteString("Take this prediction into account; explain agreement or disagreement in your findings.\n\n")
	}

	sb.WriteString(`Apply these clinical escalation rules strictly:
- Heart rate above 120 or below 50 bpm, systolic pressure 180 or above, or diastolic pressure 120 or above: risk_level must be at least "High".
- Heart rate above 140 bpm or systolic pressure 200 or above: risk_level must be "Critical".
- Temperature 39.5 C or above: risk_level must be at least "High"; 41 C or above: "Critical".

Set confidence_score by the evidence available:
- Symptoms only: around 30.
- Symptoms plus vital signs: around 70.
- Symptoms, vital signs, and a medical report: around 95.

Respond ONLY with valid JSON in this exact format (no markdown, no code fences):
{
  "risk_level": "Low" | "Moderate" | "High" | "Critical",
  "summary": "A brief 1-2 sentence summary of the patient's condition.",
  "key_findings": ["finding 1", "finding 2", "finding 3"],
  "recommended_action": "What the patient should do next.",
  "urgency_score": <number from 1 to 10>,
  "risk_factors": ["risk factor 1", "risk factor 2"],
  "vital_analysis": [{"name": "Heart Rate", "value": "88 bpm", "status": "normal" | "warning" | "critical", "score": <number from 0 to 100>}],
  "dept_insights": {"department_name": "...", "wait_time_estimate": "...", "immediate_action": "...", "specialist_type": "..."},
  "care_plan": {"care_instructions": ["..."], "dietary_recommendations": ["..."], "dietary_restrictions": ["..."]},
  "confidence_score": <number from 0 to 100>
}
`)

	return sb.String()
}

// stripCodeFences removes an optional leading/trailing markdown fence the
// model sometimes wraps its JSON in.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		if idx := strings.Index(text, "\n"); idx >= 0 {
			text = text[idx+1:]
		} else {
			text = strings.TrimPrefix(text, "```json")
			text = strings.TrimPrefix(text, "```")
		}
	}
	if strings.HasSuffix(strings.TrimSpace(text), "```") {
		trimmed := strings.TrimSpace(text)
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			text = trimmed[:idx]
		}
	}
	return strings.TrimSpace(text)
}
