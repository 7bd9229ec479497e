package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arogyahealth/triage-server/internal/domain/entities"
)

const documentExtractionPrompt = `You are a clinical document analyst. Extract the patient evidence from this medical document. Respond ONLY with valid JSON in this exact format (no markdown, no code fences):
{
  "extracted_symptoms": "comma-separated symptoms mentioned in the document, or empty string",
  "extracted_conditions": "comma-separated pre-existing conditions or diagnoses, or empty string",
  "extracted_vitals": {
    "bp": "blood pressure as systolic/diastolic if present, or empty string",
    "heart_rate": "heart rate in bpm if present, or empty string",
    "temperature": "body temperature in Celsius if present, or empty string"
  },
  "document_summary": "2-3 sentence summary of the document's clinical content"
}
Report values exactly as the document states them. Leave fields empty rather than guessing.`

func parseExtractionPayload(text string) (*entities.DocumentExtraction, error) {
	cleaned := stripCodeFences(text)

	var extraction entities.DocumentExtraction
	if err := json.Unmarshal([]byte(cleaned), &extraction); err != nil {
		return nil, fmt.Errorf("failed to parse extraction payload: %w", err)
	}
	return &extraction, nil
}

// stripCodeFences removes an optional leading/trailing Markdown code fence.
func stripCodeFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}
