package entities

// ExtractedVitals carries vital signs found in an uploaded document.
// All fields are free text as they appeared in the report; empty means
// the document did not mention that vital.
type ExtractedVitals struct {
	BloodPressure string `json:"bp"`
	HeartRate     string `json:"heart_rate"`
	Temperature   string `json:"temperature"`
}

// DocumentExtraction is the structured evidence pulled out of an uploaded
// medical document. Produced at most once per request; a nil value means
// no document was attached or extraction was skipped.
type DocumentExtraction struct {
	ExtractedSymptoms   string          `json:"extracted_symptoms"`
	ExtractedConditions string          `json:"extracted_conditions"`
	ExtractedVitals     ExtractedVitals `json:"extracted_vitals"`
	DocumentSummary     string          `json:"document_summary"`
}
