package entities

// UploadedDocument is a medical report attached to a triage request.
type UploadedDocument struct {
	Data      []byte
	Filename  string
	MediaType string
}

// PatientIntake is the self-reported clinical picture for one triage request.
// BloodPressure keeps the raw form value (e.g. "120/80"); HeartRate and
// Temperature are zero when the patient left them blank.
type PatientIntake struct {
	UID           string
	Age           int
	Gender        string
	Symptoms      string
	Conditions    string
	BloodPressure string
	HeartRate     float64
	Temperature   float64
	Document      *UploadedDocument
}

// PatientFeatures is the feature vector handed to the structured classifier.
type PatientFeatures struct {
	Age         int     `json:"age"`
	Gender      string  `json:"gender"`
	Symptoms    string  `json:"symptoms"`
	BPSystolic  float64 `json:"bp_systolic"`
	HeartRate   float64 `json:"heart_rate"`
	Temperature float64 `json:"temperature"`
}
