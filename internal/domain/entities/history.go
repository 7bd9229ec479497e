package entities

import "time"

// TriageRecord is one persisted triage outcome for a patient. The chat
// assistant replays the most recent records as conversational context.
type TriageRecord struct {
	ID              string    `json:"id" db:"id"`
	UID             string    `json:"uid" db:"uid"`
	Timestamp       time.Time `json:"timestamp" db:"timestamp"`
	RiskLevel       string    `json:"risk_level" db:"risk_level"`
	Department      string    `json:"department" db:"department"`
	Symptoms        string    `json:"symptoms" db:"symptoms"`
	Summary         string    `json:"summary" db:"summary"`
	UrgencyScore    int       `json:"urgency_score" db:"urgency_score"`
	ConfidenceScore int       `json:"confidence_score" db:"confidence_score"`
}
