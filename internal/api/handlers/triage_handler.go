package handlers

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/arogyahealth/triage-server/internal/domain/entities"
)

// Uploaded medical reports are small documents; anything larger is rejected
// before buffering.
const maxUploadBytes = 10 << 20

// TriageAnalyzer defines the triage operation used by the handler.
type TriageAnalyzer interface {
	Analyze(ctx context.Context, intake *entities.PatientIntake) (*entities.TriageResult, error)
}

// TriageHandler handles triage analysis requests.
type TriageHandler struct {
	service TriageAnalyzer
}

// NewTriageHandler creates a new triage handler.
func NewTriageHandler(service TriageAnalyzer) *TriageHandler {
	return &TriageHandler{service: service}
}

// Analyze handles POST /api/triage/analyze. The request is a multipart form
// carrying the intake fields and an optional document upload.
func (h *TriageHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	age, err := strconv.Atoi(strings.TrimSpace(r.FormValue("age")))
	if err != nil || age <= 0 {
		respondWithError(w, http.StatusBadRequest, "age must be a positive integer")
		return
	}

	gender := strings.TrimSpace(r.FormValue("gender"))
	symptoms := strings.TrimSpace(r.FormValue("symptoms"))
	if gender == "" || symptoms == "" {
		respondWithError(w, http.StatusBadRequest, "gender and symptoms are required")
		return
	}

	intake := &entities.PatientIntake{
		UID:           strings.TrimSpace(r.FormValue("uid")),
		Age:           age,
		Gender:        gender,
		Symptoms:      symptoms,
		Conditions:    strings.TrimSpace(r.FormValue("conditions")),
		BloodPressure: strings.TrimSpace(r.FormValue("bp")),
		HeartRate:     parseFormFloat(r.FormValue("heart_rate")),
		Temperature:   parseFormFloat(r.FormValue("temperature")),
	}

	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		data, readErr := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if readErr != nil {
			respondWithError(w, http.StatusBadRequest, "failed to read uploaded file")
			return
		}
		intake.Document = &entities.UploadedDocument{
			Data:      data,
			Filename:  header.Filename,
			MediaType: header.Header.Get("Content-Type"),
		}
	}

	result, err := h.service.Analyze(r.Context(), intake)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// parseFormFloat reads an optional numeric form value; blank or malformed
// input maps to the unset sentinel so validation reports it as missing.
func parseFormFloat(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return f
}
