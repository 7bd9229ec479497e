package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/arogyahealth/triage-server/internal/domain/entities"
	"github.com/arogyahealth/triage-server/internal/domain/providers"
)

// Artifact file names. Two naming conventions are accepted: the training
// pipeline's output names and the names used for manually placed models.
const (
	riskModelFile    = "risk_model.json"
	riskModelAltFile = "risk_classifier.json"
	deptModelFile    = "department_model.json"
	deptModelAltFile = "department_classifier.json"
)

// numericFeature is a standardized numeric input with per-class weights.
type numericFeature struct {
	Name   string    `json:"name"`
	Mean   float64   `json:"mean"`
	Std    float64   `json:"std"`
	Weights []float64 `json:"weights"`
}

// keywordFeature fires when the symptoms text contains Term.
type keywordFeature struct {
	Term    string    `json:"term"`
	Weights []float64 `json:"weights"`
}

// modelHead is one trained softmax head (risk or department) deserialized
// from a JSON artifact produced by the training pipeline.
type modelHead struct {
	Labels        []string             `json:"labels"`
	Intercepts    []float64            `json:"intercepts"`
	Numeric       []numericFeature     `json:"numeric_features"`
	Keywords      []keywordFeature     `json:"keyword_features"`
	GenderWeights map[string][]float64 `json:"gender_weights"`
}

// ArtifactClassifier implements the classifier predict contract over
// trained model artifacts. Artifacts are deserialized on first use, once,
// under a sync.Once guard; racing first callers observe either a fully
// loaded classifier or the same load error.
type ArtifactClassifier struct {
	dir string

	once    sync.Once
	loadErr error
	risk    *modelHead
	dept    *modelHead
}

// NewArtifactClassifier creates a classifier over the given artifacts
// directory. No I/O happens until the first Predict call.
func NewArtifactClassifier(dir string) *ArtifactClassifier {
	return &ArtifactClassifier{dir: dir}
}

// Predict runs inference on a single patient record. Both heads are
// evaluated independently; confidence is the maximum class probability.
func (c *ArtifactClassifier) Predict(ctx context.Context, features *entities.PatientFeatures) (*entities.StructuredPrediction, error) {
	c.once.Do(c.load)
	if c.loadErr != nil {
		return nil, c.loadErr
	}
	if features == nil {
		return nil, fmt.Errorf("%w: features are required", providers.ErrPrediction)
	}

	riskLabel, riskConf, err := c.risk.predict(features)
	if err != nil {
		return nil, fmt.Errorf("%w: risk head: %v", providers.ErrPrediction, err)
	}

	deptLabel, deptConf, err := c.dept.predict(features)
	if err != nil {
		return nil, fmt.Errorf("%w: department head: %v", providers.ErrPrediction, err)
	}

	return &entities.StructuredPrediction{
		RiskLevel:            riskLabel,
		RiskConfidence:       round4(riskConf),
		Department:           deptLabel,
		DepartmentConfidence: round4(deptConf),
	}, nil
}

func (c *ArtifactClassifier) load() {
	riskPath, err := resolveArtifact(c.dir, riskModelFile, riskModelAltFile)
	if err != nil {
		c.loadErr = fmt.Errorf("%w: %v", providers.ErrArtifactUnavailable, err)
		return
	}
	deptPath, err := resolveArtifact(c.dir, deptModelFile, deptModelAltFile)
	if err != nil {
		c.loadErr = fmt.Errorf("%w: %v", providers.ErrArtifactUnavailable, err)
		return
	}

	risk, err := loadHead(riskPath)
	if err != nil {
		c.loadErr = fmt.Errorf("%w: %s: %v", providers.ErrArtifactUnavailable, riskPath, err)
		return
	}
	dept, err := loadHead(deptPath)
	if err != nil {
		c.loadErr = fmt.Errorf("%w: %s: %v", providers.ErrArtifactUnavailable, deptPath, err)
		return
	}

	c.risk = risk
	c.dept = dept
}

// resolveArtifact returns whichever artifact file exists, preferring primary.
func resolveArtifact(dir, primary, alternate string) (string, error) {
	primaryPath := filepath.Join(dir, primary)
	if _, err := os.Stat(primaryPath); err == nil {
		return primaryPath, nil
	}
	alternatePath := filepath.Join(dir, alternate)
	if _, err := os.Stat(alternatePath); err == nil {
		return alternatePath, nil
	}
	return "", fmt.Errorf("model artifact not found, looked for %s and %s", primaryPath, alternatePath)
}

func loadHead(path string) (*modelHead, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var head modelHead
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	if err := head.validate(); err != nil {
		return nil, err
	}
	return &head, nil
}

func (h *modelHead) validate() error {
	n := len(h.Labels)
	if n == 0 {
		return fmt.Errorf("artifact has no class labels")
	}
	if len(h.Intercepts) != n {
		return fmt.Errorf("intercepts length %d does not match %d labels", len(h.Intercepts), n)
	}
	for _, f := range h.Numeric {
		switch f.Name {
		case "age", "bp_systolic", "heart_rate", "temperature":
		default:
			return fmt.Errorf("unknown numeric feature %q", f.Name)
		}
		if len(f.Weights) != n {
			return fmt.Errorf("numeric feature %q has %d weights for %d labels", f.Name, len(f.Weights), n)
		}
	}
	for _, f := range h.Keywords {
		if len(f.Weights) != n {
			return fmt.Errorf("keyword feature %q has %d weights for %d labels", f.Term, len(f.Weights), n)
		}
	}
	for value, weights := range h.GenderWeights {
		if len(weights) != n {
			return fmt.Errorf("gender value %q has %d weights for %d labels", value, len(weights), n)
		}
	}
	return nil
}

// predict returns the argmax label and its probability.
func (h *modelHead) predict(f *entities.PatientFeatures) (string, float64, error) {
	logits := make([]float64, len(h.Labels))
	copy(logits, h.Intercepts)

	for _, nf := range h.Numeric {
		var value float64
		switch nf.Name {
		case "age":
			value = float64(f.Age)
		case "bp_systolic":
			value = f.BPSystolic
		case "heart_rate":
			value = f.HeartRate
		case "temperature":
			value = f.Temperature
		}
		std := nf.Std
		if std <= 0 {
			std = 1
		}
		z := (value - nf.Mean) / std
		for i := range logits {
			logits[i] += nf.Weights[i] * z
		}
	}

	symptoms := strings.ToLower(f.Symptoms)
	for _, kf := range h.Keywords {
		if strings.Contains(symptoms, strings.ToLower(kf.Term)) {
			for i := range logits {
				logits[i] += kf.Weights[i]
			}
		}
	}

	if weights, ok := h.GenderWeights[strings.ToLower(strings.TrimSpace(f.Gender))]; ok {
		for i := range logits {
			logits[i] += weights[i]
		}
	}

	probs := softmax(logits)
	best := 0
	for i := range probs {
		if probs[i] > probs[best] {
			best = i
		}
	}
	return h.Labels[best], probs[best], nil
}

func softmax(logits []float64) []float64 {
	max := logits[0]
	for _, v := range logits[1:] {
		if v > max {
			max = v
		}
	}

	sum := 0.0
	probs := make([]float64, len(logits))
	for i, v := range logits {
		probs[i] = math.Exp(v - max)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
