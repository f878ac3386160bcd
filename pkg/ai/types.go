package ai

import (
	"context"
	"io"
)

// Feedback modes are tone presets that shape the evaluator prompt without
// changing the scoring rubric.
const (
	ModeEncouraging  = "encouraging"
	ModeChallenging  = "challenging"
	ModeSocratic     = "socratic"
	ModeProfessional = "professional"
)

// IsValidMode reports whether the feedback mode is a known preset.
func IsValidMode(mode string) bool {
	switch mode {
	case ModeEncouraging, ModeChallenging, ModeSocratic, ModeProfessional:
		return true
	}
	return false
}

// EvaluationInput carries one explanation to be scored.
type EvaluationInput struct {
	Text       string
	TopicTitle string
	Mode       string
}

// Evaluation is the normalized scoring result. Score and sub-scores are
// always within [0,100] and list fields are never nil.
type Evaluation struct {
	Score        int      `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Concepts     []string `json:"concepts"`
	Clarity      int      `json:"clarity"`
	Accuracy     int      `json:"accuracy"`
	Completeness int      `json:"completeness"`
}

// Normalize clamps all score fields and replaces nil slices with empty ones
// so downstream JSON storage never sees absent fields.
func (e *Evaluation) Normalize() {
	e.Score = ClampScore(e.Score)
	e.Clarity = ClampScore(e.Clarity)
	e.Accuracy = ClampScore(e.Accuracy)
	e.Completeness = ClampScore(e.Completeness)
	if e.Strengths == nil {
		e.Strengths = []string{}
	}
	if e.Improvements == nil {
		e.Improvements = []string{}
	}
	if e.Concepts == nil {
		e.Concepts = []string{}
	}
}

// ToMap converts the evaluation into a generic map for JSON column storage.
func (e Evaluation) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"score":        e.Score,
		"feedback":     e.Feedback,
		"strengths":    e.Strengths,
		"improvements": e.Improvements,
		"concepts":     e.Concepts,
		"clarity":      e.Clarity,
		"accuracy":     e.Accuracy,
		"completeness": e.Completeness,
	}
}

// ClampScore bounds a score to [0,100] regardless of upstream value.
func ClampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Evaluator scores a student explanation.
type Evaluator interface {
	Evaluate(ctx context.Context, input EvaluationInput) (Evaluation, error)
}

// Transcriber converts recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

// InsightsGenerator produces free-form narrative insights for learning reports.
type InsightsGenerator interface {
	GenerateInsights(ctx context.Context, data map[string]interface{}) (string, error)
}
