// Package question loads the question pool and the model registry that
// drive a benchmark run.
package question

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexandru-savinov/cbmbench/internal/apperrors"
)

// Option is a single labelled answer choice.
type Option struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Question is one multiple-choice item drawn from a supported dataset.
type Question struct {
	ID                 string   `json:"id" db:"id"`
	Dataset            string   `json:"dataset" db:"dataset"`
	Subject            string   `json:"subject,omitempty" db:"subject"`
	Text               string   `json:"question" db:"question_text"`
	Options            []Option `json:"options"`
	CorrectAnswer      string   `json:"correctAnswer,omitempty" db:"correct_answer"`
	ExpectedConfidence *float64 `json:"expected_confidence,omitempty" db:"expected_confidence"`
}

// Validate checks the structural invariants a question must satisfy:
// between 2 and 10 options, unique option keys, and a correct answer
// (when set) that names one of those options.
func (q Question) Validate() error {
	if len(q.Options) < 2 || len(q.Options) > 10 {
		return apperrors.New(
			fmt.Sprintf("question %s has %d options, want 2..10", q.ID, len(q.Options)),
			apperrors.CodeConfig,
		)
	}
	seen := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		if seen[opt.Key] {
			return apperrors.New(
				fmt.Sprintf("question %s has duplicate option key %q", q.ID, opt.Key),
				apperrors.CodeConfig,
			)
		}
		seen[opt.Key] = true
	}
	if q.CorrectAnswer != "" && !seen[q.CorrectAnswer] {
		return apperrors.New(
			fmt.Sprintf("question %s correct_answer %q not among its options", q.ID, q.CorrectAnswer),
			apperrors.CodeConfig,
		)
	}
	return nil
}

// rawFile covers the three shapes the unified question file may take:
// {"questions": [...]}, {"eval_data": [...]}, or a bare JSON array.
type rawFile struct {
	Questions []Question `json:"questions"`
	EvalData  []Question `json:"eval_data"`
}

// LoadFile reads a unified-format question file and validates every item.
func LoadFile(path string) ([]Question, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from CLI configuration
	if err != nil {
		return nil, apperrors.HandleError(err, fmt.Sprintf("failed to read question file %s", path))
	}

	var questions []Question
	var bare []Question
	if err := json.Unmarshal(data, &bare); err == nil && len(bare) > 0 {
		questions = bare
	} else {
		var wrapped rawFile
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, apperrors.HandleError(err, fmt.Sprintf("failed to parse question file %s", path))
		}
		switch {
		case len(wrapped.Questions) > 0:
			questions = wrapped.Questions
		case len(wrapped.EvalData) > 0:
			questions = wrapped.EvalData
		}
	}

	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, err
		}
	}
	return questions, nil
}

// Index returns a lookup from question ID to Question, so the ambiguous
// evaluator and other consumers can join by ID in O(1) instead of
// scanning the pool per result.
func Index(questions []Question) map[string]Question {
	idx := make(map[string]Question, len(questions))
	for _, q := range questions {
		idx[q.ID] = q
	}
	return idx
}

// ModelEntry is one vendor's registry entry.
type ModelEntry struct {
	Vendor string   `json:"vendor"`
	Models []string `json:"models"`
}

// Registry maps a display name to its vendor and model list.
type Registry map[string]ModelEntry

// LoadRegistry reads the model registry JSON file. A missing "vendor"
// key defaults to the lowercased display name.
func LoadRegistry(path string) (Registry, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from CLI configuration
	if err != nil {
		return nil, apperrors.HandleError(err, fmt.Sprintf("failed to read model registry %s", path))
	}
	var raw map[string]struct {
		Vendor string   `json:"vendor"`
		Models []string `json:"models"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, apperrors.HandleError(err, fmt.Sprintf("failed to parse model registry %s", path))
	}
	reg := make(Registry, len(raw))
	for displayName, entry := range raw {
		vendor := entry.Vendor
		if vendor == "" {
			vendor = lowercase(displayName)
		}
		reg[displayName] = ModelEntry{Vendor: vendor, Models: entry.Models}
	}
	return reg, nil
}

func lowercase(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
