package prompting

import (
	"fmt"

	"github.com/alexandru-savinov/cbmbench/internal/question"
)

// linearStrategy asks for an answer first, then a separate confidence
// value once the model has committed to an answer.
type linearStrategy struct {
	name               string
	questionTemplate   string
	confidenceFollowup string
}

func (s linearStrategy) Name() string     { return s.name }
func (s linearStrategy) IsMultiTurn() bool { return true }

func (s linearStrategy) BuildPrompt(q question.Question) string {
	return fmt.Sprintf(s.questionTemplate, q.Text, FormatOptions(q.Options))
}

// BuildFollowup ignores the first-turn response text: the confidence
// followup is a fixed prompt and does not quote the model's answer back
// to it.
func (s linearStrategy) BuildFollowup(question.Question, string) string {
	return s.confidenceFollowup
}
