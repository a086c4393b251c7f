package prompting

import (
	"fmt"

	"github.com/alexandru-savinov/cbmbench/internal/question"
)

// combinedStrategy asks for an answer and a confidence value in one turn.
type combinedStrategy struct {
	name             string
	questionTemplate string
}

func (s combinedStrategy) Name() string      { return s.name }
func (s combinedStrategy) IsMultiTurn() bool  { return false }

func (s combinedStrategy) BuildPrompt(q question.Question) string {
	return fmt.Sprintf(s.questionTemplate, q.Text, FormatOptions(q.Options))
}

// BuildFollowup is never called for a single-turn strategy; it returns the
// empty string so a misuse is harmless rather than a panic.
func (s combinedStrategy) BuildFollowup(question.Question, string) string {
	return ""
}
