// Package prompting builds the four variant prompt sequences
// (discrete_combined, discrete_linear, hlcc_combined, hlcc_linear) from a
// question, split between combined (one turn) and linear (two turn)
// strategies.
package prompting

import (
	"fmt"
	"strings"

	"github.com/alexandru-savinov/cbmbench/internal/question"
)

// Strategy builds the turn sequence for one prompting variant. Combined
// variants ask for an answer and a confidence in a single turn; linear
// variants ask for the answer first, then follow up for confidence once
// the model's answer is known.
type Strategy interface {
	// Name is the variant identifier used in task specs and result records.
	Name() string
	// IsMultiTurn reports whether BuildFollowup must be called.
	IsMultiTurn() bool
	// BuildPrompt returns the first-turn prompt text for q.
	BuildPrompt(q question.Question) string
	// BuildFollowup returns the second-turn prompt text given the model's
	// first-turn raw response. Only meaningful when IsMultiTurn is true.
	BuildFollowup(q question.Question, firstTurnResponse string) string
}

// FormatOptions renders a question's options as "  <key>) <text>" lines,
// one per option.
func FormatOptions(opts []question.Option) string {
	var b strings.Builder
	for i, opt := range opts {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "  %s) %s", opt.Key, opt.Text)
	}
	return b.String()
}

// ForVariant returns the Strategy for a variant name, or nil if unknown.
func ForVariant(variant string) Strategy {
	switch variant {
	case "discrete_combined":
		return combinedStrategy{name: variant, questionTemplate: discreteCombinedPrompt}
	case "hlcc_combined":
		return combinedStrategy{name: variant, questionTemplate: hlccCombinedPrompt}
	case "discrete_linear":
		return linearStrategy{
			name:               variant,
			questionTemplate:   discreteLinearPromptQuestion,
			confidenceFollowup: discreteLinearPromptConfidence,
		}
	case "hlcc_linear":
		return linearStrategy{
			name:               variant,
			questionTemplate:   hlccLinearPromptQuestion,
			confidenceFollowup: hlccLinearPromptConfidence,
		}
	default:
		return nil
	}
}

// AllVariants lists every supported variant name, in the canonical order
// used by the cartesian task planner.
func AllVariants() []string {
	return []string{"discrete_combined", "discrete_linear", "hlcc_combined", "hlcc_linear"}
}
