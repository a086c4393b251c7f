package prompting

// Prompt templates for the four confidence variants. The payoff
// explanations shown to the model match the scoring functions in
// internal/scoring exactly, so a model reading the prompt and a model
// graded by the scorer are reasoning about the same payoff table.
const (
	discreteCombinedPrompt = `Answer the following multiple choice question and state your confidence level.

Question: %s

Options:
%s

Respond in JSON format exactly like this:
{"answer": "A", "confidence": 2}

Where confidence is:
  1 = Low (you are guessing; correct +1.0, incorrect 0)
  2 = Medium (you are somewhat confident; correct +1.5, incorrect -0.5)
  3 = High (you are very confident; correct +2.0, incorrect -2.0)

Respond ONLY with the JSON object, no other text.`

	discreteLinearPromptQuestion = `Answer the following multiple choice question.

Question: %s

Options:
%s

Respond with ONLY a single letter (e.g., A), no other text.`

	discreteLinearPromptConfidence = `Now rate your confidence in your previous answer.

The confidence level will change your score on the question:
  1 = Low (correct +1.0, incorrect 0)
  2 = Medium (correct +1.5, incorrect -0.5)
  3 = High (correct +2.0, incorrect -2.0)

Respond with ONLY a single number (1, 2, or 3), no other text.`

	hlccCombinedPrompt = `Answer the following multiple choice question and state your confidence as a decimal between 0.0 and 1.0.

Question: %s

Options:
%s

Respond in JSON format exactly like this:
{"answer": "A", "confidence": 0.85}

Your confidence score (x) affects your mark:
  - If correct: score = x + 1 (range: 1.0 to 2.0)
  - If incorrect: score = -2 * x^2 (range: 0 to -2.0)

Your optimal strategy is to set confidence equal to your true probability of being correct.

Respond ONLY with the JSON object, no other text.`

	hlccLinearPromptQuestion = `Answer the following multiple choice question.

Question: %s

Options:
%s

Respond with ONLY a single letter (e.g., A), no other text.`

	hlccLinearPromptConfidence = `Now rate your confidence in your previous answer as a decimal between 0.0 and 1.0.

Your confidence score (x) affects your mark:
  - If correct: score = x + 1 (range: 1.0 to 2.0)
  - If incorrect: score = -2 * x^2 (range: 0 to -2.0)

Your optimal strategy is to set confidence equal to your true probability of being correct.

Respond with ONLY a single decimal number between 0.0 and 1.0, no other text.`
)
