package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCombinedStrictJSON(t *testing.T) {
	p := ParseCombined(`{"answer": "B", "confidence": 3}`, Discrete)
	assert.Equal(t, "B", p.Answer)
	assert.Equal(t, 3.0, p.Confidence)
	assert.Equal(t, "json", p.ParseMethod)
}

func TestParseCombinedJSONWithSurroundingText(t *testing.T) {
	p := ParseCombined(`Sure, here you go: {"answer": "C", "confidence": 0.8} thanks`, Continuous)
	assert.Equal(t, "C", p.Answer)
	assert.Equal(t, 0.8, p.Confidence)
	assert.Equal(t, "json", p.ParseMethod)
}

func TestParseCombinedJSONFromCodeBlock(t *testing.T) {
	// The stray braces before the fence make the outermost-brace scan fail,
	// so only the fenced block yields valid JSON.
	content := "Draft {scratch}\n```json\n{\"answer\": \"A\", \"confidence\": 2}\n```"
	p := ParseCombined(content, Discrete)
	assert.Equal(t, "A", p.Answer)
	assert.Equal(t, 2.0, p.Confidence)
	assert.Equal(t, "codeblock_json", p.ParseMethod)
}

func TestParseCombinedJSONMissingConfidenceDefaults(t *testing.T) {
	discrete := ParseCombined(`{"answer": "A"}`, Discrete)
	assert.Equal(t, 2.0, discrete.Confidence)

	continuous := ParseCombined(`{"answer": "A"}`, Continuous)
	assert.Equal(t, 0.5, continuous.Confidence)
}

func TestParseCombinedContinuousConfidenceOver100Normalizes(t *testing.T) {
	p := ParseCombined(`{"answer": "A", "confidence": 85}`, Continuous)
	assert.Equal(t, 0.85, p.Confidence)
}

func TestParseCombinedFallsBackToRegex(t *testing.T) {
	p := ParseCombined("The answer is D. I am fairly confident, level 2.", Discrete)
	assert.Equal(t, "D", p.Answer)
	assert.Equal(t, 2.0, p.Confidence)
	assert.Equal(t, "regex", p.ParseMethod)
}

func TestParseCombinedFallbackWithNoAnswerFound(t *testing.T) {
	p := ParseCombined("Unable to determine this.", Discrete)
	assert.Equal(t, "", p.Answer)
	assert.Equal(t, "fallback", p.ParseMethod)
}

func TestParseAnswerOnlySingleLetter(t *testing.T) {
	assert.Equal(t, "A", ParseAnswerOnly("A"))
	assert.Equal(t, "B", ParseAnswerOnly("b"))
}

func TestParseAnswerOnlyLetterWithPunctuation(t *testing.T) {
	assert.Equal(t, "C", ParseAnswerOnly("C)"))
	assert.Equal(t, "D", ParseAnswerOnly("D. Done"))
}

func TestParseAnswerOnlyPhrase(t *testing.T) {
	assert.Equal(t, "E", ParseAnswerOnly("The answer is E"))
	assert.Equal(t, "F", ParseAnswerOnly("My choice: f"))
}

func TestParseAnswerOnlyStandaloneLetter(t *testing.T) {
	assert.Equal(t, "G", ParseAnswerOnly("Hmm, G seems right"))
}

func TestParseAnswerOnlyNoMatch(t *testing.T) {
	assert.Equal(t, "", ParseAnswerOnly("unable to decide"))
}

func TestParseConfidenceOnlyDiscrete(t *testing.T) {
	assert.Equal(t, 3.0, ParseConfidenceOnly("I'd say 3", Discrete))
	assert.Equal(t, 2.0, ParseConfidenceOnly("no number here", Discrete), "missing value defaults to medium")
}

func TestParseConfidenceOnlyContinuousBoundedDecimal(t *testing.T) {
	assert.Equal(t, 0.75, ParseConfidenceOnly("confidence: 0.75", Continuous))
	assert.Equal(t, 1.0, ParseConfidenceOnly("1.0", Continuous))
}

func TestParseConfidenceOnlyContinuousPercentNormalizes(t *testing.T) {
	assert.Equal(t, 0.85, ParseConfidenceOnly("85", Continuous))
}

func TestParseConfidenceOnlyContinuousMissingDefaults(t *testing.T) {
	assert.Equal(t, 0.5, ParseConfidenceOnly("not sure at all", Continuous))
}
