// Package parsing extracts an answer letter and a confidence value from a
// model's raw text response. It tries strict JSON, then JSON embedded in a
// markdown code fence, then falls back to regex extraction.
package parsing

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// ConfidenceType mirrors scoring.ConfidenceType without importing it, so
// this package has no dependency on the scoring package's payoff tables.
type ConfidenceType string

const (
	Discrete   ConfidenceType = "discrete"
	Continuous ConfidenceType = "continuous"
)

// Parsed holds the outcome of parsing one model response.
type Parsed struct {
	Answer      string
	Confidence  float64
	RawText     string
	ParseMethod string // "json", "codeblock_json", "regex", "fallback", or "linear"
}

var (
	codeFenceRe       = regexp.MustCompile(`(?s)` + "```" + `(?:json)?\s*(\{.*?\})\s*` + "```")
	leadingLetterRe   = regexp.MustCompile(`^([A-J])[.):\s]`)
	answerIsPhraseRe  = regexp.MustCompile(`(?i)(?:answer|option|choice)\s*(?:is|:)\s*([A-Ja-j])`)
	standaloneLetterRe = regexp.MustCompile(`\b([A-Ja-j])\b`)
	discreteDigitRe   = regexp.MustCompile(`\b([123])\b`)
	boundedDecimalRe  = regexp.MustCompile(`\b(0\.\d+|1\.0|0|1)\b`)
	anyNumberRe       = regexp.MustCompile(`(\d+\.?\d*)`)
)

// ParseCombined parses a single-turn response containing both an answer
// and a confidence value.
func ParseCombined(content string, confidenceType ConfidenceType) Parsed {
	if p, ok := tryJSONParse(content, confidenceType); ok {
		return p
	}
	if p, ok := tryJSONFromCodeBlock(content, confidenceType); ok {
		return p
	}
	return regexExtractCombined(content, confidenceType)
}

// ParseAnswerOnly parses a response expected to contain only an answer
// letter, returning "" if none can be found.
func ParseAnswerOnly(content string) string {
	text := strings.ToUpper(strings.TrimSpace(content))

	if len(text) == 1 && strings.Contains("ABCDEFGHIJ", text) {
		return text
	}
	if m := leadingLetterRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := answerIsPhraseRe.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1])
	}
	if m := standaloneLetterRe.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1])
	}
	return ""
}

// ParseConfidenceOnly parses a response expected to contain only a
// confidence value, defaulting to 2.0 (medium) for a missing discrete
// value and 0.5 for a missing continuous value.
func ParseConfidenceOnly(content string, confidenceType ConfidenceType) float64 {
	text := strings.TrimSpace(content)

	if confidenceType == Discrete {
		if m := discreteDigitRe.FindStringSubmatch(text); m != nil {
			v, _ := strconv.ParseFloat(m[1], 64)
			return v
		}
		return 2.0
	}

	if m := boundedDecimalRe.FindStringSubmatch(text); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		return v
	}
	if m := anyNumberRe.FindStringSubmatch(text); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		if v > 1.0 {
			v = v / 100.0
		}
		return clampUnit(v)
	}
	return 0.5
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

type jsonPayload struct {
	Answer           json.RawMessage `json:"answer"`
	SelectedOption   json.RawMessage `json:"selected_option"`
	Confidence       *float64        `json:"confidence"`
	ConfidenceLevel  *float64        `json:"confidence_level"`
}

// tryJSONParse locates the outermost {...} span in content and attempts to
// decode it as the answer/confidence payload.
func tryJSONParse(content string, confidenceType ConfidenceType) (Parsed, bool) {
	text := strings.TrimSpace(content)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return Parsed{}, false
	}

	var payload jsonPayload
	if err := json.Unmarshal([]byte(text[start:end+1]), &payload); err != nil {
		return Parsed{}, false
	}

	answer := rawStringField(payload.Answer)
	if answer == "" {
		answer = rawStringField(payload.SelectedOption)
	}
	answer = strings.ToUpper(strings.TrimSpace(answer))
	if len(answer) > 1 {
		if m := regexp.MustCompile(`^([A-Ja-j])`).FindStringSubmatch(answer); m != nil {
			answer = strings.ToUpper(m[1])
		} else {
			answer = answer[:1]
		}
	}

	var confidence float64
	switch {
	case payload.Confidence != nil:
		confidence = *payload.Confidence
	case payload.ConfidenceLevel != nil:
		confidence = *payload.ConfidenceLevel
	default:
		if confidenceType == Discrete {
			confidence = 2.0
		} else {
			confidence = 0.5
		}
	}
	if confidenceType == Continuous && confidence > 1.0 {
		confidence = confidence / 100.0
	}

	return Parsed{
		Answer:      answer,
		Confidence:  confidence,
		RawText:     content,
		ParseMethod: "json",
	}, true
}

// rawStringField decodes a json.RawMessage that may be a JSON string or a
// JSON number (some vendors emit {"answer": 1} for numeric option keys).
func rawStringField(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func tryJSONFromCodeBlock(content string, confidenceType ConfidenceType) (Parsed, bool) {
	m := codeFenceRe.FindStringSubmatch(content)
	if m == nil {
		return Parsed{}, false
	}
	p, ok := tryJSONParse(m[1], confidenceType)
	if !ok {
		return Parsed{}, false
	}
	p.ParseMethod = "codeblock_json"
	return p, true
}

func regexExtractCombined(content string, confidenceType ConfidenceType) Parsed {
	answer := ParseAnswerOnly(content)
	confidence := ParseConfidenceOnly(content, confidenceType)

	method := "fallback"
	if answer != "" {
		method = "regex"
	}

	return Parsed{
		Answer:      answer,
		Confidence:  confidence,
		RawText:     content,
		ParseMethod: method,
	}
}
