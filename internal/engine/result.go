package engine

// Result is one completed task evaluation. Fields carry both json and db
// struct tags so the same type serializes to the JSON result files and
// maps onto the optional SQL results store without a separate row type.
type Result struct {
	QuestionID           string  `json:"question_id" db:"question_id"`
	Dataset              string  `json:"dataset" db:"dataset"`
	Vendor               string  `json:"vendor" db:"vendor"`
	Model                string  `json:"model" db:"model"`
	Variant              string  `json:"variant" db:"variant"`
	Temperature          float64 `json:"temperature" db:"temperature"`
	Iteration            int     `json:"iteration" db:"iteration"`
	Answer               string  `json:"answer" db:"answer"`
	ConfidenceRaw        float64 `json:"confidence_raw" db:"confidence_raw"`
	ConfidenceNormalized float64 `json:"confidence_normalized" db:"confidence_normalized"`
	// Score and IsCorrect are omitted (zero value, not serialized) for
	// ambiguous-dataset results, which are graded on calibration gap
	// rather than correctness.
	Score         *float64 `json:"score,omitempty" db:"score"`
	CorrectAnswer string   `json:"correct_answer,omitempty" db:"correct_answer"`
	IsCorrect     *bool    `json:"is_correct,omitempty" db:"is_correct"`
	ParseMethod   string   `json:"parse_method" db:"parse_method"`
	Timestamp     string   `json:"timestamp" db:"timestamp"`
	ProcessingMS  int64    `json:"processing_ms" db:"processing_ms"`
	RawResponse   string   `json:"raw_response,omitempty" db:"raw_response"`
}

const rawResponseTruncateLen = 500

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
