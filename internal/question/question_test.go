package question

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileBareArray(t *testing.T) {
	path := writeTempFile(t, "bare.json", `[
		{"id": "q1", "dataset": "mmlu", "question": "2+2?", "options": [{"key":"A","text":"4"},{"key":"B","text":"5"}], "correctAnswer": "A"}
	]`)

	questions, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "q1", questions[0].ID)
}

func TestLoadFileQuestionsWrapper(t *testing.T) {
	path := writeTempFile(t, "wrapped.json", `{"questions": [
		{"id": "q1", "dataset": "arc", "question": "?", "options": [{"key":"A","text":"x"},{"key":"B","text":"y"}], "correctAnswer": "A"}
	]}`)

	questions, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "arc", questions[0].Dataset)
}

func TestLoadFileEvalDataWrapper(t *testing.T) {
	path := writeTempFile(t, "eval.json", `{"eval_data": [
		{"id": "q1", "dataset": "truthfulqa", "question": "?", "options": [{"key":"A","text":"x"},{"key":"B","text":"y"}], "correctAnswer": "A"}
	]}`)

	questions, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, questions, 1)
}

func TestLoadFileRejectsTooFewOptions(t *testing.T) {
	path := writeTempFile(t, "bad.json", `[
		{"id": "q1", "dataset": "mmlu", "question": "?", "options": [{"key":"A","text":"x"}], "correctAnswer": "A"}
	]`)

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFileRejectsDuplicateOptionKeys(t *testing.T) {
	path := writeTempFile(t, "dup.json", `[
		{"id": "q1", "dataset": "mmlu", "question": "?", "options": [{"key":"A","text":"x"},{"key":"A","text":"y"}], "correctAnswer": "A"}
	]`)

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFileRejectsCorrectAnswerNotInOptions(t *testing.T) {
	path := writeTempFile(t, "badanswer.json", `[
		{"id": "q1", "dataset": "mmlu", "question": "?", "options": [{"key":"A","text":"x"},{"key":"B","text":"y"}], "correctAnswer": "C"}
	]`)

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestIndexBuildsLookupByID(t *testing.T) {
	questions := []Question{{ID: "q1"}, {ID: "q2"}}
	idx := Index(questions)
	assert.Len(t, idx, 2)
	assert.Equal(t, "q1", idx["q1"].ID)
}

func TestLoadRegistryDefaultsVendorToLowercasedName(t *testing.T) {
	path := writeTempFile(t, "models.json", `{
		"GPT-4": {"models": ["gpt-4"]},
		"Claude": {"vendor": "claude", "models": ["claude-3"]}
	}`)

	registry, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4", registry["GPT-4"].Vendor)
	assert.Equal(t, "claude", registry["Claude"].Vendor)
}
