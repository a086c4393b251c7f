package engine

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/alexandru-savinov/cbmbench/internal/metrics"
	"github.com/alexandru-savinov/cbmbench/internal/parsing"
	"github.com/alexandru-savinov/cbmbench/internal/prompting"
	"github.com/alexandru-savinov/cbmbench/internal/ratelimit"
	"github.com/alexandru-savinov/cbmbench/internal/scoring"
	"github.com/alexandru-savinov/cbmbench/internal/vendorclient"
)

// BatchSize is the number of tasks dispatched concurrently before the
// executor waits for the batch to drain.
const BatchSize = 100

// callTimeout bounds a single vendor call (or, for a linear variant, each
// of its two calls) so one stuck vendor request cannot stall a run.
const callTimeout = 60 * time.Second

// Caller issues one vendor call and reports success/failure, so the
// executor can be tested against a fake without a real vendorclient.Client.
type Caller interface {
	Call(ctx context.Context, vendor string, messages []vendorclient.Message, model string, temperature float64) (string, bool)
}

// ProgressFunc is invoked after each batch completes with the running and
// total task counts.
type ProgressFunc func(completed, total int)

// RunSummary reports how a run's tasks resolved: Completed counts tasks
// that produced a Result, Failed counts tasks dropped because a vendor
// call failed (or no vendor slot could be acquired, or the variant is
// unknown). A response whose answer cannot be parsed still produces a
// Result with an empty answer.
type RunSummary struct {
	Completed int
	Failed    int
}

// Executor runs a planned task list with per-vendor bounded concurrency.
type Executor struct {
	caller  Caller
	limiter *ratelimit.Limiter
}

// New builds an Executor calling out through caller, bounded by limiter.
func New(caller Caller, limiter *ratelimit.Limiter) *Executor {
	return &Executor{caller: caller, limiter: limiter}
}

// Run executes every task in tasks, in batches of BatchSize, cancelling
// outstanding work if ctx is done at a batch boundary. It returns every
// successfully completed Result, plus a RunSummary counting how many
// tasks completed versus failed; a task whose vendor call fails is
// dropped with no retry.
func (e *Executor) Run(ctx context.Context, tasks []TaskSpec, progress ProgressFunc) ([]Result, RunSummary) {
	var (
		mu      sync.Mutex
		results []Result
		failed  int
	)
	total := len(tasks)
	completed := 0

	for start := 0; start < total; start += BatchSize {
		if ctx.Err() != nil {
			log.Printf("[engine] context cancelled, stopping after %d/%d tasks", completed, total)
			break
		}

		end := start + BatchSize
		if end > total {
			end = total
		}
		batch := tasks[start:end]

		var wg sync.WaitGroup
		wg.Add(len(batch))
		for _, task := range batch {
			task := task
			go func() {
				defer wg.Done()
				r, ok := e.runOne(ctx, task)
				mu.Lock()
				if ok {
					results = append(results, r)
				} else {
					failed++
				}
				mu.Unlock()
			}()
		}
		wg.Wait()

		completed += len(batch)
		if progress != nil {
			progress(completed, total)
		}
	}

	return results, RunSummary{Completed: len(results), Failed: failed}
}

func (e *Executor) runOne(ctx context.Context, task TaskSpec) (Result, bool) {
	strategy := prompting.ForVariant(task.Variant)
	if strategy == nil {
		log.Printf("[engine] unknown variant %q, skipping task", task.Variant)
		return Result{}, false
	}
	scorer := scoring.ForVariant(task.Variant)
	confidenceType := parsing.Discrete
	if scorer.ConfidenceType() == scoring.Continuous {
		confidenceType = parsing.Continuous
	}

	metrics.TasksTotal.WithLabelValues(task.Vendor, task.Model, task.Variant).Inc()

	if err := e.limiter.Acquire(ctx, task.Vendor); err != nil {
		return Result{}, false
	}
	defer e.limiter.Release(task.Vendor)

	start := time.Now()

	var (
		answer      string
		confidence  float64
		rawText     string
		parseMethod string
		ok          bool
	)
	if strategy.IsMultiTurn() {
		answer, confidence, rawText, parseMethod, ok = e.runLinear(ctx, task, strategy, confidenceType)
	} else {
		answer, confidence, rawText, parseMethod, ok = e.runCombined(ctx, task, strategy, confidenceType)
	}
	if !ok {
		metrics.TaskFailuresTotal.WithLabelValues(task.Vendor, "adapter_or_parse").Inc()
		return Result{}, false
	}

	elapsed := time.Since(start)
	metrics.RunResultsTotal.WithLabelValues(task.Question.Dataset, task.Variant).Inc()

	result := Result{
		QuestionID:           task.Question.ID,
		Dataset:              task.Question.Dataset,
		Vendor:               task.Vendor,
		Model:                task.Model,
		Variant:              task.Variant,
		Temperature:          task.Temperature,
		Iteration:            task.Repetition,
		Answer:               answer,
		ConfidenceRaw:        confidence,
		ConfidenceNormalized: scorer.Normalize(confidence),
		ParseMethod:          parseMethod,
		Timestamp:            start.UTC().Format(time.RFC3339Nano),
		ProcessingMS:         elapsed.Milliseconds(),
		RawResponse:          truncate(rawText, rawResponseTruncateLen),
	}

	// Ambiguous-dataset questions are graded on calibration gap, not
	// correctness, so score/is_correct stay unset.
	if task.Question.Dataset != "ambiguous" && task.Question.CorrectAnswer != "" {
		isCorrect := strings.EqualFold(answer, task.Question.CorrectAnswer)
		score := scorer.Score(confidence, isCorrect)
		result.CorrectAnswer = task.Question.CorrectAnswer
		result.IsCorrect = &isCorrect
		result.Score = &score
	}

	return result, true
}

func (e *Executor) runCombined(ctx context.Context, task TaskSpec, strategy prompting.Strategy, confidenceType parsing.ConfidenceType) (answer string, confidence float64, rawText, parseMethod string, ok bool) {
	prompt := strategy.BuildPrompt(task.Question)
	messages := []vendorclient.Message{{Role: "user", Content: prompt}}

	response, ok := e.call(ctx, task, messages)
	if !ok {
		return "", 0, "", "", false
	}

	parsed := parsing.ParseCombined(response, confidenceType)
	return parsed.Answer, parsed.Confidence, parsed.RawText, parsed.ParseMethod, true
}

func (e *Executor) runLinear(ctx context.Context, task TaskSpec, strategy prompting.Strategy, confidenceType parsing.ConfidenceType) (answer string, confidence float64, rawText, parseMethod string, ok bool) {
	prompt1 := strategy.BuildPrompt(task.Question)
	messages := []vendorclient.Message{{Role: "user", Content: prompt1}}

	response1, ok := e.call(ctx, task, messages)
	if !ok {
		return "", 0, "", "", false
	}
	answer = parsing.ParseAnswerOnly(response1)

	messages = append(messages,
		vendorclient.Message{Role: "assistant", Content: response1},
		vendorclient.Message{Role: "user", Content: strategy.BuildFollowup(task.Question, response1)},
	)

	response2, ok := e.call(ctx, task, messages)
	if !ok {
		return "", 0, "", "", false
	}
	confidence = parsing.ParseConfidenceOnly(response2, confidenceType)

	rawText = fmt.Sprintf("Turn 1: %s\nTurn 2: %s", response1, response2)
	return answer, confidence, rawText, "linear", true
}

func (e *Executor) call(ctx context.Context, task TaskSpec, messages []vendorclient.Message) (string, bool) {
	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	metrics.VendorInFlight.WithLabelValues(task.Vendor).Inc()
	defer metrics.VendorInFlight.WithLabelValues(task.Vendor).Dec()

	start := time.Now()
	content, ok := e.caller.Call(callCtx, task.Vendor, messages, task.Model, task.Temperature)
	metrics.VendorCallDuration.WithLabelValues(task.Vendor).Observe(time.Since(start).Seconds())
	return content, ok
}
