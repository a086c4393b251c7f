// Package engine plans the cartesian product of questions, variants,
// vendors, models, temperatures and repetitions, then executes it with
// bounded concurrency: question/variant/vendor/model/temperature/
// repetition nesting order, dispatched in fixed-size batches with a
// goroutine per task and a sync.WaitGroup per batch.
package engine

import (
	"sort"

	"github.com/alexandru-savinov/cbmbench/internal/question"
)

// TaskSpec fully determines one model call (or call pair, for linear
// variants).
type TaskSpec struct {
	Question    question.Question
	Vendor      string
	Model       string
	Variant     string
	Temperature float64
	Repetition  int
}

// AvailableVendor is one vendor's usable model list, after filtering by
// vendor selection, API key availability, and model filter.
type AvailableVendor struct {
	Vendor string
	Models []string
}

// Plan builds the full cartesian-product task list: question x variant x
// vendor x model x temperature x repetition, in that nesting order so
// results for the same question stay close together in the task list.
func Plan(
	questions []question.Question,
	variants []string,
	vendors []AvailableVendor,
	temperatures []float64,
	repetitions int,
) []TaskSpec {
	var tasks []TaskSpec
	for _, q := range questions {
		for _, variant := range variants {
			for _, v := range vendors {
				for _, model := range v.Models {
					for _, temp := range temperatures {
						for rep := 1; rep <= repetitions; rep++ {
							tasks = append(tasks, TaskSpec{
								Question:    q,
								Vendor:      v.Vendor,
								Model:       model,
								Variant:     variant,
								Temperature: temp,
								Repetition:  rep,
							})
						}
					}
				}
			}
		}
	}
	return tasks
}

// AvailableVendors filters a model registry down to vendors that passed
// the caller's vendor selection, have a non-empty API key (hasKey), and
// still have at least one model left after the model filter.
func AvailableVendors(
	registry question.Registry,
	vendorFilter []string,
	modelFilter []string,
	hasKey func(vendor string) bool,
) []AvailableVendor {
	allowedVendors := toSet(vendorFilter)
	allowedModels := toSet(modelFilter)

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []AvailableVendor
	for _, name := range names {
		entry := registry[name]
		if len(allowedVendors) > 0 && !allowedVendors[entry.Vendor] {
			continue
		}
		if !hasKey(entry.Vendor) {
			continue
		}
		models := entry.Models
		if len(allowedModels) > 0 {
			filtered := make([]string, 0, len(models))
			for _, m := range models {
				if allowedModels[m] {
					filtered = append(filtered, m)
				}
			}
			models = filtered
		}
		if len(models) == 0 {
			continue
		}
		out = append(out, AvailableVendor{Vendor: entry.Vendor, Models: models})
	}
	return out
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
