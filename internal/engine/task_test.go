package engine

import (
	"testing"

	"github.com/alexandru-savinov/cbmbench/internal/question"
	"github.com/stretchr/testify/assert"
)

func TestPlanCartesianProductSize(t *testing.T) {
	questions := []question.Question{{ID: "q1"}, {ID: "q2"}}
	variants := []string{"discrete_combined", "hlcc_linear"}
	vendors := []AvailableVendor{
		{Vendor: "openai", Models: []string{"gpt-a", "gpt-b"}},
		{Vendor: "claude", Models: []string{"claude-a"}},
	}
	temperatures := []float64{0.0, 0.7}
	repetitions := 3

	tasks := Plan(questions, variants, vendors, temperatures, repetitions)

	// 2 questions * 2 variants * (2+1) models * 2 temps * 3 reps
	assert.Len(t, tasks, 2*2*3*2*3)
}

func TestAvailableVendorsFiltersByKeyAndSelection(t *testing.T) {
	registry := question.Registry{
		"GPT-4": {Vendor: "openai", Models: []string{"gpt-4", "gpt-4o"}},
		"Grok":  {Vendor: "xai", Models: []string{"grok-1"}},
	}
	hasKey := func(vendor string) bool { return vendor == "openai" }

	available := AvailableVendors(registry, nil, nil, hasKey)
	assert.Len(t, available, 1)
	assert.Equal(t, "openai", available[0].Vendor)
}

func TestAvailableVendorsAppliesModelFilter(t *testing.T) {
	registry := question.Registry{
		"GPT-4": {Vendor: "openai", Models: []string{"gpt-4", "gpt-4o"}},
	}
	hasKey := func(string) bool { return true }

	available := AvailableVendors(registry, nil, []string{"gpt-4o"}, hasKey)
	assert.Len(t, available, 1)
	assert.Equal(t, []string{"gpt-4o"}, available[0].Models)
}

func TestAvailableVendorsDropsVendorWithNoModelsLeft(t *testing.T) {
	registry := question.Registry{
		"GPT-4": {Vendor: "openai", Models: []string{"gpt-4"}},
	}
	hasKey := func(string) bool { return true }

	available := AvailableVendors(registry, nil, []string{"does-not-exist"}, hasKey)
	assert.Empty(t, available)
}
