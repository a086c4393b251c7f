package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleAcceptsStandardFiveFieldExpression(t *testing.T) {
	s := New()
	require.NoError(t, s.Schedule("* * * * *", func() {}))
	s.Stop()
}

func TestScheduleRejectsInvalidExpression(t *testing.T) {
	s := New()
	err := s.Schedule("not-a-cron-expression", func() {})
	assert.Error(t, err)
}

func TestScheduleRunsJobOnEverySecondInterval(t *testing.T) {
	s := New()
	var count int32
	// robfig/cron rounds @every delays up to whole seconds, so the first
	// run lands on the next second boundary.
	require.NoError(t, s.Schedule("@every 1s", func() { atomic.AddInt32(&count, 1) }))
	s.Start()
	time.Sleep(1200 * time.Millisecond)
	s.Stop()
	assert.GreaterOrEqual(t, atomic.LoadInt32(&count), int32(1))
}

func TestSchedulerRecoversPanickingJob(t *testing.T) {
	s := New()
	ran := make(chan struct{}, 1)
	require.NoError(t, s.Schedule("@every 20ms", func() {
		defer func() { ran <- struct{}{} }()
		panic("boom")
	}))
	s.Start()
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("scheduled job never ran")
	}
	s.Stop()
}
