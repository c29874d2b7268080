package availability

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerLastWins(t *testing.T) {
	s := NewScheduler(20 * time.Millisecond)
	var ran atomic.Int32

	// Rapid successive schedules coalesce into the last one.
	s.Schedule(func() { ran.Store(1) })
	s.Schedule(func() { ran.Store(2) })
	s.Schedule(func() { ran.Store(3) })

	assert.Eventually(t, func() bool { return ran.Load() == 3 }, time.Second, 5*time.Millisecond)
	assert.False(t, s.Pending())
}

func TestSchedulerRunsOnce(t *testing.T) {
	s := NewScheduler(10 * time.Millisecond)
	var runs atomic.Int32
	for i := 0; i < 5; i++ {
		s.Schedule(func() { runs.Add(1) })
	}
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load())
}

func TestSchedulerStop(t *testing.T) {
	s := NewScheduler(20 * time.Millisecond)
	var runs atomic.Int32
	s.Schedule(func() { runs.Add(1) })
	assert.True(t, s.Pending())
	s.Stop()
	assert.False(t, s.Pending())
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), runs.Load())
}
