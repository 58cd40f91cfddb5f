package shared

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_OnlyLastTriggerRuns(t *testing.T) {
	t.Parallel()
	d := NewDebouncer(30 * time.Millisecond)
	var ran atomic.Int32
	var last atomic.Int32

	for i := 1; i <= 5; i++ {
		i := i
		d.Trigger(func() {
			ran.Add(1)
			last.Store(int32(i))
		})
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if ran.Load() != 1 {
		t.Fatalf("expected one invocation, got %d", ran.Load())
	}
	if last.Load() != 5 {
		t.Errorf("expected the final trigger to win, got %d", last.Load())
	}
}

func TestDebouncer_StopCancelsPendingWork(t *testing.T) {
	t.Parallel()
	d := NewDebouncer(30 * time.Millisecond)
	var ran atomic.Int32

	d.Trigger(func() {
		ran.Add(1)
	})
	d.Stop()

	time.Sleep(100 * time.Millisecond)
	if ran.Load() != 0 {
		t.Errorf("expected no invocation after stop, got %d", ran.Load())
	}
}

func TestDebouncer_SequentialTriggersBothRun(t *testing.T) {
	t.Parallel()
	d := NewDebouncer(10 * time.Millisecond)
	var ran atomic.Int32

	d.Trigger(func() { ran.Add(1) })
	time.Sleep(50 * time.Millisecond)
	d.Trigger(func() { ran.Add(1) })
	time.Sleep(50 * time.Millisecond)

	if ran.Load() != 2 {
		t.Errorf("expected both settled triggers to run, got %d", ran.Load())
	}
}
