package engine

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lixenwraith/mathfall/status"
)

func TestLoopRunsPostedWork(t *testing.T) {
	reg := status.NewRegistry()
	loop := NewLoop(NewScheduler(time.Now()), NewTimeProvider(), time.Millisecond, reg)
	loop.Start()
	defer loop.Stop()

	value := 0
	if err := loop.Do(func() { value = 42 }); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if value != 42 {
		t.Errorf("value = %d, want 42", value)
	}
	if reg.Ints.Get("engine.posts").Load() != 1 {
		t.Error("post not counted")
	}
	if !reg.Bools.Get("engine.running").Load() {
		t.Error("running flag not set")
	}
	loop.Stop()
	if reg.Bools.Get("engine.running").Load() {
		t.Error("running flag still set after Stop")
	}
}

func TestLoopAdvancesScheduler(t *testing.T) {
	sched := NewScheduler(time.Now())
	loop := NewLoop(sched, NewTimeProvider(), time.Millisecond, nil)

	var ticks atomic.Int32
	sched.Every(2*time.Millisecond, func() { ticks.Add(1) })

	loop.Start()
	defer loop.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for ticks.Load() < 5 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if ticks.Load() < 5 {
		t.Errorf("scheduler advanced only %d times", ticks.Load())
	}
}

func TestLoopMockClock(t *testing.T) {
	clock := NewMockTimeProvider(epoch)
	sched := NewScheduler(epoch)
	loop := NewLoop(sched, clock, time.Millisecond, nil)

	fired := make(chan struct{}, 1)
	sched.After(time.Second, func() { fired <- struct{}{} })

	loop.Start()
	defer loop.Stop()

	time.Sleep(20 * time.Millisecond)
	select {
	case <-fired:
		t.Fatal("task fired before the mock clock moved")
	default:
	}

	clock.Advance(time.Second)
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not fire after the mock clock moved")
	}
}

func TestLoopStop(t *testing.T) {
	loop := NewLoop(NewScheduler(time.Now()), NewTimeProvider(), time.Millisecond, nil)
	loop.Start()
	loop.Stop()
	loop.Stop()

	if err := loop.Post(func() {}); !errors.Is(err, ErrLoopStopped) {
		t.Errorf("Post after Stop = %v, want ErrLoopStopped", err)
	}
	if err := loop.Do(func() {}); !errors.Is(err, ErrLoopStopped) {
		t.Errorf("Do after Stop = %v, want ErrLoopStopped", err)
	}
}
