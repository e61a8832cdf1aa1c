package engine

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/mathfall/constant"
	"github.com/lixenwraith/mathfall/core"
	"github.com/lixenwraith/mathfall/status"
)

// ErrLoopStopped is returned when posting to a stopped loop
var ErrLoopStopped = errors.New("loop stopped")

// Loop is the single goroutine that owns the scheduler and everything it drives
// Other goroutines hand work to it through Post
type Loop struct {
	sched    *Scheduler
	clock    TimeSource
	interval time.Duration
	mailbox  chan func()

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	statAdvances *atomic.Int64
	statPosts    *atomic.Int64
	statRunning  *atomic.Bool
}

// NewLoop creates a loop advancing sched against clock every interval
func NewLoop(sched *Scheduler, clock TimeSource, interval time.Duration, reg *status.Registry) *Loop {
	if interval <= 0 {
		interval = constant.LoopInterval
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Loop{
		sched:        sched,
		clock:        clock,
		interval:     interval,
		mailbox:      make(chan func(), constant.LoopMailboxSize),
		stopChan:     make(chan struct{}),
		statAdvances: reg.Ints.Get("engine.advances"),
		statPosts:    reg.Ints.Get("engine.posts"),
		statRunning:  reg.Bools.Get("engine.running"),
	}
}

// Scheduler returns the scheduler owned by the loop
func (l *Loop) Scheduler() *Scheduler {
	return l.sched
}

// Start launches the loop goroutine
func (l *Loop) Start() {
	if l.running.CompareAndSwap(false, true) {
		l.wg.Add(1)
		l.statRunning.Store(true)
		core.Go(l.run)
	}
}

// Stop halts the loop and waits for the goroutine to exit
// Posted closures not yet run are dropped
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
		if l.running.CompareAndSwap(true, false) {
			l.wg.Wait()
		}
		l.statRunning.Store(false)
	})
}

// Post queues fn to run on the loop goroutine
// Blocks while the mailbox is full; fails once the loop is stopped
func (l *Loop) Post(fn func()) error {
	select {
	case <-l.stopChan:
		return ErrLoopStopped
	default:
	}

	select {
	case l.mailbox <- fn:
		l.statPosts.Add(1)
		return nil
	case <-l.stopChan:
		return ErrLoopStopped
	}
}

// Do runs fn on the loop goroutine and waits for it to return
func (l *Loop) Do(fn func()) error {
	done := make(chan struct{})
	if err := l.Post(func() {
		defer close(done)
		fn()
	}); err != nil {
		return err
	}

	select {
	case <-done:
		return nil
	case <-l.stopChan:
		return ErrLoopStopped
	}
}

func (l *Loop) run() {
	defer l.wg.Done()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.sched.Advance(l.clock.Now())

	for {
		select {
		case <-l.stopChan:
			return

		case fn := <-l.mailbox:
			fn()

		case <-ticker.C:
			l.sched.Advance(l.clock.Now())
			l.statAdvances.Add(1)
		}
	}
}
