package worker

import (
	"context"
	"sync"
	"time"

	"isstracker/internal/logger"

	"github.com/jonboulle/clockwork"
)

// loop выполняет task сразу при старте и затем раз в interval.
// Stop отменяет текущий запуск и ждет выхода горутины.
type loop struct {
	name     string
	interval time.Duration
	timeout  time.Duration
	clock    clockwork.Clock
	log      logger.Logger
	task     func(ctx context.Context)

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func newLoop(name string, interval, timeout time.Duration, clock clockwork.Clock, log logger.Logger, task func(ctx context.Context)) *loop {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &loop{
		name:     name,
		interval: interval,
		timeout:  timeout,
		clock:    clock,
		log:      log.With(logger.String("worker", name)),
		task:     task,
	}
}

func (l *loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running || l.interval <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	l.running = true
	l.cancel = cancel
	l.done = make(chan struct{})

	l.log.Info("Worker started", logger.Duration("interval", l.interval))

	go l.run(ctx, l.done)
}

func (l *loop) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	l.cancel()
	done := l.done
	l.mu.Unlock()

	<-done
	l.log.Info("Worker stopped")
}

func (l *loop) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := l.clock.NewTicker(l.interval)
	defer ticker.Stop()

	// Первый запуск сразу
	l.runOnce(ctx)

	for {
		select {
		case <-ticker.Chan():
			l.runOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (l *loop) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	l.task(runCtx)
}
