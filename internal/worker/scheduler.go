package worker

import (
	"sync"
	"time"

	"isstracker/internal/logger"
)

const stopTimeout = 10 * time.Second

type Worker interface {
	Start()
	Stop()
}

type Scheduler struct {
	workers []Worker
	log     logger.Logger
	stopped bool
	mu      sync.RWMutex
}

func NewScheduler(log logger.Logger) *Scheduler {
	return &Scheduler{
		workers: make([]Worker, 0),
		log:     log,
	}
}

func (s *Scheduler) AddWorker(worker Worker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workers = append(s.workers, worker)
}

func (s *Scheduler) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.workers)
}

func (s *Scheduler) Start() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.stopped {
		return
	}

	s.log.Info("Starting scheduler", logger.Int("workers", len(s.workers)))

	for _, w := range s.workers {
		w.Start()
	}
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	workers := s.workers
	s.mu.Unlock()

	s.log.Info("Stopping scheduler...")

	// Останавливаем всех воркеров параллельно
	var wg sync.WaitGroup
	for _, w := range workers {
		wg.Add(1)
		go func(w Worker) {
			defer wg.Done()
			w.Stop()
		}(w)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	// Таймаут на остановку
	select {
	case <-done:
		s.log.Info("Scheduler stopped gracefully")
	case <-time.After(stopTimeout):
		s.log.Warn("Scheduler stop timeout", logger.Duration("timeout", stopTimeout))
	}
}

func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.stopped
}
