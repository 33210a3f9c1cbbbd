package postsync

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs SyncPending on a fixed interval.
type Scheduler struct {
	cron   *cron.Cron
	syncer *Syncer
	spec   string
	logger *log.Logger

	mu      sync.Mutex
	running bool
}

func NewScheduler(syncer *Syncer, interval time.Duration, logger *log.Logger) *Scheduler {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Scheduler{
		cron:   cron.New(),
		syncer: syncer,
		spec:   fmt.Sprintf("@every %s", interval),
		logger: logger,
	}
}

func (s *Scheduler) Spec() string {
	return s.spec
}

func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.run(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	if s.logger != nil {
		s.logger.Printf("[PostSync] Scheduler started")
	}
	return nil
}

// Stop waits for a running pass to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	if s.logger != nil {
		s.logger.Printf("[PostSync] Scheduler stopped")
	}
}

// run skips a tick while the previous pass is still going.
func (s *Scheduler) run(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	if _, err := s.syncer.SyncPending(ctx); err != nil && s.logger != nil {
		s.logger.Printf("[PostSync] Pass failed err=%v", err)
	}
}
