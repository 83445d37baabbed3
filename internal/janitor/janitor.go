package janitor

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper evicts expired entries and reports how many remain
type Sweeper interface {
	Sweep() int
}

// Janitor runs a Sweeper on a cron schedule
type Janitor struct {
	cron    *cron.Cron
	sweeper Sweeper
	logger  *zap.Logger
	mu      sync.Mutex
}

// New creates a janitor for the given six-field (seconds first) cron schedule
func New(schedule string, sweeper Sweeper, logger *zap.Logger) (*Janitor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	j := &Janitor{
		cron:    cron.New(cron.WithSeconds()),
		sweeper: sweeper,
		logger:  logger,
	}

	if _, err := j.cron.AddFunc(schedule, j.RunOnce); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	return j, nil
}

// RunOnce performs a single sweep. Overlapping runs are serialized.
func (j *Janitor) RunOnce() {
	j.mu.Lock()
	defer j.mu.Unlock()

	remaining := j.sweeper.Sweep()
	j.logger.Debug("swept sessions", zap.Int("remaining", remaining))
}

// Run starts the scheduler and blocks until ctx is cancelled
func (j *Janitor) Run(ctx context.Context) error {
	j.cron.Start()
	j.logger.Info("session janitor started")

	<-ctx.Done()
	<-j.cron.Stop().Done()
	j.logger.Info("session janitor stopped")
	return nil
}
