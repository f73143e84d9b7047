package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ripple-social/ripple/internal/cache"
	"github.com/ripple-social/ripple/internal/posts"
	"github.com/ripple-social/ripple/pkg/config"
	"github.com/ripple-social/ripple/pkg/logging"
	"github.com/ripple-social/ripple/pkg/telemetry"
)

// ErrAlreadyRunning is returned by Start when the poller is already running
var ErrAlreadyRunning = errors.New("poller already running")

// Poller drives scheduled posts to published. It runs one sweep
// immediately on start, then one per interval. Each owning process gets
// its own Poller handle; there is no package-level singleton.
type Poller struct {
	posts  *posts.Service
	cache  *cache.Cache
	logger *zap.Logger

	interval time.Duration
	lockTTL  time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a poller. cache may be nil; sweeps then run without the
// cross-process advisory lock.
func New(postsSvc *posts.Service, c *cache.Cache, cfg *config.SchedulerConfig) *Poller {
	return &Poller{
		posts:    postsSvc,
		cache:    c,
		logger:   logging.WithComponent("scheduler"),
		interval: cfg.Interval,
		lockTTL:  cfg.LockTTL,
	}
}

// Start launches the sweep loop. The loop stops when ctx is cancelled
// or Stop is called. A second Start on a running poller returns
// ErrAlreadyRunning and leaves the first loop untouched.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done

	p.logger.Info("Scheduler started", zap.Duration("interval", p.interval))
	go p.run(ctx, done)

	return nil
}

// Stop halts the sweep loop and waits for the in-flight sweep to
// finish. Safe to call multiple times and on a never-started poller.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel = nil
	p.done = nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	p.logger.Info("Scheduler stopped")
}

// run owns its done channel; Stop nils the struct fields, so the loop
// never reads them.
func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	// First sweep runs immediately so due posts do not wait a full
	// interval after a restart.
	p.Sweep(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Sweep(ctx)
		}
	}
}

// Sweep publishes every due scheduled post. Posts transition
// independently: a failure on one is logged and the rest are still
// attempted. Returns the number of posts published.
func (p *Poller) Sweep(ctx context.Context) int {
	ctx, span := telemetry.StartSpan(ctx, "scheduler.sweep")
	defer span.End()

	lockHeld := false
	held, err := p.cache.AcquireSweepLock(ctx, p.lockTTL)
	switch {
	case err != nil:
		// Proceed without the lock; transitions are idempotent. Never
		// release in this case, the key may belong to another process.
		p.logger.Warn("Sweep lock unavailable, proceeding without it", zap.Error(err))
	case !held:
		p.logger.Debug("Sweep skipped, lock held by another process")
		return 0
	default:
		lockHeld = true
	}
	if lockHeld {
		defer func() {
			if err := p.cache.ReleaseSweepLock(ctx); err != nil {
				p.logger.Warn("Failed to release sweep lock", zap.Error(err))
			}
		}()
	}

	due, err := p.posts.ListDue(ctx)
	if err != nil {
		p.logger.Error("Failed to list due posts", zap.Error(err))
		telemetry.RecordSweep(ctx, 0, 0)
		return 0
	}

	var published, failed int64
	for _, post := range due {
		if ctx.Err() != nil {
			break
		}
		ok, err := p.posts.PublishDue(ctx, post.ID)
		if err != nil {
			failed++
			p.logger.Error("Failed to publish scheduled post",
				zap.Int64("post_id", post.ID),
				zap.Error(err))
			continue
		}
		if ok {
			published++
			p.logger.Info("Scheduled post published",
				zap.Int64("post_id", post.ID),
				zap.Int64("author_id", post.AuthorID))
		}
	}

	if len(due) > 0 || published > 0 {
		p.logger.Info("Sweep completed",
			zap.Int("due", len(due)),
			zap.Int64("published", published),
			zap.Int64("failed", failed))
	}

	telemetry.RecordSweep(ctx, published, failed)
	if err := p.cache.RecordSweep(ctx, time.Now()); err != nil {
		p.logger.Warn("Failed to record sweep heartbeat", zap.Error(err))
	}
	return int(published)
}
