// Package postsync pushes posts that were written while the remote store
// was unreachable.
package postsync

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"jobconnect/internal/domain/post"
	"jobconnect/internal/metrics"

	"github.com/google/uuid"
)

const (
	defaultBatchSize = 50

	// LockKey guards a sync pass across the server cron, the CLI and
	// other replicas.
	LockKey        = "posts:sync:lock"
	defaultLockTTL = 5 * time.Minute
)

var ErrRemoteDisabled = errors.New("remote store not configured")

// Locker is a shared lock with expiry, such as a Redis SET NX key.
type Locker interface {
	SetIfNotExists(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	DeleteIfValue(ctx context.Context, key, value string) error
}

type Result struct {
	Synced int
	Failed int
	// Skipped is set when another pass held the lock.
	Skipped bool
}

type Syncer struct {
	local     post.LocalRepository
	remote    post.RemoteStore
	attempts  int
	baseDelay time.Duration
	batchSize int
	logger    *log.Logger

	lock    Locker
	lockTTL time.Duration
	token   func() string

	// OnSynced runs after a pass that pushed at least one post.
	OnSynced func(ctx context.Context)

	sleep func(ctx context.Context, d time.Duration) error
}

func NewSyncer(local post.LocalRepository, remote post.RemoteStore, attempts int, baseDelay time.Duration, logger *log.Logger) *Syncer {
	if attempts <= 0 {
		attempts = 3
	}
	if baseDelay < 0 {
		baseDelay = 0
	}
	return &Syncer{
		local:     local,
		remote:    remote,
		attempts:  attempts,
		baseDelay: baseDelay,
		batchSize: defaultBatchSize,
		logger:    logger,
		lockTTL:   defaultLockTTL,
		token:     uuid.NewString,
		sleep:     sleepCtx,
	}
}

// WithLock makes every pass hold LockKey for at most ttl. Without a lock
// only one process may run passes.
func (s *Syncer) WithLock(l Locker, ttl time.Duration) *Syncer {
	s.lock = l
	if ttl > 0 {
		s.lockTTL = ttl
	}
	return s
}

// SyncPending pushes one batch of local-only posts. Each post is retried
// with a linear backoff of attempt × base delay; posts that still fail are
// left pending for the next pass.
func (s *Syncer) SyncPending(ctx context.Context) (Result, error) {
	var res Result
	if s.remote == nil {
		return res, ErrRemoteDisabled
	}

	if s.lock != nil {
		token := s.token()
		ok, err := s.lock.SetIfNotExists(ctx, LockKey, token, s.lockTTL)
		if err != nil {
			return res, fmt.Errorf("acquire sync lock: %w", err)
		}
		if !ok {
			s.logf("[PostSync] Pass skipped reason=lock_held")
			res.Skipped = true
			return res, nil
		}
		defer func() {
			if err := s.lock.DeleteIfValue(context.Background(), LockKey, token); err != nil {
				s.logf("[PostSync] Lock release failed err=%v", err)
			}
		}()
	}

	pending, err := s.local.ListPendingSync(ctx, s.batchSize)
	if err != nil {
		return res, err
	}
	if len(pending) == 0 {
		return res, nil
	}
	s.logf("[PostSync] Pass started pending=%d", len(pending))

	for _, p := range pending {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if s.push(ctx, p) {
			res.Synced++
			metrics.PostSync("synced")
		} else {
			res.Failed++
			metrics.PostSync("failed")
		}
	}

	s.logf("[PostSync] Pass finished synced=%d failed=%d", res.Synced, res.Failed)
	if res.Synced > 0 && s.OnSynced != nil {
		s.OnSynced(ctx)
	}
	return res, nil
}

func (s *Syncer) push(ctx context.Context, p post.Post) bool {
	var remoteID string
	for attempt := 1; attempt <= s.attempts; attempt++ {
		id, err := s.remote.CreatePost(ctx, p)
		if err == nil {
			remoteID = id
			break
		}
		s.logf("[PostSync] Push failed local_id=%d attempt=%d err=%v", p.LocalID, attempt, err)
		if attempt == s.attempts {
			return false
		}
		if err := s.sleep(ctx, time.Duration(attempt)*s.baseDelay); err != nil {
			return false
		}
	}

	if err := s.local.SetRemoteID(ctx, p.LocalID, remoteID); err != nil {
		// The change listener may already have mirrored the new document
		// under its remote ID; keep that row and drop the pending one.
		if _, getErr := s.local.GetByRemoteID(ctx, remoteID); getErr == nil {
			if delErr := s.local.Delete(ctx, p.LocalID); delErr != nil {
				s.logf("[PostSync] Pending row cleanup failed local_id=%d err=%v", p.LocalID, delErr)
			}
			return true
		}
		s.logf("[PostSync] Remote id record failed local_id=%d remote_id=%s err=%v", p.LocalID, remoteID, err)
		return false
	}
	return true
}

func (s *Syncer) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
