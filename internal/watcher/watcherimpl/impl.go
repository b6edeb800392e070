package watcherimpl

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/fx"

	"github.com/dvnguyen/socialapp-client/internal/api"
	"github.com/dvnguyen/socialapp-client/internal/domain"
	"github.com/dvnguyen/socialapp-client/internal/watcher"
	"github.com/dvnguyen/socialapp-client/pkg/config"
	"github.com/dvnguyen/socialapp-client/pkg/logger"
	"github.com/dvnguyen/socialapp-client/pkg/retry"
)

const pollPageSize = 10

type Opts struct {
	fx.In

	Api    api.Client
	Logger logger.Logger
	Config *config.Config
}

// WatcherImpl polls the first feed page on an interval and reports posts it
// has not seen before.
type WatcherImpl struct {
	Api    api.Client
	Logger logger.Logger
	Config *config.Config

	mu          sync.Mutex
	seen        map[string]struct{}
	primed      bool
	subscribers []func(domain.Post)
}

func New(opts Opts) *WatcherImpl {
	return &WatcherImpl{
		Api:    opts.Api,
		Logger: opts.Logger.WithComponent("FeedWatcher"),
		Config: opts.Config,
		seen:   make(map[string]struct{}),
	}
}

var _ watcher.Client = (*WatcherImpl)(nil)

// Subscribe registers a callback invoked once per newly observed post.
func (w *WatcherImpl) Subscribe(fn func(domain.Post)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.subscribers = append(w.subscribers, fn)
}

// PollOnce fetches the newest feed page and returns the posts not seen in any
// earlier poll. The first poll only primes the seen set and returns nothing,
// so a fresh start does not announce the entire feed.
func (w *WatcherImpl) PollOnce(ctx context.Context) ([]domain.Post, error) {
	var posts []domain.Post
	err := retry.Do(ctx, w.Logger, "feed poll", func() error {
		var err error
		posts, err = w.Api.Feed(ctx, api.FeedQuery{
			Page:   1,
			Limit:  pollPageSize,
			SortBy: api.SortNewest,
		})
		return err
	}, retry.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to poll feed: %w", err)
	}

	w.mu.Lock()
	firstPoll := !w.primed
	w.primed = true

	var fresh []domain.Post
	for _, p := range posts {
		if _, ok := w.seen[p.ID]; ok {
			continue
		}
		w.seen[p.ID] = struct{}{}
		if !firstPoll {
			fresh = append(fresh, p)
		}
	}
	subscribers := make([]func(domain.Post), len(w.subscribers))
	copy(subscribers, w.subscribers)
	w.mu.Unlock()

	for _, p := range fresh {
		for _, fn := range subscribers {
			fn(p)
		}
	}
	return fresh, nil
}

// Schedule starts the polling job and shuts the scheduler down when the
// context is cancelled.
func (w *WatcherImpl) Schedule(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create feed watcher scheduler: %w", err)
	}

	interval := w.Config.Watcher.Interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				w.Logger.Info("Context cancelled, stopping feed polling")
				return
			}

			taskCtx, cancel := context.WithTimeout(ctx, time.Minute)
			defer cancel()

			fresh, err := w.PollOnce(taskCtx)
			if err != nil {
				w.Logger.Error("Feed poll failed", "error", err)
				return
			}
			if len(fresh) > 0 {
				w.Logger.Info("Found new posts", "count", len(fresh))
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule feed polling: %w", err)
	}

	scheduler.Start()

	go func() {
		<-ctx.Done()
		w.Logger.Info("Stopping feed watcher scheduler")
		if err := scheduler.Shutdown(); err != nil {
			w.Logger.Error("Failed to shut down feed watcher scheduler", "error", err)
		}
	}()

	return nil
}
