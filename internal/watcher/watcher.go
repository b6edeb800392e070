package watcher

import (
	"context"

	"github.com/dvnguyen/socialapp-client/internal/domain"
)

// Client watches the feed for posts that appeared since the last poll.
type Client interface {
	Schedule(ctx context.Context) error
	PollOnce(ctx context.Context) ([]domain.Post, error)
	Subscribe(fn func(domain.Post))
}
