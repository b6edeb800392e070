package feedview

import (
	"context"
	"sync"

	"github.com/dvnguyen/socialapp-client/internal/api"
	"github.com/dvnguyen/socialapp-client/internal/composer"
	"github.com/dvnguyen/socialapp-client/internal/domain"
	"github.com/dvnguyen/socialapp-client/internal/uploader"
	"github.com/dvnguyen/socialapp-client/pkg/logger"
)

// DefaultFeedLimit is the page size for post feeds.
const DefaultFeedLimit = 10

// DefaultLikesLimit is the page size of the likes modal.
const DefaultLikesLimit = 20

// Feed owns a paginated post collection: the home feed or one user's
// profile feed. Post mutations flow back in as whole replacement documents.
type Feed struct {
	api   api.Client
	log   logger.Logger
	pager *Pager[domain.Post]

	mu     sync.Mutex
	sortBy string
}

// NewHomeFeed builds the cross-user feed, sorted by the given mode.
func NewHomeFeed(apiClient api.Client, log logger.Logger, limit int) *Feed {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	f := &Feed{
		api:    apiClient,
		log:    log.WithComponent("HomeFeed"),
		sortBy: api.SortNewest,
	}
	f.pager = NewPager(limit, func(ctx context.Context, page, pageLimit int) ([]domain.Post, error) {
		f.mu.Lock()
		sortBy := f.sortBy
		f.mu.Unlock()
		return apiClient.Feed(ctx, api.FeedQuery{Page: page, Limit: pageLimit, SortBy: sortBy})
	})
	return f
}

// NewUserFeed builds the feed of a single user's posts.
func NewUserFeed(apiClient api.Client, log logger.Logger, username string, limit int) *Feed {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	f := &Feed{
		api: apiClient,
		log: log.WithComponent("UserFeed"),
	}
	f.pager = NewPager(limit, func(ctx context.Context, page, pageLimit int) ([]domain.Post, error) {
		return apiClient.UserPosts(ctx, username, page, pageLimit)
	})
	return f
}

// NewLikesPager pages through the users who liked a post (the likes modal).
func NewLikesPager(apiClient api.Client, postID string) *Pager[domain.Author] {
	return NewPager(DefaultLikesLimit, func(ctx context.Context, page, limit int) ([]domain.Author, error) {
		return apiClient.PostLikes(ctx, postID, page, limit)
	})
}

// SetSort switches the sort mode, resets pagination and reloads from the
// first page.
func (f *Feed) SetSort(ctx context.Context, sortBy string) error {
	f.mu.Lock()
	if f.sortBy == sortBy {
		f.mu.Unlock()
		return nil
	}
	f.sortBy = sortBy
	f.mu.Unlock()

	f.pager.Reset()
	return f.pager.Refresh(ctx)
}

// Sort returns the current sort mode.
func (f *Feed) Sort() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sortBy
}

// Refresh loads the first page, dropping previously loaded pages.
func (f *Feed) Refresh(ctx context.Context) error {
	return f.pager.Refresh(ctx)
}

// OnSentinel loads the next page when the scroll sentinel becomes visible.
func (f *Feed) OnSentinel(ctx context.Context) (bool, error) {
	return f.pager.OnSentinel(ctx)
}

// Posts returns a copy of the loaded posts.
func (f *Feed) Posts() []domain.Post {
	return f.pager.Items()
}

// HasMore reports whether the server may still have more pages.
func (f *Feed) HasMore() bool {
	return f.pager.HasMore()
}

// SubmitPost validates the draft, uploads its attachments and creates the
// post, prepending the server's document to the feed. The draft stays intact
// on any failure.
func (f *Feed) SubmitPost(ctx context.Context, up uploader.Client, draft *composer.PostDraft) (*domain.Post, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	urls, err := up.UploadAll(ctx, draft.Pending)
	if err != nil {
		return nil, err
	}

	created, err := f.api.CreatePost(ctx, draft.Content, urls)
	if err != nil {
		return nil, err
	}

	f.Prepend(*created)
	return created, nil
}

// Prepend puts a freshly created post at the top of the feed.
func (f *Feed) Prepend(post domain.Post) {
	f.pager.Mutate(func(items []domain.Post) []domain.Post {
		return append([]domain.Post{post}, items...)
	})
}

// ReplacePost swaps in the server's updated copy of a post.
func (f *Feed) ReplacePost(post domain.Post) {
	f.pager.Mutate(func(items []domain.Post) []domain.Post {
		for i := range items {
			if items[i].ID == post.ID {
				items[i] = post
			}
		}
		return items
	})
}

// RemovePost drops a deleted post from the feed.
func (f *Feed) RemovePost(postID string) {
	f.pager.Mutate(func(items []domain.Post) []domain.Post {
		out := items[:0]
		for _, p := range items {
			if p.ID != postID {
				out = append(out, p)
			}
		}
		return out
	})
}

// View builds a PostView bound to this feed, so the view's replacement and
// deletion callbacks keep the feed consistent.
func (f *Feed) View(viewerID string, post domain.Post) *PostView {
	return NewPostView(f.api, f.log, viewerID, post, f.ReplacePost, f.RemovePost)
}
