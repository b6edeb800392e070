package feedview

import (
	"context"

	"github.com/dvnguyen/socialapp-client/internal/api"
	"github.com/dvnguyen/socialapp-client/internal/domain"
	"github.com/dvnguyen/socialapp-client/pkg/logger"
)

func testLogger() logger.Logger {
	return logger.New(logger.Opts{})
}

// fakeAPI implements the slice of the API surface a test cares about through
// function fields; everything else panics via the embedded nil interface.
type fakeAPI struct {
	api.Client

	feedFn       func(ctx context.Context, q api.FeedQuery) ([]domain.Post, error)
	userPostsFn  func(ctx context.Context, username string, page, limit int) ([]domain.Post, error)
	createFn     func(ctx context.Context, content string, images []string) (*domain.Post, error)
	updateFn     func(ctx context.Context, postID, content string, images []string) (*domain.Post, error)
	deleteFn     func(ctx context.Context, postID string) error
	toggleLikeFn func(ctx context.Context, postID string) (*domain.Post, error)
	toggleHideFn func(ctx context.Context, postID string) (*domain.Post, error)
	postLikesFn  func(ctx context.Context, postID string, page, limit int) ([]domain.Author, error)

	addCommentFn  func(ctx context.Context, postID, content string) (*domain.Post, error)
	addReplyFn    func(ctx context.Context, postID, commentID, content string) (*domain.Post, error)
	likeCommentFn func(ctx context.Context, postID, commentID string) (*domain.Post, error)
	likeReplyFn   func(ctx context.Context, postID, parentID, replyID string) (*domain.Post, error)

	suggestedFn func(ctx context.Context, limit int) ([]domain.SuggestedUser, error)
	searchFn    func(ctx context.Context, query string, limit int) ([]domain.UserProfile, error)
	followFn    func(ctx context.Context, userID string) error
}

func (f *fakeAPI) Feed(ctx context.Context, q api.FeedQuery) ([]domain.Post, error) {
	return f.feedFn(ctx, q)
}

func (f *fakeAPI) UserPosts(ctx context.Context, username string, page, limit int) ([]domain.Post, error) {
	return f.userPostsFn(ctx, username, page, limit)
}

func (f *fakeAPI) CreatePost(ctx context.Context, content string, images []string) (*domain.Post, error) {
	return f.createFn(ctx, content, images)
}

func (f *fakeAPI) UpdatePost(ctx context.Context, postID, content string, images []string) (*domain.Post, error) {
	return f.updateFn(ctx, postID, content, images)
}

func (f *fakeAPI) DeletePost(ctx context.Context, postID string) error {
	return f.deleteFn(ctx, postID)
}

func (f *fakeAPI) ToggleLike(ctx context.Context, postID string) (*domain.Post, error) {
	return f.toggleLikeFn(ctx, postID)
}

func (f *fakeAPI) ToggleHide(ctx context.Context, postID string) (*domain.Post, error) {
	return f.toggleHideFn(ctx, postID)
}

func (f *fakeAPI) PostLikes(ctx context.Context, postID string, page, limit int) ([]domain.Author, error) {
	return f.postLikesFn(ctx, postID, page, limit)
}

func (f *fakeAPI) AddComment(ctx context.Context, postID, content string) (*domain.Post, error) {
	return f.addCommentFn(ctx, postID, content)
}

func (f *fakeAPI) AddReply(ctx context.Context, postID, commentID, content string) (*domain.Post, error) {
	return f.addReplyFn(ctx, postID, commentID, content)
}

func (f *fakeAPI) LikeComment(ctx context.Context, postID, commentID string) (*domain.Post, error) {
	return f.likeCommentFn(ctx, postID, commentID)
}

func (f *fakeAPI) LikeReply(ctx context.Context, postID, parentID, replyID string) (*domain.Post, error) {
	return f.likeReplyFn(ctx, postID, parentID, replyID)
}

func (f *fakeAPI) SuggestedUsers(ctx context.Context, limit int) ([]domain.SuggestedUser, error) {
	return f.suggestedFn(ctx, limit)
}

func (f *fakeAPI) SearchUsers(ctx context.Context, query string, limit int) ([]domain.UserProfile, error) {
	return f.searchFn(ctx, query, limit)
}

func (f *fakeAPI) FollowUser(ctx context.Context, userID string) error {
	return f.followFn(ctx, userID)
}
