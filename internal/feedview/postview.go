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

// PostView owns the authoritative post document for one rendered card.
// Every successful mutation replaces the document wholesale with the server's
// copy; no field is ever patched locally.
type PostView struct {
	api api.Client
	log logger.Logger

	viewerID  string
	onReplace func(domain.Post)
	onDelete  func(postID string)

	mu       sync.Mutex
	post     domain.Post
	liking   bool
	deleting bool
}

func NewPostView(
	apiClient api.Client,
	log logger.Logger,
	viewerID string,
	post domain.Post,
	onReplace func(domain.Post),
	onDelete func(postID string),
) *PostView {
	return &PostView{
		api:       apiClient,
		log:       log.WithComponent("PostView"),
		viewerID:  viewerID,
		post:      post,
		onReplace: onReplace,
		onDelete:  onDelete,
	}
}

// Post returns a copy of the current document.
func (v *PostView) Post() domain.Post {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.post
}

// Replace swaps in the server's copy and notifies the owning collection.
func (v *PostView) Replace(post domain.Post) {
	v.mu.Lock()
	v.post = post
	v.mu.Unlock()

	if v.onReplace != nil {
		v.onReplace(post)
	}
}

// Visible reports whether the post should be rendered for the viewer.
func (v *PostView) Visible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.post.VisibleTo(v.viewerID)
}

// LikedByViewer reports whether the viewer is in the like set.
func (v *PostView) LikedByViewer() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.post.LikedBy(v.viewerID)
}

// OwnPost reports whether the viewer authored the post.
func (v *PostView) OwnPost() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.post.OwnedBy(v.viewerID)
}

// ToggleLike sends the like toggle. A click while the previous toggle is
// still in flight is ignored.
func (v *PostView) ToggleLike(ctx context.Context) error {
	v.mu.Lock()
	if v.liking {
		v.mu.Unlock()
		return nil
	}
	v.liking = true
	postID := v.post.ID
	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		v.liking = false
		v.mu.Unlock()
	}()

	updated, err := v.api.ToggleLike(ctx, postID)
	if err != nil {
		v.log.Warn("Failed to toggle like", "post_id", postID, "error", err)
		return err
	}
	v.Replace(*updated)
	return nil
}

// ToggleHide flips the post's visibility flag.
func (v *PostView) ToggleHide(ctx context.Context) error {
	v.mu.Lock()
	postID := v.post.ID
	v.mu.Unlock()

	updated, err := v.api.ToggleHide(ctx, postID)
	if err != nil {
		v.log.Warn("Failed to toggle visibility", "post_id", postID, "error", err)
		return err
	}
	v.Replace(*updated)
	return nil
}

// Delete removes the post and tells the owning collection to drop it.
func (v *PostView) Delete(ctx context.Context) error {
	v.mu.Lock()
	if v.deleting {
		v.mu.Unlock()
		return nil
	}
	v.deleting = true
	postID := v.post.ID
	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		v.deleting = false
		v.mu.Unlock()
	}()

	if err := v.api.DeletePost(ctx, postID); err != nil {
		v.log.Warn("Failed to delete post", "post_id", postID, "error", err)
		return err
	}
	if v.onDelete != nil {
		v.onDelete(postID)
	}
	return nil
}

// SubmitEdit validates the edit draft, uploads its new attachments and sends
// the update. The draft is left untouched on failure.
func (v *PostView) SubmitEdit(ctx context.Context, up uploader.Client, draft *composer.PostDraft) error {
	if err := draft.Validate(); err != nil {
		return err
	}

	newURLs, err := up.UploadAll(ctx, draft.Pending)
	if err != nil {
		return err
	}
	images := append(append([]string{}, draft.Existing...), newURLs...)

	v.mu.Lock()
	postID := v.post.ID
	v.mu.Unlock()

	updated, err := v.api.UpdatePost(ctx, postID, draft.Content, images)
	if err != nil {
		return err
	}
	v.Replace(*updated)
	return nil
}

// Thread builds the comment view-model bound to this post.
func (v *PostView) Thread() *CommentThread {
	v.mu.Lock()
	postID := v.post.ID
	count := len(v.post.Comments)
	v.mu.Unlock()

	return NewCommentThread(v.api, v.log, postID, count, v.Replace)
}
