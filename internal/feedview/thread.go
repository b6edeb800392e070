package feedview

import (
	"context"
	"sync"

	"github.com/dvnguyen/socialapp-client/internal/api"
	"github.com/dvnguyen/socialapp-client/internal/composer"
	"github.com/dvnguyen/socialapp-client/internal/domain"
	"github.com/dvnguyen/socialapp-client/pkg/logger"
)

// CommentThread is the view-model of one post's comment list. Expansion and
// the reply composer are purely local state; every successful mutation
// replaces the whole post document through onPost.
//
// Invariants:
//   - at most one reply composer is open across the whole list;
//   - a node with a like request in flight ignores further like clicks;
//   - the reveal window over the comment list only grows.
type CommentThread struct {
	api    api.Client
	log    logger.Logger
	postID string
	onPost func(domain.Post)
	window *RevealWindow

	mu          sync.Mutex
	expanded    map[string]struct{}
	composerFor string
	pending     map[string]struct{}
	submitting  bool
}

func NewCommentThread(
	apiClient api.Client,
	log logger.Logger,
	postID string,
	commentCount int,
	onPost func(domain.Post),
) *CommentThread {
	t := &CommentThread{
		api:      apiClient,
		log:      log.WithComponent("CommentThread"),
		postID:   postID,
		onPost:   onPost,
		window:   NewRevealWindow(DefaultRevealStep),
		expanded: make(map[string]struct{}),
		pending:  make(map[string]struct{}),
	}
	t.window.SetTotal(commentCount)
	return t
}

// Window exposes the incremental-reveal state over the comment list.
func (t *CommentThread) Window() *RevealWindow {
	return t.window
}

// ToggleReplies flips whether a comment's replies are shown. Local only.
func (t *CommentThread) ToggleReplies(commentID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.expanded[commentID]; ok {
		delete(t.expanded, commentID)
	} else {
		t.expanded[commentID] = struct{}{}
	}
}

// IsExpanded reports whether a comment's replies are shown.
func (t *CommentThread) IsExpanded(commentID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.expanded[commentID]
	return ok
}

// OpenComposer opens the reply composer under the given comment. Only one
// composer exists; opening it elsewhere moves it.
func (t *CommentThread) OpenComposer(commentID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.composerFor = commentID
}

// CloseComposer dismisses the reply composer.
func (t *CommentThread) CloseComposer() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.composerFor = ""
}

// ComposerTarget returns the comment the composer is open under, or "".
func (t *CommentThread) ComposerTarget() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.composerFor
}

// SubmitComment validates and posts a new top-level comment. The caller only
// clears its draft when this returns nil.
func (t *CommentThread) SubmitComment(ctx context.Context, content string) error {
	if err := composer.ValidateComment(content); err != nil {
		return err
	}

	t.mu.Lock()
	if t.submitting {
		t.mu.Unlock()
		return nil
	}
	t.submitting = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.submitting = false
		t.mu.Unlock()
	}()

	updated, err := t.api.AddComment(ctx, t.postID, content)
	if err != nil {
		t.log.Warn("Failed to add comment", "post_id", t.postID, "error", err)
		return err
	}
	t.replacePost(*updated)
	return nil
}

// SubmitReply validates and posts a reply under the comment the composer is
// open for. On success the composer closes and the parent auto-expands so
// the new reply is visible.
func (t *CommentThread) SubmitReply(ctx context.Context, content string) error {
	t.mu.Lock()
	parentID := t.composerFor
	t.mu.Unlock()
	if parentID == "" {
		return composer.ValidateReply("")
	}

	if err := composer.ValidateReply(content); err != nil {
		return err
	}

	t.mu.Lock()
	if t.submitting {
		t.mu.Unlock()
		return nil
	}
	t.submitting = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.submitting = false
		t.mu.Unlock()
	}()

	updated, err := t.api.AddReply(ctx, t.postID, parentID, content)
	if err != nil {
		t.log.Warn("Failed to add reply", "post_id", t.postID, "comment_id", parentID, "error", err)
		return err
	}

	t.mu.Lock()
	t.composerFor = ""
	t.expanded[parentID] = struct{}{}
	t.mu.Unlock()

	t.replacePost(*updated)
	return nil
}

// LikeComment toggles the viewer's like on a top-level comment. Clicks while
// the node's previous request is unresolved are ignored.
func (t *CommentThread) LikeComment(ctx context.Context, commentID string) error {
	if !t.markPending(commentID) {
		return nil
	}
	defer t.clearPending(commentID)

	updated, err := t.api.LikeComment(ctx, t.postID, commentID)
	if err != nil {
		t.log.Warn("Failed to like comment", "comment_id", commentID, "error", err)
		return err
	}
	t.replacePost(*updated)
	return nil
}

// LikeReply toggles the viewer's like on a reply, guarded per reply node.
func (t *CommentThread) LikeReply(ctx context.Context, parentID, replyID string) error {
	if !t.markPending(replyID) {
		return nil
	}
	defer t.clearPending(replyID)

	updated, err := t.api.LikeReply(ctx, t.postID, parentID, replyID)
	if err != nil {
		t.log.Warn("Failed to like reply", "reply_id", replyID, "error", err)
		return err
	}
	t.replacePost(*updated)
	return nil
}

// LikePending reports whether a like request for the node is in flight.
func (t *CommentThread) LikePending(nodeID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.pending[nodeID]
	return ok
}

func (t *CommentThread) markPending(nodeID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.pending[nodeID]; ok {
		return false
	}
	t.pending[nodeID] = struct{}{}
	return true
}

func (t *CommentThread) clearPending(nodeID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.pending, nodeID)
}

func (t *CommentThread) replacePost(post domain.Post) {
	t.window.SetTotal(len(post.Comments))
	if t.onPost != nil {
		t.onPost(post)
	}
}
