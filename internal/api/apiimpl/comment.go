package apiimpl

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dvnguyen/socialapp-client/internal/domain"
)

func (a *ApiImpl) AddComment(ctx context.Context, postID, content string) (*domain.Post, error) {
	body := map[string]string{"content": content}

	var resp postResponse
	path := "/posts/" + url.PathEscape(postID) + "/comments"
	if err := a.do(ctx, http.MethodPost, path, nil, body, &resp); err != nil {
		return nil, err
	}
	return requirePost(resp.Post)
}

func (a *ApiImpl) AddReply(ctx context.Context, postID, commentID, content string) (*domain.Post, error) {
	body := map[string]string{"content": content}

	var resp postResponse
	path := "/posts/" + url.PathEscape(postID) + "/comments/" + url.PathEscape(commentID) + "/replies"
	if err := a.do(ctx, http.MethodPost, path, nil, body, &resp); err != nil {
		return nil, err
	}
	return requirePost(resp.Post)
}

func (a *ApiImpl) LikeComment(ctx context.Context, postID, commentID string) (*domain.Post, error) {
	var resp postResponse
	path := "/posts/" + url.PathEscape(postID) + "/comments/" + url.PathEscape(commentID) + "/like"
	if err := a.do(ctx, http.MethodPost, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return requirePost(resp.Post)
}

func (a *ApiImpl) LikeReply(ctx context.Context, postID, parentID, replyID string) (*domain.Post, error) {
	var resp postResponse
	path := "/posts/" + url.PathEscape(postID) +
		"/comments/" + url.PathEscape(parentID) +
		"/replies/" + url.PathEscape(replyID) + "/like"
	if err := a.do(ctx, http.MethodPost, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return requirePost(resp.Post)
}
