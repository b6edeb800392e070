package apiimpl

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dvnguyen/socialapp-client/internal/api"
	"github.com/dvnguyen/socialapp-client/internal/domain"
	"github.com/dvnguyen/socialapp-client/pkg/errors"
)

type postResponse struct {
	Status string       `json:"status"`
	Post   *domain.Post `json:"post"`
}

type postListResponse struct {
	Status string        `json:"status"`
	Posts  []domain.Post `json:"posts"`
}

type likesResponse struct {
	Status string          `json:"status"`
	Likes  []domain.Author `json:"likes"`
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return q
}

func (a *ApiImpl) Feed(ctx context.Context, query api.FeedQuery) ([]domain.Post, error) {
	q := pageQuery(query.Page, query.Limit)
	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = api.SortNewest
	}
	q.Set("sortBy", sortBy)

	var resp postListResponse
	if err := a.do(ctx, http.MethodGet, "/posts", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Posts, nil
}

func (a *ApiImpl) UserPosts(ctx context.Context, username string, page, limit int) ([]domain.Post, error) {
	var resp postListResponse
	path := "/posts/user/" + url.PathEscape(username)
	if err := a.do(ctx, http.MethodGet, path, pageQuery(page, limit), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Posts, nil
}

func (a *ApiImpl) CreatePost(ctx context.Context, content string, images []string) (*domain.Post, error) {
	body := map[string]any{"content": content, "images": images}

	var resp postResponse
	if err := a.do(ctx, http.MethodPost, "/posts", nil, body, &resp); err != nil {
		return nil, err
	}
	return requirePost(resp.Post)
}

func (a *ApiImpl) UpdatePost(ctx context.Context, postID, content string, images []string) (*domain.Post, error) {
	body := map[string]any{"content": content, "images": images}

	var resp postResponse
	if err := a.do(ctx, http.MethodPut, "/posts/"+url.PathEscape(postID), nil, body, &resp); err != nil {
		return nil, err
	}
	return requirePost(resp.Post)
}

func (a *ApiImpl) DeletePost(ctx context.Context, postID string) error {
	return a.do(ctx, http.MethodDelete, "/posts/"+url.PathEscape(postID), nil, nil, nil)
}

func (a *ApiImpl) ToggleLike(ctx context.Context, postID string) (*domain.Post, error) {
	var resp postResponse
	if err := a.do(ctx, http.MethodPost, "/posts/"+url.PathEscape(postID)+"/like", nil, nil, &resp); err != nil {
		return nil, err
	}
	return requirePost(resp.Post)
}

func (a *ApiImpl) ToggleHide(ctx context.Context, postID string) (*domain.Post, error) {
	var resp postResponse
	if err := a.do(ctx, http.MethodPatch, "/posts/"+url.PathEscape(postID)+"/hide", nil, nil, &resp); err != nil {
		return nil, err
	}
	return requirePost(resp.Post)
}

func (a *ApiImpl) PostLikes(ctx context.Context, postID string, page, limit int) ([]domain.Author, error) {
	var resp likesResponse
	path := "/posts/" + url.PathEscape(postID) + "/likes"
	if err := a.do(ctx, http.MethodGet, path, pageQuery(page, limit), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Likes, nil
}

func requirePost(p *domain.Post) (*domain.Post, error) {
	if p == nil {
		return nil, errors.New("response missing post document")
	}
	return p, nil
}
