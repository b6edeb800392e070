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

type profileResponse struct {
	Status string              `json:"status"`
	User   *domain.UserProfile `json:"user"`
}

type sessionUserResponse struct {
	Status string              `json:"status"`
	User   *domain.SessionUser `json:"user"`
}

type suggestedResponse struct {
	Status string                 `json:"status"`
	Users  []domain.SuggestedUser `json:"users"`
}

type searchResponse struct {
	Status string               `json:"status"`
	Users  []domain.UserProfile `json:"users"`
}

func (a *ApiImpl) Profile(ctx context.Context, username string) (*domain.UserProfile, error) {
	var resp profileResponse
	path := "/users/profile/" + url.PathEscape(username)
	if err := a.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, errors.New("profile response missing user")
	}
	return resp.User, nil
}

func (a *ApiImpl) UpdateProfile(ctx context.Context, in api.ProfileInput) (*domain.SessionUser, error) {
	var resp sessionUserResponse
	if err := a.do(ctx, http.MethodPut, "/users/profile", nil, in, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, errors.New("profile update response missing user")
	}
	return resp.User, nil
}

func (a *ApiImpl) SuggestedUsers(ctx context.Context, limit int) ([]domain.SuggestedUser, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	var resp suggestedResponse
	if err := a.do(ctx, http.MethodGet, "/users/suggested", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (a *ApiImpl) SearchUsers(ctx context.Context, query string, limit int) ([]domain.UserProfile, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))

	var resp searchResponse
	if err := a.do(ctx, http.MethodGet, "/users/search", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (a *ApiImpl) FollowUser(ctx context.Context, userID string) error {
	return a.do(ctx, http.MethodPost, "/users/"+url.PathEscape(userID)+"/follow", nil, nil, nil)
}
