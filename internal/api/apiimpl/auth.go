package apiimpl

import (
	"context"
	"net/http"

	"github.com/dvnguyen/socialapp-client/internal/api"
	"github.com/dvnguyen/socialapp-client/internal/domain"
	"github.com/dvnguyen/socialapp-client/pkg/errors"
)

type authResponse struct {
	Status string              `json:"status"`
	Token  string              `json:"token"`
	User   *domain.SessionUser `json:"user"`
}

type otpResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	ResetToken string `json:"resetToken"`
}

func (a *ApiImpl) Signup(ctx context.Context, in api.SignupInput) (*api.Session, error) {
	var resp authResponse
	if err := a.do(ctx, http.MethodPost, "/auth/signup", nil, in, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil || resp.Token == "" {
		return nil, errors.New("signup response missing token or user")
	}
	return &api.Session{Token: resp.Token, User: resp.User}, nil
}

func (a *ApiImpl) Login(ctx context.Context, email, password string) (*api.Session, error) {
	body := map[string]string{"email": email, "password": password}

	var resp authResponse
	if err := a.do(ctx, http.MethodPost, "/auth/login", nil, body, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil || resp.Token == "" {
		return nil, errors.New("login response missing token or user")
	}
	return &api.Session{Token: resp.Token, User: resp.User}, nil
}

func (a *ApiImpl) Me(ctx context.Context) (*domain.SessionUser, error) {
	var resp authResponse
	if err := a.do(ctx, http.MethodGet, "/auth/me", nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, errors.New("me response missing user")
	}
	return resp.User, nil
}

func (a *ApiImpl) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return a.do(ctx, http.MethodPost, "/auth/forgot-password", nil, body, nil)
}

func (a *ApiImpl) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	body := map[string]string{"email": email, "otp": otp}

	var resp otpResponse
	if err := a.do(ctx, http.MethodPost, "/auth/verify-otp", nil, body, &resp); err != nil {
		return "", err
	}
	if resp.ResetToken == "" {
		return "", errors.New("verify-otp response missing reset token")
	}
	return resp.ResetToken, nil
}

func (a *ApiImpl) ResetPassword(ctx context.Context, email, resetToken, newPassword string) error {
	body := map[string]string{
		"email":       email,
		"token":       resetToken,
		"newPassword": newPassword,
	}
	return a.do(ctx, http.MethodPost, "/auth/reset-password", nil, body, nil)
}
