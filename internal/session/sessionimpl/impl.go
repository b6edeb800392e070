package sessionimpl

import (
	"context"
	"fmt"
	"sync"

	"github.com/dvnguyen/socialapp-client/internal/api"
	"github.com/dvnguyen/socialapp-client/internal/domain"
	"github.com/dvnguyen/socialapp-client/internal/session"
	"github.com/dvnguyen/socialapp-client/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Api    api.Client
	Tokens *session.TokenStore
	Logger logger.Logger
}

type SessionImpl struct {
	api    api.Client
	tokens *session.TokenStore
	logger logger.Logger

	mu   sync.RWMutex
	user *domain.SessionUser
}

func New(opts Opts) *SessionImpl {
	s := &SessionImpl{
		api:    opts.Api,
		tokens: opts.Tokens,
		logger: opts.Logger.WithComponent("Session"),
	}

	// Any 401 anywhere in the client tears the session down, the same way the
	// response interceptor does in a browser client.
	opts.Api.SetUnauthorizedHook(s.forceLogout)

	return s
}

var _ session.Manager = (*SessionImpl)(nil)

func (s *SessionImpl) Current() *domain.SessionUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *SessionImpl) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *SessionImpl) Restore(ctx context.Context) error {
	if err := s.tokens.Load(); err != nil {
		return fmt.Errorf("no stored session: %w", err)
	}
	if s.tokens.Token() == "" {
		return session.ErrNotAuthenticated
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		s.logger.Warn("Stored token rejected, discarding it", "error", err)
		if clearErr := s.tokens.Clear(); clearErr != nil {
			s.logger.Error("Failed to clear rejected token", "error", clearErr)
		}
		return fmt.Errorf("failed to verify stored token: %w", err)
	}

	s.setUser(user)
	s.logger.Info("Session restored", "username", user.Username)
	return nil
}

func (s *SessionImpl) Login(ctx context.Context, email, password string) (*domain.SessionUser, error) {
	sess, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Save(sess.Token); err != nil {
		s.logger.Error("Failed to persist session token", "error", err)
	}
	s.setUser(sess.User)

	s.logger.Info("Logged in", "username", sess.User.Username)
	return s.Current(), nil
}

func (s *SessionImpl) Signup(ctx context.Context, in api.SignupInput) (*domain.SessionUser, error) {
	sess, err := s.api.Signup(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Save(sess.Token); err != nil {
		s.logger.Error("Failed to persist session token", "error", err)
	}
	s.setUser(sess.User)

	s.logger.Info("Signed up", "username", sess.User.Username)
	return s.Current(), nil
}

func (s *SessionImpl) Logout() {
	s.forceLogout()
	s.logger.Info("Logged out")
}

func (s *SessionImpl) UpdateProfile(ctx context.Context, in api.ProfileInput) (*domain.SessionUser, error) {
	if !s.Authenticated() {
		return nil, session.ErrNotAuthenticated
	}

	user, err := s.api.UpdateProfile(ctx, in)
	if err != nil {
		return nil, err
	}

	// Replace with the server's copy wholesale, keeping fields the profile
	// endpoint does not echo back.
	s.mu.Lock()
	if s.user != nil && user.Email == "" {
		user.Email = s.user.Email
	}
	s.user = user
	s.mu.Unlock()

	return s.Current(), nil
}

func (s *SessionImpl) Adjust(patch func(*domain.SessionUser)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user != nil {
		patch(s.user)
	}
}

func (s *SessionImpl) setUser(u *domain.SessionUser) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}

func (s *SessionImpl) forceLogout() {
	if err := s.tokens.Clear(); err != nil {
		s.logger.Error("Failed to clear session token", "error", err)
	}
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}
