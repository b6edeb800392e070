package sessionimpl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvnguyen/socialapp-client/internal/api"
	"github.com/dvnguyen/socialapp-client/internal/domain"
	"github.com/dvnguyen/socialapp-client/internal/session"
	"github.com/dvnguyen/socialapp-client/pkg/config"
	"github.com/dvnguyen/socialapp-client/pkg/logger"
)

// fakeAPI stubs the endpoints the session manager touches.
type fakeAPI struct {
	api.Client

	hook     func()
	meFn     func(ctx context.Context) (*domain.SessionUser, error)
	loginFn  func(ctx context.Context, email, password string) (*api.Session, error)
	signupFn func(ctx context.Context, in api.SignupInput) (*api.Session, error)
	updateFn func(ctx context.Context, in api.ProfileInput) (*domain.SessionUser, error)
}

func (f *fakeAPI) SetUnauthorizedHook(fn func()) { f.hook = fn }

func (f *fakeAPI) Me(ctx context.Context) (*domain.SessionUser, error) {
	return f.meFn(ctx)
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*api.Session, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeAPI) Signup(ctx context.Context, in api.SignupInput) (*api.Session, error) {
	return f.signupFn(ctx, in)
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, in api.ProfileInput) (*domain.SessionUser, error) {
	return f.updateFn(ctx, in)
}

func newTestSession(t *testing.T, stub *fakeAPI) (*SessionImpl, *session.TokenStore, string) {
	t.Helper()

	tokenPath := filepath.Join(t.TempDir(), "session-token")
	cfg := &config.Config{}
	cfg.Session.TokenPath = tokenPath

	tokens := session.NewTokenStore(cfg)
	s := New(Opts{
		Api:    stub,
		Tokens: tokens,
		Logger: logger.New(logger.Opts{}),
	})
	return s, tokens, tokenPath
}

func TestLoginPersistsTokenAndUser(t *testing.T) {
	stub := &fakeAPI{
		loginFn: func(_ context.Context, email, password string) (*api.Session, error) {
			assert.Equal(t, "anna@example.com", email)
			return &api.Session{
				Token: "tok-1",
				User:  &domain.SessionUser{ID: "u1", Username: "anna"},
			}, nil
		},
	}
	s, tokens, tokenPath := newTestSession(t, stub)

	user, err := s.Login(context.Background(), "anna@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "anna", user.Username)
	assert.True(t, s.Authenticated())
	assert.Equal(t, "tok-1", tokens.Token())

	data, err := os.ReadFile(tokenPath)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", string(data))
}

func TestRestoreVerifiesStoredToken(t *testing.T) {
	stub := &fakeAPI{
		meFn: func(_ context.Context) (*domain.SessionUser, error) {
			return &domain.SessionUser{ID: "u1", Username: "anna"}, nil
		},
	}
	s, tokens, _ := newTestSession(t, stub)
	require.NoError(t, tokens.Save("stored-token"))

	require.NoError(t, s.Restore(context.Background()))
	assert.True(t, s.Authenticated())
	assert.Equal(t, "anna", s.Current().Username)
}

func TestRestoreWithoutTokenFails(t *testing.T) {
	s, _, _ := newTestSession(t, &fakeAPI{})

	require.Error(t, s.Restore(context.Background()))
	assert.False(t, s.Authenticated())
}

func TestRestoreDiscardsRejectedToken(t *testing.T) {
	stub := &fakeAPI{
		meFn: func(_ context.Context) (*domain.SessionUser, error) {
			return nil, fmt.Errorf("unauthorized")
		},
	}
	s, tokens, tokenPath := newTestSession(t, stub)
	require.NoError(t, tokens.Save("stale-token"))

	require.Error(t, s.Restore(context.Background()))
	assert.False(t, s.Authenticated())
	assert.Empty(t, tokens.Token())

	_, err := os.Stat(tokenPath)
	assert.True(t, os.IsNotExist(err), "rejected token file is removed")
}

func TestForcedLogoutOn401(t *testing.T) {
	stub := &fakeAPI{
		loginFn: func(_ context.Context, _, _ string) (*api.Session, error) {
			return &api.Session{Token: "tok", User: &domain.SessionUser{ID: "u1"}}, nil
		},
	}
	s, tokens, _ := newTestSession(t, stub)

	_, err := s.Login(context.Background(), "anna@example.com", "secret1")
	require.NoError(t, err)
	require.NotNil(t, stub.hook, "constructor registers the 401 hook")

	stub.hook()
	assert.False(t, s.Authenticated())
	assert.Empty(t, tokens.Token())
}

func TestLogout(t *testing.T) {
	stub := &fakeAPI{
		loginFn: func(_ context.Context, _, _ string) (*api.Session, error) {
			return &api.Session{Token: "tok", User: &domain.SessionUser{ID: "u1"}}, nil
		},
	}
	s, tokens, _ := newTestSession(t, stub)

	_, err := s.Login(context.Background(), "anna@example.com", "secret1")
	require.NoError(t, err)

	s.Logout()
	assert.False(t, s.Authenticated())
	assert.Nil(t, s.Current())
	assert.Empty(t, tokens.Token())
}

func TestUpdateProfileKeepsEmail(t *testing.T) {
	stub := &fakeAPI{
		loginFn: func(_ context.Context, _, _ string) (*api.Session, error) {
			return &api.Session{
				Token: "tok",
				User:  &domain.SessionUser{ID: "u1", Username: "anna", Email: "anna@example.com"},
			}, nil
		},
		updateFn: func(_ context.Context, in api.ProfileInput) (*domain.SessionUser, error) {
			// The profile endpoint does not echo the email back.
			return &domain.SessionUser{ID: "u1", Username: in.Username, Bio: in.Bio}, nil
		},
	}
	s, _, _ := newTestSession(t, stub)

	_, err := s.Login(context.Background(), "anna@example.com", "secret1")
	require.NoError(t, err)

	user, err := s.UpdateProfile(context.Background(), api.ProfileInput{Username: "anna_v2", Bio: "new bio"})
	require.NoError(t, err)
	assert.Equal(t, "anna_v2", user.Username)
	assert.Equal(t, "anna@example.com", user.Email, "missing email is carried over")
}

func TestUpdateProfileRequiresAuth(t *testing.T) {
	s, _, _ := newTestSession(t, &fakeAPI{})

	_, err := s.UpdateProfile(context.Background(), api.ProfileInput{Username: "x"})
	assert.ErrorIs(t, err, session.ErrNotAuthenticated)
}

func TestAdjust(t *testing.T) {
	stub := &fakeAPI{
		loginFn: func(_ context.Context, _, _ string) (*api.Session, error) {
			return &api.Session{Token: "tok", User: &domain.SessionUser{ID: "u1", PostsCount: 2}}, nil
		},
	}
	s, _, _ := newTestSession(t, stub)

	_, err := s.Login(context.Background(), "anna@example.com", "secret1")
	require.NoError(t, err)

	s.Adjust(func(u *domain.SessionUser) { u.PostsCount++ })
	assert.Equal(t, 3, s.Current().PostsCount)

	// Current returns a copy; mutating it must not leak back.
	s.Current().PostsCount = 99
	assert.Equal(t, 3, s.Current().PostsCount)
}
