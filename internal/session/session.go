package session

import (
	"context"
	"errors"

	"github.com/dvnguyen/socialapp-client/internal/api"
	"github.com/dvnguyen/socialapp-client/internal/domain"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// Manager owns the single authenticated user for the whole process.
// All components read identity through it; mutation happens only through the
// designated operations below. A 401 from any API call tears the session down.
type Manager interface {
	// Current returns a copy of the session user, or nil when logged out.
	Current() *domain.SessionUser
	Authenticated() bool

	// Restore loads the persisted token and verifies it against the API.
	// On any failure the stored credential is discarded and the process
	// continues logged out.
	Restore(ctx context.Context) error

	Login(ctx context.Context, email, password string) (*domain.SessionUser, error)
	Signup(ctx context.Context, in api.SignupInput) (*domain.SessionUser, error)
	Logout()

	// UpdateProfile submits the profile edit and replaces the session user
	// with the server's copy.
	UpdateProfile(ctx context.Context, in api.ProfileInput) (*domain.SessionUser, error)

	// Adjust applies a local patch to denormalized counters (post created,
	// user followed). Authoritative fields still only come from the API.
	Adjust(patch func(*domain.SessionUser))
}
