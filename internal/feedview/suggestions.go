package feedview

import (
	"context"
	"sync"

	"github.com/dvnguyen/socialapp-client/internal/api"
	"github.com/dvnguyen/socialapp-client/internal/domain"
	"github.com/dvnguyen/socialapp-client/internal/session"
	"github.com/dvnguyen/socialapp-client/pkg/logger"
)

// DefaultSuggestedLimit is how many suggested users the sidebar shows.
const DefaultSuggestedLimit = 3

// Suggestions is the "suggested for you" sidebar list. Following a user
// removes them from the list and bumps the session's following counter.
type Suggestions struct {
	api  api.Client
	log  logger.Logger
	sess session.Manager

	mu    sync.Mutex
	users []domain.SuggestedUser
}

func NewSuggestions(apiClient api.Client, log logger.Logger, sess session.Manager) *Suggestions {
	return &Suggestions{
		api:  apiClient,
		log:  log.WithComponent("Suggestions"),
		sess: sess,
	}
}

// Load fetches the suggestion list. A failure leaves the list empty rather
// than surfacing an error; the sidebar is decorative.
func (s *Suggestions) Load(ctx context.Context, limit int) {
	if limit <= 0 {
		limit = DefaultSuggestedLimit
	}

	users, err := s.api.SuggestedUsers(ctx, limit)
	if err != nil {
		s.log.Warn("Failed to load suggested users", "error", err)
		users = nil
	}

	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
}

// Users returns a copy of the current suggestions.
func (s *Suggestions) Users() []domain.SuggestedUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.SuggestedUser, len(s.users))
	copy(out, s.users)
	return out
}

// Follow follows the given user, drops them from the list and bumps the
// session's following count locally.
func (s *Suggestions) Follow(ctx context.Context, userID string) error {
	if err := s.api.FollowUser(ctx, userID); err != nil {
		s.log.Warn("Failed to follow user", "user_id", userID, "error", err)
		return err
	}

	s.mu.Lock()
	out := s.users[:0]
	for _, u := range s.users {
		if u.ID != userID {
			out = append(out, u)
		}
	}
	s.users = out
	s.mu.Unlock()

	s.sess.Adjust(func(u *domain.SessionUser) {
		u.FollowingCount++
	})
	return nil
}
