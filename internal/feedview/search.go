package feedview

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dvnguyen/socialapp-client/internal/api"
	"github.com/dvnguyen/socialapp-client/internal/domain"
	"github.com/dvnguyen/socialapp-client/pkg/logger"
)

const (
	// DefaultSearchDelay is the debounce interval between keystrokes and the
	// search request.
	DefaultSearchDelay = 300 * time.Millisecond
	// DefaultSearchLimit caps the dropdown result count.
	DefaultSearchLimit = 8
	// MinSearchQuery is the shortest query that triggers a request.
	MinSearchQuery = 2
)

// Search is the debounced search-as-you-type box in the navigation bar.
type Search struct {
	api       api.Client
	log       logger.Logger
	delay     time.Duration
	limit     int
	onResults func([]domain.UserProfile)

	mu      sync.Mutex
	timer   *time.Timer
	query   string
	results []domain.UserProfile
}

func NewSearch(apiClient api.Client, log logger.Logger, onResults func([]domain.UserProfile)) *Search {
	return &Search{
		api:       apiClient,
		log:       log.WithComponent("UserSearch"),
		delay:     DefaultSearchDelay,
		limit:     DefaultSearchLimit,
		onResults: onResults,
	}
}

// SetQuery records a keystroke. Queries shorter than the minimum clear the
// results; anything longer schedules a request after the debounce interval,
// cancelling whatever was scheduled before.
func (s *Search) SetQuery(ctx context.Context, query string) {
	trimmed := strings.TrimSpace(query)

	s.mu.Lock()
	s.query = trimmed
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	if len([]rune(trimmed)) < MinSearchQuery {
		s.results = nil
		s.mu.Unlock()
		s.notify(nil)
		return
	}

	s.timer = time.AfterFunc(s.delay, func() {
		s.run(ctx, trimmed)
	})
	s.mu.Unlock()
}

func (s *Search) run(ctx context.Context, query string) {
	users, err := s.api.SearchUsers(ctx, query, s.limit)
	if err != nil {
		s.log.Warn("User search failed", "query", query, "error", err)
		return
	}

	s.mu.Lock()
	// A newer keystroke may have changed the query while this request was in
	// flight; its results would be stale.
	if s.query != query {
		s.mu.Unlock()
		return
	}
	s.results = users
	s.mu.Unlock()

	s.notify(users)
}

// Results returns a copy of the current dropdown entries.
func (s *Search) Results() []domain.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.UserProfile, len(s.results))
	copy(out, s.results)
	return out
}

// Close cancels any scheduled request.
func (s *Search) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Search) notify(users []domain.UserProfile) {
	if s.onResults != nil {
		s.onResults(users)
	}
}
