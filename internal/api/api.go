package api

import (
	"context"

	"github.com/dvnguyen/socialapp-client/internal/domain"
)

// SortBy values accepted by the feed endpoint.
const (
	SortNewest       = "createdAt"
	SortMostLiked    = "likes"
	SortMostComments = "comments"
)

// TokenSource supplies the bearer credential attached to outgoing requests.
type TokenSource interface {
	Token() string
}

type SignupInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"profilePicture"`
}

type ProfileInput struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"profilePicture,omitempty"`
}

type FeedQuery struct {
	Page   int
	Limit  int
	SortBy string
}

// Session is the credential + user pair returned by login and signup.
type Session struct {
	Token string
	User  *domain.SessionUser
}

// Client is the full surface of the external REST API the app talks to.
// Every mutation on a post returns the entire updated Post document; callers
// are expected to replace their local copy wholesale.
type Client interface {
	// SetUnauthorizedHook registers the callback invoked whenever any request
	// comes back 401. The session manager uses it to force a logout.
	SetUnauthorizedHook(fn func())

	Signup(ctx context.Context, in SignupInput) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Me(ctx context.Context) (*domain.SessionUser, error)
	ForgotPassword(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) (resetToken string, err error)
	ResetPassword(ctx context.Context, email, resetToken, newPassword string) error

	Feed(ctx context.Context, q FeedQuery) ([]domain.Post, error)
	UserPosts(ctx context.Context, username string, page, limit int) ([]domain.Post, error)
	CreatePost(ctx context.Context, content string, images []string) (*domain.Post, error)
	UpdatePost(ctx context.Context, postID, content string, images []string) (*domain.Post, error)
	DeletePost(ctx context.Context, postID string) error
	ToggleLike(ctx context.Context, postID string) (*domain.Post, error)
	ToggleHide(ctx context.Context, postID string) (*domain.Post, error)
	PostLikes(ctx context.Context, postID string, page, limit int) ([]domain.Author, error)

	AddComment(ctx context.Context, postID, content string) (*domain.Post, error)
	AddReply(ctx context.Context, postID, commentID, content string) (*domain.Post, error)
	LikeComment(ctx context.Context, postID, commentID string) (*domain.Post, error)
	LikeReply(ctx context.Context, postID, parentID, replyID string) (*domain.Post, error)

	Profile(ctx context.Context, username string) (*domain.UserProfile, error)
	UpdateProfile(ctx context.Context, in ProfileInput) (*domain.SessionUser, error)
	SuggestedUsers(ctx context.Context, limit int) ([]domain.SuggestedUser, error)
	SearchUsers(ctx context.Context, query string, limit int) ([]domain.UserProfile, error)
	FollowUser(ctx context.Context, userID string) error
}
