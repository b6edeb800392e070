package domain

import "time"

// Author is the denormalized user reference embedded in posts, comments and
// like lists.
type Author struct {
	ID        string `json:"_id"`
	Username  string `json:"username"`
	AvatarURL string `json:"profilePicture"`
}

// SessionUser is the authenticated actor. Exactly one instance exists
// process-wide, owned by the session manager.
type SessionUser struct {
	ID             string    `json:"_id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Bio            string    `json:"bio"`
	AvatarURL      string    `json:"profilePicture"`
	CreatedAt      time.Time `json:"createdAt"`
	PostsCount     int       `json:"postsCount"`
	FollowersCount int       `json:"followersCount"`
	FollowingCount int       `json:"followingCount"`
}

// Ref returns the author reference for the session user.
func (u *SessionUser) Ref() Author {
	return Author{ID: u.ID, Username: u.Username, AvatarURL: u.AvatarURL}
}

// UserProfile is another user's public profile as returned by the API.
type UserProfile struct {
	ID             string    `json:"_id"`
	Username       string    `json:"username"`
	Bio            string    `json:"bio"`
	AvatarURL      string    `json:"profilePicture"`
	CreatedAt      time.Time `json:"createdAt"`
	PostsCount     int       `json:"postsCount"`
	FollowersCount int       `json:"followersCount"`
	FollowingCount int       `json:"followingCount"`
}

// SuggestedUser is an entry of the "suggested for you" list.
type SuggestedUser struct {
	ID            string `json:"_id"`
	Username      string `json:"username"`
	Bio           string `json:"bio"`
	AvatarURL     string `json:"profilePicture"`
	MutualFriends int    `json:"mutualFriends"`
}
