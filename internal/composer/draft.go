package composer

import (
	"context"
	"fmt"
	"strings"

	"github.com/dvnguyen/socialapp-client/internal/api"
	"github.com/dvnguyen/socialapp-client/internal/domain"
	"github.com/dvnguyen/socialapp-client/internal/uploader"
	"github.com/dvnguyen/socialapp-client/pkg/errors"
)

// Content limits enforced before anything touches the network. The server
// validates again; this layer only exists to fail fast and keep draft state
// intact.
const (
	MaxPostContent    = 2000
	MaxCommentContent = 500
	MaxReplyContent   = 200
	MaxBio            = 200
	MinUsername       = 3
)

func validationError(code, message string) error {
	return errors.WrapWithCode(errors.ErrValidation, code, message)
}

// PostDraft is the ephemeral state of a post being written or edited.
// Existing holds image URLs already on the post (edit flow); Pending holds
// attachments not yet uploaded. Nothing is cleared until submission succeeds.
type PostDraft struct {
	Content  string
	Existing []string
	Pending  []uploader.File
}

// ImageCount is the total of kept and not-yet-uploaded images.
func (d *PostDraft) ImageCount() int {
	return len(d.Existing) + len(d.Pending)
}

// AddImages attaches files to the draft, rejecting the whole batch when it
// would push the draft over the per-post cap.
func (d *PostDraft) AddImages(files ...uploader.File) error {
	if d.ImageCount()+len(files) > domain.MaxPostImages {
		return validationError(
			"too_many_images",
			fmt.Sprintf("you can upload maximum %d images per post", domain.MaxPostImages),
		)
	}
	d.Pending = append(d.Pending, files...)
	return nil
}

// RemovePending drops a not-yet-uploaded attachment by index.
func (d *PostDraft) RemovePending(i int) {
	if i < 0 || i >= len(d.Pending) {
		return
	}
	d.Pending = append(d.Pending[:i], d.Pending[i+1:]...)
}

// RemoveExisting drops a kept image URL by index.
func (d *PostDraft) RemoveExisting(i int) {
	if i < 0 || i >= len(d.Existing) {
		return
	}
	d.Existing = append(d.Existing[:i], d.Existing[i+1:]...)
}

// Validate checks the draft against the client-side rules.
func (d *PostDraft) Validate() error {
	content := strings.TrimSpace(d.Content)
	if content == "" && d.ImageCount() == 0 {
		return validationError("empty_post", "please write something or add an image")
	}
	if len([]rune(d.Content)) > MaxPostContent {
		return validationError("post_too_long",
			fmt.Sprintf("post content must be at most %d characters", MaxPostContent))
	}
	if d.ImageCount() > domain.MaxPostImages {
		return validationError("too_many_images",
			fmt.Sprintf("you can upload maximum %d images per post", domain.MaxPostImages))
	}
	return nil
}

// ValidateComment checks a new top-level comment body.
func ValidateComment(content string) error {
	if strings.TrimSpace(content) == "" {
		return validationError("empty_comment", "please enter a comment")
	}
	if len([]rune(content)) > MaxCommentContent {
		return validationError("comment_too_long",
			fmt.Sprintf("comment must be at most %d characters", MaxCommentContent))
	}
	return nil
}

// ValidateReply checks a reply body.
func ValidateReply(content string) error {
	if strings.TrimSpace(content) == "" {
		return validationError("empty_reply", "please enter a reply")
	}
	if len([]rune(content)) > MaxReplyContent {
		return validationError("reply_too_long",
			fmt.Sprintf("reply must be at most %d characters", MaxReplyContent))
	}
	return nil
}

// ProfileDraft is the ephemeral state of a profile edit.
type ProfileDraft struct {
	Username string
	Bio      string
	Avatar   *uploader.File
}

// Validate checks the draft against the client-side rules.
func (d *ProfileDraft) Validate() error {
	if strings.TrimSpace(d.Username) == "" {
		return validationError("empty_username", "username is required")
	}
	if len([]rune(d.Username)) < MinUsername {
		return validationError("username_too_short",
			fmt.Sprintf("username must be at least %d characters", MinUsername))
	}
	if strings.TrimSpace(d.Bio) == "" {
		return validationError("empty_bio", "bio is required")
	}
	if len([]rune(d.Bio)) > MaxBio {
		return validationError("bio_too_long",
			fmt.Sprintf("bio must be at most %d characters", MaxBio))
	}
	return nil
}

// Input validates the draft, uploads a new avatar if one was picked and
// returns the payload for the profile update call. The draft stays intact on
// failure.
func (d *ProfileDraft) Input(ctx context.Context, up uploader.Client) (api.ProfileInput, error) {
	if err := d.Validate(); err != nil {
		return api.ProfileInput{}, err
	}

	in := api.ProfileInput{Username: d.Username, Bio: d.Bio}
	if d.Avatar != nil {
		url, err := up.Upload(ctx, *d.Avatar)
		if err != nil {
			return api.ProfileInput{}, err
		}
		in.AvatarURL = url
	}
	return in, nil
}

// SignupDraft is the ephemeral state of the signup form. A profile picture
// is mandatory at signup.
type SignupDraft struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	Bio             string
	Avatar          *uploader.File
}

// Validate checks the draft against the client-side rules.
func (d *SignupDraft) Validate() error {
	if strings.TrimSpace(d.Username) == "" || strings.TrimSpace(d.Email) == "" {
		return validationError("missing_fields", "username and email are required")
	}
	if len([]rune(d.Username)) < MinUsername {
		return validationError("username_too_short",
			fmt.Sprintf("username must be at least %d characters", MinUsername))
	}
	if err := ValidatePassword(d.Password, d.ConfirmPassword); err != nil {
		return err
	}
	if strings.TrimSpace(d.Bio) == "" {
		return validationError("empty_bio", "bio is required")
	}
	if len([]rune(d.Bio)) > MaxBio {
		return validationError("bio_too_long",
			fmt.Sprintf("bio must be at most %d characters", MaxBio))
	}
	if d.Avatar == nil {
		return validationError("missing_avatar", "please select a profile picture")
	}
	return nil
}

// Input validates the draft, uploads the profile picture and returns the
// signup payload. The draft stays intact on failure.
func (d *SignupDraft) Input(ctx context.Context, up uploader.Client) (api.SignupInput, error) {
	if err := d.Validate(); err != nil {
		return api.SignupInput{}, err
	}

	url, err := up.Upload(ctx, *d.Avatar)
	if err != nil {
		return api.SignupInput{}, err
	}

	return api.SignupInput{
		Username:  d.Username,
		Email:     d.Email,
		Password:  d.Password,
		Bio:       d.Bio,
		AvatarURL: url,
	}, nil
}
