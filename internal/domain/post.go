package domain

import "time"

// MaxPostImages is the hard cap on image attachments per post.
const MaxPostImages = 5

// Preview lengths used by the feed card and the most-liked-comment line.
const (
	PostPreviewLength    = 150
	CommentPreviewLength = 80
)

// Reply is a second-level comment. It deliberately has no Replies field:
// the thread depth limit (Post -> Comment -> Reply) is enforced by the type
// system, not by convention.
type Reply struct {
	ID        string    `json:"_id"`
	Content   string    `json:"content"`
	Author    Author    `json:"author"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

// Comment is a top-level comment on a post.
type Comment struct {
	ID        string    `json:"_id"`
	Content   string    `json:"content"`
	Author    Author    `json:"author"`
	Likes     []string  `json:"likes"`
	Replies   []Reply   `json:"replies"`
	CreatedAt time.Time `json:"createdAt"`
}

// Post is the authoritative post document. The server owns every field;
// clients replace the whole value on each mutation and never patch it.
type Post struct {
	ID        string    `json:"_id"`
	Content   string    `json:"content"`
	Images    []string  `json:"images"`
	Author    Author    `json:"author"`
	Likes     []string  `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Hidden    bool      `json:"isHidden"`
}

// LikedBy reports whether the given user id is in the post's like set.
func (p *Post) LikedBy(userID string) bool {
	return containsID(p.Likes, userID)
}

// OwnedBy reports whether the post belongs to the given user.
func (p *Post) OwnedBy(userID string) bool {
	return p.Author.ID == userID
}

// VisibleTo reports whether the post should be shown to the given viewer.
// Hidden posts stay visible to their owner only.
func (p *Post) VisibleTo(userID string) bool {
	return !p.Hidden || p.OwnedBy(userID)
}

// Edited reports whether the post was changed after creation.
func (p *Post) Edited() bool {
	return !p.UpdatedAt.Equal(p.CreatedAt)
}

// MostLikedComment returns the comment with the most likes, for the preview
// under the engagement stats. It returns nil when the post has no comments
// or when no comment has any likes; the preview is simply not shown then.
func (p *Post) MostLikedComment() *Comment {
	var best *Comment
	for i := range p.Comments {
		c := &p.Comments[i]
		if len(c.Likes) == 0 {
			continue
		}
		if best == nil || len(c.Likes) > len(best.Likes) {
			best = c
		}
	}
	return best
}

// LikedBy reports whether the given user id is in the comment's like set.
func (c *Comment) LikedBy(userID string) bool {
	return containsID(c.Likes, userID)
}

// LikedBy reports whether the given user id is in the reply's like set.
func (r *Reply) LikedBy(userID string) bool {
	return containsID(r.Likes, userID)
}

// Preview shortens content for inline previews, appending an ellipsis when
// truncated.
func Preview(content string, max int) string {
	if max <= 0 || len(content) <= max {
		return content
	}
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max]) + "..."
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
