package blog

import (
	"time"

	"github.com/lib/pq"
)

// Ownership is an explicit AuthorID/UserID column on every owned row, not a
// storage-hierarchy relationship. Comments and likes reference their post by
// PostID; a post never stores encoded child keys.

type Post struct {
	PostID    string         `gorm:"primaryKey" json:"post_id"`
	AuthorID  string         `gorm:"index;not null" json:"author_id"`
	Subject   string         `gorm:"not null" json:"subject"`
	Entry     string         `gorm:"type:text;not null" json:"entry"`
	Likes     int            `gorm:"default:0" json:"likes"`
	Tags      pq.StringArray `gorm:"type:text[]" json:"tags"`
	Comments  []Comment      `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"last_modified"`
}

type Comment struct {
	CommentID string    `gorm:"primaryKey" json:"comment_id"`
	PostID    string    `gorm:"index;not null" json:"post_id"`
	AuthorID  string    `gorm:"index;not null" json:"author_id"`
	Entry     string    `gorm:"type:text;not null" json:"entry"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"last_modified"`
}

// Like's owner is the liker; the post it lives under belongs to someone else.
// The composite unique index makes "already liked" a constraint, not a query
// convention.
type Like struct {
	LikeID    string    `gorm:"primaryKey" json:"like_id"`
	PostID    string    `gorm:"not null;uniqueIndex:idx_likes_post_user" json:"post_id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_likes_post_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Post) TableName() string    { return "blog.posts" }
func (Comment) TableName() string { return "blog.comments" }
func (Like) TableName() string    { return "blog.likes" }
