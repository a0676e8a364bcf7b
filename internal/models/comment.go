package models

import "time"

// Comment is an append-only reply attached to a post. A nil ParentCommentID
// marks a thread root; otherwise it references another comment on the same
// post, forming a reply forest per post.
type Comment struct {
	ID              string    `json:"id" gorm:"type:uuid;primaryKey"`
	PostID          string    `json:"post_id" gorm:"type:uuid;index"`
	AuthorID        string    `json:"author_id" gorm:"type:uuid;index"`
	ParentCommentID *string   `json:"parent_comment_id" gorm:"type:uuid;index"`
	Body            string    `json:"body"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateCommentRequest defines the request body for adding a comment to a post
type CreateCommentRequest struct {
	Body            string  `json:"body" validate:"required,min=1,max=1000"`
	ParentCommentID *string `json:"parent_comment_id,omitempty" validate:"omitempty,uuid"`
}
