package models

import "time"

// Vote target types
const (
	TargetTypePost    = "post"
	TargetTypeComment = "comment"
)

// Vote is a user's +1/-1 on a post or comment. At most one row may exist per
// (user, target type, target id); a repeat vote replaces value and timestamp.
type Vote struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     string    `json:"user_id" gorm:"type:uuid;uniqueIndex:idx_votes_user_target"`
	TargetType string    `json:"target_type" gorm:"uniqueIndex:idx_votes_user_target"`
	TargetID   string    `json:"target_id" gorm:"type:uuid;uniqueIndex:idx_votes_user_target"`
	VoteType   int       `json:"vote_type"`
	CreatedAt  time.Time `json:"created_at"`
}

// CastVoteRequest defines the request body for voting on a post or comment
type CastVoteRequest struct {
	VoteType int `json:"vote_type" validate:"required,oneof=1 -1"`
}
