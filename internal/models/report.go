package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report is an append-only abuse report against a post or comment, stored in
// MongoDB. The same reporter may report the same target any number of times;
// acting on reports is a moderation concern outside this service.
type Report struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ReporterID string             `json:"reporter_id" bson:"reporter_id"`
	TargetType string             `json:"target_type" bson:"target_type"`
	TargetID   string             `json:"target_id" bson:"target_id"`
	Reason     string             `json:"reason" bson:"reason"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}

// CreateReportRequest defines the request body for reporting a post or comment
type CreateReportRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=500"`
}
