package models

import (
	"time"

	"github.com/vibewham/vibe-wham/backend/internal/geo"
	"gorm.io/gorm"
)

// Post is a piece of content anchored to a geographic point. Location and
// reach radius are immutable after creation.
type Post struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	AuthorID     string    `json:"author_id" gorm:"type:uuid;index"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	Latitude     float64   `json:"-" gorm:"index"`
	Longitude    float64   `json:"-" gorm:"index"`
	ReachRadiusM int       `json:"reach_radius_m"`
	Location     string    `json:"location" gorm:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Point returns the post's anchor as a geo.Point.
func (p *Post) Point() geo.Point {
	return geo.Point{Latitude: p.Latitude, Longitude: p.Longitude}
}

func (p *Post) syncLocation() {
	p.Location = p.Point().EWKT()
}

// AfterFind keeps the wire-format location literal in sync with the stored
// coordinate columns.
func (p *Post) AfterFind(tx *gorm.DB) error {
	p.syncLocation()
	return nil
}

// AfterCreate mirrors AfterFind for freshly inserted rows.
func (p *Post) AfterCreate(tx *gorm.DB) error {
	p.syncLocation()
	return nil
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title        string `json:"title" validate:"required,min=1,max=200"`
	Body         string `json:"body" validate:"required,min=1,max=2000"`
	Location     string `json:"location" validate:"required,ewkt_point"`
	ReachRadiusM int    `json:"reach_radius_m" validate:"required,gt=0"`
}
