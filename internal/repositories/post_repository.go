package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vibewham/vibe-wham/backend/internal/geo"
	"github.com/vibewham/vibe-wham/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound       = errors.New("post not found")
	ErrInvalidReachRadius = errors.New("reach_radius_m must be a positive integer")
	ErrInvalidCoordinates = errors.New("location coordinates out of range")
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	FindWithinBounds(ctx context.Context, b geo.Bounds) ([]models.Post, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// Create validates the post's reach radius and coordinates, assigns id and
// creation timestamp and persists the row.
func (r *PostgresPostRepository) Create(ctx context.Context, post *models.Post) error {
	if post.ReachRadiusM <= 0 {
		return ErrInvalidReachRadius
	}
	if _, err := geo.NewPoint(post.Latitude, post.Longitude); err != nil {
		return ErrInvalidCoordinates
	}

	post.ID = uuid.NewString()
	post.CreatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Create(post).Error
}

// GetByID retrieves a post by ID
func (r *PostgresPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// FindWithinBounds retrieves all posts whose anchor falls inside the given
// latitude/longitude box. It is a coarse prefilter for discovery; the exact
// great-circle distance check happens in the discovery engine.
func (r *PostgresPostRepository) FindWithinBounds(ctx context.Context, b geo.Bounds) ([]models.Post, error) {
	q := r.db.WithContext(ctx).Where("latitude BETWEEN ? AND ?", b.MinLat, b.MaxLat)
	if b.WrapsAntimeridian() {
		q = q.Where("longitude >= ? OR longitude <= ?", b.MinLon, b.MaxLon)
	} else {
		q = q.Where("longitude BETWEEN ? AND ?", b.MinLon, b.MaxLon)
	}

	var posts []models.Post
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
