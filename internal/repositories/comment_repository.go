package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vibewham/vibe-wham/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound       = errors.New("comment not found")
	ErrParentCommentNotFound = errors.New("parent comment not found")
	ErrParentCommentMismatch = errors.New("parent comment belongs to a different post")
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListByPostID(ctx context.Context, postID string) ([]models.Comment, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// Create appends a comment. The post-existence and parent-comment checks run
// in the same transaction as the insert, so the referenced rows cannot vanish
// between validation and commit.
func (r *PostgresCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postCount int64
		if err := tx.Model(&models.Post{}).Where("id = ?", comment.PostID).Count(&postCount).Error; err != nil {
			return err
		}
		if postCount == 0 {
			return ErrPostNotFound
		}

		if comment.ParentCommentID != nil {
			var parent models.Comment
			if err := tx.First(&parent, "id = ?", *comment.ParentCommentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrParentCommentNotFound
				}
				return err
			}
			if parent.PostID != comment.PostID {
				return ErrParentCommentMismatch
			}
		}

		comment.ID = uuid.NewString()
		comment.CreatedAt = time.Now().UTC()
		return tx.Create(comment).Error
	})
}

// GetByID retrieves a comment by ID
func (r *PostgresCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// ListByPostID retrieves all comments for a post ordered by creation time
// ascending. The result is a flat chronological list with parent pointers;
// reconstructing the reply forest is the consumer's job.
func (r *PostgresCommentRepository) ListByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.WithContext(ctx).Where("post_id = ?", postID).Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
