package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vibewham/vibe-wham/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteRepository defines the interface for vote data operations
type VoteRepository interface {
	Upsert(ctx context.Context, vote *models.Vote) error
}

// PostgresVoteRepository implements VoteRepository for PostgreSQL
type PostgresVoteRepository struct {
	db *gorm.DB
}

// NewPostgresVoteRepository creates a new PostgresVoteRepository
func NewPostgresVoteRepository(db *gorm.DB) *PostgresVoteRepository {
	return &PostgresVoteRepository{db: db}
}

// Upsert inserts the vote, or replaces vote_type and created_at if a row for
// the same (user, target type, target id) already exists. The conflict is
// resolved in a single statement against the composite unique index, so two
// concurrent votes from the same user can never produce two rows or lose an
// update.
func (r *PostgresVoteRepository) Upsert(ctx context.Context, vote *models.Vote) error {
	vote.ID = uuid.NewString()
	vote.CreatedAt = time.Now().UTC()

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "target_type"}, {Name: "target_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"vote_type":  vote.VoteType,
			"created_at": vote.CreatedAt,
		}),
	}).Create(vote).Error
}
