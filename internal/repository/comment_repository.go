package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	itemDomain "github.com/shareloop/service-rental/internal/domain/item"
	"gorm.io/gorm"
)

// CommentModel is the GORM model for the comments table.
type CommentModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Text       string    `gorm:"not null;size:2000"`
	ItemID     uuid.UUID `gorm:"type:uuid;index;not null"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null"`
	AuthorName string    `gorm:"not null;size:200"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (CommentModel) TableName() string {
	return "comments"
}

// GormCommentRepository is the GORM-based implementation of CommentRepository.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository.
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// FindByItemID retrieves all comments on the given item, oldest first.
func (r *GormCommentRepository) FindByItemID(ctx context.Context, itemID uuid.UUID) ([]*itemDomain.Comment, error) {
	var models []CommentModel
	if err := dbFrom(ctx, r.db).
		Where("item_id = ?", itemID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find item comments: %w", err)
	}

	comments := make([]*itemDomain.Comment, len(models))
	for i, m := range models {
		comments[i] = toDomainComment(&m)
	}
	return comments, nil
}

// Save persists a new comment.
func (r *GormCommentRepository) Save(ctx context.Context, c *itemDomain.Comment) error {
	if err := dbFrom(ctx, r.db).Create(toCommentModel(c)).Error; err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}
	return nil
}

// --- Conversion Helpers ---

func toCommentModel(c *itemDomain.Comment) *CommentModel {
	return &CommentModel{
		ID:         c.ID(),
		Text:       c.Text(),
		ItemID:     c.ItemID(),
		AuthorID:   c.AuthorID(),
		AuthorName: c.AuthorName(),
		CreatedAt:  c.CreatedAt(),
	}
}

func toDomainComment(m *CommentModel) *itemDomain.Comment {
	return itemDomain.ReconstructComment(m.ID, m.Text, m.ItemID, m.AuthorID, m.AuthorName, m.CreatedAt)
}
