package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	itemDomain "github.com/shareloop/service-rental/internal/domain/item"
)

// CommentRepository is an in-memory implementation of the comment
// persistence contract.
type CommentRepository struct {
	mu       sync.RWMutex
	comments map[uuid.UUID]*itemDomain.Comment
}

// NewCommentRepository creates an empty in-memory comment repository.
func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[uuid.UUID]*itemDomain.Comment)}
}

// FindByItemID retrieves all comments on the given item, oldest first.
func (r *CommentRepository) FindByItemID(_ context.Context, itemID uuid.UUID) ([]*itemDomain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*itemDomain.Comment
	for _, c := range r.comments {
		if c.ItemID() == itemID {
			result = append(result, cloneComment(c))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt().Before(result[j].CreatedAt())
	})
	return result, nil
}

// Save persists a new comment.
func (r *CommentRepository) Save(_ context.Context, c *itemDomain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.comments[c.ID()] = cloneComment(c)
	return nil
}

func cloneComment(c *itemDomain.Comment) *itemDomain.Comment {
	return itemDomain.ReconstructComment(
		c.ID(), c.Text(), c.ItemID(), c.AuthorID(), c.AuthorName(), c.CreatedAt(),
	)
}
