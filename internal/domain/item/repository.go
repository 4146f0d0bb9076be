package item

import (
	"context"

	"github.com/google/uuid"
)

// ItemRepository defines the persistence contract for items.
type ItemRepository interface {
	// FindByID retrieves an item by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindByOwnerID retrieves all items registered by the given owner.
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*Item, error)

	// Search retrieves available items whose name or description matches
	// the given text, case-insensitively. A blank query matches nothing.
	Search(ctx context.Context, text string) ([]*Item, error)

	// Save persists a new item.
	Save(ctx context.Context, it *Item) error

	// Update persists changes to an existing item.
	Update(ctx context.Context, it *Item) error
}

// CommentRepository defines the persistence contract for item comments.
type CommentRepository interface {
	// FindByItemID retrieves all comments on the given item, oldest first.
	FindByItemID(ctx context.Context, itemID uuid.UUID) ([]*Comment, error)

	// Save persists a new comment.
	Save(ctx context.Context, c *Comment) error
}
