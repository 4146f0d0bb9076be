package item

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shareloop/service-rental/internal/domain"
)

// Comment is feedback left on an item by a user whose booking of it has
// already ended. The author's name is captured at write time so comments
// stay readable without a join.
type Comment struct {
	id         uuid.UUID
	text       string
	itemID     uuid.UUID
	authorID   uuid.UUID
	authorName string
	createdAt  time.Time
}

// NewComment creates a new Comment after validating the text.
func NewComment(itemID, authorID uuid.UUID, authorName, text string) (*Comment, error) {
	if itemID == uuid.Nil {
		return nil, domain.NewValidationError("item ID is required")
	}
	if authorID == uuid.Nil {
		return nil, domain.NewValidationError("author ID is required")
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewValidationError("comment text is required")
	}

	return &Comment{
		id:         uuid.New(),
		text:       text,
		itemID:     itemID,
		authorID:   authorID,
		authorName: authorName,
		createdAt:  time.Now().UTC(),
	}, nil
}

// ReconstructComment rebuilds a Comment from persistence data (no validation).
func ReconstructComment(id uuid.UUID, text string, itemID, authorID uuid.UUID, authorName string, createdAt time.Time) *Comment {
	return &Comment{
		id:         id,
		text:       text,
		itemID:     itemID,
		authorID:   authorID,
		authorName: authorName,
		createdAt:  createdAt,
	}
}

// ID returns the comment's unique identifier.
func (c *Comment) ID() uuid.UUID { return c.id }

// Text returns the comment body.
func (c *Comment) Text() string { return c.text }

// ItemID returns the commented item's identifier.
func (c *Comment) ItemID() uuid.UUID { return c.itemID }

// AuthorID returns the authoring user's identifier.
func (c *Comment) AuthorID() uuid.UUID { return c.authorID }

// AuthorName returns the author's display name as captured at write time.
func (c *Comment) AuthorName() string { return c.authorName }

// CreatedAt returns the creation timestamp.
func (c *Comment) CreatedAt() time.Time { return c.createdAt }
