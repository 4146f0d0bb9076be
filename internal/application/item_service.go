package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shareloop/service-rental/internal/domain"
	bookingDomain "github.com/shareloop/service-rental/internal/domain/booking"
	itemDomain "github.com/shareloop/service-rental/internal/domain/item"
	userDomain "github.com/shareloop/service-rental/internal/domain/user"
	"go.uber.org/zap"
)

// CreateItemRequest is the request DTO for registering an item.
type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// UpdateItemRequest is the request DTO for updating an item. Zero-valued
// fields are left unchanged.
type UpdateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
}

// ItemDTO is the API response representation of an item. Comments are
// populated on single-item reads only.
type ItemDTO struct {
	ID             uuid.UUID    `json:"id"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Available      bool         `json:"available"`
	OwnerID        uuid.UUID    `json:"owner_id"`
	LastBookingEnd *time.Time   `json:"last_booking_end,omitempty"`
	Comments       []CommentDTO `json:"comments,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// AddCommentRequest is the request DTO for commenting on an item.
type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// CommentDTO is the API response representation of an item comment.
type CommentDTO struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	ItemID     uuid.UUID `json:"item_id"`
	AuthorID   uuid.UUID `json:"author_id"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// ItemService implements use cases for item registration, lookup and
// post-booking comments.
type ItemService struct {
	items    itemDomain.ItemRepository
	users    userDomain.UserRepository
	comments itemDomain.CommentRepository
	bookings bookingDomain.BookingRepository
	logger   *zap.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(
	items itemDomain.ItemRepository,
	users userDomain.UserRepository,
	comments itemDomain.CommentRepository,
	bookings bookingDomain.BookingRepository,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		items:    items,
		users:    users,
		comments: comments,
		bookings: bookings,
		logger:   logger,
	}
}

// CreateItem registers a new item for the given owner.
func (s *ItemService) CreateItem(ctx context.Context, ownerID uuid.UUID, req CreateItemRequest) (*ItemDTO, error) {
	exists, err := s.users.Exists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("User", ownerID.String())
	}

	it, err := itemDomain.NewItem(ownerID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.items.Save(ctx, it); err != nil {
		return nil, err
	}

	s.logger.Info("item registered",
		zap.String("item_id", it.ID().String()),
		zap.String("owner_id", ownerID.String()),
	)

	result := toItemDTO(it)
	return &result, nil
}

// UpdateItem changes an item's details. Only the owner may update an item.
func (s *ItemService) UpdateItem(ctx context.Context, itemID, callerID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if it.OwnerID() != callerID {
		return nil, domain.NewNotAuthorizedError(callerID.String())
	}

	it.UpdateDetails(req.Name, req.Description)
	if req.Available != nil {
		it.SetAvailable(*req.Available)
	}

	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}

	result := toItemDTO(it)
	return &result, nil
}

// GetItemByID retrieves a single item with its comments.
func (s *ItemService) GetItemByID(ctx context.Context, itemID uuid.UUID) (*ItemDTO, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	result := toItemDTO(it)
	result.Comments = toCommentDTOs(comments)
	return &result, nil
}

// AddComment records feedback on an item. Only a user whose approved booking
// of the item has already ended may comment.
func (s *ItemService) AddComment(ctx context.Context, itemID, authorID uuid.UUID, req AddCommentRequest) (*CommentDTO, error) {
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	past, err := s.bookings.FindByPerson(ctx, authorID,
		bookingDomain.PerspectiveBooker,
		bookingDomain.FilterQuery{Temporal: bookingDomain.SlicePast},
		now,
	)
	if err != nil {
		return nil, err
	}

	var booked bool
	for _, bk := range past {
		if bk.ItemID() == it.ID() {
			booked = true
			break
		}
	}
	if !booked {
		return nil, domain.NewValidationError(fmt.Sprintf("user %s has not booked this item", authorID))
	}

	c, err := itemDomain.NewComment(it.ID(), author.ID(), author.Name(), req.Text)
	if err != nil {
		return nil, err
	}

	if err := s.comments.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("comment added",
		zap.String("item_id", it.ID().String()),
		zap.String("author_id", authorID.String()),
	)

	result := toCommentDTO(c)
	return &result, nil
}

// GetItemComments retrieves all comments on an item, oldest first.
func (s *ItemService) GetItemComments(ctx context.Context, itemID uuid.UUID) ([]CommentDTO, error) {
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		return nil, err
	}

	comments, err := s.comments.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return toCommentDTOs(comments), nil
}

// GetOwnerItems retrieves all items registered by the given owner.
func (s *ItemService) GetOwnerItems(ctx context.Context, ownerID uuid.UUID) ([]ItemDTO, error) {
	exists, err := s.users.Exists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("User", ownerID.String())
	}

	items, err := s.items.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return toItemDTOs(items), nil
}

// SearchItems retrieves available items matching the given text. A blank
// query returns an empty list without hitting the store.
func (s *ItemService) SearchItems(ctx context.Context, text string) ([]ItemDTO, error) {
	if strings.TrimSpace(text) == "" {
		return []ItemDTO{}, nil
	}

	items, err := s.items.Search(ctx, text)
	if err != nil {
		return nil, err
	}
	return toItemDTOs(items), nil
}

func toItemDTO(it *itemDomain.Item) ItemDTO {
	return ItemDTO{
		ID:             it.ID(),
		Name:           it.Name(),
		Description:    it.Description(),
		Available:      it.Available(),
		OwnerID:        it.OwnerID(),
		LastBookingEnd: it.LastBookingEnd(),
		CreatedAt:      it.CreatedAt(),
		UpdatedAt:      it.UpdatedAt(),
	}
}

func toItemDTOs(items []*itemDomain.Item) []ItemDTO {
	dtos := make([]ItemDTO, len(items))
	for i, it := range items {
		dtos[i] = toItemDTO(it)
	}
	return dtos
}

func toCommentDTO(c *itemDomain.Comment) CommentDTO {
	return CommentDTO{
		ID:         c.ID(),
		Text:       c.Text(),
		ItemID:     c.ItemID(),
		AuthorID:   c.AuthorID(),
		AuthorName: c.AuthorName(),
		CreatedAt:  c.CreatedAt(),
	}
}

func toCommentDTOs(comments []*itemDomain.Comment) []CommentDTO {
	dtos := make([]CommentDTO, len(comments))
	for i, c := range comments {
		dtos[i] = toCommentDTO(c)
	}
	return dtos
}
