package services

import (
	"fmt"
	"log"

	"prototype/internal/models"
	"prototype/internal/repositories"
	"prototype/internal/shared"
)

// EventPublisher publishes item lifecycle events to a message broker.
// A nil publisher disables event publication.
type EventPublisher interface {
	PublishItemEvent(event string, payload map[string]interface{}) error
}

// ItemPatch holds the fields of a partial item update. Nil fields are
// left unchanged.
type ItemPatch struct {
	Title       *string
	Description *string
	Price       *float64
}

// ItemService handles business logic related to items: id assignment is
// delegated to the repository, ownership checks happen here.
type ItemService struct {
	itemRepo  repositories.ItemRepository
	publisher EventPublisher
}

// NewItemService creates a new ItemService. publisher may be nil.
func NewItemService(itemRepo repositories.ItemRepository, publisher EventPublisher) *ItemService {
	return &ItemService{
		itemRepo:  itemRepo,
		publisher: publisher,
	}
}

// CreateItem stores a new item owned by the given username.
func (s *ItemService) CreateItem(item *models.Item, owner string) (*models.Item, error) {
	item.Owner = owner
	if err := s.itemRepo.Create(item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.publishEvent("item.created", item)
	return item, nil
}

// ListItems returns items in creation order, offset by skip and truncated
// to limit. All items are visible to all callers.
func (s *ItemService) ListItems(skip, limit int) ([]models.Item, error) {
	return s.itemRepo.List(skip, limit)
}

// GetItem retrieves a single item by its id.
func (s *ItemService) GetItem(id int) (*models.Item, error) {
	return s.itemRepo.GetByID(id)
}

// UpdateItem merges the provided fields into the stored item. Only the
// item's owner may update it.
func (s *ItemService) UpdateItem(id int, patch ItemPatch, caller string) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item.Owner != caller {
		return nil, fmt.Errorf("item with ID %d: %w", id, shared.ErrNotOwner)
	}

	if patch.Title != nil {
		item.Title = *patch.Title
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}

	if err := s.itemRepo.Update(item); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	s.publishEvent("item.updated", item)
	return item, nil
}

// DeleteItem removes an item. Only the item's owner may delete it.
func (s *ItemService) DeleteItem(id int, caller string) error {
	item, err := s.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item.Owner != caller {
		return fmt.Errorf("item with ID %d: %w", id, shared.ErrNotOwner)
	}

	if err := s.itemRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	s.publishEvent("item.deleted", item)
	return nil
}

// publishEvent sends an item lifecycle event if a publisher is configured.
// Publication failures are logged, never surfaced to the caller.
func (s *ItemService) publishEvent(event string, item *models.Item) {
	if s.publisher == nil {
		return
	}

	payload := map[string]interface{}{
		"itemID": item.ID,
		"title":  item.Title,
		"owner":  item.Owner,
	}
	if err := s.publisher.PublishItemEvent(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event for item %d: %v", event, item.ID, err)
	}
}
