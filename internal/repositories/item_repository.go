package repositories

import "prototype/internal/models"

// ItemRepository defines the interface for item data access.
// Ownership checks live in the service layer; the repository only
// stores and retrieves.
type ItemRepository interface {
	Create(item *models.Item) error
	List(skip, limit int) ([]models.Item, error)
	GetByID(id int) (*models.Item, error)
	Update(item *models.Item) error
	Delete(id int) error
}
