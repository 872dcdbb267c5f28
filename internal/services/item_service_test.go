package services_test

import (
	"fmt"
	"testing"

	"prototype/internal/models"
	"prototype/internal/services"
	"prototype/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockItemRepository is a mock implementation of repositories.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(item *models.Item) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockItemRepository) List(skip, limit int) ([]models.Item, error) {
	args := m.Called(skip, limit)
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockItemRepository) GetByID(id int) (*models.Item, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) Update(item *models.Item) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishItemEvent(event string, payload map[string]interface{}) error {
	args := m.Called(event, payload)
	return args.Error(0)
}

func TestItemService_CreateItem(t *testing.T) {
	mockRepo := new(MockItemRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewItemService(mockRepo, mockPublisher)

	item := &models.Item{Title: "Widget", Price: 9.99}

	mockRepo.On("Create", item).Return(nil).Once()
	mockPublisher.On("PublishItemEvent", "item.created", mock.Anything).Return(nil).Once()

	created, err := service.CreateItem(item, "alice")
	assert.NoError(t, err)
	assert.Equal(t, "alice", created.Owner)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestItemService_CreateItem_NilPublisher(t *testing.T) {
	mockRepo := new(MockItemRepository)
	service := services.NewItemService(mockRepo, nil)

	item := &models.Item{Title: "Widget", Price: 9.99}
	mockRepo.On("Create", item).Return(nil).Once()

	created, err := service.CreateItem(item, "alice")
	assert.NoError(t, err)
	assert.Equal(t, "alice", created.Owner)
	mockRepo.AssertExpectations(t)
}

func TestItemService_CreateItem_PublishFailureIsNotFatal(t *testing.T) {
	mockRepo := new(MockItemRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewItemService(mockRepo, mockPublisher)

	item := &models.Item{Title: "Widget", Price: 9.99}
	mockRepo.On("Create", item).Return(nil).Once()
	mockPublisher.On("PublishItemEvent", "item.created", mock.Anything).Return(fmt.Errorf("broker down")).Once()

	_, err := service.CreateItem(item, "alice")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestItemService_UpdateItem(t *testing.T) {
	mockRepo := new(MockItemRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewItemService(mockRepo, mockPublisher)

	stored := &models.Item{ID: 1, Title: "Widget", Description: "Original", Price: 9.99, Owner: "alice"}

	// Owner can update; only provided fields change
	newTitle := "Gadget"
	newPrice := 19.99
	mockRepo.On("GetByID", 1).Return(stored, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Item")).Return(nil).Once()
	mockPublisher.On("PublishItemEvent", "item.updated", mock.Anything).Return(nil).Once()

	updated, err := service.UpdateItem(1, services.ItemPatch{Title: &newTitle, Price: &newPrice}, "alice")
	assert.NoError(t, err)
	assert.Equal(t, "Gadget", updated.Title)
	assert.Equal(t, 19.99, updated.Price)
	assert.Equal(t, "Original", updated.Description)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)

	// Non-owner is rejected and nothing is written
	mockRepo.On("GetByID", 1).Return(stored, nil).Once()
	_, err = service.UpdateItem(1, services.ItemPatch{Title: &newTitle}, "bob")
	assert.ErrorIs(t, err, shared.ErrNotOwner)
	mockRepo.AssertExpectations(t)

	// Unknown item
	mockRepo.On("GetByID", 99).Return(nil, fmt.Errorf("item with ID 99: %w", shared.ErrNotFound)).Once()
	_, err = service.UpdateItem(99, services.ItemPatch{}, "alice")
	assert.ErrorIs(t, err, shared.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestItemService_DeleteItem(t *testing.T) {
	mockRepo := new(MockItemRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewItemService(mockRepo, mockPublisher)

	stored := &models.Item{ID: 1, Title: "Widget", Price: 9.99, Owner: "alice"}

	// Owner can delete
	mockRepo.On("GetByID", 1).Return(stored, nil).Once()
	mockRepo.On("Delete", 1).Return(nil).Once()
	mockPublisher.On("PublishItemEvent", "item.deleted", mock.Anything).Return(nil).Once()

	err := service.DeleteItem(1, "alice")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)

	// Non-owner is rejected
	mockRepo.On("GetByID", 1).Return(stored, nil).Once()
	err = service.DeleteItem(1, "bob")
	assert.ErrorIs(t, err, shared.ErrNotOwner)
	mockRepo.AssertExpectations(t)

	// Unknown item
	mockRepo.On("GetByID", 99).Return(nil, fmt.Errorf("item with ID 99: %w", shared.ErrNotFound)).Once()
	err = service.DeleteItem(99, "alice")
	assert.ErrorIs(t, err, shared.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestItemService_ListItems(t *testing.T) {
	mockRepo := new(MockItemRepository)
	service := services.NewItemService(mockRepo, nil)

	expected := []models.Item{
		{ID: 3, Title: "C", Price: 3, Owner: "alice"},
		{ID: 4, Title: "D", Price: 4, Owner: "bob"},
	}
	mockRepo.On("List", 2, 2).Return(expected, nil).Once()

	items, err := service.ListItems(2, 2)
	assert.NoError(t, err)
	assert.Equal(t, expected, items)
	mockRepo.AssertExpectations(t)
}
