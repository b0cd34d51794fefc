package item

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidName   = errors.New("item name must not be empty")
	ErrNegativeStock = errors.New("total quantity cannot be negative")
)

// StorageItem is a read-only snapshot from the inventory catalog. The catalog
// owns the records; bookings never mutate them. Items are deactivated rather
// than removed, so an inactive item may still be referenced by old bookings.
type StorageItem struct {
	id            uuid.UUID
	name          string
	totalQuantity int
	isActive      bool
}

func NewStorageItem(id uuid.UUID, name string, totalQuantity int, isActive bool) (*StorageItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if totalQuantity < 0 {
		return nil, ErrNegativeStock
	}
	return &StorageItem{
		id:            id,
		name:          name,
		totalQuantity: totalQuantity,
		isActive:      isActive,
	}, nil
}

func (i *StorageItem) ID() uuid.UUID      { return i.id }
func (i *StorageItem) Name() string       { return i.name }
func (i *StorageItem) TotalQuantity() int { return i.totalQuantity }
func (i *StorageItem) IsActive() bool     { return i.isActive }
