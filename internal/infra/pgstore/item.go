package pgstore

import (
	"context"

	"storeroom-api/internal/domain/item"
	"storeroom-api/internal/infra"
	"storeroom-api/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ItemReader struct {
	db DB
}

func NewItemReader(db DB) *ItemReader {
	return &ItemReader{db: db}
}

func (r *ItemReader) FindItemByID(ctx context.Context, id uuid.UUID) (*item.StorageItem, error) {
	var (
		name          string
		totalQuantity int
		isActive      bool
	)
	err := r.db.QueryRow(ctx,
		"SELECT name, total_quantity, is_active FROM storage_items WHERE id = $1", id).
		Scan(&name, &totalQuantity, &isActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item by ID", err)
	}

	it, err := item.NewStorageItem(id, name, totalQuantity, isActive)
	if err != nil {
		return nil, infra.WrapRepoErr("stored item violates domain rules", err)
	}
	return it, nil
}
