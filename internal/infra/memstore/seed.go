package memstore

import (
	"storeroom-api/internal/domain/item"

	"github.com/google/uuid"
)

// DemoCatalog mirrors the seeded inventory of the original mock-data mode.
// Fixed ids keep development tokens and scripts reproducible across restarts.
func DemoCatalog() []*item.StorageItem {
	rows := []struct {
		id       string
		name     string
		quantity int
		active   bool
	}{
		{"6f1f2f64-0000-4c6b-9d8a-0d2a6f1c0001", "Folding table", 10, true},
		{"6f1f2f64-0000-4c6b-9d8a-0d2a6f1c0002", "Stacking chair", 40, true},
		{"6f1f2f64-0000-4c6b-9d8a-0d2a6f1c0003", "Projector", 3, true},
		{"6f1f2f64-0000-4c6b-9d8a-0d2a6f1c0004", "PA speaker set", 2, true},
		{"6f1f2f64-0000-4c6b-9d8a-0d2a6f1c0005", "Extension cord reel", 15, true},
		{"6f1f2f64-0000-4c6b-9d8a-0d2a6f1c0006", "Retired banner stand", 4, false},
	}

	catalog := make([]*item.StorageItem, 0, len(rows))
	for _, r := range rows {
		it, err := item.NewStorageItem(uuid.MustParse(r.id), r.name, r.quantity, r.active)
		if err != nil {
			panic("invalid demo catalog entry: " + err.Error())
		}
		catalog = append(catalog, it)
	}
	return catalog
}
