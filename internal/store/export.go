package store

import (
	"context"
	"fmt"
)

// ExportAll returns every stored item, optionally limited to one namespace.
func ExportAll(ctx context.Context, s Store, ns string) ([]Item, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}
	if ns == "" {
		return items, nil
	}
	var out []Item
	for _, it := range items {
		if it.NS == ns {
			out = append(out, it)
		}
	}
	return out, nil
}

// Import writes items from an export, replacing existing blobs.
func Import(ctx context.Context, s Store, items []Item) (int, error) {
	imported := 0
	for _, it := range items {
		if it.NS == "" {
			return imported, fmt.Errorf("import: item %d has no namespace", imported)
		}
		if err := s.SetItem(ctx, it.NS, it.Blob); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}
