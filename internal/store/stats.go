package store

import (
	"context"
	"os"
)

// Stats holds storage statistics.
type Stats struct {
	Backend     string           `json:"backend"`
	DBPath      string           `json:"db_path,omitempty"`
	DBSizeBytes int64            `json:"db_size_bytes,omitempty"`
	TotalBytes  int              `json:"total_bytes"`
	Namespaces  []NamespaceStats `json:"namespaces"`
}

// NamespaceStats holds per-namespace details.
type NamespaceStats struct {
	NS        string `json:"ns"`
	Bytes     int    `json:"bytes"`
	Version   int    `json:"version"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// CollectStats returns statistics for any Store.
func CollectStats(ctx context.Context, s Store) (*Stats, error) {
	st := &Stats{Namespaces: []NamespaceStats{}}

	switch v := s.(type) {
	case *SQLiteStore:
		st.Backend = "sqlite"
		st.DBPath = v.Path()
		if info, err := os.Stat(v.Path()); err == nil {
			st.DBSizeBytes = info.Size()
		}
	case *RedisStore:
		st.Backend = "redis"
	default:
		st.Backend = "memory"
	}

	items, err := s.Items(ctx)
	if err != nil {
		return st, err
	}
	for _, it := range items {
		st.TotalBytes += len(it.Blob)
		st.Namespaces = append(st.Namespaces, NamespaceStats{
			NS:        it.NS,
			Bytes:     len(it.Blob),
			Version:   it.Version,
			UpdatedAt: it.UpdatedAt,
		})
	}

	return st, nil
}
