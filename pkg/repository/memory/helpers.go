package memory

import (
	"sort"
	"strings"
	"time"
)

// sortByCreatedAtDesc orders items newest first
func sortByCreatedAtDesc[T any](items []T, at func(T) time.Time) {
	sort.Slice(items, func(i, j int) bool {
		return at(items[i]).After(at(items[j]))
	})
}

// containsFold reports whether s contains substr, case-insensitively
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
