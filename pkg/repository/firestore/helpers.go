package firestore

import (
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func collectionName(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// containsFold reports whether s contains substr, case-insensitively.
// Firestore has no substring operator, so search filters are applied in
// process after the owner-scoped fetch.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
