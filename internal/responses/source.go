// Package responses reduces an external form-response artifact, local CSV
// export or remotely discovered spreadsheet, to the set of addresses that
// answered.
package responses

import (
	"context"
	"strings"

	"github.com/alfredjeanlab/outreach/internal/model"
)

// Source produces the response set for one check run. Implementations
// degrade to an empty set rather than failing on partial data; only a
// broken artifact that exists but cannot be read is an error.
type Source interface {
	Fetch(ctx context.Context) (model.ResponseSet, error)
}

// findEmailColumn locates the response column in a header row: the
// preferred header by exact case-insensitive match first, then the first
// header containing "email". Returns -1 when none qualifies.
func findEmailColumn(headers []string, preferred string) int {
	want := strings.ToLower(strings.TrimSpace(preferred))
	if want != "" {
		for i, h := range headers {
			if strings.ToLower(strings.TrimSpace(h)) == want {
				return i
			}
		}
	}
	for i, h := range headers {
		if strings.Contains(strings.ToLower(h), "email") {
			return i
		}
	}
	return -1
}
