package cache

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// SearchKey derives the cache key of a search request.
// The token keeps keys readable; the hash of the normalized query keeps distinct queries apart
// even when they collapse to the same token ("a b" and "a-b").
func SearchKey(game, query string, limit, offset int) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	return fmt.Sprintf("search/%s/%s-%s/%d-%d.json",
		Token(game), Token(normalized), fingerprint(normalized), limit, offset)
}

// EntityKey derives the cache key of a single-card lookup. Ids are hashed case-sensitively.
func EntityKey(game, id string) string {
	id = strings.TrimSpace(id)
	return fmt.Sprintf("entity/%s/%s-%s.json", Token(game), Token(id), fingerprint(id))
}

// Token lower-cases s and replaces every run of characters outside [a-z0-9] with "_".
// An input with no usable characters yields "all".
func Token(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	if b.Len() == 0 {
		return "all"
	}
	return b.String()
}

func fingerprint(s string) string {
	return strconv.FormatUint(xxhash.Sum64String(s), 16)
}
