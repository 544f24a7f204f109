package core

import (
	"fmt"
	"strings"
)

// StorageKey derives a filesystem-safe filename stem from a borrower
// name. ASCII letters, digits, spaces, dots, dashes and underscores
// pass through; every other byte is percent-encoded, so two distinct
// names never collide on one key and a name can never escape the
// store directory.
func StorageKey(name string) string {
	name = strings.TrimSpace(name)
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z',
			c >= 'A' && c <= 'Z',
			c >= '0' && c <= '9',
			c == ' ', c == '.', c == '-', c == '_':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	key := b.String()
	// "." and ".." would resolve to directory entries.
	if key == "." || key == ".." {
		return "%2E" + key[1:]
	}
	return key
}
