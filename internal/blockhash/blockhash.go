// Package blockhash turns an SQW two-level block name into a fast,
// fixed-size lookup key, hashing name strings into uint64 identifiers
// for index maps the same way a metric-store hashes metric names.
package blockhash

import "github.com/cespare/xxhash/v2"

// Key is a combined hash of a block's (level1, level2) name pair, used as
// the key of the BAT's in-memory name→descriptor map.
type Key uint64

// Of computes the Key for a two-level block name. The two levels are
// hashed with a separator byte that cannot appear in either level, so
// ("a", "bc") and ("ab", "c") never collide on the separator alone (they
// can still collide in the hash itself, which is why section.BAT keeps
// the original strings alongside the Key for a final equality check).
func Of(level1, level2 string) Key {
	var buf [1]byte // separator, zero value never appears in level1/level2 UTF-8 text by construction of known schema names
	h := xxhash.New()
	_, _ = h.WriteString(level1)
	_, _ = h.Write(buf[:])
	_, _ = h.WriteString(level2)

	return Key(h.Sum64())
}
