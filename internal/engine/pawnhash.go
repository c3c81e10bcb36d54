package engine

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/kestrelchess/corvid/internal/position"
)

// PawnEntry is a cached pawn-structure facet evaluation, keyed by a hash of
// the two pawn bitboards rather than the full position's Zobrist key: pawn
// structure depends on pawn placement alone, so positions that differ only
// in piece placement elsewhere share a cache line.
type PawnEntry struct {
	Key uint64
	Mid int16
	End int16
}

// PawnCache is a fixed-size, open-addressed, replace-always cache from pawn
// key to the pawn-structure facet's (mid, end) score.
type PawnCache struct {
	entries []PawnEntry
	mask    uint64
}

// NewPawnCache builds a pawn cache sized in megabytes, rounded down to a
// power-of-two entry count so lookups can mask instead of mod.
func NewPawnCache(sizeMB int) *PawnCache {
	const entrySize = 16
	numEntries := (sizeMB * 1024 * 1024) / entrySize

	size := 1
	for size*2 <= numEntries {
		size *= 2
	}
	if size < 1 {
		size = 1
	}

	return &PawnCache{
		entries: make([]PawnEntry, size),
		mask:    uint64(size - 1),
	}
}

// PawnKey hashes the white and black pawn bitboards with xxhash, giving a
// cache key independent of everything else on the board.
func PawnKey(whitePawns, blackPawns position.Bitboard) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(whitePawns))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(blackPawns))
	return xxhash.Sum64(buf[:])
}

// Probe returns the cached (mid, end) score for key, if present.
func (pc *PawnCache) Probe(key uint64) (mid, end int, found bool) {
	entry := &pc.entries[key&pc.mask]
	if entry.Key == key {
		return int(entry.Mid), int(entry.End), true
	}
	return 0, 0, false
}

// Store saves a (mid, end) score under key, replacing whatever was there.
func (pc *PawnCache) Store(key uint64, mid, end int) {
	entry := &pc.entries[key&pc.mask]
	entry.Key = key
	entry.Mid = int16(mid)
	entry.End = int16(end)
}

// Clear empties the cache.
func (pc *PawnCache) Clear() {
	for i := range pc.entries {
		pc.entries[i] = PawnEntry{}
	}
}
