package engine

import (
	"github.com/kestrelchess/corvid/internal/position"
)

// NodeKind discriminates the three transposition-table record variants from
// §3: a principal-variation node with an exact score, a beta-cutoff node
// whose score is only a lower bound, and an all-node whose score is only an
// upper bound.
type NodeKind uint8

const (
	PvNode NodeKind = iota
	CutNode
	AllNode
)

// Entry is the tagged record stored per position hash. Score means the
// position's exact value for PvNode, the failing bound (beta) for CutNode,
// and the failing bound (alpha-bounding score) for AllNode. Move is the
// principal move (PvNode), the cutoff move (CutNode), or the best move found
// without reaching alpha (AllNode). The full optimal path is not stored per
// entry — ExtractPV reconstructs it by walking chained PvNode entries.
type Entry struct {
	Hash  uint64
	Move  position.Move
	Score int32
	Depth int8
	Kind  NodeKind
	age   uint8
}

// Table is a fixed-size, open-addressed, replace-always transposition table
// indexed by hash modulo capacity (capacity is a power of two, so the modulo
// is a mask).
type Table struct {
	entries []Entry
	mask    uint64
	age     uint8

	hits   uint64
	probes uint64
}

// NewTable builds a transposition table sized in megabytes.
func NewTable(sizeMB int) *Table {
	const entrySize = 24
	numEntries := roundDownToPowerOf2(uint64(sizeMB) * 1024 * 1024 / entrySize)
	if numEntries == 0 {
		numEntries = 1
	}
	return &Table{
		entries: make([]Entry, numEntries),
		mask:    numEntries - 1,
	}
}

func roundDownToPowerOf2(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe returns the entry stored for hash, if the slot's key matches.
func (t *Table) Probe(hash uint64) (Entry, bool) {
	t.probes++
	entry := &t.entries[hash&t.mask]
	if entry.Hash == hash && entry.Depth > 0 {
		t.hits++
		return *entry, true
	}
	return Entry{}, false
}

// Store saves a record for hash, always overwriting whatever occupied the
// slot. §3 specifies replace-always; no depth-preferred retention.
func (t *Table) Store(hash uint64, depth int, score int, kind NodeKind, move position.Move) {
	entry := &t.entries[hash&t.mask]
	entry.Hash = hash
	entry.Move = move
	entry.Score = int32(score)
	entry.Depth = int8(depth)
	entry.Kind = kind
	entry.age = t.age
}

// NewSearch marks the start of a fresh iterative-deepening call.
func (t *Table) NewSearch() {
	t.age++
}

// Clear empties the table and resets statistics.
func (t *Table) Clear() {
	for i := range t.entries {
		t.entries[i] = Entry{}
	}
	t.age = 0
	t.hits = 0
	t.probes = 0
}

// HitRate returns the probe hit rate as a percentage, for diagnostics.
func (t *Table) HitRate() float64 {
	if t.probes == 0 {
		return 0
	}
	return float64(t.hits) / float64(t.probes) * 100
}

// ExtractPV walks chained PvNode entries from pos's current hash, making and
// unmaking moves as it goes, to recover the best line found. It stops at
// maxLen, at a non-PvNode entry, or at a move that Position.Make rejects (a
// null move, or one that would leave the mover's king attacked).
func ExtractPV(t *Table, pos *position.Position, maxLen int) []position.Move {
	var path []position.Move
	made := 0
	defer func() {
		for ; made > 0; made-- {
			pos.Unmake()
		}
	}()

	for len(path) < maxLen {
		entry, ok := t.Probe(pos.Key)
		if !ok || entry.Kind != PvNode || entry.Move.Kind == position.Null {
			break
		}
		if err := pos.Make(entry.Move); err != nil {
			break
		}
		made++
		path = append(path, entry.Move)
	}
	return path
}

// AdjustScoreFromTT converts a mate score stored relative to the node where
// it was found back into one relative to the current search root, by adding
// back the ply distance consumed since storage.
func AdjustScoreFromTT(score, ply int) int {
	if score > WinValue-MaxPly {
		return score - ply
	}
	if score < LossValue+MaxPly {
		return score + ply
	}
	return score
}

// AdjustScoreToTT converts a root-relative mate score into one relative to
// the node being stored, so that later probes at different ply depths can
// reconstruct the correct mate distance via AdjustScoreFromTT.
func AdjustScoreToTT(score, ply int) int {
	if score > WinValue-MaxPly {
		return score + ply
	}
	if score < LossValue+MaxPly {
		return score - ply
	}
	return score
}
