// Package matchengine implements the three LZ4 compression strategies: a
// fast greedy skip-search (level 1), a hash-chain lazy search (levels
// 2-8), and a two-pass optimal parse (level 9). All three share the same
// output contract - a sequence of literal-run/match decisions fed to
// lz4block.Emitter - and the same per-block invariants: every match has
// length >= 4 and offset in [1, 65535], and the final 5 bytes of a block
// are always literals.
package matchengine

import "errors"

// sentinel marks an empty hash table or chain slot: no position has ever
// hashed there.
const sentinel = ^uint32(0)

// ErrInvalidLevel reports a compression level outside [1, 9].
var ErrInvalidLevel = errors.New("matchengine: invalid compression level")

// Compressor holds one compression strategy's reusable working set: hash
// table, chain table, and (for level 9) the optimal-parse scratch arrays.
// It is created once per frame and its CompressBlock method is called once
// per 4 MiB chunk; the hash table is reset to the empty sentinel at the
// start of every call so no match from a previous block can leak into the
// next one, honoring the frame's declared block independence.
type Compressor struct {
	level    int
	hashBits int

	hashTable []uint32
	chain     []uint32

	stopAtMatchLen int
	maxSearch      int
	step           int

	// Level 9 optimal-parse scratch, sized to maxBlockSize.
	suffixIdx    []int32
	matchLen     []int32
	matchOffset  []int32
	cost         []int32
}

// NewCompressor allocates a Compressor for the given level (1..9) sized for
// blocks of up to maxBlockSize bytes. All buffers are allocated once here
// and reused across every subsequent CompressBlock call.
func NewCompressor(level, maxBlockSize int) (*Compressor, error) {
	if level < 1 || level > 9 {
		return nil, ErrInvalidLevel
	}

	c := &Compressor{
		level:          level,
		hashBits:       12 + level,
		stopAtMatchLen: 10 * level,
		maxSearch:      1 << uint(level),
		step:           1,
	}
	if level == 1 {
		c.step = 4
	}
	c.hashTable = make([]uint32, 1<<uint(c.hashBits))

	switch {
	case level == 9:
		c.suffixIdx = make([]int32, maxBlockSize)
		c.matchLen = make([]int32, maxBlockSize+1)
		c.matchOffset = make([]int32, maxBlockSize+1)
		c.cost = make([]int32, maxBlockSize+1)
	case level > 1:
		c.chain = make([]uint32, maxBlockSize)
	}

	return c, nil
}

// CompressBlock encodes src into dst using the configured level and
// returns the number of compressed bytes written. dst must be at least
// lz4block.CompressBound(len(src)) bytes.
func (c *Compressor) CompressBlock(src, dst []byte) (int, error) {
	for i := range c.hashTable {
		c.hashTable[i] = sentinel
	}

	switch {
	case c.level == 1:
		return c.compressFast(src, dst)
	case c.level == 9:
		return c.compressOptimal(src, dst)
	default:
		return c.compressChain(src, dst)
	}
}
