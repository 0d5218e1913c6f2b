package matchengine

import (
	"sort"

	"github.com/lz4simple/lz4x/lz4block"
)

// suffixWindow and suffixStep bound pass A's sliding suffix-sort window: a
// 128 KiB window stepped by 64 KiB so every position falls inside some
// window's second half, where its best in-window predecessor is resolved
// (the first window also resolves its first half).
const (
	suffixWindow = 0x20000
	suffixStep   = 0x10000
	// suffixCompareCap bounds how many bytes a suffix comparison during
	// sorting will examine, keeping pathological repetitive input from
	// making the sort itself quadratic.
	suffixCompareCap = 100000
	// suffixNeighborSpread is how many sorted neighbors on each side of a
	// position pass A inspects looking for its first valid predecessor.
	suffixNeighborSpread = 1000
)

// compressOptimal implements the level 9 strategy: gather candidate matches
// via suffix-sorted neighbor search (pass A), choose a cost-minimizing
// tokenization via backward dynamic programming (pass B), then emit it
// (pass C).
func (c *Compressor) compressOptimal(src []byte, dst []byte) (int, error) {
	n := len(src)
	e := lz4block.NewEmitter(dst, 0)

	if n < mfLimit+lastLiterals {
		if err := e.Trailer(src, 0, n); err != nil {
			return 0, err
		}
		return e.Pos(), nil
	}

	for i := 0; i < n; i++ {
		c.matchLen[i] = 0
		c.matchOffset[i] = 0
	}

	matchLimit := n - lastLiterals
	c.optimalPassA(src, n, matchLimit)
	c.optimalPassB(n, matchLimit)
	return c.optimalPassC(src, e, n)
}

// optimalPassA fills matchLen/matchOffset with, for each position, the best
// single candidate predecessor found via suffix-sorted neighbor search.
func (c *Compressor) optimalPassA(src []byte, n, matchLimit int) {
	for s := 0; s < n; s += suffixStep {
		e := s + suffixWindow
		if e > n {
			e = n
		}
		if s >= e {
			break
		}

		idx := c.suffixIdx[s:e]
		for i := range idx {
			idx[i] = int32(s + i)
		}
		sort.Slice(idx, func(i, j int) bool {
			return suffixLess(src, int(idx[i]), int(idx[j]), n)
		})

		regionStart := s
		if s != 0 {
			regionStart = s + suffixStep
		}
		regionEnd := e

		for slot, av := range idx {
			a := int(av)
			if a < regionStart || a >= regionEnd {
				continue
			}
			for d := 1; d <= suffixNeighborSpread; d++ {
				if slot-d >= 0 {
					b := int(idx[slot-d])
					if a > b && a-b < lz4block.MaxOffset {
						c.considerSuffixCandidate(src, a, b, matchLimit)
						break
					}
				}
				if slot+d < len(idx) {
					b := int(idx[slot+d])
					if a > b && a-b < lz4block.MaxOffset {
						c.considerSuffixCandidate(src, a, b, matchLimit)
						break
					}
				}
			}
		}
	}
}

func (c *Compressor) considerSuffixCandidate(src []byte, a, b, matchLimit int) {
	runLen := runLenCount(src, a, b, matchLimit)
	if runLen >= lz4block.MinMatch && runLen > int(c.matchLen[a]) {
		c.matchLen[a] = int32(runLen)
		c.matchOffset[a] = int32(a - b)
	}
}

// suffixLess orders positions i and j by their suffixes src[i:] and
// src[j:], comparing at most suffixCompareCap bytes and breaking ties by
// index (the shorter/earlier suffix at EOF sorts first).
func suffixLess(src []byte, i, j, n int) bool {
	limit := suffixCompareCap
	for k := 0; k < limit; k++ {
		ai, bi := i+k, j+k
		if ai >= n || bi >= n {
			return ai >= n && bi < n
		}
		if src[ai] != src[bi] {
			return src[ai] < src[bi]
		}
	}
	return i < j
}

// matchExtraBytes returns how many varint-extension bytes a match of
// length k (k already includes the implicit +4 minimum) needs beyond its
// token nibble, mirroring lz4block.Emitter's own accounting exactly so the
// cost model never disagrees with what the encoder actually writes.
func matchExtraBytes(k int) int {
	rem := k - lz4block.MinMatch
	if rem < 0xF {
		return 0
	}
	return (rem-0xF)/0xFF + 1
}

// optimalPassB runs the backward cost-minimizing dynamic program described
// in the design: cost[i] is the minimum number of compressed bytes needed
// to encode src[i:n]. matchLen[i] is overwritten in place with the chosen
// plan (1 for "emit one literal and move on", or the chosen match length).
func (c *Compressor) optimalPassB(n, matchLimit int) {
	c.cost[n] = 0

	tailStart := n - mfLimit
	litCount := 0
	for i := n - 1; i >= tailStart; i-- {
		litCount++
		c.cost[i] = c.cost[i+1] + 1 + int32(boundaryExtra(litCount))
	}

	for i := tailStart - 1; i >= 0; i-- {
		litBoundary := boundaryExtra(litCount + 1)
		literalCost := c.cost[i+1] + 1 + int32(litBoundary)
		bestCost := literalCost
		bestLen := 1

		if rawLen := int(c.matchLen[i]); rawLen >= lz4block.MinMatch {
			offset := int(c.matchOffset[i])
			if offset == 1 {
				mc := c.cost[i+rawLen] + 3
				if mc < bestCost {
					bestCost, bestLen = mc, rawLen
				}
			} else {
				for k := lz4block.MinMatch; k <= rawLen; k++ {
					mc := c.cost[i+k] + 3 + int32(matchExtraBytes(k))
					if mc < bestCost {
						bestCost, bestLen = mc, k
					}
				}
			}
		}

		c.cost[i] = bestCost
		if bestLen >= lz4block.MinMatch {
			litCount = 0
		} else {
			litCount++
		}
		c.matchLen[i] = int32(bestLen)
	}
}

// boundaryExtra reports the extra varint-continuation byte (0 or 1) that
// pushing a running literal count to runLen triggers: once at runLen==15,
// then again every further 255.
func boundaryExtra(runLen int) int {
	if runLen == 0xF || (runLen > 0xF && (runLen-0xF)%0xFF == 0) {
		return 1
	}
	return 0
}

// optimalPassC walks the plan pass B left in matchLen forward, emitting
// literal runs and matches as it goes.
func (c *Compressor) optimalPassC(src []byte, e *lz4block.Emitter, n int) (int, error) {
	tailStart := n - mfLimit
	anchor := 0
	i := 0
	for i < tailStart {
		fl := int(c.matchLen[i])
		if fl < lz4block.MinMatch {
			i++
			continue
		}
		offset := int(c.matchOffset[i])
		if err := e.Sequence(src, anchor, i, offset, fl); err != nil {
			return 0, err
		}
		i += fl
		anchor = i
	}
	if err := e.Trailer(src, anchor, n); err != nil {
		return 0, err
	}
	return e.Pos(), nil
}
