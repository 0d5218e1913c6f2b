package matchengine

import "github.com/lz4simple/lz4x/lz4block"

// compressChain implements the hash-chain lazy search used by levels 2
// through 8: every position is chained behind the previous occurrence of
// its hash bucket, and each new position walks up to maxSearch chain
// entries looking for the longest prefix match, stopping early once a
// match already exceeds stopAtMatchLen.
func (c *Compressor) compressChain(src []byte, dst []byte) (int, error) {
	n := len(src)
	e := lz4block.NewEmitter(dst, 0)

	if n < mfLimit+lastLiterals {
		if err := e.Trailer(src, 0, n); err != nil {
			return 0, err
		}
		return e.Pos(), nil
	}

	matchLimit := n - lastLiterals
	searchLimit := n - mfLimit

	anchor := 0
	pos := 0

	for pos < searchLimit {
		h := hash4(src, pos, c.hashBits)
		first := c.hashTable[h]
		c.chain[pos] = first
		c.hashTable[h] = uint32(pos)

		bestLen, bestCand := c.findBestCandidate(src, pos, int(first), matchLimit)
		if bestLen < lz4block.MinMatch {
			pos++
			continue
		}

		for i := 1; i < bestLen && pos+i+4 <= n; i += c.step {
			p := pos + i
			hh := hash4(src, p, c.hashBits)
			c.chain[p] = c.hashTable[hh]
			c.hashTable[hh] = uint32(p)
		}

		curPos, candPos, litLen := pos, bestCand, pos-anchor
		runLen := bestLen
		for litLen > 0 && candPos > 0 && src[candPos-1] == src[curPos-1] {
			candPos--
			curPos--
			litLen--
			runLen++
		}

		offset := curPos - candPos
		if err := e.Sequence(src, anchor, curPos, offset, runLen); err != nil {
			return 0, err
		}

		pos = curPos + runLen
		anchor = pos
	}

	if err := e.Trailer(src, anchor, n); err != nil {
		return 0, err
	}
	return e.Pos(), nil
}

// findBestCandidate walks the hash chain starting at first, looking for the
// longest valid prefix match against src[pos:]. It never evaluates more
// than maxSearch candidates and stops as soon as a match exceeds
// stopAtMatchLen.
func (c *Compressor) findBestCandidate(src []byte, pos, first, matchLimit int) (bestLen, bestCand int) {
	cand := first
	for attempts := 0; attempts < c.maxSearch; attempts++ {
		if cand == int(sentinel) || cand >= pos || pos-cand > lz4block.MaxOffset {
			break
		}

		runLen := runLenBackwards(src, pos, cand, bestLen, matchLimit)
		if runLen > bestLen {
			bestLen = runLen
			bestCand = cand
			if bestLen > c.stopAtMatchLen {
				break
			}
		}

		cand = int(c.chain[cand])
	}
	return bestLen, bestCand
}
