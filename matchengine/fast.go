package matchengine

import "github.com/lz4simple/lz4x/lz4block"

// mfLimit mirrors the reference encoder's MFLIMIT: once fewer than this
// many bytes remain, no new match search is started - the remainder is
// always emitted as the block's trailing literal run. It guarantees the
// last match starts at least 12 bytes before the block end.
const mfLimit = 12

// lastLiterals is the number of trailing bytes a match may never extend
// into, guaranteeing the block's final bytes are always literals.
const lastLiterals = 5

// skipTrigger controls how quickly the fast strategy's search-match
// counter turns into a skip distance: step = searchMatch >> skipTrigger.
const skipTrigger = 6

// compressFast implements the level 1 strategy: an acceleration-adaptive
// skip search with no lazy lookahead, modeled on LZ4_compress_fast.
func (c *Compressor) compressFast(src []byte, dst []byte) (int, error) {
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
	searchMatch := 1 << skipTrigger

	for pos < searchLimit {
		h := hash5(src, pos, c.hashBits)
		cand := c.hashTable[h]
		c.hashTable[h] = uint32(pos)

		miss := cand == sentinel || int(cand) >= pos || pos-int(cand) > lz4block.MaxOffset
		var runLen int
		if !miss {
			runLen = runLenCount(src, pos, int(cand), matchLimit)
			miss = runLen < lz4block.MinMatch
		}
		if miss {
			step := searchMatch >> skipTrigger
			pos += step
			searchMatch++
			continue
		}

		curPos, candPos, litLen := pos, int(cand), pos-anchor
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

		if insertAt := curPos + runLen - 2; insertAt > pos && insertAt+8 <= n {
			c.hashTable[hash5(src, insertAt, c.hashBits)] = uint32(insertAt)
		}

		pos = curPos + runLen
		anchor = pos
		searchMatch = 1 << skipTrigger
	}

	if err := e.Trailer(src, anchor, n); err != nil {
		return 0, err
	}
	return e.Pos(), nil
}
