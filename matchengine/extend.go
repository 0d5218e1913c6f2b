package matchengine

import (
	"math/bits"

	"github.com/lz4simple/lz4x/lz4block"
)

// runLenCount returns how many bytes starting at src[ai] and src[bi] are
// equal, never reporting more than limit-ai bytes (callers pass the
// block's match limit - len(src) minus the trailing-literals reserve - so
// a found match can never be extended into the bytes that must stay
// literal). Comparison is done in 8-byte words on hosts fastWordCompare
// reports as having cheap unaligned loads, falling back to byte-wise for
// the remainder.
func runLenCount(src []byte, ai, bi, limit int) int {
	return runLenCountImpl(src, ai, bi, limit, fastWordCompare())
}

// runLenCountImpl is runLenCount with the word-batching decision passed in
// explicitly, so tests can force both code paths over identical input and
// confirm they agree.
func runLenCountImpl(src []byte, ai, bi, limit int, useWordBatch bool) int {
	n := 0
	wordLimit := limit - 8
	if useWordBatch {
		for ai+n <= wordLimit && bi+n <= wordLimit {
			x := lz4block.ReadU64LE(src, ai+n) ^ lz4block.ReadU64LE(src, bi+n)
			if x != 0 {
				return n + bits.TrailingZeros64(x)>>3
			}
			n += 8
		}
	}
	for ai+n < limit && bi+n < limit && src[ai+n] == src[bi+n] {
		n++
	}
	return n
}

// runLenBackwards evaluates a hash-chain candidate against the current best
// match length (min) found so far. It first checks only the (min+1)-th
// byte - the one a strictly longer match would need to get right - and
// bails out to 0 immediately if that fails, without touching the rest of
// the prefix. Only once that byte matches does it confirm bytes
// [0, min] all agree (the hash could have collided on fewer bytes than
// min+1) before extending forward from min+1 to find the true length,
// again never past limit.
//
// Returning 0 on any non-improvement is deliberate: the caller (the chained
// lazy search) uses a 0 result to mean "no better than what I already have"
// and keeps walking the chain without otherwise costly re-scanning.
func runLenBackwards(src []byte, ai, bi, min, limit int) int {
	if ai+min >= limit || src[ai+min] != src[bi+min] {
		return 0
	}
	for i := min; i >= 0; i-- {
		if src[ai+i] != src[bi+i] {
			return 0
		}
	}
	n := min + 1
	for ai+n < limit && bi+n < limit && src[ai+n] == src[bi+n] {
		n++
	}
	return n
}
