package lz4block

import "errors"

// ErrTempBufferTooSmall signals the caller handed in a destination buffer
// smaller than the worst case for its input - a programmer error, never
// something user input can trigger given the documented 4 MiB block size
// and the CompressBound-sized scratch buffer the frame writer allocates for
// it.
var ErrTempBufferTooSmall = errors.New("lz4block: temporary buffer too small")

// CompressBound returns the largest number of bytes a compressed block of n
// raw input bytes can occupy, i.e. the size a destination buffer must have
// to always succeed regardless of how incompressible the input is.
func CompressBound(n int) int {
	return n + n/255 + 16
}

// Emitter serializes match-engine decisions into the LZ4 block token
// stream. A match engine calls Sequence once per (literal run, match) pair
// it decides on, in input order, then calls Trailer exactly once with
// whatever literal bytes remain after the last match.
type Emitter struct {
	dst []byte
	pos int
}

// NewEmitter wraps dst for writing, starting at the given offset into dst
// (the match engine always passes 0; the frame writer writes its length
// prefix separately).
func NewEmitter(dst []byte, start int) *Emitter {
	return &Emitter{dst: dst, pos: start}
}

// Pos returns the current write position in dst, which is the number of
// bytes written so far when start was 0.
func (e *Emitter) Pos() int { return e.pos }

// Sequence writes one literal-run-then-match sequence: src[litStart:litEnd]
// copied verbatim, followed by a back-reference of offset and matchLen
// (matchLen is the true length, already including the implicit minimum of
// 4 - the encoder subtracts it before writing the token).
func (e *Emitter) Sequence(src []byte, litStart, litEnd, offset, matchLen int) error {
	if offset <= 0 || offset > MaxOffset || matchLen < MinMatch {
		return errors.New("lz4block: invalid sequence")
	}
	litLen := litEnd - litStart
	if e.pos+litLen+2+2*varintExtraLen(0xFF)+3 > len(e.dst) {
		return ErrTempBufferTooSmall
	}

	litCode := litLen
	if litCode > 0xF {
		litCode = 0xF
	}
	runLen := matchLen - MinMatch
	runCode := runLen
	if runCode > 0xF {
		runCode = 0xF
	}

	tagPos := e.pos
	e.pos++
	if litLen >= 0xF {
		e.pos = putVarintExtra(e.dst, e.pos, litLen-0xF)
	}
	copy(e.dst[e.pos:e.pos+litLen], src[litStart:litEnd])
	e.pos += litLen

	writeU16LE(e.dst, e.pos, offset)
	e.pos += 2

	if runLen >= 0xF {
		e.pos = putVarintExtra(e.dst, e.pos, runLen-0xF)
	}

	e.dst[tagPos] = byte(litCode<<4 | runCode)
	return nil
}

// Trailer writes the block's closing literal-only sequence: no offset, no
// match-length nibble consumed.
func (e *Emitter) Trailer(src []byte, litStart, litEnd int) error {
	litLen := litEnd - litStart
	if e.pos+litLen+2+varintExtraLen(litLen) > len(e.dst) {
		return ErrTempBufferTooSmall
	}

	litCode := litLen
	if litCode > 0xF {
		litCode = 0xF
	}

	tagPos := e.pos
	e.pos++
	if litLen >= 0xF {
		e.pos = putVarintExtra(e.dst, e.pos, litLen-0xF)
	}
	copy(e.dst[e.pos:e.pos+litLen], src[litStart:litEnd])
	e.pos += litLen

	e.dst[tagPos] = byte(litCode << 4)
	return nil
}

func writeU16LE(dst []byte, p int, v int) {
	dst[p] = byte(v)
	dst[p+1] = byte(v >> 8)
}
