// Package lz4block implements the LZ4 block format: the token stream that
// makes up a single compressed block's payload, independent of the
// surrounding frame. It knows nothing about hash tables or match finding -
// package matchengine builds the (literal, offset, length) decisions this
// package serializes and deserializes.
package lz4block

import "encoding/binary"

// MaxBlockSize is the largest block this codec ever produces or accepts,
// corresponding to frame block-descriptor code 7.
const MaxBlockSize = 4 << 20

// MinMatch is the shortest match length the format can express; the
// match-length nibble and its extension always carry an implicit +4.
const MinMatch = 4

// MaxOffset is the largest back-reference distance representable in the
// 2-byte little-endian offset field.
const MaxOffset = 1<<16 - 1

// ReadU32LE reads a little-endian uint32 at buf[p:p+4].
func ReadU32LE(buf []byte, p int) uint32 {
	return binary.LittleEndian.Uint32(buf[p:])
}

// ReadU64LE reads a little-endian uint64 at buf[p:p+8], used by the match
// engine's word-batched forward run comparison and its 5-byte hash.
func ReadU64LE(buf []byte, p int) uint64 {
	return binary.LittleEndian.Uint64(buf[p:])
}

// WriteU32LE writes a little-endian uint32 at buf[p:p+4].
func WriteU32LE(buf []byte, p int, v uint32) {
	binary.LittleEndian.PutUint32(buf[p:], v)
}

// putVarintExtra appends the varint-extension bytes for a length whose
// 4-bit token nibble has already saturated at 0xF. rem is the length in
// excess of the nibble's base value (15 for literals, 15 for matches once
// the implicit +4 has been subtracted).
func putVarintExtra(dst []byte, p int, rem int) int {
	for rem >= 0xFF {
		dst[p] = 0xFF
		p++
		rem -= 0xFF
	}
	dst[p] = byte(rem)
	p++
	return p
}

// varintExtraLen reports how many bytes putVarintExtra would write for rem,
// used when sizing worst-case output buffers.
func varintExtraLen(rem int) int {
	return rem/0xFF + 1
}

// readVarintExtra sums extension bytes starting at src[p] until one below
// 0xFF terminates the chain, returning the accumulated sum and the position
// just past the terminating byte.
func readVarintExtra(src []byte, p int) (sum, next int, ok bool) {
	for {
		if p >= len(src) {
			return 0, 0, false
		}
		b := int(src[p])
		p++
		sum += b
		if b != 0xFF {
			return sum, p, true
		}
	}
}
