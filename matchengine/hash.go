package matchengine

import "github.com/lz4simple/lz4x/lz4block"

// prime5Bytes is the 40-bit multiplier LZ4's reference encoder uses for its
// 5-byte fast-strategy hash.
const prime5Bytes = 889523592379

// hash5 hashes the 5 bytes at src[pos:pos+5] (read as 8 bytes and masked by
// the shift) into a bucket index with hashBits bits of width, used by the
// level 1 fast strategy.
func hash5(src []byte, pos, hashBits int) uint32 {
	v := lz4block.ReadU64LE(src, pos) << 24
	return uint32((v * prime5Bytes) >> (64 - uint(hashBits)))
}

// mix64 is the 64-bit finalizer from MurmurHash3 (fmix64), used to spread a
// 4-byte fingerprint across a wider key space before masking it down to the
// hash table's bit width. Shared by the chained and optimal-parse
// strategies.
func mix64(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

// hash4 hashes the 4 bytes at src[pos:pos+4] into a bucket index masked to
// hashBits bits, used by the chained and optimal-parse strategies.
func hash4(src []byte, pos, hashBits int) uint32 {
	v := uint64(src[pos])<<24 | uint64(src[pos+1])<<16 | uint64(src[pos+2])<<8 | uint64(src[pos+3])
	mask := uint32(1)<<uint(hashBits) - 1
	return uint32(mix64(v)) & mask
}
