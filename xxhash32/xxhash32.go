// Package xxhash32 implements the incremental 32-bit XXHash algorithm used
// for the LZ4 frame header checksum and the CLI's -h hashing mode.
package xxhash32

import (
	"encoding/binary"
	"errors"
)

const (
	prime1 = 2654435761
	prime2 = 2246822519
	prime3 = 3266489917
	prime4 = 668265263
	prime5 = 374761393
)

// ErrWrongCallSequence is returned by Update when a non-final call is made
// with a length that is not a multiple of 16 bytes (the round size), and a
// further Update call follows it.
var ErrWrongCallSequence = errors.New("xxhash32: wrong call sequence")

// State is an incremental XXHash32 accumulator. Update may be called any
// number of times; each call's digest assumes the stream ended at that call.
// Only the final call in a sequence may have a length that isn't a multiple
// of 16 - every call before it must round out to a multiple of 16 bytes of
// total input, or the next Update reports ErrWrongCallSequence.
type State struct {
	v1, v2, v3, v4 uint32
	total          uint64
}

// New creates a new hash state seeded with seed.
func New(seed uint32) *State {
	return &State{
		v1: seed + prime1 + prime2,
		v2: seed + prime2,
		v3: seed,
		v4: seed - prime1,
	}
}

func round(acc, in uint32) uint32 {
	acc += in * prime2
	acc = (acc << 13) | (acc >> 19)
	return acc * prime1
}

// Update folds buf[start:start+length] into the hash state and returns the
// digest as if the stream ended after this call. It is an error to call
// Update again after a call whose cumulative total is not a multiple of 16.
func (s *State) Update(buf []byte, start, length int) (uint32, error) {
	if s.total&0xf != 0 {
		return 0, ErrWrongCallSequence
	}

	end := start + length
	pos := start

	if length >= 16 {
		limit := end - 16
		v1, v2, v3, v4 := s.v1, s.v2, s.v3, s.v4
		for {
			v1 = round(v1, binary.LittleEndian.Uint32(buf[pos:]))
			v2 = round(v2, binary.LittleEndian.Uint32(buf[pos+4:]))
			v3 = round(v3, binary.LittleEndian.Uint32(buf[pos+8:]))
			v4 = round(v4, binary.LittleEndian.Uint32(buf[pos+12:]))
			pos += 16
			if pos > limit {
				break
			}
		}
		s.v1, s.v2, s.v3, s.v4 = v1, v2, v3, v4
	}

	s.total += uint64(length)

	var h32 uint32
	if s.total >= 16 {
		h32 = rotl(s.v1, 1) + rotl(s.v2, 7) + rotl(s.v3, 12) + rotl(s.v4, 18)
	} else {
		h32 = s.v3 + prime5
	}
	h32 += uint32(s.total)

	for pos+4 <= end {
		h32 += binary.LittleEndian.Uint32(buf[pos:]) * prime3
		h32 = rotl(h32, 17) * prime4
		pos += 4
	}
	for pos < end {
		h32 += uint32(buf[pos]) * prime5
		h32 = rotl(h32, 11) * prime1
		pos++
	}

	h32 ^= h32 >> 15
	h32 *= prime2
	h32 ^= h32 >> 13
	h32 *= prime3
	return h32 ^ (h32 >> 16), nil
}

func rotl(x uint32, n uint) uint32 {
	return (x << n) | (x >> (32 - n))
}

// Sum32 is a one-shot convenience wrapper equivalent to feeding all of data
// into a freshly seeded State in a single Update call.
func Sum32(seed uint32, data []byte) uint32 {
	h, _ := New(seed).Update(data, 0, len(data))
	return h
}
