// Package frame implements the LZ4 frame format: the 7-byte header, the
// per-block length-prefix stream, and the zero-length terminator that wrap
// lz4block's compressed or stored block payloads into a complete,
// self-delimiting byte stream.
package frame

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/lz4simple/lz4x/xxhash32"
)

// Magic is the 4-byte little-endian value every frame begins with.
const Magic uint32 = 0x184D2204

// HeaderSize is the size in bytes of the fixed frame header this codec
// reads and writes: magic, flag byte, block-descriptor byte, header
// checksum byte. Content-size and dictionary-ID fields are never present -
// this codec's encoder never sets their flags, and Non-goals excludes
// supporting frames that do.
const HeaderSize = 7

const (
	flagVersionMask     = 0xC0
	flagVersion1        = 0x40
	flagBlockIndep      = 0x20
	flagBlockChecksum   = 0x10
	flagContentSize     = 0x08
	flagContentChecksum = 0x04
	flagReserved        = 0x02
	flagDictID          = 0x01
)

// Header describes the fields of a parsed frame header this codec cares
// about. Flags it doesn't support are validated and rejected during Read,
// not retained here.
type Header struct {
	// BlockMaxSizeCode is the raw 3-bit block-descriptor code (4..7),
	// corresponding to 64 KiB, 256 KiB, 1 MiB, and 4 MiB respectively.
	BlockMaxSizeCode byte
}

// Format errors, matching the reference decoder's wording.
var (
	ErrIncorrectMagic             = errors.New("frame: incorrect magic")
	ErrUnsupportedVersion         = errors.New("frame: unsupported version")
	ErrUnsupportedBlockDependence = errors.New("frame: unsupported block dependence")
	ErrUnsupportedBlockChecksum   = errors.New("frame: unsupported block checksum flag")
	ErrUnsupportedContentSize     = errors.New("frame: unsupported content size flag")
	ErrUnsupportedReserved        = errors.New("frame: unsupported reserved")
	ErrUnsupportedDictFlag        = errors.New("frame: unsupported dict flag")
	ErrUnsupportedBlockMaxSize    = errors.New("frame: unsupported block max size")
	ErrHeaderChecksumMismatch     = errors.New("frame: header checksum mismatch")
	ErrUnsupportedBlockSize       = errors.New("frame: unsupported block size")
)

// BlockMaxSize returns the maximum block payload size a BlockMaxSizeCode
// declares, or 0 for a code outside [4, 7].
func BlockMaxSize(code byte) int {
	switch code {
	case 4:
		return 64 << 10
	case 5:
		return 256 << 10
	case 6:
		return 1 << 20
	case 7:
		return 4 << 20
	default:
		return 0
	}
}

// headerChecksum computes the header-checksum byte from the flag and
// block-descriptor bytes: bits 8..15 of their seed-0 XXHash32 digest.
func headerChecksum(flg, bd byte) byte {
	sum := xxhash32.Sum32(0, []byte{flg, bd})
	return byte(sum >> 8)
}

// WriteHeader writes this codec's fixed frame header - version 1,
// block-independent, no block checksum, no content size, no content
// checksum, no dictionary, block-max-size code 7 (4 MiB) - to dst[0:7] and
// returns HeaderSize.
func WriteHeader(dst []byte) int {
	binary.LittleEndian.PutUint32(dst[0:4], Magic)
	flg := byte(flagVersion1 | flagBlockIndep)
	bd := byte(7) << 4
	dst[4] = flg
	dst[5] = bd
	dst[6] = headerChecksum(flg, bd)
	return HeaderSize
}

// ReadHeader reads and validates a 7-byte frame header from r. It accepts
// any block-independent, version-1 frame with no block checksum, no
// content size, no reserved bit, and no dictionary ID - the content
// checksum bit is tolerated either way, per this decoder's permissive
// policy toward that flag.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Header{}, err
	}

	magic := binary.LittleEndian.Uint32(buf[0:4])
	if magic != Magic {
		return Header{}, ErrIncorrectMagic
	}

	flg, bd := buf[4], buf[5]

	if flg&flagVersionMask != flagVersion1 {
		return Header{}, ErrUnsupportedVersion
	}
	if flg&flagBlockIndep == 0 {
		return Header{}, ErrUnsupportedBlockDependence
	}
	if flg&flagBlockChecksum != 0 {
		return Header{}, ErrUnsupportedBlockChecksum
	}
	if flg&flagContentSize != 0 {
		return Header{}, ErrUnsupportedContentSize
	}
	if flg&flagReserved != 0 {
		return Header{}, ErrUnsupportedReserved
	}
	if flg&flagDictID != 0 {
		return Header{}, ErrUnsupportedDictFlag
	}

	code := (bd >> 4) & 0x7
	if BlockMaxSize(code) == 0 {
		return Header{}, ErrUnsupportedBlockMaxSize
	}

	if buf[6] != headerChecksum(flg, bd) {
		return Header{}, ErrHeaderChecksumMismatch
	}

	return Header{BlockMaxSizeCode: code}, nil
}
