package frame

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/lz4simple/lz4x/lz4block"
	"github.com/lz4simple/lz4x/matchengine"
)

// storedBit marks a block-length prefix as carrying a verbatim (stored)
// payload rather than a compressed one.
const storedBit = uint32(1) << 31

// Writer compresses to w as a single LZ4 frame: a 7-byte header, one or
// more 4 MiB blocks each falling back to a stored (verbatim) payload when
// compression doesn't shrink it, and a zero-length terminator on Close.
type Writer struct {
	w    io.Writer
	comp *matchengine.Compressor

	block   []byte
	blockN  int
	scratch []byte

	wroteHeader bool
	closed      bool
}

// NewWriter creates a Writer compressing at the given level (1..9) into w.
func NewWriter(w io.Writer, level int) (*Writer, error) {
	comp, err := matchengine.NewCompressor(level, lz4block.MaxBlockSize)
	if err != nil {
		return nil, err
	}
	return &Writer{
		w:       w,
		comp:    comp,
		block:   make([]byte, lz4block.MaxBlockSize),
		scratch: make([]byte, lz4block.CompressBound(lz4block.MaxBlockSize)),
	}, nil
}

// Write buffers p into 4 MiB blocks, flushing a block to w every time one
// fills. It implements io.Writer.
func (z *Writer) Write(p []byte) (int, error) {
	if z.closed {
		return 0, errors.New("frame: write to closed writer")
	}
	if !z.wroteHeader {
		if err := z.writeHeader(); err != nil {
			return 0, err
		}
	}

	written := 0
	for len(p) > 0 {
		n := copy(z.block[z.blockN:], p)
		z.blockN += n
		p = p[n:]
		written += n
		if z.blockN == len(z.block) {
			if err := z.flushBlock(); err != nil {
				return written, err
			}
		}
	}
	return written, nil
}

func (z *Writer) writeHeader() error {
	var hdr [HeaderSize]byte
	WriteHeader(hdr[:])
	if _, err := z.w.Write(hdr[:]); err != nil {
		return err
	}
	z.wroteHeader = true
	return nil
}

// flushBlock compresses the buffered block and writes whichever of
// compressed or stored representation is smaller, per the frame write
// path: a block is stored verbatim when the encoder's output is not
// strictly smaller than the raw input.
func (z *Writer) flushBlock() error {
	raw := z.block[:z.blockN]
	n, err := z.comp.CompressBlock(raw, z.scratch)
	if err != nil {
		return err
	}

	var prefix [4]byte
	if n >= z.blockN {
		binary.LittleEndian.PutUint32(prefix[:], storedBit|uint32(z.blockN))
		if _, err := z.w.Write(prefix[:]); err != nil {
			return err
		}
		if _, err := z.w.Write(raw); err != nil {
			return err
		}
	} else {
		binary.LittleEndian.PutUint32(prefix[:], uint32(n))
		if _, err := z.w.Write(prefix[:]); err != nil {
			return err
		}
		if _, err := z.w.Write(z.scratch[:n]); err != nil {
			return err
		}
	}

	z.blockN = 0
	return nil
}

// Close flushes any buffered bytes as a final block, writes the
// zero-length terminator, and marks the writer closed. It implements
// io.Closer.
func (z *Writer) Close() error {
	if z.closed {
		return nil
	}
	z.closed = true

	if !z.wroteHeader {
		if err := z.writeHeader(); err != nil {
			return err
		}
	}
	if z.blockN > 0 {
		if err := z.flushBlock(); err != nil {
			return err
		}
	}

	var terminator [4]byte
	_, err := z.w.Write(terminator[:])
	return err
}

// Reset reconfigures z to write a fresh frame to w, reusing its allocated
// block buffer, scratch buffer, and match-engine tables.
func (z *Writer) Reset(w io.Writer) {
	z.w = w
	z.blockN = 0
	z.wroteHeader = false
	z.closed = false
}
