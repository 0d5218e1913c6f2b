// Package lz4x provides a pure-Go implementation of the LZ4 Frame format:
// nine compression levels trading throughput for ratio, a streaming
// reader/writer pair, and single-block convenience functions for callers
// that already manage their own framing.
package lz4x

import (
	"io"

	"github.com/lz4simple/lz4x/frame"
	"github.com/lz4simple/lz4x/lz4block"
	"github.com/lz4simple/lz4x/matchengine"
)

// DefaultLevel is used by NewWriter and CompressBlock.
const DefaultLevel = 1

// MaxBlockSize is the largest single block the streaming Writer/Reader will
// ever produce or accept. CompressBlock/DecompressBlock do not check it:
// they size their work to len(src) and maxSize.
const MaxBlockSize = lz4block.MaxBlockSize

// CompressBlock compresses src at DefaultLevel into a single LZ4 block
// (not a full frame - no header, no length prefix). dst is reused if it
// has enough capacity; otherwise a new slice is allocated.
func CompressBlock(src, dst []byte) ([]byte, error) {
	return CompressBlockLevel(src, dst, DefaultLevel)
}

// CompressBlockLevel is CompressBlock with an explicit level in [1, 9].
func CompressBlockLevel(src, dst []byte, level int) ([]byte, error) {
	comp, err := matchengine.NewCompressor(level, len(src))
	if err != nil {
		return nil, err
	}
	need := lz4block.CompressBound(len(src))
	if cap(dst) < need {
		dst = make([]byte, need)
	}
	dst = dst[:need]
	n, err := comp.CompressBlock(src, dst)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

// DecompressBlock expands an LZ4 block previously produced by
// CompressBlock/CompressBlockLevel. maxSize bounds the decompressed size
// and sizes dst when it is nil or too small.
func DecompressBlock(src, dst []byte, maxSize int) ([]byte, error) {
	if cap(dst) < maxSize {
		dst = make([]byte, maxSize)
	}
	dst = dst[:maxSize]
	n, err := lz4block.Decode(dst, 0, src, len(src))
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

// Reader is an io.Reader that decompresses an LZ4 frame read from an
// underlying stream.
type Reader struct {
	r *frame.Reader
}

// NewReader creates a Reader decompressing from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: frame.NewReader(r)}
}

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	return r.r.Read(p)
}

// Writer is an io.WriteCloser that compresses to an LZ4 frame.
type Writer struct {
	w *frame.Writer
}

// NewWriter creates a Writer compressing to w at DefaultLevel.
func NewWriter(w io.Writer) *Writer {
	return NewWriterLevel(w, DefaultLevel)
}

// NewWriterLevel creates a Writer compressing to w at the given level
// (1..9). An invalid level falls back to DefaultLevel.
func NewWriterLevel(w io.Writer, level int) *Writer {
	fw, err := frame.NewWriter(w, level)
	if err != nil {
		fw, _ = frame.NewWriter(w, DefaultLevel)
	}
	return &Writer{w: fw}
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	return w.w.Write(p)
}

// Close implements io.Closer; it flushes any buffered bytes as a final
// block and writes the frame's zero-length terminator.
func (w *Writer) Close() error {
	return w.w.Close()
}

// Reset reconfigures w to write a fresh frame to dst.
func (w *Writer) Reset(dst io.Writer) {
	w.w.Reset(dst)
}
