package frame

import (
	"encoding/binary"
	"io"

	"github.com/lz4simple/lz4x/lz4block"
)

// Reader decompresses an LZ4 frame read from r, implementing io.Reader.
// The underlying Go read path already retries transparently on an
// interrupted blocking syscall, satisfying the interrupt-retry contract a
// byte source is expected to provide without any wrapper here.
type Reader struct {
	r io.Reader

	header     Header
	blockMax   int
	readHeader bool
	eof        bool

	compressed []byte
	plain      []byte
	pos        int
}

// NewReader creates a Reader decompressing from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Read implements io.Reader.
func (z *Reader) Read(p []byte) (int, error) {
	if z.eof {
		return 0, io.EOF
	}
	if !z.readHeader {
		hdr, err := ReadHeader(z.r)
		if err != nil {
			return 0, err
		}
		z.header = hdr
		z.blockMax = BlockMaxSize(hdr.BlockMaxSizeCode)
		z.readHeader = true
		z.compressed = make([]byte, z.blockMax)
	}

	for z.pos >= len(z.plain) {
		if err := z.readBlock(); err != nil {
			if err == io.EOF {
				z.eof = true
				return 0, io.EOF
			}
			return 0, err
		}
	}

	n := copy(p, z.plain[z.pos:])
	z.pos += n
	return n, nil
}

// readBlock reads one block-length prefix and its payload, decoding it
// into z.plain. A zero-length prefix is the frame terminator and reports
// io.EOF.
func (z *Reader) readBlock() error {
	var prefixBuf [4]byte
	if _, err := io.ReadFull(z.r, prefixBuf[:]); err != nil {
		return err
	}
	prefix := binary.LittleEndian.Uint32(prefixBuf[:])
	if prefix == 0 {
		return io.EOF
	}

	stored := prefix&storedBit != 0
	length := int(prefix &^ storedBit)
	if length > z.blockMax {
		return ErrUnsupportedBlockSize
	}

	if cap(z.compressed) < length {
		z.compressed = make([]byte, length)
	}
	payload := z.compressed[:length]
	if _, err := io.ReadFull(z.r, payload); err != nil {
		return err
	}

	if cap(z.plain) < z.blockMax {
		z.plain = make([]byte, z.blockMax)
	}
	if stored {
		z.plain = z.plain[:length]
		copy(z.plain, payload)
		z.pos = 0
		return nil
	}

	n, err := lz4block.Decode(z.plain[:z.blockMax], 0, payload, length)
	if err != nil {
		return err
	}
	z.plain = z.plain[:n]
	z.pos = 0
	return nil
}
