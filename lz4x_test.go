package lz4x

import (
	"bytes"
	"crypto/rand"
	"io"
	"testing"
)

func generateRandomData(size int) []byte {
	data := make([]byte, size)
	rand.Read(data)
	return data
}

func generateCompressibleData(size int) []byte {
	data := make([]byte, size)
	pattern := []byte("abcdefghijklmnopqrstuvwxyz0123456789")
	for i := 0; i < size; i += len(pattern) {
		n := copy(data[i:], pattern)
		if n < len(pattern) {
			break
		}
	}
	return data
}

func TestCompressBlock(t *testing.T) {
	tests := []struct {
		name         string
		inputSize    int
		compressible bool
		preAllocBuf  bool
	}{
		{"Small random data, nil buffer", 1024, false, false},
		{"Small compressible data, nil buffer", 1024, true, false},
		{"Medium random data, nil buffer", 64 * 1024, false, false},
		{"Medium compressible data, nil buffer", 64 * 1024, true, false},
		{"Small random data, pre-allocated buffer", 1024, false, true},
		{"Small compressible data, pre-allocated buffer", 1024, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var input []byte
			if tt.compressible {
				input = generateCompressibleData(tt.inputSize)
			} else {
				input = generateRandomData(tt.inputSize)
			}

			var buf []byte
			if tt.preAllocBuf {
				buf = make([]byte, tt.inputSize+(tt.inputSize/255)+16)
			}

			compressed, err := CompressBlock(input, buf)
			if err != nil {
				t.Fatalf("CompressBlock() error = %v", err)
			}
			if compressed == nil {
				t.Fatalf("CompressBlock() returned nil buffer")
			}

			decompressed, err := DecompressBlock(compressed, nil, tt.inputSize)
			if err != nil {
				t.Fatalf("DecompressBlock() error = %v", err)
			}
			if !bytes.Equal(decompressed, input) {
				t.Errorf("decompressed data does not match original")
			}
		})
	}
}

func TestCompressBlockLevel(t *testing.T) {
	inputSize := 64 * 1024
	input := generateCompressibleData(inputSize)

	for _, level := range []int{1, 6, 9} {
		t.Run("Level", func(t *testing.T) {
			compressed, err := CompressBlockLevel(input, nil, level)
			if err != nil {
				t.Fatalf("CompressBlockLevel(%d) error = %v", level, err)
			}
			decompressed, err := DecompressBlock(compressed, nil, inputSize)
			if err != nil {
				t.Fatalf("DecompressBlock() error = %v", err)
			}
			if !bytes.Equal(decompressed, input) {
				t.Errorf("decompressed data does not match original for level %d", level)
			}
		})
	}
}

func TestReader(t *testing.T) {
	testData := "This is test data for the LZ4x Reader."

	var buf bytes.Buffer
	w := NewWriter(&buf)
	if _, err := io.WriteString(w, testData); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	r := NewReader(bytes.NewReader(buf.Bytes()))
	var result bytes.Buffer
	if _, err := io.Copy(&result, r); err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if result.String() != testData {
		t.Errorf("got %q, want %q", result.String(), testData)
	}
}

func TestWriter(t *testing.T) {
	tests := []struct {
		name         string
		level        int
		inputSize    int
		compressible bool
	}{
		{"Default level, small random data", DefaultLevel, 1024, false},
		{"Default level, small compressible data", DefaultLevel, 1024, true},
		{"Fast level, medium data", 3, 16 * 1024, true},
		{"High level, medium data", 9, 16 * 1024, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var input []byte
			if tt.compressible {
				input = generateCompressibleData(tt.inputSize)
			} else {
				input = generateRandomData(tt.inputSize)
			}

			var buf bytes.Buffer
			w := NewWriterLevel(&buf, tt.level)

			n, err := w.Write(input)
			if err != nil {
				t.Fatalf("Write error: %v", err)
			}
			if n != len(input) {
				t.Errorf("Write returned %d, want %d", n, len(input))
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close error: %v", err)
			}
			if buf.Len() == 0 {
				t.Errorf("output buffer is empty")
			}

			r := NewReader(bytes.NewReader(buf.Bytes()))
			var result bytes.Buffer
			if _, err := io.Copy(&result, r); err != nil {
				t.Fatalf("Read error: %v", err)
			}
			if !bytes.Equal(result.Bytes(), input) {
				t.Errorf("decompressed data does not match original")
			}
		})
	}
}

func TestWriterReset(t *testing.T) {
	var buf1 bytes.Buffer
	w := NewWriter(&buf1)
	if _, err := io.WriteString(w, "data1"); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	var buf2 bytes.Buffer
	w.Reset(&buf2)
	if _, err := io.WriteString(w, "data2"); err != nil {
		t.Fatalf("Write after Reset error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close after Reset error: %v", err)
	}

	r1 := NewReader(bytes.NewReader(buf1.Bytes()))
	var result1 bytes.Buffer
	if _, err := io.Copy(&result1, r1); err != nil {
		t.Fatalf("Read error on first buffer: %v", err)
	}
	if result1.String() != "data1" {
		t.Errorf("first buffer data mismatch: %q", result1.String())
	}

	r2 := NewReader(bytes.NewReader(buf2.Bytes()))
	var result2 bytes.Buffer
	if _, err := io.Copy(&result2, r2); err != nil {
		t.Fatalf("Read error on second buffer: %v", err)
	}
	if result2.String() != "data2" {
		t.Errorf("second buffer data mismatch: %q", result2.String())
	}
}

// TestRoundTripBoundarySizes exercises the exact input sizes called out as
// testable properties: the literal-length tag boundary (15/16 bytes), the
// literal varint-extension boundary (15+255 bytes), and the block-size
// boundaries around the 4 MiB block limit.
func TestRoundTripBoundarySizes(t *testing.T) {
	sizes := []int{0, 1, 15, 16, 270, MaxBlockSize - 1, MaxBlockSize, MaxBlockSize + 1}
	for _, level := range []int{1, 5, 9} {
		for _, size := range sizes {
			level, size := level, size
			t.Run("", func(t *testing.T) {
				input := generateCompressibleData(size)

				var buf bytes.Buffer
				w := NewWriterLevel(&buf, level)
				if _, err := w.Write(input); err != nil {
					t.Fatalf("size %d level %d: Write: %v", size, level, err)
				}
				if err := w.Close(); err != nil {
					t.Fatalf("size %d level %d: Close: %v", size, level, err)
				}

				r := NewReader(bytes.NewReader(buf.Bytes()))
				out, err := io.ReadAll(r)
				if err != nil {
					t.Fatalf("size %d level %d: read: %v", size, level, err)
				}
				if !bytes.Equal(out, input) {
					t.Fatalf("size %d level %d: round trip mismatch", size, level)
				}
			})
		}
	}
}

// TestRoundTripMultiBlockLarge exercises the >= 64 MiB multi-block case from
// the testable properties.
func TestRoundTripMultiBlockLarge(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 64 MiB round trip in short mode")
	}
	size := 64*1024*1024 + 777
	input := generateCompressibleData(size)

	var buf bytes.Buffer
	w := NewWriterLevel(&buf, 1)
	if _, err := w.Write(input); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r := NewReader(bytes.NewReader(buf.Bytes()))
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(out, input) {
		t.Fatalf("64 MiB round trip mismatch")
	}
}

func TestStreamingLargeData(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large data test in short mode")
	}

	size := 1 * 1024 * 1024
	testData := generateCompressibleData(size)

	var buf bytes.Buffer
	w := NewWriter(&buf)

	chunkSize := 64 * 1024
	for i := 0; i < len(testData); i += chunkSize {
		end := i + chunkSize
		if end > len(testData) {
			end = len(testData)
		}
		if _, err := w.Write(testData[i:end]); err != nil {
			t.Fatalf("Write error at chunk %d: %v", i/chunkSize, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	r := NewReader(bytes.NewReader(buf.Bytes()))
	var result bytes.Buffer
	buffer := make([]byte, 32*1024)
	for {
		n, err := r.Read(buffer)
		if n > 0 {
			result.Write(buffer[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read error: %v", err)
		}
	}

	if !bytes.Equal(result.Bytes(), testData) {
		t.Errorf("decompressed data does not match original")
	}
}
