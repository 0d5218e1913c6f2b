// Command lz4simple is a small CLI around the lz4x codec: file or
// standard-stream compression at a chosen level, decompression, and an
// XXHash32 digest mode.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lz4simple/lz4x"
	"github.com/lz4simple/lz4x/xxhash32"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	switch {
	case len(args) == 3 && isLevelFlag(args[0]):
		return runCompress(parseLevel(args[0]), args[1], args[2])
	case len(args) == 2 && isLevelFlag(args[0]) && args[1] == "-":
		return runCompressStdio(parseLevel(args[0]))
	case len(args) == 3 && args[0] == "-d":
		return runDecompress(args[1], args[2])
	case len(args) == 2 && args[0] == "-d" && args[1] == "-":
		return runDecompressStdio()
	case len(args) == 2 && args[0] == "-h":
		return runHash(args[1])
	default:
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "lz4simple -<N> <input> <output>   Compress the input at level N (1-9)")
	fmt.Fprintln(os.Stderr, "lz4simple -<N> -                  Compress standard input to standard output")
	fmt.Fprintln(os.Stderr, "lz4simple -d <input> <output>     Decompress the input")
	fmt.Fprintln(os.Stderr, "lz4simple -d -                    Decompress standard input to standard output")
	fmt.Fprintln(os.Stderr, "lz4simple -h <input>               Calculate the XXHash32 digest")
}

func isLevelFlag(arg string) bool {
	return len(arg) == 2 && arg[0] == '-' && arg[1] >= '1' && arg[1] <= '9'
}

func parseLevel(arg string) int {
	return int(arg[1] - '0')
}

func runCompress(level int, inputPath, outputPath string) int {
	in, err := os.Open(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to compress %s to %s: %v\n", inputPath, outputPath, err)
		return 1
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to compress %s to %s: %v\n", inputPath, outputPath, err)
		return 1
	}
	defer out.Close()

	n, err := compress(in, out, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to compress %s to %s: %v\n", inputPath, outputPath, err)
		return 1
	}
	fmt.Printf("Compressed %d bytes\n", n)
	return 0
}

func runCompressStdio(level int) int {
	if _, err := compress(os.Stdin, os.Stdout, level); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to compress: %v\n", err)
		return 1
	}
	return 0
}

func runDecompress(inputPath, outputPath string) int {
	in, err := os.Open(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to decompress %s to %s: %v\n", inputPath, outputPath, err)
		return 1
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to decompress %s to %s: %v\n", inputPath, outputPath, err)
		return 1
	}
	defer out.Close()

	n, err := decompress(in, out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to decompress %s to %s: %v\n", inputPath, outputPath, err)
		return 1
	}
	fmt.Printf("Decompressed %d bytes\n", n)
	return 0
}

func runDecompressStdio() int {
	if _, err := decompress(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to decompress: %v\n", err)
		return 1
	}
	return 0
}

func runHash(inputPath string) int {
	var r io.Reader = os.Stdin
	if inputPath != "-" {
		f, err := os.Open(inputPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", inputPath, err)
			return 1
		}
		defer f.Close()
		r = f
	}

	digest, err := hashReader(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", inputPath, err)
		return 1
	}
	fmt.Printf("%08x\n", digest)
	return 0
}

// compress writes r's contents to w as a complete lz4x frame at the given
// level, returning the number of raw bytes read.
func compress(r io.Reader, w io.Writer, level int) (int64, error) {
	lw := lz4x.NewWriterLevel(w, level)
	n, err := io.Copy(lw, r)
	if err != nil {
		return n, err
	}
	if err := lw.Close(); err != nil {
		return n, err
	}
	return n, nil
}

// decompress expands an lz4x frame read from r into w, returning the
// number of raw bytes written.
func decompress(r io.Reader, w io.Writer) (int64, error) {
	lr := lz4x.NewReader(r)
	return io.Copy(w, lr)
}

// hashReader computes the XXHash32 digest of r's entire contents, feeding
// the hash state in 1 MiB chunks so every call but the last has a length
// that is a multiple of 16.
func hashReader(r io.Reader) (uint32, error) {
	const chunkSize = 1 << 20
	buf := make([]byte, chunkSize)
	state := xxhash32.New(0)
	digest := xxhash32.Sum32(0, nil)

	for {
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			d, uerr := state.Update(buf, 0, n)
			if uerr != nil {
				return 0, uerr
			}
			digest = d
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return 0, err
		}
	}
	return digest, nil
}
