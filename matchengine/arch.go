package matchengine

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// fastWordCompare reports whether the host is known to perform unaligned
// 8-byte loads cheaply, the assumption runLenCount's word-batched compare
// relies on for its speed advantage over a byte-wise scan. Every amd64 and
// arm64 target qualifies; anything else falls back to the byte-wise path,
// which is slower but architecture-agnostic.
//
// Both paths are functionally identical - this only picks which one runs,
// purely for throughput - so runLenCount always returns the same answer on
// any host. TestRunLenCountMatchesBytewise asserts exactly that by forcing
// both paths over the same inputs and on the same machine.
func fastWordCompare() bool {
	switch runtime.GOARCH {
	case "amd64":
		return cpu.X86.HasSSE2
	case "arm64":
		return cpu.ARM64.HasASIMD
	default:
		return false
	}
}
