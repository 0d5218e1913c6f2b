package matchengine

import "testing"

func TestHash4Deterministic(t *testing.T) {
	src := []byte("abcdabcdWXYZWXYZ")
	h1 := hash4(src, 0, 16)
	h2 := hash4(src, 8, 16)
	if h1 != hash4(src, 0, 16) {
		t.Fatalf("hash4 not deterministic")
	}
	if h1 == h2 {
		t.Errorf("distinct 4-byte windows hashed to the same bucket: %d", h1)
	}
}

func TestHash4MasksToWidth(t *testing.T) {
	src := []byte{0xFF, 0xFF, 0xFF, 0xFF}
	for bits := 12; bits <= 21; bits++ {
		h := hash4(src, 0, bits)
		if h>>uint(bits) != 0 {
			t.Errorf("bits=%d: hash4 returned %d, exceeds %d-bit width", bits, h, bits)
		}
	}
}

func TestHash5Deterministic(t *testing.T) {
	src := []byte("0123456789")
	if hash5(src, 0, 16) != hash5(src, 0, 16) {
		t.Fatalf("hash5 not deterministic")
	}
}

func TestHash5MasksToWidth(t *testing.T) {
	src := make([]byte, 16)
	for i := range src {
		src[i] = 0xFF
	}
	for bits := 12; bits <= 21; bits++ {
		h := hash5(src, 0, bits)
		if h>>uint(bits) != 0 {
			t.Errorf("bits=%d: hash5 returned %d, exceeds %d-bit width", bits, h, bits)
		}
	}
}

func TestMix64Avalanche(t *testing.T) {
	a := mix64(0)
	b := mix64(1)
	if a == b {
		t.Errorf("mix64(0) == mix64(1): %d", a)
	}
}
