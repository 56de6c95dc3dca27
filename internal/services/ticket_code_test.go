package services

import (
	"math/rand/v2"
	"testing"
)

func TestGenerateTicketCodeShape(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 500; i++ {
		code := GenerateTicketCode(r)
		if len(code) != 6 {
			t.Fatalf("code %q has length %d", code, len(code))
		}
		digits, letters := 0, 0
		for _, c := range code {
			switch {
			case c >= '0' && c <= '9':
				digits++
			case c >= 'A' && c <= 'Z':
				letters++
			default:
				t.Fatalf("unexpected character %q in %q", c, code)
			}
		}
		if digits != 5 || letters != 1 {
			t.Fatalf("code %q: digits=%d letters=%d", code, digits, letters)
		}
	}
}

func TestGenerateTicketCodeLetterPositionVaries(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 7))
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		for pos, c := range GenerateTicketCode(r) {
			if c >= 'A' && c <= 'Z' {
				seen[pos] = true
			}
		}
	}
	if len(seen) < 2 {
		t.Fatalf("letter always at the same position: %v", seen)
	}
}
