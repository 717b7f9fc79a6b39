package wordlist

import "testing"

func TestLowerASCII(t *testing.T) {
	if !LowerASCII("hello") {
		t.Fatalf("expected hello to pass")
	}
	for _, word := range []string{"", "Hello", "résumé", "naïve", "don’t", "co-op", "x1"} {
		if LowerASCII(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestAll(t *testing.T) {
	f := All(LowerASCII, MinLength(3))
	if f("an") {
		t.Fatalf("expected short word to be rejected")
	}
	if !f("ant") {
		t.Fatalf("expected ant to pass")
	}
}
