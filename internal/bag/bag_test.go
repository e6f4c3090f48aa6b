package bag

import (
	"sort"
	"testing"
)

func TestNew_IsPermutation(t *testing.T) {
	t.Parallel()

	for i := 0; i < 50; i++ {
		got := New(nil)
		if len(got) != len(Pieces) {
			t.Fatalf("expected %d pieces; got %v", len(Pieces), got)
		}
		sorted := append([]string(nil), got...)
		sort.Strings(sorted)
		want := append([]string(nil), Pieces...)
		sort.Strings(want)
		for j := range want {
			if sorted[j] != want[j] {
				t.Fatalf("not a permutation: %v", got)
			}
		}
	}
}

func TestNew_SeededIsDeterministic(t *testing.T) {
	t.Parallel()

	a := New(Seeded(42))
	b := New(Seeded(42))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("seeded bags differ: %v vs %v", a, b)
		}
	}
}
