package core

import (
	"math/rand"
	"sort"
	"testing"
)

func TestSelectNth(t *testing.T) {
	random := rand.New(rand.NewSource(1))
	identity := func(v float64) float64 { return v }

	for _, n := range []int{1, 2, 3, 10, 101, 500} {
		for trial := 0; trial < 5; trial++ {
			values := make([]float64, n)
			for i := range values {
				// Small range forces duplicates
				values[i] = float64(random.Intn(n/2 + 1))
			}
			sorted := append([]float64(nil), values...)
			sort.Float64s(sorted)

			k := random.Intn(n)
			SelectNth(values, k, identity)

			if values[k] != sorted[k] {
				t.Fatalf("n=%d k=%d: expected %v at k, got %v", n, k, sorted[k], values[k])
			}
			for i := 0; i < k; i++ {
				if values[i] > values[k] {
					t.Fatalf("n=%d k=%d: element %d (%v) is larger than the pivot", n, k, i, values[i])
				}
			}
			for i := k + 1; i < n; i++ {
				if values[i] < values[k] {
					t.Fatalf("n=%d k=%d: element %d (%v) is smaller than the pivot", n, k, i, values[i])
				}
			}
		}
	}
}

func TestSelectNth_EqualKeysStayLinear(t *testing.T) {
	const n = 100000
	random := rand.New(rand.NewSource(3))

	tests := []struct {
		name  string
		value func(i int) float64
	}{
		{"all equal", func(i int) float64 { return 0 }},
		{"two values", func(i int) float64 { return float64(i % 2) }},
		{"mostly equal", func(i int) float64 {
			if random.Intn(100) == 0 {
				return random.Float64()
			}
			return 0.5
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := make([]float64, n)
			for i := range values {
				values[i] = tt.value(i)
			}
			sorted := append([]float64(nil), values...)
			sort.Float64s(sorted)

			calls := 0
			key := func(v float64) float64 {
				calls++
				return v
			}
			SelectNth(values, n/2, key)

			if values[n/2] != sorted[n/2] {
				t.Fatalf("Expected median %v, got %v", sorted[n/2], values[n/2])
			}
			if calls > 20*n {
				t.Errorf("Expected a linear number of key calls, got %d for %d items", calls, n)
			}
		})
	}
}
