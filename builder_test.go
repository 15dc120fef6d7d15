package huffman

import (
	"bytes"
	"sort"
	"testing"

	"github.com/chronos-tachyon/huffman/v2/internal/testutil"
)

func TestBuildSizes(t *testing.T) {
	type testRow struct {
		name   string
		freqs  []uint32
		expect []byte
	}

	testData := [...]testRow{
		{"single", []uint32{7}, []byte{1}},
		{"pair", []uint32{3, 3}, []byte{1, 1}},
		{"flat", []uint32{1, 1, 1, 1}, []byte{2, 2, 2, 2}},
		{"ties-prefer-later-symbols", []uint32{1, 1, 1}, []byte{2, 2, 1}},
		{"ABCD", []uint32{5, 2, 1, 1}, []byte{1, 2, 3, 3}},
		{"classic", []uint32{5, 9, 12, 13, 16, 45}, []byte{4, 4, 3, 3, 3, 1}},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			actual := buildSizes(row.freqs, MaxCodeSize)
			if !bytes.Equal(row.expect, actual) {
				t.Errorf("wrong sizes:\n\texpect: %#v\n\tactual: %#v", row.expect, actual)
			}
		})
	}
}

func TestBuildSizes_Deterministic(t *testing.T) {
	r := testutil.NewRand(1)
	freqs := make([]uint32, 200)
	for i := range freqs {
		freqs[i] = uint32(1 + r.Intn(8))
	}
	expect := buildSizes(freqs, MaxCodeSize)
	for i := 0; i < 10; i++ {
		actual := buildSizes(freqs, MaxCodeSize)
		if !bytes.Equal(expect, actual) {
			t.Fatalf("run %d produced different sizes:\n\texpect: %v\n\tactual: %v", i, expect, actual)
		}
	}
}

func TestBuildSizes_LengthLimit(t *testing.T) {
	fib := []uint32{1, 1, 2, 3, 5, 8, 13, 21, 34, 55, 89, 144}

	unlimited := buildSizes(fib, MaxCodeSize)
	if unlimited[0] != byte(len(fib)-1) {
		t.Fatalf("expected Fibonacci weights to produce an %d-bit code, got %v", len(fib)-1, unlimited)
	}

	for _, maxSize := range []byte{4, 5, 6, 8} {
		sizes := buildSizes(fib, maxSize)
		for symbol, size := range sizes {
			if size < 1 || size > maxSize {
				t.Errorf("maxSize %d: symbol %d has size %d", maxSize, symbol, size)
			}
		}
		if _, err := canonicalCodes(sizes, maxSize); err != nil {
			t.Errorf("maxSize %d: sizes %v do not form a complete code: %v", maxSize, sizes, err)
		}
	}
}

// huffmanCost returns the total coded size of a message with the given
// symbol frequencies under an optimal prefix code: the sum of the weights of
// all merged nodes.
func huffmanCost(freqs []uint32) uint64 {
	weights := make([]uint64, len(freqs))
	for i, freq := range freqs {
		weights[i] = uint64(freq)
	}
	var cost uint64
	for len(weights) > 1 {
		sort.Slice(weights, func(i, j int) bool { return weights[i] < weights[j] })
		merged := weights[0] + weights[1]
		cost += merged
		weights = append(weights[2:], merged)
	}
	return cost
}

func TestBuildSizes_Optimal(t *testing.T) {
	r := testutil.NewRand(2)
	for trial := 0; trial < 100; trial++ {
		freqs := make([]uint32, 2+r.Intn(60))
		for i := range freqs {
			freqs[i] = uint32(1 + r.Intn(1000))
		}

		codes, err := canonicalCodes(buildSizes(freqs, MaxCodeSize), MaxCodeSize)
		if err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}
		expect := huffmanCost(freqs)
		actual := newTable(codes).WeightedSize(freqs)
		if expect != actual {
			t.Errorf("trial %d: weighted size %d, optimal %d", trial, actual, expect)
		}
	}
}

// bestPrefixCost exhaustively searches every assignment of lengths 1..n to n
// symbols that satisfies the Kraft inequality.
func bestPrefixCost(freqs []uint32) uint64 {
	n := len(freqs)
	lengths := make([]int, n)
	best := ^uint64(0)

	var search func(i int)
	search = func(i int) {
		if i == n {
			var kraft uint64
			var cost uint64
			for j, l := range lengths {
				kraft += uint64(1) << (n - l)
				cost += uint64(freqs[j]) * uint64(l)
			}
			if kraft <= uint64(1)<<n && cost < best {
				best = cost
			}
			return
		}
		for l := 1; l <= n; l++ {
			lengths[i] = l
			search(i + 1)
		}
	}
	search(0)
	return best
}

func TestBuildSizes_BeatsEveryPrefixCode(t *testing.T) {
	r := testutil.NewRand(3)
	for trial := 0; trial < 20; trial++ {
		freqs := make([]uint32, 2+r.Intn(4))
		for i := range freqs {
			freqs[i] = uint32(1 + r.Skewed(50))
		}
		codes, err := canonicalCodes(buildSizes(freqs, MaxCodeSize), MaxCodeSize)
		if err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}
		actual := newTable(codes).WeightedSize(freqs)
		best := bestPrefixCost(freqs)
		if actual > best {
			t.Errorf("trial %d: freqs %v: weighted size %d exceeds best prefix code %d", trial, freqs, actual, best)
		}
	}
}
