package huffman

import (
	"container/heap"

	"github.com/chronos-tachyon/assert"
)

// buildSizes computes the optimal code length for each symbol, given the
// symbol frequencies in enumeration order.  No length exceeds maxSize.
//
// The greedy merge repeatedly combines the two lightest nodes.  Ties are
// broken by node id: natural symbols use their enumeration index, and merged
// nodes are numbered after all natural symbols in order of creation.  The
// first node popped becomes the left (0) child.
//
// If the optimal code is longer than maxSize, every weight is halved (but
// kept non-zero) and the merge is repeated.  This always terminates because
// equal weights produce a balanced tree, and the caller guarantees that
// len(freqs) <= 1<<maxSize.
func buildSizes(freqs []uint32, maxSize byte) []byte {
	numSymbols := len(freqs)
	assert.Assertf(numSymbols > 0, "buildSizes called with no symbols")
	assert.Assertf(maxSize >= 1 && maxSize <= MaxCodeSize, "maxSize %d out of range", maxSize)
	assert.Assertf(uint64(numSymbols) <= uint64(1)<<maxSize, "%d symbols cannot fit in %d-bit codes", numSymbols, maxSize)

	sizes := make([]byte, numSymbols)
	if numSymbols == 1 {
		sizes[0] = 1
		return sizes
	}

	weights := make([]uint64, numSymbols)
	for symbol, freq := range freqs {
		weights[symbol] = uint64(freq)
		if weights[symbol] == 0 {
			weights[symbol] = 1
		}
	}

	for {
		if assignSizes(sizes, weights) <= int(maxSize) {
			return sizes
		}
		for symbol := range weights {
			weights[symbol] = weights[symbol]>>1 | 1
		}
	}
}

// assignSizes runs one greedy merge over weights, writes the depth of each
// natural symbol into sizes, and returns the greatest depth.  Depths that do
// not fit in a byte are clamped; the caller only compares them to maxSize.
func assignSizes(sizes []byte, weights []uint64) int {
	numSymbols := len(weights)

	// Step 1: build a minheap of the natural symbols.

	h := weightHeap{list: make([]weightedNode, numSymbols)}
	for symbol, weight := range weights {
		h.list[symbol] = weightedNode{id: int32(symbol), weight: weight}
	}
	h.Init()

	// Step 2: pop two nodes, merge them into a synthetic node, push the
	// synthetic node back.  Synthetic node N has id numSymbols+N, so
	// children always have smaller ids than their parent.

	type syntheticNode struct {
		left  int32
		right int32
	}

	synthetic := make([]syntheticNode, 0, numSymbols-1)
	for h.Len() > 1 {
		a := heap.Pop(&h).(weightedNode)
		b := heap.Pop(&h).(weightedNode)
		id := int32(numSymbols + len(synthetic))
		synthetic = append(synthetic, syntheticNode{a.id, b.id})
		heap.Push(&h, weightedNode{id: id, weight: a.weight + b.weight})
	}

	// Step 3: the root is the last synthetic node.  Walking the synthetic
	// nodes from last to first visits every parent before its children.

	depths := make([]int, numSymbols+len(synthetic))
	for index := len(synthetic) - 1; index >= 0; index-- {
		node := synthetic[index]
		depth := depths[numSymbols+index] + 1
		depths[node.left] = depth
		depths[node.right] = depth
	}

	maxDepth := 0
	for symbol := 0; symbol < numSymbols; symbol++ {
		depth := depths[symbol]
		if depth > maxDepth {
			maxDepth = depth
		}
		if depth > MaxCodeSize {
			depth = MaxCodeSize + 1
		}
		sizes[symbol] = byte(depth)
	}
	return maxDepth
}

// type weightedNode + type weightHeap {{{

type weightedNode struct {
	id     int32
	weight uint64
}

type weightHeap struct {
	list []weightedNode
}

func (h *weightHeap) Init() {
	heap.Init(h)
}

func (h *weightHeap) Len() int {
	return len(h.list)
}

func (h *weightHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *weightHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.weight != b.weight {
		return a.weight < b.weight
	}
	return a.id < b.id
}

func (h *weightHeap) Push(x interface{}) {
	h.list = append(h.list, x.(weightedNode))
}

func (h *weightHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*weightHeap)(nil)

// }}}
