package huffman

import (
	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"
)

// Tree is the decode-side view of a prefix code: a binary tree whose
// internal nodes branch on one bit (left = 0, right = 1) and whose leaves
// each hold one Symbol.
//
// A code with a single symbol yields a root whose only child is the leaf
// for code "0"; a 1 bit at the root does not lead to any symbol.
type Tree struct {
	nodes []treeNode
}

type treeNode struct {
	child  [2]int32
	symbol Symbol
}

const noChild = int32(-1)

func (node treeNode) isLeaf() bool {
	return node.symbol != InvalidSymbol
}

// newTree builds the Tree for the given codes, indexed by Symbol.  Symbols
// with a zero-size Code are skipped.  Codes that collide or where one is a
// prefix of another are rejected with ErrTableMismatch.
func newTree(codes []Code) (*Tree, error) {
	t := &Tree{nodes: make([]treeNode, 1, 2*len(codes))}
	t.nodes[0] = treeNode{child: [2]int32{noChild, noChild}, symbol: InvalidSymbol}

	for index, hc := range codes {
		if hc.Size == 0 {
			continue
		}
		symbol := Symbol(index)
		cur := int32(0)
		for i := byte(0); i < hc.Size; i++ {
			bit := 0
			if hc.Bit(i) {
				bit = 1
			}
			last := (i == hc.Size-1)
			next := t.nodes[cur].child[bit]

			switch {
			case next != noChild && (last || t.nodes[next].isLeaf()):
				return nil, errors.Wrapf(ErrTableMismatch, "code %s for symbol %d collides with another code", hc, symbol)
			case next == noChild:
				next = int32(len(t.nodes))
				node := treeNode{child: [2]int32{noChild, noChild}, symbol: InvalidSymbol}
				if last {
					node.symbol = symbol
				}
				t.nodes = append(t.nodes, node)
				t.nodes[cur].child[bit] = next
			}
			cur = next
		}
	}
	return t, nil
}

// NumLeaves returns the number of symbols reachable in the Tree.
func (t *Tree) NumLeaves() int {
	count := 0
	for _, node := range t.nodes {
		if node.isLeaf() {
			count++
		}
	}
	return count
}

// Walk decodes one symbol by following bits from the root until a leaf is
// reached.  An error from readBit is returned unchanged when no bit of the
// code has been read yet; after that, running out of bits means the code was
// cut short and yields ErrCorruptStream.
func (t *Tree) Walk(readBit func() (bool, error)) (Symbol, error) {
	cur := int32(0)
	var path Code
	for {
		bit, err := readBit()
		if err != nil {
			if path.Size == 0 {
				return InvalidSymbol, err
			}
			if errors.Is(err, ErrEndOfStream) {
				return InvalidSymbol, errors.Wrapf(ErrCorruptStream, "code truncated after %s", path)
			}
			return InvalidSymbol, err
		}
		path = path.Append(bit)

		index := 0
		if bit {
			index = 1
		}
		next := t.nodes[cur].child[index]
		if next == noChild {
			return InvalidSymbol, errors.Wrapf(ErrCorruptStream, "no symbol has a code starting with %s", path)
		}
		if t.nodes[next].isLeaf() {
			return t.nodes[next].symbol, nil
		}
		cur = next
	}
}

// Table derives the encode-side view of the Tree by a depth-first walk,
// accumulating 0 for each left branch and 1 for each right branch.
// numSymbols is the size of the alphabet.
func (t *Tree) Table(numSymbols int) *Table {
	type stackItem struct {
		node int32
		code Code
	}

	codes := make([]Code, numSymbols)
	stack := make([]stackItem, 0, MaxCodeSize+1)
	stack = append(stack, stackItem{node: 0})
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := t.nodes[top.node]
		if node.isLeaf() {
			assert.Assertf(int(node.symbol) < numSymbols, "leaf symbol %d out of range [0..%d)", node.symbol, numSymbols)
			codes[node.symbol] = top.code
			continue
		}

		// Push right first so that the left subtree is visited first.
		for bit := 1; bit >= 0; bit-- {
			if child := node.child[bit]; child != noChild {
				stack = append(stack, stackItem{node: child, code: top.code.Append(bit == 1)})
			}
		}
	}
	return newTable(codes)
}
