// Package testutil is a collection of testing helpers.
package testutil

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
)

// Rand implements a deterministic pseudo-random number generator.
// This differs from math/rand in that the exact output will be consistent
// across different versions of Go, so generated test inputs never drift.
type Rand struct {
	cipher.Block
	blk [aes.BlockSize]byte
}

// NewRand returns a Rand seeded with seed.
func NewRand(seed int) *Rand {
	var key [aes.BlockSize]byte
	binary.LittleEndian.PutUint64(key[:], uint64(seed))
	r, _ := aes.NewCipher(key[:])
	return &Rand{Block: r}
}

// Int returns a non-negative pseudo-random int.
func (r *Rand) Int() (x int) {
	r.Encrypt(r.blk[:], r.blk[:])
	x |= int(r.blk[0]) << 0
	x |= int(r.blk[1]) << 8
	x |= int(r.blk[2]) << 16
	x |= int(r.blk[3]) << 24
	x |= int(r.blk[4]) << 32
	x |= int(r.blk[5]) << 40
	x |= int(r.blk[6]) << 48
	x |= int(r.blk[7]&0x3f) << 56
	return x
}

// Intn returns a pseudo-random int in [0, n).
func (r *Rand) Intn(n int) int {
	return r.Int() % n
}

// Perm returns a pseudo-random permutation of [0, n).
func (r *Rand) Perm(n int) []int {
	m := make([]int, n)
	for i := 0; i < n; i++ {
		j := r.Intn(i + 1)
		m[i] = m[j]
		m[j] = i
	}
	return m
}

// Skewed returns a pseudo-random int in [0, n) where small values are much
// more likely than large ones, roughly like letters in running text.
func (r *Rand) Skewed(n int) int {
	x := r.Intn(n)
	y := r.Intn(n)
	if y < x {
		x = y
	}
	z := r.Intn(n)
	if z < x {
		x = z
	}
	return x
}

// Runes returns n runes drawn with Skewed from alphabet.
func (r *Rand) Runes(alphabet []rune, n int) []rune {
	out := make([]rune, n)
	for i := range out {
		out[i] = alphabet[r.Skewed(len(alphabet))]
	}
	return out
}
