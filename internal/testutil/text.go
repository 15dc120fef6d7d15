package testutil

import (
	"strings"
)

// Pangrams is a small corpus of English text for training codecs in tests.
var Pangrams = []string{
	"The quick brown fox jumps over the lazy dog.",
	"Pack my box with five dozen liquor jugs.",
	"How vexingly quick daft zebras jump!",
	"Sphinx of black quartz, judge my vow.",
	"The five boxing wizards jump quickly.",
}

// Words splits each sample into whitespace-separated words.
func Words(samples []string) [][]string {
	out := make([][]string, len(samples))
	for i, s := range samples {
		out[i] = strings.Fields(s)
	}
	return out
}
