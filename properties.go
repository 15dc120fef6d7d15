package huffman

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// ReadFrequencies parses a frequency model from a properties listing, one
// "symbol = count" pair per line.  Blank lines and lines starting with '#'
// are ignored.  A symbol may be written as a Go quoted string when it
// contains spaces, '=', '#' or other awkward characters.  A symbol listed
// more than once accumulates its counts.
func ReadFrequencies(r io.Reader) (*Frequencies[string], error) {
	f := NewFrequencies[string]()
	sc := bufio.NewScanner(r)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		eq := strings.LastIndexByte(line, '=')
		if eq < 0 {
			return nil, errors.Errorf("huffman: line %d: missing '='", lineNum)
		}

		key := strings.TrimSpace(line[:eq])
		if strings.HasPrefix(key, "\"") {
			unquoted, err := strconv.Unquote(key)
			if err != nil {
				return nil, errors.Wrapf(err, "huffman: line %d: malformed quoted symbol %s", lineNum, key)
			}
			key = unquoted
		} else if key == "" {
			return nil, errors.Errorf("huffman: line %d: empty symbol", lineNum)
		}

		value := strings.TrimSpace(line[eq+1:])
		count, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "huffman: line %d: malformed count %q", lineNum, value)
		}
		f.RecordN(key, uint32(count))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "huffman: failed to read frequencies")
	}
	return f, nil
}

// WriteFrequencies writes f in the format accepted by ReadFrequencies.
func WriteFrequencies(w io.Writer, f *Frequencies[string]) (int64, error) {
	var buf bytes.Buffer
	for _, sc := range f.Counts() {
		key := sc.Symbol
		if needsQuote(key) {
			key = strconv.Quote(key)
		}
		buf.WriteString(key)
		buf.WriteString(" = ")
		buf.WriteString(strconv.FormatUint(uint64(sc.Count), 10))
		buf.WriteByte('\n')
	}
	n, err := buf.WriteTo(w)
	return n, errors.Wrap(err, "huffman: failed to write frequencies")
}

// CharacterFrequencies converts a model whose symbols are one-character
// strings, such as one read by ReadFrequencies, into a model over runes.
func CharacterFrequencies(f *Frequencies[string]) (*Frequencies[rune], error) {
	out := NewFrequencies[rune]()
	for _, sc := range f.Counts() {
		r, size := utf8.DecodeRuneInString(sc.Symbol)
		if size == 0 || size != len(sc.Symbol) || (r == utf8.RuneError && size == 1) {
			return nil, errors.Errorf("huffman: symbol %q is not a single character", sc.Symbol)
		}
		out.RecordN(r, sc.Count)
	}
	return out, nil
}

func needsQuote(key string) bool {
	if key == "" || key[0] == '"' || key[0] == '#' {
		return true
	}
	if !utf8.ValidString(key) || strings.ContainsRune(key, '=') {
		return true
	}
	for _, r := range key {
		if !unicode.IsPrint(r) || unicode.IsSpace(r) {
			return true
		}
	}
	return false
}
