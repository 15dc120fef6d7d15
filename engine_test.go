package huffman

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/chronos-tachyon/huffman/v2/internal/testutil"
)

func TestBuild_Errors(t *testing.T) {
	if _, err := Build[rune](NewFrequencies[rune](), RuneMarshaler{}, nil); !errors.Is(err, ErrInvalidAlphabet) {
		t.Errorf("empty model: expected ErrInvalidAlphabet, got %v", err)
	}

	f := NewFrequencies[rune]()
	f.RecordAll([]rune("abcde"))
	if _, err := Build[rune](f, RuneMarshaler{}, &Config{MaxCodeSize: 2}); !errors.Is(err, ErrInvalidAlphabet) {
		t.Errorf("alphabet too large: expected ErrInvalidAlphabet, got %v", err)
	}

	if _, err := Build[rune](f, RuneMarshaler{}, &Config{MaxCodeSize: MaxCodeSize + 1}); err == nil {
		t.Errorf("expected error for MaxCodeSize %d", MaxCodeSize+1)
	}
	if _, err := Build[rune](f, RuneMarshaler{}, &Config{Decoder: DecoderKind(7)}); err == nil {
		t.Errorf("expected error for unknown decoder")
	}
}

func TestBuild_MaxCodeSize(t *testing.T) {
	f := NewFrequencies[rune]()
	f.RecordN('a', 100)
	f.RecordN('b', 10)
	f.RecordN('c', 1)
	f.RecordN('d', 1)

	e, err := Build[rune](f, RuneMarshaler{}, &Config{MaxCodeSize: 2})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	expect := []byte{2, 2, 2, 2}
	if diff := cmp.Diff(expect, e.Table().SizeBySymbol()); diff != "" {
		t.Errorf("wrong sizes (-expect +actual):\n%s", diff)
	}
	if e.Config().MaxCodeSize != 2 {
		t.Errorf("expected MaxCodeSize 2, got %d", e.Config().MaxCodeSize)
	}
}

func TestEngine_Accessors(t *testing.T) {
	c, err := TrainStringCodec([]string{"AAAAABBCD"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	e := c.Engine()

	if e.Len() != 4 {
		t.Errorf("expected 4 symbols, got %d", e.Len())
	}
	symbols := e.Symbols()
	if diff := cmp.Diff([]rune("ABCD"), symbols); diff != "" {
		t.Errorf("wrong symbols (-expect +actual):\n%s", diff)
	}
	symbols[0] = 'Z'
	if e.Symbols()[0] != 'A' {
		t.Errorf("Symbols returned an alias of the internal state")
	}

	if index, found := e.Lookup('C'); !found || index != 2 {
		t.Errorf("Lookup('C'): expected 2, got %d, %v", index, found)
	}
	if _, found := e.Lookup('Z'); found {
		t.Errorf("Lookup('Z'): expected not found")
	}
	if _, found := e.Code('Z'); found {
		t.Errorf("Code('Z'): expected not found")
	}
	if e.Tree().NumLeaves() != 4 {
		t.Errorf("expected 4 leaves, got %d", e.Tree().NumLeaves())
	}
	if e.Config().Decoder != DecoderTree || e.Config().MaxCodeSize != MaxCodeSize {
		t.Errorf("wrong normalized config: %+v", e.Config())
	}
}

func TestEngine_Dump(t *testing.T) {
	c, err := TrainStringListCodec([][]string{{"a", "a", "b"}}, nil)
	if err != nil {
		t.Fatal(err)
	}

	expectDump := strings.Join([]string{
		"Engine{\n",
		"\tDecoder = tree\n",
		"\tMinSize() = 1\n",
		"\tMaxSize() = 1\n",
		"\tEncode(\"a\") = \"0\"\n",
		"\tEncode(\"b\") = \"1\"\n",
		"}\n",
	}, "")
	var buf strings.Builder
	if _, err := c.Dump(&buf); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	if actualDump := buf.String(); expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	for _, kind := range decoderKinds {
		t.Run(kind.String(), func(t *testing.T) {
			conf := &Config{Decoder: kind}
			original, err := TrainCharacterCodec(testutil.Pangrams, conf)
			if err != nil {
				t.Fatal(err)
			}

			loaded, err := LoadCharacterCodec(original.CanonicalTable(), conf)
			if err != nil {
				t.Fatalf("LoadCharacterCodec failed: %v", err)
			}
			if !original.Engine().Table().Equal(loaded.Engine().Table()) {
				t.Errorf("loaded code differs from the original")
			}

			raw, err := original.MarshalBinary()
			if err != nil {
				t.Fatalf("MarshalBinary failed: %v", err)
			}
			unmarshaled, err := UnmarshalCharacterCodec(raw, conf)
			if err != nil {
				t.Fatalf("UnmarshalCharacterCodec failed: %v", err)
			}
			if !original.CanonicalTable().Equal(unmarshaled.CanonicalTable()) {
				t.Errorf("unmarshaled table differs from the original")
			}

			expectFP, err := original.Engine().Fingerprint()
			if err != nil {
				t.Fatal(err)
			}
			actualFP, err := unmarshaled.Engine().Fingerprint()
			if err != nil {
				t.Fatal(err)
			}
			if expectFP != actualFP {
				t.Errorf("fingerprints differ: %016x vs %016x", expectFP, actualFP)
			}

			// Data encoded by one side decodes on the other.
			strs := NewStringCodec(unmarshaled.Engine())
			for _, sample := range testutil.Pangrams {
				buf, bitLen, err := NewStringCodec(original.Engine()).Encode(sample)
				if err != nil {
					t.Fatal(err)
				}
				actual, err := strs.Decode(buf, bitLen)
				if err != nil || actual != sample {
					t.Errorf("expected %q, got %q, %v", sample, actual, err)
				}
			}

			if _, err := UnmarshalCharacterCodec(append(raw, 0), conf); !errors.Is(err, ErrTableMismatch) {
				t.Errorf("trailing byte: expected ErrTableMismatch, got %v", err)
			}
		})
	}
}

func TestUnmarshalStringListCodec(t *testing.T) {
	original, err := TrainStringListCodec(testutil.Words(testutil.Pangrams), nil)
	if err != nil {
		t.Fatal(err)
	}
	raw, err := original.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := UnmarshalStringListCodec(raw, nil)
	if err != nil {
		t.Fatalf("UnmarshalStringListCodec failed: %v", err)
	}
	if diff := cmp.Diff(original.CanonicalTable(), loaded.CanonicalTable()); diff != "" {
		t.Errorf("table mismatch (-expect +actual):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	type testRow struct {
		name  string
		table CanonicalTable[rune]
		conf  *Config
		err   error
	}

	testData := [...]testRow{
		{"empty", CanonicalTable[rune]{}, nil, ErrInvalidAlphabet},
		{"length-count", CanonicalTable[rune]{[]rune("ab"), []byte{1}}, nil, ErrTableMismatch},
		{"duplicate", CanonicalTable[rune]{[]rune("aa"), []byte{1, 1}}, nil, ErrTableMismatch},
		{"over-subscribed", CanonicalTable[rune]{[]rune("abc"), []byte{1, 1, 1}}, nil, ErrTableMismatch},
		{"incomplete", CanonicalTable[rune]{[]rune("abc"), []byte{2, 2, 2}}, nil, ErrTableMismatch},
		{"too-long", CanonicalTable[rune]{[]rune("abcde"), []byte{1, 2, 3, 4, 4}}, &Config{MaxCodeSize: 3}, ErrTableMismatch},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			_, err := LoadStringCodec(row.table, row.conf)
			if !errors.Is(err, row.err) {
				t.Errorf("expected %v, got %v", row.err, err)
			}
		})
	}
}
