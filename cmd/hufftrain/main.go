// Command hufftrain trains a Huffman codec on the lines of a text file,
// checks that every line survives a round trip, and writes the canonical
// table as JSON.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/chronos-tachyon/huffman/v2"
)

var (
	flagConfig = flag.String("c", `{
	"Input": "",
	"Output": "",
	"Frequencies": "",
	"Mode": "characters",
	"Decoder": "tree"
}`, "configuration")
)

type Config struct {
	// Input is the text file to train on; empty means stdin.
	Input string
	// Output receives the canonical table as JSON; empty means stdout.
	Output string
	// Frequencies optionally receives the trained frequency model.
	Frequencies string
	// Mode is "characters" to code each line rune by rune, or "words" to
	// code each line as a list of whitespace-separated words.
	Mode string
	// Decoder is "tree" or "table".
	Decoder string
}

func parseConfig() (Config, error) {
	config := Config{}
	if err := json.Unmarshal([]byte(*flagConfig), &config); err != nil {
		return Config{}, errors.Wrap(err, "")
	}
	configB, err := json.Marshal(config)
	if err != nil {
		return Config{}, errors.Wrap(err, "")
	}
	log.Printf("config: %s", configB)
	return config, nil
}

func (config Config) codecConfig() (*huffman.Config, error) {
	switch config.Decoder {
	case "", "tree":
		return &huffman.Config{Decoder: huffman.DecoderTree}, nil
	case "table":
		return &huffman.Config{Decoder: huffman.DecoderTable}, nil
	default:
		return nil, errors.Errorf("unknown decoder %q", config.Decoder)
	}
}

func readLines(path string) ([]string, error) {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "")
		}
		defer f.Close()
		r = f
	}

	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "")
	}
	return lines, nil
}

func writeFile(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return errors.Wrap(err, "")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "")
}

type stats struct {
	lines    int
	rawBits  int64
	codeBits int64
}

func (s stats) report() {
	ratio := 0.0
	if s.rawBits > 0 {
		ratio = float64(s.codeBits) / float64(s.rawBits)
	}
	log.Printf("lines: %d, raw bits: %d, coded bits: %d, ratio: %.4f", s.lines, s.rawBits, s.codeBits, ratio)
}

func trainCharacters(config Config, conf *huffman.Config, lines []string) ([]byte, error) {
	c, err := huffman.TrainStringCodec(lines, conf)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	log.Printf("alphabet: %d characters, code lengths %d .. %d", c.Engine().Len(), c.Engine().Table().MinSize(), c.Engine().Table().MaxSize())

	var s stats
	for i, line := range lines {
		buf, bitLen, err := c.Encode(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", i+1)
		}
		decoded, err := c.Decode(buf, bitLen)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", i+1)
		}
		if decoded != line {
			return nil, errors.Errorf("line %d: round trip mismatch", i+1)
		}
		s.lines++
		s.rawBits += int64(len(line)) * 8
		s.codeBits += bitLen
	}
	s.report()

	if config.Frequencies != "" {
		f := huffman.NewFrequencies[string]()
		for _, line := range lines {
			for _, r := range line {
				f.Record(string(r))
			}
		}
		if err := writeFrequencies(config.Frequencies, f); err != nil {
			return nil, err
		}
	}
	return json.MarshalIndent(c.CanonicalTable(), "", "\t")
}

func trainWords(config Config, conf *huffman.Config, lines []string) ([]byte, error) {
	lists := make([][]string, len(lines))
	for i, line := range lines {
		lists[i] = strings.Fields(line)
	}

	c, err := huffman.TrainStringListCodec(lists, conf)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	log.Printf("alphabet: %d words, code lengths %d .. %d", c.Engine().Len(), c.Engine().Table().MinSize(), c.Engine().Table().MaxSize())

	var s stats
	for i, list := range lists {
		buf, bitLen, err := c.Encode(list)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", i+1)
		}
		decoded, err := c.Decode(buf, bitLen)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", i+1)
		}
		if strings.Join(decoded, " ") != strings.Join(list, " ") {
			return nil, errors.Errorf("line %d: round trip mismatch", i+1)
		}
		s.lines++
		s.rawBits += int64(len(strings.Join(list, " "))) * 8
		s.codeBits += bitLen
	}
	s.report()

	if config.Frequencies != "" {
		f := huffman.NewFrequencies[string]()
		for _, list := range lists {
			f.RecordAll(list)
		}
		if err := writeFrequencies(config.Frequencies, f); err != nil {
			return nil, err
		}
	}
	return json.MarshalIndent(c.CanonicalTable(), "", "\t")
}

func writeFrequencies(path string, f *huffman.Frequencies[string]) error {
	var sb strings.Builder
	if _, err := huffman.WriteFrequencies(&sb, f); err != nil {
		return errors.Wrap(err, "")
	}
	return writeFile(path, []byte(sb.String()))
}

func run(config Config) error {
	conf, err := config.codecConfig()
	if err != nil {
		return err
	}
	lines, err := readLines(config.Input)
	if err != nil {
		return err
	}

	var out []byte
	switch config.Mode {
	case "", "characters":
		out, err = trainCharacters(config, conf, lines)
	case "words":
		out, err = trainWords(config, conf, lines)
	default:
		err = errors.Errorf("unknown mode %q", config.Mode)
	}
	if err != nil {
		return err
	}
	return writeFile(config.Output, append(out, '\n'))
}

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)

	config, err := parseConfig()
	if err != nil {
		log.Fatalf("%+v", err)
	}
	if err := run(config); err != nil {
		log.Fatalf("%+v", err)
	}
}
