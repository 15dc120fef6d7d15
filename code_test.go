package huffman

import (
	"testing"
)

func mustParseCode(t *testing.T, str string) Code {
	t.Helper()
	hc, err := ParseCode(str)
	if err != nil {
		t.Fatalf("ParseCode(%q) failed: %v", str, err)
	}
	return hc
}

func TestCode_String(t *testing.T) {
	type testRow struct {
		code   Code
		expect string
	}

	testData := [...]testRow{
		{MakeCode(0, 0), `""`},
		{MakeCode(1, 0), `"0"`},
		{MakeCode(3, 5), `"101"`},
		{MakeCode(4, 1), `"0001"`},
	}
	for _, row := range testData {
		actual := row.code.String()
		if actual != row.expect {
			t.Errorf("wrong output for %#v:\n\texpect: %s\n\tactual: %s", row.code, row.expect, actual)
		}
	}
}

func TestParseCode(t *testing.T) {
	actual := mustParseCode(t, "0110")
	expect := MakeCode(4, 6)
	if actual != expect {
		t.Errorf("wrong code:\n\texpect: %#v\n\tactual: %#v", expect, actual)
	}

	for _, bad := range []string{"012", "x", "000000000000000000000000000000000"} {
		if _, err := ParseCode(bad); err == nil {
			t.Errorf("ParseCode(%q): expected error", bad)
		}
	}
}

func TestCode_Bit(t *testing.T) {
	hc := mustParseCode(t, "1101")
	expect := []bool{true, true, false, true}
	for i, want := range expect {
		if got := hc.Bit(byte(i)); got != want {
			t.Errorf("Bit(%d): expected %v, got %v", i, want, got)
		}
	}
}

func TestCode_HasPrefix(t *testing.T) {
	type testRow struct {
		code   string
		prefix string
		expect bool
	}

	testData := [...]testRow{
		{"", "", true},
		{"0", "", true},
		{"0110", "01", true},
		{"0110", "0110", true},
		{"0110", "00", false},
		{"01", "011", false},
		{"11111111111111111111111111111111", "", true},
		{"11111111111111111111111111111111", "1", true},
	}
	for _, row := range testData {
		hc := mustParseCode(t, row.code)
		prefix := mustParseCode(t, row.prefix)
		if actual := hc.HasPrefix(prefix); actual != row.expect {
			t.Errorf("%s.HasPrefix(%s): expected %v, got %v", hc, prefix, row.expect, actual)
		}
	}
}

func TestCode_Relatives(t *testing.T) {
	hc := mustParseCode(t, "101")
	if expect, actual := mustParseCode(t, "10"), hc.parent(); expect != actual {
		t.Errorf("parent: expected %s, got %s", expect, actual)
	}
	if expect, actual := mustParseCode(t, "100"), hc.sibling(); expect != actual {
		t.Errorf("sibling: expected %s, got %s", expect, actual)
	}
}
