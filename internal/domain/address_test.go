package domain

import (
	"errors"
	"testing"
)

func TestParseAddress_Valid(t *testing.T) {
	cases := []string{
		"0x4a2A3501e50759250828ACd85E7450fb55A10a69",
		"0x0000000000000000000000000000000000000000",
		"0xFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF",
		"  0x4a2A3501e50759250828ACd85E7450fb55A10a69  ",
	}

	for _, raw := range cases {
		addr, err := ParseAddress(raw)
		if err != nil {
			t.Errorf("ParseAddress(%q): unexpected error %v", raw, err)
			continue
		}
		if len(addr.String()) != 42 {
			t.Errorf("ParseAddress(%q): expected 42 chars, got %d", raw, len(addr.String()))
		}
	}
}

func TestParseAddress_CasePreserved(t *testing.T) {
	addr, err := ParseAddress("0x4a2A3501e50759250828ACd85E7450fb55A10a69")
	if err != nil {
		t.Fatalf("ParseAddress: %v", err)
	}
	if addr.String() != "0x4a2A3501e50759250828ACd85E7450fb55A10a69" {
		t.Errorf("expected hex case preserved, got %s", addr)
	}
}

func TestParseAddress_Empty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n"} {
		_, err := ParseAddress(raw)
		if !errors.Is(err, ErrEmptyAddress) {
			t.Errorf("ParseAddress(%q): expected ErrEmptyAddress, got %v", raw, err)
		}
	}
}

func TestParseAddress_Malformed(t *testing.T) {
	cases := []string{
		"0x4a2A3501e50759250828ACd85E7450fb55A10a6",   // 41 chars
		"0x4a2A3501e50759250828ACd85E7450fb55A10a690", // 43 chars
		"4a2A3501e50759250828ACd85E7450fb55A10a69ab",  // no prefix
		"0x4a2A3501e50759250828ACd85E7450fb55A10aZZ",  // non-hex
		"1x4a2A3501e50759250828ACd85E7450fb55A10a69",  // wrong prefix
		"0x 4a2A3501e50759250828ACd85E7450fb55A10a6",  // embedded space
	}

	for _, raw := range cases {
		_, err := ParseAddress(raw)
		if !errors.Is(err, ErrMalformedAddress) {
			t.Errorf("ParseAddress(%q): expected ErrMalformedAddress, got %v", raw, err)
		}
	}
}

func TestAddress_Short(t *testing.T) {
	addr := Address("0x4a2A3501e50759250828ACd85E7450fb55A10a69")
	if got := addr.Short(); got != "0x4a2A...0a69" {
		t.Errorf("expected 0x4a2A...0a69, got %s", got)
	}
}
