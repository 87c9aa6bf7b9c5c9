package domain

import (
	"errors"
	"regexp"
	"strings"
)

// Address validation errors.
var (
	ErrEmptyAddress     = errors.New("empty address")
	ErrMalformedAddress = errors.New("malformed address: expected 0x followed by 40 hex characters")
)

// addressLength is the full length of a node address including the 0x prefix.
const addressLength = 42

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// Address is a validated node address: 0x followed by 40 hex characters.
type Address string

// ParseAddress validates raw input and returns it as an Address.
// Surrounding whitespace is tolerated; hex case is preserved.
func ParseAddress(raw string) (Address, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrEmptyAddress
	}
	if !addressPattern.MatchString(trimmed) {
		return "", ErrMalformedAddress
	}
	return Address(trimmed), nil
}

func (a Address) String() string {
	return string(a)
}

// Short returns an abbreviated form for display, e.g. "0x4a2A...0a69".
func (a Address) Short() string {
	s := string(a)
	if len(s) != addressLength {
		return s
	}
	return s[:6] + "..." + s[len(s)-4:]
}
