package nav

import (
	"errors"
	"strings"
	"unicode"
)

// ErrInvalidAddress is returned by Normalize for input that cannot be an address.
var ErrInvalidAddress = errors.New("invalid address")

// Normalize turns raw address-bar text into an absolute http(s) address.
//
// Input that already carries an http:// or https:// scheme (any case) is
// returned trimmed and otherwise untouched. Input with whitespace inside it
// reads like a search phrase and is rejected. Everything else gets https://.
// Hosts are not validated here; the embedded surface fails on bad ones.
func Normalize(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrInvalidAddress
	}

	if hasHTTPScheme(s) {
		return s, nil
	}

	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return "", ErrInvalidAddress
	}

	return "https://" + s, nil
}

func hasHTTPScheme(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
