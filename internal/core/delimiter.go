package core

// delimiter.go resolves which delimiter applies to an input and splits the
// numeric body into tokens.
//
// Header recognition and tokenization are kept as separate steps so each can
// be tested on its own:
//
//	spec, body, err := ParseHeader("//;\n1;2") // spec.Custom == ';', body == "1;2"
//	tokens := spec.Split(body)                // ["1", "2"]

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// HeaderPrefix marks the start of a custom delimiter header.
const HeaderPrefix = "//"

// Default delimiters, usable interchangeably without declaration.
const (
	DefaultDelimiter = ','
	NewlineDelimiter = '\n'
)

// DelimiterSpec describes how a numeric body is split into tokens.
// The zero value is the default spec (comma or newline).
type DelimiterSpec struct {
	// Custom is the single declared delimiter. Only meaningful when IsCustom.
	Custom rune
	custom bool
}

// DefaultSpec returns the spec used when no header is present.
func DefaultSpec() DelimiterSpec {
	return DelimiterSpec{}
}

// CustomSpec returns a spec splitting only on r. Any rune is allowed,
// including NUL.
func CustomSpec(r rune) DelimiterSpec {
	return DelimiterSpec{Custom: r, custom: true}
}

// IsCustom reports whether the spec came from a "//" header.
func (d DelimiterSpec) IsCustom() bool {
	return d.custom
}

// String returns a readable form of the spec for logging.
func (d DelimiterSpec) String() string {
	if !d.IsCustom() {
		return `default(",", "\n")`
	}
	return "custom(" + strconv.QuoteRune(d.Custom) + ")"
}

// Split tokenizes body on the resolved delimiter.
// Consecutive delimiters produce empty tokens; nothing is dropped.
func (d DelimiterSpec) Split(body string) []string {
	if d.IsCustom() {
		return strings.Split(body, string(d.Custom))
	}
	return splitDefault(body)
}

// splitDefault splits on comma or newline. Both are single bytes, so a byte
// scan is safe for any UTF-8 body.
func splitDefault(body string) []string {
	tokens := make([]string, 0, strings.Count(body, ",")+strings.Count(body, "\n")+1)
	start := 0
	for i := 0; i < len(body); i++ {
		if body[i] == DefaultDelimiter || body[i] == NewlineDelimiter {
			tokens = append(tokens, body[start:i])
			start = i + 1
		}
	}
	return append(tokens, body[start:])
}

// ParseHeader resolves the delimiter for input and returns the body that
// remains to be tokenized.
//
// Input without the "//" prefix is returned unchanged with the default spec.
// With the prefix, the character at position 2 becomes the delimiter and the
// body starts after the first newline. A header that has no delimiter
// character, uses a newline as its delimiter, or is never terminated by a
// newline fails with KindMalformedHeader.
func ParseHeader(input string) (DelimiterSpec, string, error) {
	if !strings.HasPrefix(input, HeaderPrefix) {
		return DefaultSpec(), input, nil
	}

	rest := input[len(HeaderPrefix):]
	header, body, found := strings.Cut(rest, "\n")
	if !found {
		return DelimiterSpec{}, "", newMalformedHeader(input, "missing newline after delimiter declaration")
	}
	if header == "" {
		return DelimiterSpec{}, "", newMalformedHeader(HeaderPrefix, "no delimiter character after \"//\"")
	}

	r, size := utf8.DecodeRuneInString(header)
	if r == utf8.RuneError && size == 1 {
		return DelimiterSpec{}, "", newMalformedHeader(HeaderPrefix+header, "delimiter is not a valid character")
	}

	return CustomSpec(r), body, nil
}
