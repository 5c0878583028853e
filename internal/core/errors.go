package core

// errors.go defines the failure taxonomy of a calculation.
//
// Every failure is terminal for the call that produced it: there are no
// partial sums and nothing to roll back. Callers branch on the kind with
// errors.Is against the sentinels, or errors.As into *CalcError for details.

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a calculation failure.
type Kind int

const (
	KindInvalidNumber Kind = iota + 1
	KindNegativesNotAllowed
	KindMalformedHeader
)

// Sentinel errors, one per Kind.
var (
	ErrInvalidNumber       = errors.New("invalid number")
	ErrNegativesNotAllowed = errors.New("negatives not allowed")
	ErrMalformedHeader     = errors.New("malformed delimiter header")
)

// String returns the kind name used in logs and API responses.
func (k Kind) String() string {
	switch k {
	case KindInvalidNumber:
		return "InvalidNumber"
	case KindNegativesNotAllowed:
		return "NegativesNotAllowed"
	case KindMalformedHeader:
		return "MalformedDelimiterHeader"
	default:
		return "Unknown"
	}
}

// CalcError describes why a calculation failed.
type CalcError struct {
	Kind Kind

	// Token is the offending token exactly as it appeared in the input
	// (KindInvalidNumber only).
	Token string

	// Negatives lists every negative value in input order
	// (KindNegativesNotAllowed only).
	Negatives []float64

	// Header is the header text that could not be parsed and Reason explains
	// what is wrong with it (KindMalformedHeader only).
	Header string
	Reason string
}

func (e *CalcError) Error() string {
	switch e.Kind {
	case KindInvalidNumber:
		return fmt.Sprintf("invalid input detected: %q is not a number", e.Token)
	case KindNegativesNotAllowed:
		return "negatives not allowed: " + joinNumbers(e.Negatives)
	case KindMalformedHeader:
		return fmt.Sprintf("malformed delimiter header %q: %s", e.Header, e.Reason)
	default:
		return "calculation failed"
	}
}

// Unwrap returns the sentinel matching e.Kind.
func (e *CalcError) Unwrap() error {
	switch e.Kind {
	case KindInvalidNumber:
		return ErrInvalidNumber
	case KindNegativesNotAllowed:
		return ErrNegativesNotAllowed
	case KindMalformedHeader:
		return ErrMalformedHeader
	default:
		return nil
	}
}

// KindOf returns the Kind of err, or zero if err is not a calculation error.
func KindOf(err error) Kind {
	var ce *CalcError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}

func newInvalidNumber(token string) *CalcError {
	return &CalcError{Kind: KindInvalidNumber, Token: token}
}

func newNegativesNotAllowed(negatives []float64) *CalcError {
	return &CalcError{Kind: KindNegativesNotAllowed, Negatives: negatives}
}

func newMalformedHeader(header, reason string) *CalcError {
	return &CalcError{Kind: KindMalformedHeader, Header: header, Reason: reason}
}

func joinNumbers(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = FormatNumber(v)
	}
	return strings.Join(parts, ", ")
}
