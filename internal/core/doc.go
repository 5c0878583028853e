// Package core provides the string calculator: it turns a delimited string of
// numbers into their sum.
//
// This package is the heart of the application, containing all domain logic
// independent of any UI or transport layer. It is used by the web handlers and
// the CLI without modification, and holds no state between calls.
//
// # Input Format
//
// Numbers are separated by a comma or a newline, interchangeably:
//
//	1,2,3
//	1\n2,3
//
// A custom single-character delimiter may be declared with a header line:
//
//	//;\n1;2
//
// The header is everything up to the first newline. Only the character right
// after "//" is used; the rest of the header line is ignored.
//
// # Processing
//
// A call goes through three independent steps:
//
//  1. [ParseHeader] resolves the [DelimiterSpec] and the numeric body
//  2. [DelimiterSpec.Split] tokenizes the body
//  3. [ParseNumber] validates and converts every token
//
// All tokens are converted before negative values are checked, so a
// non-numeric token is always reported in preference to negatives.
//
// # Error Handling
//
// Failures are returned as [*CalcError] values whose [Kind] is one of
// [KindInvalidNumber], [KindNegativesNotAllowed] or [KindMalformedHeader].
// Each kind unwraps to a sentinel error for use with errors.Is.
//
// Transport layers map errors to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - CALC001-CALC003: Calculation errors (numbers, negatives, header)
//   - REQ001-REQ002: Request errors (size, missing field)
//   - AUTH001-AUTH002: API key errors
//   - RATE001: Rate limiting
package core
