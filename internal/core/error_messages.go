package core

// error_messages.go maps technical errors to user-friendly messages with
// codes for support reference. When users encounter errors, they can quote
// the error code to support staff for faster diagnosis.
//
// # Calculation Errors (CALC001-CALC099)
//
//	CALC001 - Invalid number: a token is not a number
//	          Action: Use plain numbers like 4, 2.5 or -1e3 between delimiters
//	CALC002 - Negatives: negative numbers are not allowed
//	          Action: Remove the negative numbers listed in the message
//	CALC003 - Malformed header: the "//" delimiter header is incomplete
//	          Action: Declare the delimiter as //;<newline> followed by the numbers
//
// Calculation errors keep their own message (it names the token or the
// negatives), so Message is taken from the error itself.
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Input too large
//	         Patterns: "input too large"
//	REQ002 - Missing input
//	         Patterns: "missing input"
//
// # Auth Errors (AUTH001-AUTH099)
//
//	AUTH001 - Missing API key
//	          Patterns: "missing api key"
//	AUTH002 - Invalid API key
//	          Patterns: "invalid api key"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches. Support staff should check
// application logs for the original technical error.

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// Request-level errors raised by transports before the calculator runs.
var (
	ErrInputTooLarge = errors.New("input too large")
	ErrMissingInput  = errors.New("missing input")
)

// kindMessages holds the action and code for each calculation failure.
var kindMessages = map[Kind]UserMessage{
	KindInvalidNumber: {
		Action: "Use plain numbers like 4, 2.5 or -1e3 between delimiters",
		Code:   "CALC001",
	},
	KindNegativesNotAllowed: {
		Action: "Remove the negative numbers listed in the message",
		Code:   "CALC002",
	},
	KindMalformedHeader: {
		Action: "Declare the delimiter as //;<newline> followed by the numbers",
		Code:   "CALC003",
	},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// The first matching pattern wins, so more specific patterns come first.
var errorPatterns = []errorPattern{
	{
		pattern: "input too large",
		msg: UserMessage{
			Message: "The numbers you entered are too long",
			Action:  "Split the input into smaller calculations",
			Code:    "REQ001",
		},
	},
	{
		pattern: "missing input",
		msg: UserMessage{
			Message: "No input field was submitted",
			Action:  "Submit the form with the numbers field",
			Code:    "REQ002",
		},
	},
	{
		pattern: "missing api key",
		msg: UserMessage{
			Message: "API key required",
			Action:  "Send your key in the X-API-Key header",
			Code:    "AUTH001",
		},
	},
	{
		pattern: "invalid api key",
		msg: UserMessage{
			Message: "API key not recognized",
			Action:  "Check the key or ask an administrator for a new one",
			Code:    "AUTH002",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Calculation errors keep their descriptive message; other errors are matched
// against known patterns, falling back to ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var ce *CalcError
	if errors.As(err, &ce) {
		msg := kindMessages[ce.Kind]
		msg.Message = ce.Error()
		return msg
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
