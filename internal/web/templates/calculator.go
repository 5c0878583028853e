// Package templates holds the HTML components of the calculator UI.
// Components live in calculator.templ; run `templ generate` after editing it.
package templates

// InputField is the form field holding the numbers.
const InputField = "numbers"

// ResultView is what the result region shows after a calculation.
// A zero ResultView renders an empty region.
type ResultView struct {
	CalculationID string
	Display       string // "Result: 6" or "Error: ..."
	IsError       bool
	Code          string // support code, errors only
	Action        string // suggested fix, errors only
}

// Empty reports whether there is nothing to show yet.
func (v ResultView) Empty() bool {
	return v.Display == ""
}

// PageData is everything the calculator page needs.
type PageData struct {
	Input  string
	Result ResultView
}

// textareaValue prefixes the input with the newline HTML parsers drop right
// after <textarea>, so input that itself starts with a newline survives.
func textareaValue(input string) string {
	return "\n" + input
}
