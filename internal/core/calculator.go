package core

// Add sums the numbers in input.
//
// An empty input returns 0 without further processing. Otherwise the
// delimiter is resolved, the body is tokenized, and every token is converted;
// the first token that is not a number fails the call with KindInvalidNumber.
// Only when all tokens converted are negatives checked: if any exist the call
// fails with KindNegativesNotAllowed listing all of them in input order.
//
// Add is pure and safe for concurrent use.
func Add(input string) (float64, error) {
	if input == "" {
		return 0, nil
	}

	spec, body, err := ParseHeader(input)
	if err != nil {
		return 0, err
	}

	numbers, err := parseTokens(spec.Split(body))
	if err != nil {
		return 0, err
	}

	if negatives := collectNegatives(numbers); len(negatives) > 0 {
		return 0, newNegativesNotAllowed(negatives)
	}

	var sum float64
	for _, n := range numbers {
		sum += n
	}
	return sum, nil
}

// parseTokens converts every token, stopping at the first invalid one.
func parseTokens(tokens []string) ([]float64, error) {
	numbers := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		n, err := ParseNumber(tok)
		if err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}

func collectNegatives(numbers []float64) []float64 {
	var negatives []float64
	for _, n := range numbers {
		if n < 0 {
			negatives = append(negatives, n)
		}
	}
	return negatives
}

// Result is the outcome of a single calculation: either a sum or an error.
type Result struct {
	Sum float64
	Err error
}

// Calculate runs Add and packages the outcome for presentation layers.
func Calculate(input string) Result {
	sum, err := Add(input)
	return Result{Sum: sum, Err: err}
}

// OK reports whether the calculation succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Kind returns the failure kind, or zero on success.
func (r Result) Kind() Kind {
	return KindOf(r.Err)
}

// Display returns the sum formatted for display. Empty on failure.
func (r Result) Display() string {
	if !r.OK() {
		return ""
	}
	return FormatNumber(r.Sum)
}

// String renders the outcome the way every caller shows it to a user:
// "Result: <n>" or "Error: <message>".
func (r Result) String() string {
	if !r.OK() {
		return "Error: " + r.Err.Error()
	}
	return "Result: " + r.Display()
}
