// Package request describes a single model query and classifies it by size.
package request

import "unicode/utf8"

// Category is the benchmark bucket a query falls into, derived from its total token count.
type Category string

const (
	Short  Category = "short"
	Medium Category = "medium"
	Long   Category = "long"
)

// Categories lists every category in ascending size order.
var Categories = []Category{Short, Medium, Long}

const (
	// ShortMaxTokens is the largest total token count classified as Short.
	ShortMaxTokens = 500
	// MediumMaxTokens is the largest total token count classified as Medium.
	MediumMaxTokens = 2500

	// DefaultOutputTokens is assumed for a prompt whose response length is unknown.
	DefaultOutputTokens = 300

	charsPerToken = 4
)

// CategoryFor classifies a query by its total (input + output) token count.
//
// Benchmark reference points: short is 100 in / 300 out, medium 1000 / 1000, long 10000 / 1500.
func CategoryFor(totalTokens int) Category {
	switch {
	case totalTokens <= ShortMaxTokens:
		return Short
	case totalTokens <= MediumMaxTokens:
		return Medium
	default:
		return Long
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case Short, Medium, Long:
		return true
	}
	return false
}

// EstimateTokens approximates the token count of English text as one token per four characters.
func EstimateTokens(text string) int {
	return utf8.RuneCountInString(text) / charsPerToken
}

// Request is one query against a model.
type Request struct {
	ModelID      string
	InputTokens  int
	OutputTokens int
	PromptText   string
}

// TotalTokens returns input plus output tokens.
func (r Request) TotalTokens() int {
	return r.InputTokens + r.OutputTokens
}

// Category returns the benchmark category of the request.
func (r Request) Category() Category {
	return CategoryFor(r.TotalTokens())
}

// WithEstimatedTokens fills in token counts from the prompt text.
//
// When prompt text is present and either count is zero, input tokens are re-estimated from the
// text and a zero output count becomes defaultOutput. Otherwise r is returned unchanged.
func (r Request) WithEstimatedTokens(defaultOutput int) Request {
	if r.PromptText == "" || (r.InputTokens != 0 && r.OutputTokens != 0) {
		return r
	}
	r.InputTokens = EstimateTokens(r.PromptText)
	if r.OutputTokens == 0 {
		r.OutputTokens = defaultOutput
	}
	return r
}
