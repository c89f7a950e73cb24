package request

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryFor(t *testing.T) {
	tests := []struct {
		name  string
		total int
		want  Category
	}{
		{name: "should classify zero tokens as short", total: 0, want: Short},
		{name: "should classify 500 tokens as short", total: 500, want: Short},
		{name: "should classify 501 tokens as medium", total: 501, want: Medium},
		{name: "should classify 2500 tokens as medium", total: 2500, want: Medium},
		{name: "should classify 2501 tokens as long", total: 2501, want: Long},
		{name: "should classify 11500 tokens as long", total: 11500, want: Long},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryFor(tt.total))
		})
	}
}

func TestCategory_Valid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid(), c)
	}
	assert.False(t, Category("huge").Valid())
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "should return 0 for empty text", text: "", want: 0},
		{name: "should floor partial tokens", text: "abc", want: 0},
		{name: "should count four characters as one token", text: "abcd", want: 1},
		{name: "should floor 4003 characters to 1000 tokens", text: strings.Repeat("x", 4003), want: 1000},
		{name: "should count characters not bytes", text: "éééé", want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateTokens(tt.text))
		})
	}
}

func TestRequest_WithEstimatedTokens(t *testing.T) {
	prompt := strings.Repeat("word ", 200) // 1000 characters

	tests := []struct {
		name       string
		req        Request
		wantInput  int
		wantOutput int
	}{
		{
			name:       "should leave explicit counts untouched",
			req:        Request{InputTokens: 100, OutputTokens: 300, PromptText: prompt},
			wantInput:  100,
			wantOutput: 300,
		},
		{
			name:       "should estimate input and default output when both are zero",
			req:        Request{PromptText: prompt},
			wantInput:  250,
			wantOutput: DefaultOutputTokens,
		},
		{
			name:       "should re-estimate input when only output is zero",
			req:        Request{InputTokens: 40, PromptText: prompt},
			wantInput:  250,
			wantOutput: DefaultOutputTokens,
		},
		{
			name:       "should keep explicit output when input is zero",
			req:        Request{OutputTokens: 800, PromptText: prompt},
			wantInput:  250,
			wantOutput: 800,
		},
		{
			name:       "should not estimate without prompt text",
			req:        Request{},
			wantInput:  0,
			wantOutput: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.req.WithEstimatedTokens(DefaultOutputTokens)
			assert.Equal(t, tt.wantInput, got.InputTokens)
			assert.Equal(t, tt.wantOutput, got.OutputTokens)
			assert.Equal(t, tt.wantInput+tt.wantOutput, got.TotalTokens())
		})
	}
}
