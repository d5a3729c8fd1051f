// Package tokens provides token estimation for budgeting LLM payloads.
//
// The default estimator is a fixed character ratio: cheap, deterministic,
// and dependency-free. All budget constants in this repo are defined in
// these estimated units, not in any vendor tokenizer's units. An exact
// tiktoken-backed counter is available for callers that want real counts,
// but the fixed budgets do not transfer to it.
package tokens

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// CharsPerToken is the fixed estimation ratio.
const CharsPerToken = 4

// Estimate returns ceil(len(text) / CharsPerToken). Estimate("") == 0.
func Estimate(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + CharsPerToken - 1) / CharsPerToken
}

// Counter abstracts token counting so the exact tokenizer can be swapped in.
type Counter interface {
	Count(text string) int
}

// RatioCounter counts with the fixed character ratio.
type RatioCounter struct{}

func (RatioCounter) Count(text string) int { return Estimate(text) }

// TiktokenCounter counts with a real BPE tokenizer.
type TiktokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewTiktokenCounter creates a counter for the given model, falling back to
// cl100k_base when the model is unknown.
func NewTiktokenCounter(model string) (*TiktokenCounter, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, fmt.Errorf("loading cl100k_base encoding: %w", err)
		}
	}
	return &TiktokenCounter{enc: enc}, nil
}

func (c *TiktokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(c.enc.Encode(text, nil, nil))
}
