// Package completion abstracts the text-completion call that consumes the
// assembled diff payload. The core treats it as an opaque, cancellable
// operation with a token-budget contract; retry and timeout policy belong
// to the caller.
package completion

import "context"

// Request is one completion call. MaxTokens is the output allocation for
// the operation; ReasoningEffort is an opaque hint passed through to
// providers that accept one.
type Request struct {
	System          string
	User            string
	MaxTokens       int
	ReasoningEffort string
}

// Response is the raw text reply.
type Response struct {
	Content string
}

// Client abstracts the LLM API for testability.
type Client interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}
