// Package provider abstracts the external chat-completions service used
// for structured grading.
package provider

import "context"

// Message is one chat turn sent to the grading model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a single completion call.
type Request struct {
	Model       string
	Temperature float64
	// JSONOnly asks the service for a JSON-object response mode.
	JSONOnly bool
	Messages []Message
}

// Response carries the first candidate's message content.
type Response struct {
	Content string
}

// Provider performs one blocking completion call. Implementations must
// honor ctx cancellation and enforce their own timeout.
type Provider interface {
	ChatCompletion(ctx context.Context, req *Request) (*Response, error)
}
