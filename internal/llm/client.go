package llm

import "context"

type Message struct {
	Role    string
	Content string
}

type Response struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Client is a single-turn chat completion client. Temperature is passed per
// call: the translation path needs deterministic decoding, reply drafting
// does not.
type Client interface {
	Generate(ctx context.Context, messages []Message, temperature float32) (Response, error)
}
