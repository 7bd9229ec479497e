package providers

import "context"

// CompletionProvider is the generative text service behind narrative
// synthesis. Exactly one completion call is issued per triage request;
// the returned text is expected to be JSON, optionally wrapped in
// code-fence markers.
type CompletionProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ChatCompletionProvider backs the patient chat assistant.
type ChatCompletionProvider interface {
	ChatComplete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}
