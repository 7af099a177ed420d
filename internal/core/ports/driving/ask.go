package driving

import "context"

// Asker answers a question grounded in stored memories.
type Asker interface {
	// Ask embeds the question, retrieves the most similar chunks, builds
	// a context block and delegates to the answering model.
	// An empty or whitespace question returns "" without any model call.
	Ask(ctx context.Context, question string) (string, error)
}
