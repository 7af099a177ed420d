package driven

import "context"

// AnswerService produces a grounded answer to a question given an assembled
// context block. Failures propagate unchanged to the caller; the core never
// retries.
//
// Implementations may include:
//   - Ollama (a Modelfile-built persona, llama3.2, ...)
//   - OpenAI chat completions
type AnswerService interface {
	// Complete answers the question using the context block. The prompt
	// shape is a single user message carrying the context followed by the
	// question.
	Complete(ctx context.Context, question, contextBlock string) (string, error)

	// ModelName returns the name of the answering model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
