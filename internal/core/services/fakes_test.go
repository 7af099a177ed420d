package services

import (
	"context"
	"errors"
	"sync"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

var (
	errEmbedFailed = errors.New("embedding backend down")
	errStoreFailed = errors.New("store unavailable")
)

// fakeEmbedder returns canned vectors keyed by input text, falling back to
// defaultVec for unknown inputs.
type fakeEmbedder struct {
	mu         sync.Mutex
	vectors    map[string][]float32
	defaultVec []float32
	err        error
	failAfter  int // fail once this many calls succeeded; 0 disables
	calls      int
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	f.calls++
	if f.failAfter > 0 && f.calls > f.failAfter {
		return nil, errEmbedFailed
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return f.defaultVec, nil
}

func (f *fakeEmbedder) Dimensions() int { return len(f.defaultVec) }

func (f *fakeEmbedder) ModelName() string { return "fake-embed" }

func (f *fakeEmbedder) Ping(context.Context) error { return nil }

func (f *fakeEmbedder) Close() error { return nil }

func (f *fakeEmbedder) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeAnswerer records the prompt it is given and returns a fixed answer.
type fakeAnswerer struct {
	mu           sync.Mutex
	answer       string
	err          error
	calls        int
	lastQuestion string
	lastContext  string
}

func (f *fakeAnswerer) Complete(_ context.Context, question, contextBlock string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.lastQuestion = question
	f.lastContext = contextBlock
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func (f *fakeAnswerer) ModelName() string { return "fake-chat" }

func (f *fakeAnswerer) Ping(context.Context) error { return nil }

func (f *fakeAnswerer) Close() error { return nil }

// fakeExtractor returns canned text and records the locator it was given.
type fakeExtractor struct {
	text        string
	err         error
	lastLocator string
}

func (f *fakeExtractor) Extract(_ context.Context, locator string) (string, error) {
	f.lastLocator = locator
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

// failingStore errors on every operation.
type failingStore struct{}

func (failingStore) Upsert(context.Context, domain.Chunk) error { return errStoreFailed }

func (failingStore) All(context.Context) ([]domain.Chunk, error) { return nil, errStoreFailed }

func (failingStore) Sources(context.Context) ([]domain.SourceInfo, error) {
	return nil, errStoreFailed
}

func (failingStore) DeleteSource(context.Context, string) (int64, error) { return 0, errStoreFailed }

func (failingStore) Close() error { return nil }
