package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// fakeIngestor records ingest calls.
type fakeIngestor struct {
	err         error
	texts       map[string]string
	pdfPaths    []string
	urls        []string
	streamNames []string
	streamBytes [][]byte
}

func (f *fakeIngestor) IngestText(_ context.Context, sourceID, text string) error {
	if f.err != nil {
		return f.err
	}
	if f.texts == nil {
		f.texts = make(map[string]string)
	}
	f.texts[sourceID] = text
	return nil
}

func (f *fakeIngestor) IngestPDF(_ context.Context, path string) error {
	if f.err != nil {
		return f.err
	}
	f.pdfPaths = append(f.pdfPaths, path)
	return nil
}

func (f *fakeIngestor) IngestPDFStream(_ context.Context, fileName string, content io.Reader) error {
	if f.err != nil {
		return f.err
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	f.streamNames = append(f.streamNames, fileName)
	f.streamBytes = append(f.streamBytes, data)
	return nil
}

func (f *fakeIngestor) IngestURL(_ context.Context, url string) error {
	if f.err != nil {
		return f.err
	}
	f.urls = append(f.urls, url)
	return nil
}

// fakeAsker returns a fixed answer.
type fakeAsker struct {
	answer       string
	err          error
	lastQuestion string
}

func (f *fakeAsker) Ask(_ context.Context, question string) (string, error) {
	f.lastQuestion = question
	return f.answer, f.err
}

// fakeChunkStore serves canned sources and records deletions.
type fakeChunkStore struct {
	sources      []domain.SourceInfo
	deleteCounts map[string]int64
	deleted      []string
}

func (f *fakeChunkStore) Upsert(context.Context, domain.Chunk) error { return nil }
func (f *fakeChunkStore) All(context.Context) ([]domain.Chunk, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeChunkStore) Sources(context.Context) ([]domain.SourceInfo, error) {
	return f.sources, nil
}
func (f *fakeChunkStore) DeleteSource(_ context.Context, sourceID string) (int64, error) {
	f.deleted = append(f.deleted, sourceID)
	return f.deleteCounts[sourceID], nil
}
func (f *fakeChunkStore) Close() error { return nil }

// setupTestServices injects fakes into the wired-service slots and returns
// a cleanup restoring the previous state.
func setupTestServices(ingestor *fakeIngestor, asker *fakeAsker, store *fakeChunkStore) func() {
	prevIngest, prevAsk, prevStore := ingestService, askService, chunkStore

	if ingestor != nil {
		ingestService = ingestor
	} else {
		ingestService = &fakeIngestor{}
	}
	if asker != nil {
		askService = asker
	} else {
		askService = &fakeAsker{}
	}
	if store != nil {
		chunkStore = store
	} else {
		chunkStore = &fakeChunkStore{}
	}

	return func() {
		ingestService, askService, chunkStore = prevIngest, prevAsk, prevStore
	}
}

// execute runs the root command with args and captures output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
