package uploads

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/jonathan/optihire/internal/api"
	"github.com/jonathan/optihire/internal/poller"
)

// Backend is the slice of the API client the workflow needs.
type Backend interface {
	poller.StatusClient
	Upload(ctx context.Context, filename string, contentType string, file io.Reader) (*api.UploadResult, error)
	GetResumeComplete(ctx context.Context, id uuid.UUID) (*api.ResumeComplete, error)
}

// Workflow uploads a resume file and watches its parse until a terminal
// state, then hydrates the fully parsed record.
type Workflow struct {
	backend Backend
	watcher *poller.Poller

	onParsed func(*api.ResumeComplete)
	onFailed func(message string)
}

// NewWorkflow wires a workflow over backend using cfg for the watch
// cadence. A nil cfg uses the default cadence.
func NewWorkflow(backend Backend, cfg *poller.Config) *Workflow {
	w := &Workflow{backend: backend}
	w.watcher = poller.New(backend, cfg)
	return w
}

// OnParsed registers the callback for a successfully parsed resume.
// Register before Start; the callback runs on the watcher goroutine.
func (w *Workflow) OnParsed(fn func(*api.ResumeComplete)) {
	w.onParsed = fn
}

// OnFailed registers the callback for a failed or timed-out parse.
// Register before Start; the callback runs on the watcher goroutine.
func (w *Workflow) OnFailed(fn func(message string)) {
	w.onFailed = fn
}

// Start validates and uploads the file, then begins watching its parse.
// It returns the upload receipt as soon as the backend accepts the file;
// parse completion arrives through the callbacks.
func (w *Workflow) Start(ctx context.Context, path string) (*api.UploadResult, error) {
	info, err := ValidateFile(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(info.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", info.Path, err)
	}
	defer file.Close()

	result, err := w.backend.Upload(ctx, info.Filename, info.ContentType, file)
	if err != nil {
		return nil, err
	}

	// A synchronous parse can come back already terminal.
	if result.ProcessingStatus == api.StatusCompleted {
		w.finish(ctx, result.ID)
		return result, nil
	}
	if result.ProcessingStatus == api.StatusFailed {
		w.fail(result.Message)
		return result, nil
	}

	w.watcher.OnComplete(func(id uuid.UUID) {
		w.finish(ctx, id)
	})
	w.watcher.OnError(func(message string) {
		w.fail(message)
	})
	w.watcher.Watch(ctx, result.ID)
	return result, nil
}

// Watching exposes the live polling state for progress display.
func (w *Workflow) Watching() (poller.State, bool) {
	return w.watcher.Watching()
}

// Stop abandons any in-progress watch without firing callbacks.
func (w *Workflow) Stop() {
	w.watcher.Stop()
}

func (w *Workflow) finish(ctx context.Context, id uuid.UUID) {
	parsed, err := w.backend.GetResumeComplete(ctx, id)
	if err != nil {
		w.fail(fmt.Sprintf("resume parsed but could not be loaded: %v", err))
		return
	}
	if w.onParsed != nil {
		w.onParsed(parsed)
	}
}

func (w *Workflow) fail(message string) {
	if w.onFailed != nil {
		w.onFailed(message)
	}
}
