package artifact

import (
	"context"
	"errors"
	"fmt"
)

// Artifact is one fully generated output.
type Artifact struct {
	// Path is the destination path, relative to the sink's root or absolute.
	Path string
	// Data is the complete file content.
	Data []byte
}

// Sink persists a complete set of artifacts.
type Sink interface {
	// Flush writes every artifact. FileSink and MultiSink undo partial work on
	// failure; a BucketSink may leave objects uploaded before the error.
	Flush(ctx context.Context, artifacts []Artifact) error
}

// Revert undoes a completed flush.
type Revert func() error

// Reverter is a Sink whose flush can be undone after it returns, for example
// when a database commit that belongs to the same run fails.
type Reverter interface {
	Sink
	FlushRevertible(ctx context.Context, artifacts []Artifact) (Revert, error)
}

// FlushRevertible flushes artifacts through s and returns a function that
// undoes the flush. Sinks that cannot revert get a no-op Revert.
func FlushRevertible(ctx context.Context, s Sink, artifacts []Artifact) (Revert, error) {
	if r, ok := s.(Reverter); ok {
		return r.FlushRevertible(ctx, artifacts)
	}
	if err := s.Flush(ctx, artifacts); err != nil {
		return nil, err
	}
	return func() error { return nil }, nil
}

// StaleChecker reports which artifacts differ from what is already persisted.
type StaleChecker interface {
	Stale(artifacts []Artifact) ([]string, error)
}

// MultiSink flushes to each sink in order. At the first failure the sinks
// already flushed are reverted where they support it.
type MultiSink []Sink

// Flush implements Sink.
func (m MultiSink) Flush(ctx context.Context, artifacts []Artifact) error {
	_, err := m.FlushRevertible(ctx, artifacts)
	return err
}

// FlushRevertible implements Reverter. The returned Revert undoes the sinks
// in reverse order.
func (m MultiSink) FlushRevertible(ctx context.Context, artifacts []Artifact) (Revert, error) {
	var reverts []Revert
	undo := func() error {
		var errs []error
		for i := len(reverts) - 1; i >= 0; i-- {
			if err := reverts[i](); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	for i, s := range m {
		r, err := FlushRevertible(ctx, s, artifacts)
		if err != nil {
			if undoErr := undo(); undoErr != nil {
				err = errors.Join(err, undoErr)
			}
			return nil, fmt.Errorf("sink %d: %w", i, err)
		}
		reverts = append(reverts, r)
	}
	return undo, nil
}
