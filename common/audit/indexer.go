// Package audit keeps a trail of completed detections outside the request
// path. Records hold the payload fingerprint and verdict, never the audio.
package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"voicedetect/common/models"
)

// Sink persists one record.
type Sink interface {
	Index(ctx context.Context, rec models.DetectionRecord) error
}

// Recorder accepts records without blocking the caller.
type Recorder interface {
	Submit(rec models.DetectionRecord) bool
}

// Discard is a Recorder that drops everything. Used when auditing is off.
var Discard Recorder = discard{}

type discard struct{}

func (discard) Submit(models.DetectionRecord) bool { return true }

// indexTimeout bounds a single sink write.
const indexTimeout = 5 * time.Second

// Indexer forwards records to a Sink from a single background worker
// through a bounded queue.
type Indexer struct {
	sink   Sink
	queue  chan models.DetectionRecord
	onDrop func(reason string)
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewIndexer starts the worker. onDrop, if non-nil, is called for every
// record that is not stored ("queue_full" or "index_error").
func NewIndexer(sink Sink, queueSize int, onDrop func(reason string)) *Indexer {
	if onDrop == nil {
		onDrop = func(string) {}
	}
	ix := &Indexer{
		sink:   sink,
		queue:  make(chan models.DetectionRecord, queueSize),
		onDrop: onDrop,
		done:   make(chan struct{}),
	}
	go ix.run()
	return ix
}

// Submit enqueues rec. It returns false when the queue is full or the
// indexer is closed; the record is then dropped.
func (ix *Indexer) Submit(rec models.DetectionRecord) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if ix.closed {
		return false
	}
	select {
	case ix.queue <- rec:
		return true
	default:
		slog.Warn("audit queue full, dropping record", slog.String("id", rec.ID))
		ix.onDrop("queue_full")
		return false
	}
}

func (ix *Indexer) run() {
	defer close(ix.done)
	for rec := range ix.queue {
		ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
		err := ix.sink.Index(ctx, rec)
		cancel()
		if err != nil {
			slog.Error("audit index failed", slog.String("id", rec.ID), slog.Any("err", err))
			ix.onDrop("index_error")
		}
	}
}

// Close stops accepting records and waits for the queue to drain or ctx to
// end.
func (ix *Indexer) Close(ctx context.Context) error {
	ix.mu.Lock()
	if !ix.closed {
		ix.closed = true
		close(ix.queue)
	}
	ix.mu.Unlock()

	select {
	case <-ix.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
