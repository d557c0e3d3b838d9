package mongo

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/safecall/crm-console/internal/api/metrics"
)

const (
	DiagnosticsCollection = "diagnostics"

	diagnosticsBuffer = 1000
	insertTimeout     = 5 * time.Second
)

// Inserter is the part of *mongo.Collection the writer needs.
type Inserter interface {
	InsertOne(ctx context.Context, document any, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// DiagnosticEntry is one persisted log line.
type DiagnosticEntry struct {
	Level     string         `bson:"level"`
	Message   string         `bson:"message"`
	Fields    map[string]any `bson:"fields,omitempty"`
	CreatedAt time.Time      `bson:"created_at"`
}

// DiagnosticsWriter is a zerolog.LevelWriter that copies entries at or above
// a minimum level into Mongo. Inserts happen on a background goroutine; when
// the buffer is full new entries are dropped rather than blocking the caller.
type DiagnosticsWriter struct {
	coll     Inserter
	minLevel zerolog.Level
	entries  chan []byte

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewDiagnosticsWriter starts the background insert loop.
func NewDiagnosticsWriter(coll Inserter, minLevel zerolog.Level) *DiagnosticsWriter {
	w := &DiagnosticsWriter{
		coll:     coll,
		minLevel: minLevel,
		entries:  make(chan []byte, diagnosticsBuffer),
		done:     make(chan struct{}),
	}
	go w.run()
	return w
}

// Write satisfies io.Writer. Entries without a level are not persisted.
func (w *DiagnosticsWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

func (w *DiagnosticsWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < w.minLevel || level == zerolog.NoLevel {
		return len(p), nil
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return len(p), nil
	}

	// zerolog reuses p after Write returns.
	buf := make([]byte, len(p))
	copy(buf, p)

	select {
	case w.entries <- buf:
	default:
		metrics.DiagnosticsDroppedTotal.Inc()
	}
	return len(p), nil
}

// Close stops accepting entries and waits until the buffered ones are
// written or ctx expires.
func (w *DiagnosticsWriter) Close(ctx context.Context) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.entries)
	}
	w.mu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *DiagnosticsWriter) run() {
	defer close(w.done)
	for raw := range w.entries {
		entry := decodeEntry(raw)

		ctx, cancel := context.WithTimeout(context.Background(), insertTimeout)
		// Insert failures are not logged: logging here would feed back into
		// this writer.
		_, _ = w.coll.InsertOne(ctx, entry)
		cancel()
	}
}

func decodeEntry(raw []byte) DiagnosticEntry {
	entry := DiagnosticEntry{CreatedAt: time.Now().UTC()}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		entry.Message = string(raw)
		return entry
	}
	if v, ok := fields[zerolog.LevelFieldName].(string); ok {
		entry.Level = v
		delete(fields, zerolog.LevelFieldName)
	}
	if v, ok := fields[zerolog.MessageFieldName].(string); ok {
		entry.Message = v
		delete(fields, zerolog.MessageFieldName)
	}
	delete(fields, zerolog.TimestampFieldName)
	if len(fields) > 0 {
		entry.Fields = fields
	}
	return entry
}
