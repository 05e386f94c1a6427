package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"
)

const (
	poolSampleInterval = 5 * time.Second
	poolSlowWait       = 50 * time.Millisecond
)

// poolMonitor samples connection pool statistics and logs whenever requests
// had to wait for a connection since the previous sample.
type poolMonitor struct {
	db     *sql.DB
	logger *slog.Logger
	cancel context.CancelFunc
	done   chan struct{}
}

func newPoolMonitor(db *sql.DB, logger *slog.Logger) *poolMonitor {
	return &poolMonitor{db: db, logger: logger}
}

func (m *poolMonitor) start() {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.done = make(chan struct{})

	go m.run(ctx)
}

func (m *poolMonitor) stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
}

func (m *poolMonitor) run(ctx context.Context) {
	defer close(m.done)

	ticker := time.NewTicker(poolSampleInterval)
	defer ticker.Stop()

	last := m.db.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			next := m.db.Stats()
			if level, attrs, ok := poolWaitReport(last, next); ok {
				m.logger.LogAttrs(ctx, level, "postgres pool wait", attrs...)
			}
			last = next
		}
	}
}

// poolWaitReport summarises the waits between two samples. ok is false when
// nobody waited.
func poolWaitReport(prev, cur sql.DBStats) (level slog.Level, attrs []slog.Attr, ok bool) {
	waits := cur.WaitCount - prev.WaitCount
	if waits <= 0 {
		return 0, nil, false
	}

	waited := cur.WaitDuration - prev.WaitDuration
	avg := waited / time.Duration(waits)
	attrs = []slog.Attr{
		slog.Int64("waits", waits),
		slog.Duration("waited", waited),
		slog.Duration("avgWait", avg),
		slog.Int("inUse", cur.InUse),
		slog.Int("maxOpen", cur.MaxOpenConnections),
	}

	level = slog.LevelDebug
	if avg >= poolSlowWait {
		level = slog.LevelWarn
	}

	return level, attrs, true
}
