package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"credguard/config"
	deliverycontext "credguard/internal/delivery/context"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestGormLogger(buf *bytes.Buffer, debug bool) logger.Interface {
	cfg := &config.Config{}
	cfg.Env.Debug = debug

	return newGormSlogLogger(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), cfg)
}

func query() (string, int64) { return "SELECT 1", 1 }

func TestGormSlogLogger_Trace(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		var buf bytes.Buffer
		newTestGormLogger(&buf, false).Trace(context.Background(), time.Now(), query, errors.New("boom"))
		assert.Contains(t, buf.String(), "gorm query failed")
		assert.Contains(t, buf.String(), "boom")
	})

	t.Run("record not found is silent", func(t *testing.T) {
		var buf bytes.Buffer
		newTestGormLogger(&buf, false).Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)
		assert.Empty(t, buf.String())
	})

	t.Run("slow", func(t *testing.T) {
		var buf bytes.Buffer
		newTestGormLogger(&buf, false).Trace(context.Background(), time.Now().Add(-time.Second), query, nil)
		assert.Contains(t, buf.String(), "gorm slow query")
	})

	t.Run("info only in debug", func(t *testing.T) {
		var buf bytes.Buffer
		newTestGormLogger(&buf, false).Trace(context.Background(), time.Now(), query, nil)
		assert.Empty(t, buf.String())

		newTestGormLogger(&buf, true).Trace(context.Background(), time.Now(), query, nil)
		assert.Contains(t, buf.String(), "SELECT 1")
	})

	t.Run("silent mode", func(t *testing.T) {
		var buf bytes.Buffer
		newTestGormLogger(&buf, true).LogMode(logger.Silent).Trace(context.Background(), time.Now(), query, errors.New("boom"))
		assert.Empty(t, buf.String())
	})
}

func TestGormSlogLogger_UsesRequestLogger(t *testing.T) {
	var base, scoped bytes.Buffer
	l := newTestGormLogger(&base, false)

	reqLogger := slog.New(slog.NewTextHandler(&scoped, nil)).With(slog.String("request_id", "req-1"))
	ctx := deliverycontext.WithLogger(context.Background(), reqLogger)

	l.Warn(ctx, "pool %s", "exhausted")

	assert.Empty(t, base.String())
	assert.Contains(t, scoped.String(), "request_id=req-1")
	assert.Contains(t, scoped.String(), "pool exhausted")
}
