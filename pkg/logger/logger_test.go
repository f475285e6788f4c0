package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newBufferLogger(level zapcore.Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(&buf),
		level,
	)
	return &Logger{SugaredLogger: zap.New(core).Sugar()}, &buf
}

func TestNew(t *testing.T) {
	logger := New("production")
	assert.NotNil(t, logger)
	assert.NotNil(t, logger.SugaredLogger)
}

func TestNew_Development(t *testing.T) {
	logger := New("development")
	assert.NotNil(t, logger)
}

func TestLogger_WithRequestID(t *testing.T) {
	logger, buf := newBufferLogger(zapcore.InfoLevel)

	logger.WithRequestID("req-12345").Info("score submitted")

	output := buf.String()
	assert.Contains(t, output, "score submitted")
	assert.Contains(t, output, "request_id")
	assert.Contains(t, output, "req-12345")
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(zapcore.InfoLevel)

	logger.Debug("hidden debug line")
	logger.Info("visible info line")

	output := buf.String()
	assert.NotContains(t, output, "hidden debug line")
	assert.Contains(t, output, "visible info line")
}

func TestLogger_Fields(t *testing.T) {
	logger, buf := newBufferLogger(zapcore.InfoLevel)

	logger.With("user_id", int64(42), "score", 100).Info("best score updated")

	output := buf.String()
	assert.Contains(t, output, "best score updated")
	assert.Contains(t, output, "user_id")
	assert.Contains(t, output, "score")
}
