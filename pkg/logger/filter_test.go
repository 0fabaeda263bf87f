package logger_test

import (
	"bytes"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/scribekit/pkg/logger"
)

func newFilteredLogger(extra ...string) (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithTextFormatter(),
		logger.WithWarningFilter(extra...),
	)
	return log, buf
}

func TestWarnFilterHandler_SuppressesKnownWarnings(t *testing.T) {
	log, buf := newFilteredLogger()

	log.Warn("DeprecationWarning: pyannote.audio 3.x pipelines are deprecated")
	log.Warn("FutureWarning: torch.load with weights_only=False")
	log.Warn("UserWarning: torchaudio backend is deprecated")
	assert.Empty(t, buf.String(), "Default warning classes should be dropped")

	log.Warn("transcription retried")
	assert.Contains(t, buf.String(), "transcription retried")
}

func TestWarnFilterHandler_CustomPatterns(t *testing.T) {
	log, buf := newFilteredLogger("TensorFloat-32")

	log.Warn("TensorFloat-32 matmul precision reduced")
	assert.Empty(t, buf.String(), "Custom pattern should extend the default set")

	log.Warn("UserWarning: still filtered by defaults")
	assert.Empty(t, buf.String())
}

func TestWarnFilterHandler_OtherLevelsPass(t *testing.T) {
	log, buf := newFilteredLogger()

	log.Error("DeprecationWarning escalated to failure")
	assert.Contains(t, buf.String(), "DeprecationWarning escalated to failure",
		"Only warn-level records are filtered")

	buf.Reset()
	log.Info("FutureWarning mentioned in passing")
	assert.Contains(t, buf.String(), "FutureWarning mentioned in passing")
}

func TestWarnFilterHandler_PreservesAttrsAndGroups(t *testing.T) {
	log, buf := newFilteredLogger()

	scoped := log.With(slog.String("component", "worker")).WithGroup("job")

	scoped.Warn("UserWarning: noisy")
	assert.Empty(t, buf.String(), "Filter should survive With/WithGroup chaining")

	scoped.Warn("queue backlog growing", slog.Int("depth", 7))
	out := buf.String()
	assert.Contains(t, out, "queue backlog growing")
	assert.Contains(t, out, "component=worker")
	assert.Contains(t, out, "job.depth=7")
}
