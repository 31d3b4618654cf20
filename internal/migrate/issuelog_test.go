package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/mesh-intelligence/math3d-scenes/internal/logger"
	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

func TestIssueLog(t *testing.T) {
	l, logs := logger.TestObserved(t, zapcore.DebugLevel)
	log := NewIssueLog(l)

	log.Info("scene loaded")
	log.Warning("slider has no value")
	log.Error("bad samples")

	assert.Equal(t, []types.Issue{
		{Message: "scene loaded", Severity: types.SeverityInfo},
		{Message: "slider has no value", Severity: types.SeverityWarning},
		{Message: "bad samples", Severity: types.SeverityError},
	}, log.Issues())
	assert.Equal(t, "scene loaded\nslider has no value\nbad samples", log.String())
	assert.Equal(t, 1, log.Count(types.SeverityError))

	require.Equal(t, 3, logs.Len())
	levels := []zapcore.Level{zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	for i, entry := range logs.All() {
		assert.Equal(t, levels[i], entry.Level)
	}

	log.Reset()
	assert.Empty(t, log.Issues())
	assert.Equal(t, "", log.String())
}

func TestIssueLogIssuesIsACopy(t *testing.T) {
	log := NewIssueLog(nil)
	log.Error("x")
	issues := log.Issues()
	issues[0].Message = "changed"
	assert.Equal(t, "x", log.Issues()[0].Message)
}

func TestNote(t *testing.T) {
	assert.Equal(t, "", Note(nil))
	assert.Equal(t, "a\nb", Note([]types.Issue{
		{Message: "a", Severity: types.SeverityError},
		{Message: "b", Severity: types.SeverityInfo},
	}))
}
