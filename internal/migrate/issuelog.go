package migrate

import (
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

// IssueLog collects the recoverable problems met while migrating one scene.
// Each entry is mirrored to the logger at the matching level. A nil logger
// disables mirroring.
type IssueLog struct {
	issues []types.Issue
	log    *zap.SugaredLogger
}

// NewIssueLog returns an empty IssueLog that mirrors entries to log.
func NewIssueLog(log *zap.SugaredLogger) *IssueLog {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &IssueLog{log: log}
}

func (l *IssueLog) add(severity types.Severity, msg string) {
	l.issues = append(l.issues, types.Issue{Message: msg, Severity: severity})
	switch severity {
	case types.SeverityError:
		l.log.Error(msg)
	case types.SeverityWarning:
		l.log.Warn(msg)
	default:
		l.log.Info(msg)
	}
}

// Info records an informational entry.
func (l *IssueLog) Info(msg string) { l.add(types.SeverityInfo, msg) }

// Warning records a warning.
func (l *IssueLog) Warning(msg string) { l.add(types.SeverityWarning, msg) }

// Error records a data-quality error that was replaced by a fallback value.
func (l *IssueLog) Error(msg string) { l.add(types.SeverityError, msg) }

// Issues returns a copy of the recorded entries in order.
func (l *IssueLog) Issues() []types.Issue {
	return append([]types.Issue(nil), l.issues...)
}

// Count returns the number of entries at the given severity.
func (l *IssueLog) Count(severity types.Severity) int {
	n := 0
	for _, is := range l.issues {
		if is.Severity == severity {
			n++
		}
	}
	return n
}

// String joins the messages with newlines. This is the migration note
// stored next to the legacy scene.
func (l *IssueLog) String() string {
	return Note(l.issues)
}

// Note joins issue messages with newlines.
func Note(issues []types.Issue) string {
	msgs := make([]string, len(issues))
	for i, is := range issues {
		msgs[i] = is.Message
	}
	return strings.Join(msgs, "\n")
}

// Reset drops all entries. Call it between scenes.
func (l *IssueLog) Reset() {
	l.issues = nil
}
