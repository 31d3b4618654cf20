package types

// Severity grades a migration issue.
type Severity string

// Issue severities, lowest first.
const (
	SeverityInfo    Severity = "INFO"
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

// Issue is a recoverable data-quality problem met while migrating a scene.
// The migration still produces output; issues are kept as the scene's
// migration note.
type Issue struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}
