package diagnostics

import (
	"kr/internal/source"
)

// Severity represents the severity level of a diagnostic
type Severity int

const (
	Error Severity = iota
	Warning
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

type LabelStyle int

const (
	Primary   LabelStyle = iota // The main location (^^^)
	Secondary                   // Additional context (---)
)

// Label attaches a message to a span of source
type Label struct {
	Location *source.Location
	Message  string
	Style    LabelStyle
}

// Diagnostic is one rendered problem report
type Diagnostic struct {
	Severity Severity
	Message  string
	Code     string // e.g. "P0003"
	FilePath string
	Labels   []Label
	Notes    []string
	Help     string
}

func newDiagnostic(severity Severity, message string) *Diagnostic {
	return &Diagnostic{
		Severity: severity,
		Message:  message,
		Labels:   make([]Label, 0, 2),
	}
}

func NewError(message string) *Diagnostic   { return newDiagnostic(Error, message) }
func NewWarning(message string) *Diagnostic { return newDiagnostic(Warning, message) }
func NewInfo(message string) *Diagnostic    { return newDiagnostic(Info, message) }

func (d *Diagnostic) WithCode(code string) *Diagnostic {
	d.Code = code
	return d
}

// WithLabel adds a labeled location. The first label to name a file fixes
// the diagnostic's FilePath.
func (d *Diagnostic) WithLabel(filepath string, loc *source.Location, message string, style LabelStyle) *Diagnostic {
	if d.FilePath == "" {
		d.FilePath = filepath
	}
	d.Labels = append(d.Labels, Label{Location: loc, Message: message, Style: style})
	return d
}

func (d *Diagnostic) WithPrimaryLabel(filepath string, loc *source.Location, message string) *Diagnostic {
	return d.WithLabel(filepath, loc, message, Primary)
}

func (d *Diagnostic) WithSecondaryLabel(filepath string, loc *source.Location, message string) *Diagnostic {
	return d.WithLabel(filepath, loc, message, Secondary)
}

func (d *Diagnostic) WithNote(message string) *Diagnostic {
	d.Notes = append(d.Notes, message)
	return d
}

func (d *Diagnostic) WithHelp(help string) *Diagnostic {
	d.Help = help
	return d
}

// Primary returns the first primary label, if any.
func (d *Diagnostic) Primary() (Label, bool) {
	for _, l := range d.Labels {
		if l.Style == Primary {
			return l, true
		}
	}
	return Label{}, false
}
