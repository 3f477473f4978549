package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Category is the caller-facing classification of a diagnostic.
type Category uint8

const (
	// CategorySyntaxError marks hard structural failures.
	CategorySyntaxError Category = iota
	// CategoryWarning marks non-fatal notices.
	CategoryWarning
)

func (c Category) String() string {
	if c == CategoryWarning {
		return "Warning"
	}
	return "SyntaxError"
}

// Category maps the severity onto the two caller-facing categories.
// Anything below SevError is a warning.
func (s Severity) Category() Category {
	if s >= SevError {
		return CategorySyntaxError
	}
	return CategoryWarning
}
