package diag

import (
	"encoding/json"
	"fmt"

	"dol/internal/source"
)

type Note struct {
	Position source.Position `json:"position"`
	Msg      string          `json:"message"`
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Position source.Position
	Notes    []Note
}

// Category returns the caller-facing category derived from Severity.
func (d Diagnostic) Category() Category {
	return d.Severity.Category()
}

// Error renders the diagnostic as "line:col: message".
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Position, d.Message)
}

type diagnosticJSON struct {
	Message  string          `json:"message"`
	Position source.Position `json:"position"`
	Category string          `json:"category"`
	Code     string          `json:"code"`
	Notes    []Note          `json:"notes,omitempty"`
}

// MarshalJSON encodes the diagnostic in its external shape:
// {message, position, category, code, notes}.
func (d Diagnostic) MarshalJSON() ([]byte, error) {
	return json.Marshal(diagnosticJSON{
		Message:  d.Message,
		Position: d.Position,
		Category: d.Category().String(),
		Code:     d.Code.ID(),
		Notes:    d.Notes,
	})
}
