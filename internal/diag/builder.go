package diag

import "dol/internal/source"

func New(sev Severity, code Code, pos source.Position, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Position: pos,
		Message:  msg,
	}
}

func NewError(code Code, pos source.Position, msg string) Diagnostic {
	return New(SevError, code, pos, msg)
}

func NewWarning(code Code, pos source.Position, msg string) Diagnostic {
	return New(SevWarning, code, pos, msg)
}

func (d Diagnostic) WithNote(pos source.Position, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Position: pos, Msg: msg})
	return d
}
