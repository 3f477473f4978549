package ast

import (
	"encoding/json"
)

// Kind identifies the variant of a Node.
type Kind uint8

const (
	KindSpirit Kind = iota + 1
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindSpirit:
		return "Spirit"
	case KindFunction:
		return "Function"
	default:
		return "Unknown"
	}
}

// Node is a top-level or nested declaration. The set of variants is closed.
type Node interface {
	Kind() Kind
	// Ident returns the declared name.
	Ident() string
	// DeclLine returns the 1-based line the declaration starts on.
	DeclLine() uint32
	node()
}

// Spirit is a named container. Body holds the declarations recognized while
// the spirit was open, in source order.
type Spirit struct {
	Name string
	Body []Node
	Line uint32
}

// Function is a named function declaration. Params and Body are placeholders:
// function bodies are scoped by braces but never parsed.
type Function struct {
	Name       string
	Visibility Visibility
	Params     []string
	Body       string
	Line       uint32
}

func (*Spirit) Kind() Kind           { return KindSpirit }
func (s *Spirit) Ident() string      { return s.Name }
func (s *Spirit) DeclLine() uint32   { return s.Line }
func (*Spirit) node()                {}
func (*Function) Kind() Kind         { return KindFunction }
func (f *Function) Ident() string    { return f.Name }
func (f *Function) DeclLine() uint32 { return f.Line }
func (*Function) node()              {}

// NewSpirit returns an open spirit with an empty body.
func NewSpirit(name string, line uint32) *Spirit {
	return &Spirit{Name: name, Body: []Node{}, Line: line}
}

// NewFunction returns a function with empty params and body.
func NewFunction(name string, vis Visibility, line uint32) *Function {
	return &Function{Name: name, Visibility: vis, Params: []string{}, Line: line}
}

// Append adds n to the spirit body.
func (s *Spirit) Append(n Node) {
	s.Body = append(s.Body, n)
}

func (s *Spirit) MarshalJSON() ([]byte, error) {
	body := s.Body
	if body == nil {
		body = []Node{}
	}
	return json.Marshal(struct {
		Type string `json:"type"`
		Name string `json:"name"`
		Body []Node `json:"body"`
		Line uint32 `json:"line"`
	}{KindSpirit.String(), s.Name, body, s.Line})
}

func (f *Function) MarshalJSON() ([]byte, error) {
	params := f.Params
	if params == nil {
		params = []string{}
	}
	return json.Marshal(struct {
		Type       string   `json:"type"`
		Name       string   `json:"name"`
		Visibility string   `json:"visibility"`
		Params     []string `json:"params"`
		Body       string   `json:"body"`
		Line       uint32   `json:"line"`
	}{KindFunction.String(), f.Name, f.Visibility.String(), params, f.Body, f.Line})
}
