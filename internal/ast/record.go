package ast

import "fmt"

// Record is a flat, serialisable mirror of a Node used by the on-disk cache,
// which cannot decode into the Node interface directly.
type Record struct {
	Kind       Kind
	Name       string
	Visibility Visibility
	Line       uint32
	Children   []Record
}

// ToRecords converts nodes to their record form.
func ToRecords(nodes []Node) []Record {
	out := make([]Record, 0, len(nodes))
	for _, n := range nodes {
		switch v := n.(type) {
		case *Spirit:
			out = append(out, Record{Kind: KindSpirit, Name: v.Name, Line: v.Line, Children: ToRecords(v.Body)})
		case *Function:
			out = append(out, Record{Kind: KindFunction, Name: v.Name, Visibility: v.Visibility, Line: v.Line})
		}
	}
	return out
}

// FromRecords rebuilds nodes from records.
func FromRecords(records []Record) ([]Node, error) {
	out := make([]Node, 0, len(records))
	for _, r := range records {
		switch r.Kind {
		case KindSpirit:
			s := NewSpirit(r.Name, r.Line)
			body, err := FromRecords(r.Children)
			if err != nil {
				return nil, err
			}
			s.Body = body
			out = append(out, s)
		case KindFunction:
			if len(r.Children) > 0 {
				return nil, fmt.Errorf("function %q carries %d children", r.Name, len(r.Children))
			}
			out = append(out, NewFunction(r.Name, r.Visibility, r.Line))
		default:
			return nil, fmt.Errorf("unknown node kind %d", r.Kind)
		}
	}
	return out, nil
}
