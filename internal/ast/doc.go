// Package ast holds the shallow syntax tree produced by the analyzer.
//
// The tree only records declarations: spirits (containers) and functions.
// Function bodies are not parsed, so Function.Params and Function.Body stay
// empty. A node belongs to exactly one container, either the top-level slice
// or a Spirit's Body, fixed when the declaration is recognized.
package ast
