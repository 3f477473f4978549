// Package lexer holds the line-level scanning pieces of the analyzer: the
// declaration recognizer and the brace scanner.
//
// Neither piece reports diagnostics. They return plain values and the
// analyzer decides what is an error.
package lexer
