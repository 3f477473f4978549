// Package token defines the lexical vocabulary of DOL declarations.
// Invariants:
//   - Keywords are case-sensitive; only lowercase spellings are recognized.
//   - Identifiers are ASCII word characters ([A-Za-z0-9_]+), so digits may lead.
//   - Braces are the only punctuation that affects structure; parentheses only
//     terminate a function header.
package token
