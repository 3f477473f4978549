// Package project locates and reads dol.toml and decides which files a
// check covers.
package project
