// Package envdelta provides the command-line interface for the envdelta
// tool. It configures subcommands (compare, validate, rules), parses flags,
// and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/envdelta/envdelta/cmd/envdelta"
//	func main() { envdelta.Execute() }
package envdelta
