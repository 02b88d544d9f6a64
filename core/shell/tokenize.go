// Package shell implements the interactive read-eval loop: reading a line,
// splitting it into arguments, dispatching built-ins and running everything
// else as a child process.
package shell

import "strings"

// Delimiters separate arguments on a command line.
const Delimiters = " \t\r\n\a"

func isDelimiter(r rune) bool {
	return strings.ContainsRune(Delimiters, r)
}

// Tokenize splits a command line into arguments on runs of Delimiters.
//
// There is no quoting, escaping or expansion, an argument is exactly a run of
// non-delimiter text. A blank line yields no arguments.
func Tokenize(line string) []string {
	return strings.FieldsFunc(line, isDelimiter)
}
