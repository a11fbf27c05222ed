// Package directive reads the inline options embedded in test-units and
// applies them on top of a configured environment.
//
// A directive is a line fragment of the form "KEY: value" anywhere in a
// test-unit's text. Keys are matched as whole words, case-insensitively,
// and are written upper-case by convention:
//
//	// CMD: python3 {filename}
//	// ARGS: --fast
//	// OUT: out stdout
//	// OUT: json {base}.json
//	// RETURN: 1
//	// TODO: true
//
// The value is the rest of the line after the separating blanks. OUT may
// repeat; together the OUT lines replace the configured outputs.
package directive
