package directive

import (
	"regexp"
	"strings"
)

// Directive keys understood by Apply.
const (
	KeyCmd    = "cmd"
	KeyArgs   = "args"
	KeyOut    = "out"
	KeyReturn = "return"
	KeyTodo   = "todo"
)

// Keys is the directive vocabulary.
var Keys = []string{KeyCmd, KeyArgs, KeyOut, KeyReturn, KeyTodo}

var patterns = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(Keys))
	for _, k := range Keys {
		m[k] = compile(k)
	}
	return m
}()

func compile(key string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(strings.ToUpper(key)) + `:[ \t]+(.*)`)
}

func pattern(key string) *regexp.Regexp {
	if re, ok := patterns[strings.ToLower(key)]; ok {
		return re
	}
	return compile(key)
}

// Extract returns the value of every KEY directive in text, in document
// order.
func Extract(text, key string) []string {
	matches := pattern(key).FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	values := make([]string, len(matches))
	for i, m := range matches {
		values[i] = strings.TrimRight(m[1], "\r")
	}
	return values
}

// ExtractSingle returns the first KEY directive in text.
func ExtractSingle(text, key string) (string, bool) {
	m := pattern(key).FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimRight(m[1], "\r"), true
}
