package config

import "fmt"

// Error is a fatal configuration problem. It aborts the whole run because
// commands may be wrong without the configuration.
type Error struct {
	// Path is the configuration file, when one was found.
	Path string

	// Env and Key locate the offending value, when known.
	Env string
	Key string

	Message string
	Err     error
}

func (e *Error) Error() string {
	loc := e.Path
	if e.Env != "" {
		loc = fmt.Sprintf("%s: envs.%s", loc, e.Env)
	}
	if e.Key != "" {
		if e.Env != "" {
			loc = fmt.Sprintf("%s.%s", loc, e.Key)
		} else {
			loc = fmt.Sprintf("%s: %s", loc, e.Key)
		}
	}
	msg := e.Message
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = fmt.Sprintf("%s: %v", msg, e.Err)
		}
	}
	if loc == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", loc, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}
