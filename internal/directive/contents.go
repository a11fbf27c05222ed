package directive

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/roach88/turnt/internal/ir"
)

// DecodeError reports a test-unit whose content is not text. It is a soft
// failure: the caller warns and keeps the environment unmodified.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: cannot read directives: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ReadContents loads the text directives are extracted from.
//
// For a file it is the file itself. For a directory it is env.OptsFile
// inside the directory; a missing or undecodable options file, or no
// OptsFile at all, yields "". Binary environments are never read. A path
// that does not exist yields "".
func ReadContents(env ir.EnvironmentSpec, path string) (string, error) {
	if env.Binary {
		return "", nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", nil
	}

	if info.IsDir() {
		if env.OptsFile == "" {
			return "", nil
		}
		data, err := os.ReadFile(filepath.Join(path, env.OptsFile))
		if err != nil {
			return "", nil
		}
		text, err := decodeText(data)
		if err != nil {
			return "", nil
		}
		return text, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &DecodeError{Path: path, Err: err}
	}
	text, err := decodeText(data)
	if err != nil {
		return "", &DecodeError{Path: path, Err: err}
	}
	return text, nil
}

// decodeText accepts data only if it is valid UTF-8.
func decodeText(data []byte) (string, error) {
	if _, _, err := transform.Bytes(encoding.UTF8Validator, data); err != nil {
		return "", err
	}
	return string(data), nil
}
