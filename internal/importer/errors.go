package importer

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned when no parser handles a file.
var ErrUnsupportedFormat = errors.New("unsupported file type")

// FormatError means tabular input is structurally unusable.
type FormatError struct {
	File   string
	Reason string
}

func (e *FormatError) Error() string {
	if e.File == "" {
		return "format error: " + e.Reason
	}
	return fmt.Sprintf("format error in %s: %s", e.File, e.Reason)
}

// ExtractionError means no text could be obtained from a document.
type ExtractionError struct {
	File   string
	Reason string
}

func (e *ExtractionError) Error() string {
	if e.File == "" {
		return "extraction error: " + e.Reason
	}
	return fmt.Sprintf("extraction error in %s: %s", e.File, e.Reason)
}

// withFile stamps a file name onto the named error kinds.
func withFile(err error, file string) error {
	var fe *FormatError
	if errors.As(err, &fe) && fe.File == "" {
		fe.File = file
	}
	var ee *ExtractionError
	if errors.As(err, &ee) && ee.File == "" {
		ee.File = file
	}
	return err
}
