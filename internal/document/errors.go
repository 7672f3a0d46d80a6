package document

import (
	"errors"
	"fmt"
)

var (
	// ErrBadConnector marks a connector naming a missing shape or the same
	// shape at both ends.
	ErrBadConnector = errors.New("connector does not link two distinct shapes")
	// ErrBadPage marks page attributes without area or grid step.
	ErrBadPage = errors.New("invalid page attributes")
	// ErrUnsupportedVersion is returned for documents written by a newer
	// format revision.
	ErrUnsupportedVersion = errors.New("unsupported document version")
	// ErrUnknownFormat is returned for file names with no known extension.
	ErrUnknownFormat = errors.New("unknown document format")
)

// RecordError ties a validation failure to the record it came from.
type RecordError struct {
	Section string // "shapes" or "connectors"
	Index   int
	Err     error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s[%d]: %v", e.Section, e.Index, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }
