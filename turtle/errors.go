package turtle

import (
	"fmt"

	"github.com/c360/semgraph/errors"
)

// ParseError reports a syntax failure with its position in the document.
// It wraps errors.ErrParsingFailed so callers can classify it without
// inspecting message text.
type ParseError struct {
	Line    int
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("turtle: line %d: %s", e.Line, e.Message)
}

// Unwrap links the error into the ErrParsingFailed chain.
func (e *ParseError) Unwrap() error {
	return errors.ErrParsingFailed
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Line: p.line, Message: fmt.Sprintf(format, args...)}
}
