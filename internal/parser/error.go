package parser

import (
	"fmt"

	"github.com/mjlang/mjc/internal/token"
)

// SyntaxError is a single parse failure with its source position. The
// parser collects these rather than panicking, mirroring how the Type
// Checker accumulates user errors in §7.
type SyntaxError struct {
	Message string
	Pos     token.Position
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}
