// SPDX-License-Identifier: MIT

package phylotree

import (
	"errors"
	"fmt"
)

// Sentinel errors for the package's failure kinds: UnknownNode,
// InvalidOperation, Precondition, ZetaUnset, MismatchedTaxa. All are safe
// to compare with errors.Is after wrapping with fmt.Errorf("%w: ...").
var (
	ErrUnknownNode      = errors.New("phylotree: unknown node id")
	ErrInvalidOperation = errors.New("phylotree: invalid operation")
	ErrPrecondition     = errors.New("phylotree: precondition not met")
	ErrZetaUnset        = errors.New("phylotree: zeta value not set for every taxon")
	ErrMismatchedTaxa   = errors.New("phylotree: trees do not share a taxa set")
)

// ParseError reports a malformed Newick or Nexus document.
// Offset is the byte offset of the first unparseable character.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("phylotree: parse error at offset %d: %s", e.Offset, e.Msg)
}

func newParseError(offset int, format string, args ...any) *ParseError {
	return &ParseError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}
