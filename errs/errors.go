// Package errs defines sentinel errors shared across cram packages.
//
// Callers are expected to match these with errors.Is after unwrapping;
// packages wrap them with call-site context via fmt.Errorf and %w.
package errs

import "errors"

var (
	// ErrUnknownTagType indicates a tag id whose type byte is not part of
	// the tag value type alphabet. Planning aborts for the whole batch.
	ErrUnknownTagType = errors.New("unknown tag value type")

	// ErrUnknownMethod indicates a block compression method outside the
	// versioned method enum.
	ErrUnknownMethod = errors.New("unknown compression method")

	// ErrInvalidOrder indicates a rANS context order other than 0 or 1,
	// whether requested by a caller or read from a payload.
	ErrInvalidOrder = errors.New("invalid rans order")

	// ErrTruncatedInput indicates a payload that ends before its declared
	// content does.
	ErrTruncatedInput = errors.New("truncated input")

	// ErrCorruptPayload indicates a payload whose structure contradicts
	// itself: bad order byte, size mismatch, malformed frequency table.
	ErrCorruptPayload = errors.New("corrupt payload")

	// ErrNoReference indicates an operation that needs reference bases was
	// given none.
	ErrNoReference = errors.New("no reference bases")

	// ErrOutOfReferenceBounds indicates a slice whose alignment window does
	// not fall inside its reference sequence.
	ErrOutOfReferenceBounds = errors.New("slice mapped outside of reference")
)
