// Package slice models container slice metadata: the alignment window of a
// batch of records and the MD5 checksum tying that window to its reference
// sequence.
package slice

import (
	"bytes"
	"crypto/md5" //nolint:gosec // format-mandated reference digest
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/cram/errs"
	"github.com/arloliu/cram/internal/options"
)

// Sentinel sequence ids.
const (
	// UnmappedOrNoRef marks a slice of unmapped records or one written
	// without reference compression.
	UnmappedOrNoRef int32 = -1
	// MultiRef marks a slice whose records map to multiple references.
	MultiRef int32 = -2
)

// briefLen bounds the sequence excerpts carried in logs and errors.
const briefLen = 50

// Slice is the metadata of one container slice.
type Slice struct {
	SequenceID          int32
	AlignmentStart      int32 // 1-based inclusive
	AlignmentSpan       int32
	Records             int32
	GlobalRecordCounter int64
	EmbeddedRefBlockID  int32
	RefMD5              [16]byte

	logger *zap.Logger
}

// Option configures a Slice.
type Option = options.Option[*Slice]

// WithLogger routes validation logging to the given logger. The default
// discards everything.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(s *Slice) {
		s.logger = logger
	})
}

// New creates a slice covering the given alignment window.
func New(sequenceID, alignmentStart, alignmentSpan int32, opts ...Option) (*Slice, error) {
	s := &Slice{
		SequenceID:         sequenceID,
		AlignmentStart:     alignmentStart,
		AlignmentSpan:      alignmentSpan,
		EmbeddedRefBlockID: -1,
		logger:             zap.NewNop(),
	}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

// hasAlignment reports whether the slice maps to a single reference window.
func (s *Slice) hasAlignment() bool {
	return s.SequenceID >= 0
}

// BoundsCheck verifies the alignment window falls inside the reference.
// Slices without a single reference pass vacuously.
func (s *Slice) BoundsCheck(ref []byte) error {
	if !s.hasAlignment() {
		return nil
	}
	if ref == nil {
		return fmt.Errorf("slice seq %d: %w", s.SequenceID, errs.ErrNoReference)
	}
	if s.AlignmentStart < 1 || int(s.AlignmentStart) > len(ref) {
		return fmt.Errorf("slice seq %d start %d, reference length %d: %w",
			s.SequenceID, s.AlignmentStart, len(ref), errs.ErrOutOfReferenceBounds)
	}
	if int(s.AlignmentStart)+int(s.AlignmentSpan)-1 > len(ref) {
		return fmt.Errorf("slice seq %d span %d-%d, reference length %d: %w",
			s.SequenceID, s.AlignmentStart, int(s.AlignmentStart)+int(s.AlignmentSpan)-1,
			len(ref), errs.ErrOutOfReferenceBounds)
	}

	return nil
}

// window clips the slice's alignment window to the reference.
func (s *Slice) window(ref []byte, span int32) []byte {
	from := int(s.AlignmentStart) - 1
	if from < 0 || from >= len(ref) {
		return nil
	}
	to := from + int(span)
	if to > len(ref) {
		to = len(ref)
	}

	return ref[from:to]
}

// SetRefMD5 stores the digest of the slice's reference window. Slices
// without a single reference hash nothing and keep a zero digest.
func (s *Slice) SetRefMD5(ref []byte) error {
	if err := s.BoundsCheck(ref); err != nil {
		return err
	}
	if !s.hasAlignment() {
		s.RefMD5 = [16]byte{}
		return nil
	}

	s.RefMD5 = md5.Sum(s.window(ref, s.AlignmentSpan)) //nolint:gosec

	return nil
}

// ValidateRefMD5 recomputes the window digest and compares it to the
// stored one. A mismatch retries with the span shortened by one base: some
// writers clip the final reference base, so a partial match logs a warning
// and passes. A full mismatch logs both excerpts and fails.
func (s *Slice) ValidateRefMD5(ref []byte) (bool, error) {
	if !s.hasAlignment() {
		return true, nil
	}
	if ref == nil {
		return false, fmt.Errorf("slice seq %d: %w", s.SequenceID, errs.ErrNoReference)
	}

	if s.digestMatches(ref, s.AlignmentSpan) {
		return true, nil
	}
	if s.AlignmentSpan > 0 && s.digestMatches(ref, s.AlignmentSpan-1) {
		s.logger.Warn("reference md5 matches with clipped span",
			zap.Int32("sequence", s.SequenceID),
			zap.Int32("start", s.AlignmentStart),
			zap.Int32("span", s.AlignmentSpan),
		)

		return true, nil
	}

	s.logger.Error("reference md5 mismatch",
		zap.Int32("sequence", s.SequenceID),
		zap.Int32("start", s.AlignmentStart),
		zap.Int32("span", s.AlignmentSpan),
		zap.String("expected", fmt.Sprintf("%x", s.RefMD5)),
		zap.String("window", brief(s.window(ref, s.AlignmentSpan))),
	)

	return false, nil
}

// digestMatches reports whether the stored digest covers the window at the
// given span.
func (s *Slice) digestMatches(ref []byte, span int32) bool {
	sum := md5.Sum(s.window(ref, span)) //nolint:gosec

	return bytes.Equal(sum[:], s.RefMD5[:])
}

// brief renders a loggable excerpt of a sequence window: the leading bases,
// and the trailing ones when the window is long.
func brief(window []byte) string {
	if len(window) <= 2*briefLen {
		return string(window)
	}

	return fmt.Sprintf("%s...%s", window[:briefLen], window[len(window)-briefLen:])
}
