package slice

import (
	"bytes"
	"crypto/md5"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/arloliu/cram/errs"
)

func testRef() []byte {
	return bytes.Repeat([]byte("ACGTN"), 40) // 200 bases
}

func TestBoundsCheck(t *testing.T) {
	ref := testRef()

	tests := []struct {
		name    string
		seq     int32
		start   int32
		span    int32
		ref     []byte
		wantErr error
	}{
		{name: "inside", seq: 0, start: 1, span: 200, ref: ref},
		{name: "tail window", seq: 0, start: 151, span: 50, ref: ref},
		{name: "start past end", seq: 0, start: 201, span: 1, ref: ref, wantErr: errs.ErrOutOfReferenceBounds},
		{name: "start before 1", seq: 0, start: 0, span: 10, ref: ref, wantErr: errs.ErrOutOfReferenceBounds},
		{name: "span past end", seq: 0, start: 151, span: 51, ref: ref, wantErr: errs.ErrOutOfReferenceBounds},
		{name: "no reference", seq: 0, start: 1, span: 10, ref: nil, wantErr: errs.ErrNoReference},
		{name: "unmapped passes", seq: UnmappedOrNoRef, start: 0, span: 0, ref: nil},
		{name: "multiref passes", seq: MultiRef, start: 0, span: 0, ref: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.seq, tt.start, tt.span)
			require.NoError(t, err)

			err = s.BoundsCheck(tt.ref)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSetRefMD5(t *testing.T) {
	ref := testRef()

	s, err := New(0, 11, 50)
	require.NoError(t, err)
	require.NoError(t, s.SetRefMD5(ref))

	want := md5.Sum(ref[10:60])
	require.Equal(t, want[:], s.RefMD5[:])
}

func TestSetRefMD5Unmapped(t *testing.T) {
	s, err := New(UnmappedOrNoRef, 0, 0)
	require.NoError(t, err)
	require.NoError(t, s.SetRefMD5(nil))
	require.Equal(t, [16]byte{}, s.RefMD5)
}

func TestValidateRefMD5(t *testing.T) {
	ref := testRef()

	s, err := New(0, 1, 100)
	require.NoError(t, err)
	require.NoError(t, s.SetRefMD5(ref))

	ok, err := s.ValidateRefMD5(ref)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestValidateRefMD5ClippedSpanWarns(t *testing.T) {
	ref := testRef()
	core, logs := observer.New(zap.WarnLevel)

	s, err := New(0, 1, 100, WithLogger(zap.New(core)))
	require.NoError(t, err)

	// Digest computed over one base fewer than the declared span, the way
	// a clipped writer would have stored it.
	s.RefMD5 = md5.Sum(ref[:99])

	ok, err := s.ValidateRefMD5(ref)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, logs.FilterLevelExact(zap.WarnLevel).Len())
}

func TestValidateRefMD5Mismatch(t *testing.T) {
	ref := testRef()
	core, logs := observer.New(zap.ErrorLevel)

	s, err := New(0, 1, 100, WithLogger(zap.New(core)))
	require.NoError(t, err)
	s.RefMD5 = md5.Sum([]byte("something else entirely"))

	ok, err := s.ValidateRefMD5(ref)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 1, logs.FilterLevelExact(zap.ErrorLevel).Len())
}

func TestValidateRefMD5NoReference(t *testing.T) {
	s, err := New(0, 1, 10)
	require.NoError(t, err)

	_, err = s.ValidateRefMD5(nil)
	require.ErrorIs(t, err, errs.ErrNoReference)
}

func TestBrief(t *testing.T) {
	short := []byte("ACGT")
	require.Equal(t, "ACGT", brief(short))

	long := bytes.Repeat([]byte("A"), 150)
	b := brief(long)
	require.Contains(t, b, "...")
	require.Less(t, len(b), len(long))
}
