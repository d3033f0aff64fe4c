package cram

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cram/format"
	"github.com/arloliu/cram/record"
)

func TestPlanThroughRootWrappers(t *testing.T) {
	factory, err := NewFactory()
	require.NoError(t, err)

	nm := NewTagID('N', 'M', format.TagUint32)
	recs := []*record.Record{
		{
			Tags:     []record.Tag{{ID: nm, Value: []byte{0, 0, 0, 1}}},
			Features: []record.Feature{record.NewSubstitution(3, 'A', 'G')},
		},
		{},
	}

	hdr, err := factory.Build(recs, nil, true)
	require.NoError(t, err)
	require.True(t, hdr.APDelta)
	require.Contains(t, hdr.TagEncodings, nm)
	require.Len(t, hdr.TagDictionary, 2)
}

func TestBestCodecRoundTripThroughRoot(t *testing.T) {
	data := bytes.Repeat([]byte("ACGTACGGT"), 200)

	codec, err := BestCodec(data)
	require.NoError(t, err)

	comp, err := codec.Compress(data)
	require.NoError(t, err)
	require.Less(t, len(comp), len(data))

	got, err := codec.Decompress(comp)
	require.NoError(t, err)
	require.Equal(t, data, got)
}
