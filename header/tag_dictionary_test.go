package header

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cram/format"
	"github.com/arloliu/cram/record"
)

func tagged(ids ...record.TagID) *record.Record {
	rec := &record.Record{}
	for _, id := range ids {
		rec.Tags = append(rec.Tags, record.Tag{ID: id, Value: []byte{0}})
	}

	return rec
}

func TestTagDictionaryEmptyRowAlwaysPresent(t *testing.T) {
	xa := record.NewTagID('X', 'A', format.TagInt8)

	// Every record carries tags, yet row 0 is still the empty list.
	recs := []*record.Record{tagged(xa), tagged(xa)}
	dict := buildTagDictionary(recs)

	require.Len(t, dict, 2)
	require.Empty(t, dict[0])
	require.Equal(t, []record.TagID{xa}, dict[1])
	require.Equal(t, 1, recs[0].TagListIndex)
	require.Equal(t, 1, recs[1].TagListIndex)
}

func TestTagDictionaryIndexMatchesSortedTags(t *testing.T) {
	xa := record.NewTagID('X', 'A', format.TagInt8)
	nm := record.NewTagID('N', 'M', format.TagInt32)
	md := record.NewTagID('M', 'D', format.TagString)

	recs := []*record.Record{
		tagged(xa, nm), // arrives unsorted relative to packed ids
		tagged(nm, xa),
		tagged(md),
		{},
	}
	dict := buildTagDictionary(recs)

	for _, rec := range recs {
		row := dict[rec.TagListIndex]
		require.Len(t, row, len(rec.Tags))
		for i, tag := range rec.Tags {
			require.Equal(t, row[i], tag.ID)
			if i > 0 {
				require.Less(t, rec.Tags[i-1].ID, tag.ID, "tags must be sorted")
			}
		}
	}

	// Shorter rows come first, equal lengths collate by bytes.
	require.Empty(t, dict[0])
	for i := 1; i < len(dict); i++ {
		require.LessOrEqual(t, len(dict[i-1]), len(dict[i]))
	}
}

func TestTagDictionaryDeterminism(t *testing.T) {
	xa := record.NewTagID('X', 'A', format.TagInt8)
	nm := record.NewTagID('N', 'M', format.TagInt32)

	// Only the per-record tag order varies between the two builds; the tag
	// sets themselves are identical.
	build := func(first, second record.TagID) ([][]record.TagID, []int) {
		recs := []*record.Record{tagged(first, second), {}, tagged(xa)}
		dict := buildTagDictionary(recs)
		idx := []int{recs[0].TagListIndex, recs[1].TagListIndex, recs[2].TagListIndex}

		return dict, idx
	}

	dictA, idxA := build(xa, nm)
	dictB, idxB := build(nm, xa)

	require.Equal(t, dictA, dictB)
	require.Equal(t, idxA, idxB)
}

func TestTagDictionaryDeduplicates(t *testing.T) {
	xa := record.NewTagID('X', 'A', format.TagInt8)
	nm := record.NewTagID('N', 'M', format.TagInt32)

	recs := make([]*record.Record, 100)
	for i := range recs {
		recs[i] = tagged(xa, nm)
	}
	dict := buildTagDictionary(recs)

	require.Len(t, dict, 2)
	for _, rec := range recs {
		require.Equal(t, 1, rec.TagListIndex)
	}
}
