package header

import (
	"sort"

	"github.com/arloliu/cram/record"
)

// buildTagDictionary deduplicates the per-record sorted tag-id lists into a
// dictionary with stable indices and writes each record's row index back.
//
// Two explicit passes: the first sorts every record's tags and collects the
// distinct packed keys, the second assigns the final indices once the key
// order is known. Keys collate by length first, then by unsigned byte
// order. The empty key occupies a row even when every record carries tags.
func buildTagDictionary(records []*record.Record) [][]record.TagID {
	keys := map[string]int{"": -1}
	recordKeys := make([]string, len(records))

	for i, rec := range records {
		rec.SortTags()

		packed := make([]byte, 0, 3*len(rec.Tags))
		for _, tag := range rec.Tags {
			b := tag.ID.Bytes()
			packed = append(packed, b[0], b[1], b[2])
		}
		key := string(packed)
		recordKeys[i] = key
		keys[key] = -1
	}

	ordered := make([]string, 0, len(keys))
	for key := range keys {
		ordered = append(ordered, key)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i]) != len(ordered[j]) {
			return len(ordered[i]) < len(ordered[j])
		}

		return ordered[i] < ordered[j]
	})

	dict := make([][]record.TagID, len(ordered))
	for idx, key := range ordered {
		keys[key] = idx

		row := make([]record.TagID, 0, len(key)/3)
		for p := 0; p+3 <= len(key); p += 3 {
			row = append(row, record.NewTagID(key[p], key[p+1], key[p+2]))
		}
		dict[idx] = row
	}

	for i, rec := range records {
		rec.TagListIndex = keys[recordKeys[i]]
	}

	return dict
}
