package compress

import "fmt"

// bestCandidates is the trial order; earlier entries win size ties. rANS
// leads because it decodes cheaper than deflate when nothing is saved
// either way.
var bestCandidates = []Codec{RansOrder0, RansOrder1, GzipCodec{}}

// BestCodec trial-compresses data with every candidate codec and returns
// the one producing the smallest output. Each trial runs over the full
// input; the sizes being compared must be the real block sizes.
//
// Only the winning codec is returned, not its output: the planner records
// the choice and the block writer compresses once more at serialization
// time.
func BestCodec(data []byte) (Codec, error) {
	var (
		best     Codec
		bestSize int
	)
	for _, c := range bestCandidates {
		out, err := c.Compress(data)
		if err != nil {
			return nil, fmt.Errorf("compress: trial %s: %w", c.Method(), err)
		}
		if best == nil || len(out) < bestSize {
			best = c
			bestSize = len(out)
		}
	}

	return best, nil
}
