// Package header plans the compression header of a record batch: it
// assigns an encoding scheme and a block compressor to every fixed data
// series and every observed tag, builds the shared tag dictionary and
// derives the base substitution matrix.
//
// # Planning
//
// A Factory plans one batch at a time. Fixed series come from a baked-in
// policy table; tag streams are selected empirically, by dispatching on the
// tag's value type and trial-compressing its concatenated values with the
// competing block codecs. Selections are memoized per tag id on the
// Factory, so a tag seen again in a later batch keeps its earlier decision
// without re-analysis.
//
// # Side effects
//
// Planning annotates the input records as a documented output alongside the
// returned header: each record's tags end up sorted by packed id, its
// TagListIndex names its tag dictionary row, and substitution features that
// arrived without a rank code receive one from the matrix. The downstream
// serializer depends on both the header and these annotations.
//
// # Concurrency
//
// A Factory owns a selection memo and a scratch buffer and must not be
// shared across concurrently planned batches; independent Factories are
// independent.
package header
