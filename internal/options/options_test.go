package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type target struct {
	limit int
	name  string
}

func withLimit(limit int) Option[*target] {
	return New(func(t *target) error {
		if limit < 0 {
			return errors.New("limit cannot be negative")
		}
		t.limit = limit

		return nil
	})
}

func withName(name string) Option[*target] {
	return NoError(func(t *target) {
		t.name = name
	})
}

func TestApply(t *testing.T) {
	tgt := &target{}
	require.NoError(t, Apply(tgt, withLimit(10), withName("planner")))
	require.Equal(t, 10, tgt.limit)
	require.Equal(t, "planner", tgt.name)
}

func TestApplyNoOptions(t *testing.T) {
	tgt := &target{limit: 1}
	require.NoError(t, Apply(tgt))
	require.Equal(t, 1, tgt.limit)
}

func TestApplyStopsAtFirstError(t *testing.T) {
	tgt := &target{}
	err := Apply(tgt, withLimit(5), withLimit(-1), withName("never"))
	require.Error(t, err)

	// Options before the failing one applied, later ones did not.
	require.Equal(t, 5, tgt.limit)
	require.Empty(t, tgt.name)
}
