package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/chapool/sol-explorer/internal/util"
)

type testComponents struct {
	Skipped *int `wire:"-"`
	Name    string
	Value   *int
	Items   []string
}

func TestIsStructInitialized(t *testing.T) {
	t.Parallel()

	v := 1
	s := &testComponents{Value: &v, Items: []string{}}
	require.NoError(t, util.IsStructInitialized(s))

	s.Items = nil
	err := util.IsStructInitialized(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Items")

	require.Error(t, util.IsStructInitialized((*testComponents)(nil)))
	require.Error(t, util.IsStructInitialized(42))
}
