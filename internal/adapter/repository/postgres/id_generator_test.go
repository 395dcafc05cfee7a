package postgres

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestULIDGeneratorSortable(t *testing.T) {
	g := NewULIDGenerator()

	first := g.Generate()
	second := g.Generate()

	_, err := ulid.ParseStrict(first)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Len(t, first, 26)
}
