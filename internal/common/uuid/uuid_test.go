package uuid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUIDIsUniqueAndParseable(t *testing.T) {
	gen := New()

	first := gen.NewUUID()
	second := gen.NewUUID()

	assert.NotEqual(t, first, second)
	_, err := uuid.Parse(first)
	require.NoError(t, err)
}
