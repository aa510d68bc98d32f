package uuid

import (
	"testing"

	googleuuid "github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IsTimeOrderedV7(t *testing.T) {
	a := New()
	b := New()

	parsed, err := googleuuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, googleuuid.Version(7), parsed.Version())
	assert.NotEqual(t, a, b)
	assert.LessOrEqual(t, a[:13], b[:13], "timestamp prefix must not go backwards")
}

func TestParse(t *testing.T) {
	id, err := Parse("0190C6A2-7C1E-7A3B-9F00-000000000001")
	require.NoError(t, err)
	assert.Equal(t, "0190c6a2-7c1e-7a3b-9f00-000000000001", id)

	_, err = Parse("42")
	assert.Error(t, err)
}
