package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixed(t *testing.T) {
	v, err := Fixed([]int{1, 2}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, v)

	_, err = Fixed([]int{1, 2, 3}, 2, 2)
	require.EqualError(t, err, "expected 2 arguments, passed 3")

	_, err = Fixed([]int{}, 1, 1)
	require.EqualError(t, err, "expected 1 argument, passed 0")

	_, err = Fixed([]int{1, 2, 3, 4}, 1, 3)
	require.EqualError(t, err, "expected 1 to 3 arguments, passed 4")
}

func TestVariadic(t *testing.T) {
	v, rest, err := Variadic([]string{"a", "b", "c"}, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v)
	assert.Equal(t, []string{"c"}, rest)

	v, rest, err = Variadic([]string{"a", "b", "c"}, 1, Unlimited)
	require.NoError(t, err)
	assert.Len(t, v, 3)
	assert.Empty(t, rest)

	_, _, err = Variadic([]string{}, 2, Unlimited)
	require.EqualError(t, err, "expected at least 2 arguments, passed 0")
}
