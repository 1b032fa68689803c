package interner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntern(t *testing.T) {
	i := New()

	a := i.Intern("car")
	b := i.Intern(string([]byte("car")))

	assert.Equal(t, a, b)
	assert.Equal(t, 1, i.Len())
	assert.Equal(t, 3, i.Bytes())
	assert.True(t, i.Contains("car"))
	assert.False(t, i.Contains("cdr"))

	i.Intern("cdr")
	assert.Equal(t, "symbols interned: 2\nbytes used: 6", i.Stats())
}
