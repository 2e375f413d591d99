package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSelection_Deduplicates(t *testing.T) {
	s := NewSelection("a", "b", "a")
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"a", "b"}, s.Names())
}

func TestSelection_Toggle(t *testing.T) {
	s := NewSelection("a")

	added := s.Toggle("b")
	assert.True(t, added.Has("b"))
	assert.False(t, s.Has("b"), "toggle must not mutate the receiver")

	removed := added.Toggle("a")
	assert.Equal(t, []string{"b"}, removed.Names())
}

func TestSelection_DoubleToggleIsIdentity(t *testing.T) {
	for _, start := range []Selection{NewSelection(), NewSelection("a"), NewSelection("a", "b", "c")} {
		for _, name := range []string{"a", "b", "z"} {
			got := start.Toggle(name).Toggle(name)
			assert.True(t, start.Equal(got), "start %v name %s got %v", start.Names(), name, got.Names())
		}
	}
}

func TestSelection_SelectAllThenDeselectAll(t *testing.T) {
	buckets := testBuckets("a", "b", "c")

	all := NewSelection("b").SelectAll(buckets)
	assert.Equal(t, 3, all.Len())
	for _, b := range buckets {
		assert.True(t, all.Has(b.Name))
	}

	none := all.DeselectAll()
	assert.Equal(t, 0, none.Len())
	assert.Empty(t, none.Names())
}

func TestSelection_Equal(t *testing.T) {
	assert.True(t, NewSelection("a", "b").Equal(NewSelection("b", "a")))
	assert.False(t, NewSelection("a").Equal(NewSelection("a", "b")))
	assert.False(t, NewSelection("a", "c").Equal(NewSelection("a", "b")))
}
