package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zoombox/internal/geo"
)

func TestStaticSourceIsFrozen(t *testing.T) {
	r := geo.Rectangle{West: -0.1, South: -0.1, East: 0.3, North: 0.2}
	src := Static(r)
	r.East = 1
	assert.Equal(t, 0.3, src.CurrentValue().East)
	assert.False(t, IsLive(src))
}

func TestSourceFuncIsLive(t *testing.T) {
	cell := geo.Rectangle{West: 0, South: 0, East: 0.1, North: 0.1}
	src := SourceFunc(func() geo.Rectangle { return cell })
	assert.True(t, IsLive(src))

	cell.East = 0.5
	assert.Equal(t, 0.5, src.CurrentValue().East)
	assert.False(t, IsLive(nil))
}

func TestShapeRectangle(t *testing.T) {
	s := &Shape{}
	_, ok := s.Rectangle()
	assert.False(t, ok, "hidden shape")

	s.Show = true
	_, ok = s.Rectangle()
	assert.False(t, ok, "no source")

	s.Source = Static(geo.Rectangle{West: 0.1, East: 0.1, South: 0, North: 1})
	_, ok = s.Rectangle()
	assert.False(t, ok, "degenerate")

	want := geo.Rectangle{West: 0, East: 0.2, South: 0, North: 0.1}
	s.Source = Static(want)
	got, ok := s.Rectangle()
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestCollection(t *testing.T) {
	c := NewCollection()
	a, b := &Shape{}, &Shape{}

	c.Add(a)
	c.Add(b)
	c.Add(a)
	assert.Equal(t, 2, c.Len())
	assert.True(t, c.Contains(b))

	var order []*Shape
	c.Each(func(s *Shape) { order = append(order, s) })
	assert.Equal(t, []*Shape{a, b}, order)

	assert.True(t, c.Remove(a))
	assert.False(t, c.Remove(a))
	assert.False(t, c.Contains(a))
	assert.Equal(t, 1, c.Len())

	assert.Nil(t, c.Add(nil))
	assert.Equal(t, 1, c.Len())
}
