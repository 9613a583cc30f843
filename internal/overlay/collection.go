package overlay

// Collection is the ordered set of shapes a viewer draws. Order is preserved so later
// shapes draw on top.
type Collection struct {
	shapes []*Shape
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Add appends s unless it is already present. Returns s for chaining.
func (c *Collection) Add(s *Shape) *Shape {
	if s == nil || c.Contains(s) {
		return s
	}
	c.shapes = append(c.shapes, s)
	return s
}

// Remove drops s and reports whether it was present.
func (c *Collection) Remove(s *Shape) bool {
	for i, x := range c.shapes {
		if x == s {
			c.shapes = append(c.shapes[:i], c.shapes[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether s is in the collection.
func (c *Collection) Contains(s *Shape) bool {
	for _, x := range c.shapes {
		if x == s {
			return true
		}
	}
	return false
}

// Len is the number of shapes.
func (c *Collection) Len() int {
	return len(c.shapes)
}

// Each calls fn for every shape in draw order.
func (c *Collection) Each(fn func(*Shape)) {
	for _, s := range c.shapes {
		fn(s)
	}
}
