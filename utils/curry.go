package utils

// Curry holds a lazily computed value until it is reset.
type Curry[T any] struct {
	set bool
	val T
}

func (c *Curry[T]) Value(setter func() T) T {
	if c.set {
		return c.val
	}
	c.set = true
	c.val = setter()
	return c.val
}

func (c *Curry[T]) Set(val T) {
	c.set = true
	c.val = val
}

// Reset drops the held value so the next Value call recomputes it.
func (c *Curry[T]) Reset() {
	var zero T
	c.set = false
	c.val = zero
}

func (c *Curry[T]) IsSet() bool {
	return c.set
}
