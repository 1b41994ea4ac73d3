package query

type stack[T any] []T

func (s *stack[T]) push(e T) {
	*s = append(*s, e)
}

// pop removes and returns the top element, or the zero value if s is empty.
func (s *stack[T]) pop() T {
	l := len(*s)
	if l == 0 {
		var noop T
		return noop
	}

	e := (*s)[l-1]
	*s = (*s)[:l-1]

	return e
}

func (s *stack[T]) peek() (T, bool) {
	l := len(*s)
	if l == 0 {
		var noop T
		return noop, false
	}

	return (*s)[l-1], true
}

func (s *stack[T]) len() int {
	return len(*s)
}
