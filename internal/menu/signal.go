package menu

// Signal is an ordered observer list. Handlers run synchronously in the order
// they were attached.
type Signal[T any] struct {
	nextID   uint64
	handlers []handler[T]
}

type handler[T any] struct {
	id uint64
	fn func(T)
}

// Subscribe attaches fn and returns a function that detaches it again.
// Calling the returned function more than once is harmless.
func (s *Signal[T]) Subscribe(fn func(T)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	s.nextID++
	id := s.nextID
	s.handlers = append(s.handlers, handler[T]{id: id, fn: fn})
	return func() { s.unsubscribe(id) }
}

func (s *Signal[T]) unsubscribe(id uint64) {
	for i, h := range s.handlers {
		if h.id != id {
			continue
		}
		// copy so an in-flight Emit keeps iterating its own snapshot
		next := make([]handler[T], 0, len(s.handlers)-1)
		next = append(next, s.handlers[:i]...)
		next = append(next, s.handlers[i+1:]...)
		s.handlers = next
		return
	}
}

// Emit delivers v to every handler attached when Emit was called.
func (s *Signal[T]) Emit(v T) {
	handlers := s.handlers
	for _, h := range handlers {
		h.fn(v)
	}
}

// Len reports the number of attached handlers.
func (s *Signal[T]) Len() int {
	return len(s.handlers)
}
