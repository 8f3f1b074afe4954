package form

type subscriber[T any] struct {
	id int
	fn func(T)
}

// registry keeps change listeners in registration order. Callers hold their own lock.
type registry[T any] struct {
	nextID int
	subs   []subscriber[T]
}

func (r *registry[T]) add(fn func(T)) int {
	r.nextID++
	r.subs = append(r.subs, subscriber[T]{id: r.nextID, fn: fn})
	return r.nextID
}

func (r *registry[T]) remove(id int) {
	for i, s := range r.subs {
		if s.id == id {
			r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
			return
		}
	}
}

func (r *registry[T]) snapshot() []func(T) {
	out := make([]func(T), len(r.subs))
	for i, s := range r.subs {
		out[i] = s.fn
	}
	return out
}
