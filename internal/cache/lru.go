package cache

// node is one cached entry, linked into the recency ring.
type node[K comparable, V any] struct {
	key        K
	value      V
	prev, next *node[K, V]
}

// ring orders entries by recency. root is a sentinel: root.next is the
// most recently used entry and root.prev the least. An empty ring has
// root linked to itself.
type ring[K comparable, V any] struct {
	root node[K, V]
}

func (r *ring[K, V]) init() {
	r.root.next = &r.root
	r.root.prev = &r.root
}

// pushFront links n as the most recently used entry.
func (r *ring[K, V]) pushFront(n *node[K, V]) {
	n.prev = &r.root
	n.next = r.root.next
	r.root.next.prev = n
	r.root.next = n
}

func (r *ring[K, V]) moveToFront(n *node[K, V]) {
	if r.root.next == n {
		return
	}
	r.unlink(n)
	r.pushFront(n)
}

func (r *ring[K, V]) unlink(n *node[K, V]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next = nil, nil
}

// back returns the least recently used entry, or nil when empty.
func (r *ring[K, V]) back() *node[K, V] {
	if r.root.prev == &r.root {
		return nil
	}
	return r.root.prev
}
