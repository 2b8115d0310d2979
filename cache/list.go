package cache

// recencyList is a doubly linked list of nodes kept in an arena. Links are
// slot handles rather than pointers, so removing a node only clears its slot
// and recycles the handle. Head is the most recently used node.
type recencyList[K comparable, V any] struct {
	slots []*Node[K, V]
	free  []handle
	head  handle
	tail  handle
	len   int
}

func newRecencyList[K comparable, V any](capacity int) *recencyList[K, V] {
	return &recencyList[K, V]{
		slots: make([]*Node[K, V], 0, capacity),
		head:  nilHandle,
		tail:  nilHandle,
	}
}

// at returns the node in slot h.
func (l *recencyList[K, V]) at(h handle) *Node[K, V] {
	return l.slots[h]
}

// pushFront stores n in a free slot, links it at the head and returns its
// handle.
func (l *recencyList[K, V]) pushFront(n *Node[K, V]) handle {
	var h handle
	if last := len(l.free) - 1; last >= 0 {
		h = l.free[last]
		l.free = l.free[:last]
		l.slots[h] = n
	} else {
		h = handle(len(l.slots))
		l.slots = append(l.slots, n)
	}
	l.linkFront(h)
	l.len++
	return h
}

// remove unlinks slot h, releases it and returns the node that was there.
func (l *recencyList[K, V]) remove(h handle) *Node[K, V] {
	n := l.slots[h]
	l.unlink(h)
	l.slots[h] = nil
	l.free = append(l.free, h)
	l.len--
	return n
}

// moveToFront relinks slot h at the head.
func (l *recencyList[K, V]) moveToFront(h handle) {
	if l.head == h {
		return
	}
	l.unlink(h)
	l.linkFront(h)
}

// replace puts n in slot h, taking over the old node's position.
func (l *recencyList[K, V]) replace(h handle, n *Node[K, V]) {
	old := l.slots[h]
	n.prev, n.next = old.prev, old.next
	old.prev, old.next = nilHandle, nilHandle
	l.slots[h] = n
}

// reset drops every node and returns them in head to tail order.
func (l *recencyList[K, V]) reset() []*Node[K, V] {
	nodes := make([]*Node[K, V], 0, l.len)
	for h := l.head; h != nilHandle; {
		n := l.slots[h]
		h = n.next
		n.prev, n.next = nilHandle, nilHandle
		nodes = append(nodes, n)
	}
	clear(l.slots)
	l.slots = l.slots[:0]
	l.free = l.free[:0]
	l.head, l.tail = nilHandle, nilHandle
	l.len = 0
	return nodes
}

func (l *recencyList[K, V]) linkFront(h handle) {
	n := l.slots[h]
	n.prev = nilHandle
	n.next = l.head
	if l.head != nilHandle {
		l.slots[l.head].prev = h
	}
	l.head = h
	if l.tail == nilHandle {
		l.tail = h
	}
}

func (l *recencyList[K, V]) unlink(h handle) {
	n := l.slots[h]
	if n.prev != nilHandle {
		l.slots[n.prev].next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nilHandle {
		l.slots[n.next].prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nilHandle, nilHandle
}
