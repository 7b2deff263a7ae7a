package bsp

// eventHandle indexes into an EventTree's node arena. Handle 0 is the
// tree's single reserved black sentinel ("Nil"); real nodes start at 1.
type eventHandle int32

const nilEvent eventHandle = 0

type eventNode struct {
	parent, left, right eventHandle
	red                  bool
	distance             float64
	vertex               VertexHandle
	frontSeg             SegHandle
}

// EventTree is a red-black tree keyed on distance along the current
// splitter (§4.3). Nodes carry no subtree sizes, so it has no rank or
// select queries and Len walks the whole tree. Duplicate keys are allowed — uniqueness is
// the caller's job, not the tree's. A free list recycles nodes across
// splitters through the node's unused left field (§5, §9): the builder
// calls Clear once per splitter rather than allocating a fresh tree.
//
// The implementation is an arena of records addressed by integer handle
// rather than a graph of pointers (§9 design note): handle 0 is the
// shared black sentinel, and rotations may transiently write its parent
// field exactly as the original does — that write is never read back as
// meaningful.
type EventTree struct {
	nodes []eventNode
	root  eventHandle
	spare eventHandle
}

// NewEventTree returns an empty tree with its sentinel allocated.
func NewEventTree() *EventTree {
	t := &EventTree{
		nodes: make([]eventNode, 1, 64),
		root:  nilEvent,
		spare: nilEvent,
	}
	t.nodes[nilEvent] = eventNode{red: false}
	return t
}

func (t *EventTree) getNewNode() eventHandle {
	if t.spare != nilEvent {
		h := t.spare
		t.spare = t.nodes[h].left
		return h
	}
	t.nodes = append(t.nodes, eventNode{})
	return eventHandle(len(t.nodes) - 1)
}

func (t *EventTree) leftRotate(x eventHandle) {
	y := t.nodes[x].right
	t.nodes[x].right = t.nodes[y].left
	if t.nodes[y].left != nilEvent {
		t.nodes[t.nodes[y].left].parent = x
	}
	t.nodes[y].parent = t.nodes[x].parent
	if t.nodes[x].parent == nilEvent {
		t.root = y
	} else if x == t.nodes[t.nodes[x].parent].left {
		t.nodes[t.nodes[x].parent].left = y
	} else {
		t.nodes[t.nodes[x].parent].right = y
	}
	t.nodes[y].left = x
	t.nodes[x].parent = y
}

func (t *EventTree) rightRotate(x eventHandle) {
	y := t.nodes[x].left
	t.nodes[x].left = t.nodes[y].right
	if t.nodes[y].right != nilEvent {
		t.nodes[t.nodes[y].right].parent = x
	}
	t.nodes[y].parent = t.nodes[x].parent
	if t.nodes[x].parent == nilEvent {
		t.root = y
	} else if x == t.nodes[t.nodes[x].parent].left {
		t.nodes[t.nodes[x].parent].left = y
	} else {
		t.nodes[t.nodes[x].parent].right = y
	}
	t.nodes[y].right = x
	t.nodes[x].parent = y
}

// Insert adds a new event and returns its handle.
func (t *EventTree) Insert(distance float64, vertex VertexHandle, frontSeg SegHandle) eventHandle {
	z := t.getNewNode()
	t.nodes[z] = eventNode{distance: distance, vertex: vertex, frontSeg: frontSeg}

	y := nilEvent
	x := t.root
	for x != nilEvent {
		y = x
		if distance < t.nodes[x].distance {
			x = t.nodes[x].left
		} else {
			x = t.nodes[x].right
		}
	}
	t.nodes[z].parent = y
	if y == nilEvent {
		t.root = z
	} else if distance < t.nodes[y].distance {
		t.nodes[y].left = z
	} else {
		t.nodes[y].right = z
	}
	t.nodes[z].left = nilEvent
	t.nodes[z].right = nilEvent
	t.nodes[z].red = true

	for z != t.root && t.nodes[t.nodes[z].parent].red {
		zp := t.nodes[z].parent
		zpp := t.nodes[zp].parent
		if zp == t.nodes[zpp].left {
			y := t.nodes[zpp].right
			if t.nodes[y].red {
				t.nodes[zp].red = false
				t.nodes[y].red = false
				t.nodes[zpp].red = true
				z = zpp
			} else {
				if z == t.nodes[zp].right {
					z = zp
					t.leftRotate(z)
					zp = t.nodes[z].parent
					zpp = t.nodes[zp].parent
				}
				t.nodes[zp].red = false
				t.nodes[zpp].red = true
				t.rightRotate(zpp)
			}
		} else {
			y := t.nodes[zpp].left
			if t.nodes[y].red {
				t.nodes[zp].red = false
				t.nodes[y].red = false
				t.nodes[zpp].red = true
				z = zpp
			} else {
				if z == t.nodes[zp].left {
					z = zp
					t.rightRotate(z)
					zp = t.nodes[z].parent
					zpp = t.nodes[zp].parent
				}
				t.nodes[zp].red = false
				t.nodes[zpp].red = true
				t.leftRotate(zpp)
			}
		}
	}
	t.nodes[t.root].red = false
	return z
}

// Delete removes the event at handle z.
func (t *EventTree) Delete(z eventHandle) {
	var x, y eventHandle
	if t.nodes[z].left == nilEvent || t.nodes[z].right == nilEvent {
		y = z
	} else {
		y = t.Successor(z)
	}
	if t.nodes[y].left != nilEvent {
		x = t.nodes[y].left
	} else {
		x = t.nodes[y].right
	}
	t.nodes[x].parent = t.nodes[y].parent
	if t.nodes[y].parent == nilEvent {
		t.root = x
	} else if y == t.nodes[t.nodes[y].parent].left {
		t.nodes[t.nodes[y].parent].left = x
	} else {
		t.nodes[t.nodes[y].parent].right = x
	}
	if y != z {
		t.nodes[z].distance = t.nodes[y].distance
		t.nodes[z].vertex = t.nodes[y].vertex
		t.nodes[z].frontSeg = t.nodes[y].frontSeg
	}
	if !t.nodes[y].red {
		t.deleteFixUp(x)
	}

	t.nodes[y].left = t.spare
	t.spare = y
}

func (t *EventTree) deleteFixUp(x eventHandle) {
	for x != t.root && !t.nodes[x].red {
		xp := t.nodes[x].parent
		if x == t.nodes[xp].left {
			w := t.nodes[xp].right
			if t.nodes[w].red {
				t.nodes[w].red = false
				t.nodes[xp].red = true
				t.leftRotate(xp)
				xp = t.nodes[x].parent
				w = t.nodes[xp].right
			}
			if !t.nodes[t.nodes[w].left].red && !t.nodes[t.nodes[w].right].red {
				t.nodes[w].red = true
				x = xp
			} else {
				if !t.nodes[t.nodes[w].right].red {
					t.nodes[t.nodes[w].left].red = false
					t.nodes[w].red = true
					t.rightRotate(w)
					xp = t.nodes[x].parent
					w = t.nodes[xp].right
				}
				t.nodes[w].red = t.nodes[xp].red
				t.nodes[xp].red = false
				t.nodes[t.nodes[w].right].red = false
				t.leftRotate(xp)
				x = t.root
			}
		} else {
			w := t.nodes[xp].left
			if t.nodes[w].red {
				t.nodes[w].red = false
				t.nodes[xp].red = true
				t.rightRotate(xp)
				xp = t.nodes[x].parent
				w = t.nodes[xp].left
			}
			if !t.nodes[t.nodes[w].right].red && !t.nodes[t.nodes[w].left].red {
				t.nodes[w].red = true
				x = xp
			} else {
				if !t.nodes[t.nodes[w].left].red {
					t.nodes[t.nodes[w].right].red = false
					t.nodes[w].red = true
					t.leftRotate(w)
					xp = t.nodes[x].parent
					w = t.nodes[xp].left
				}
				t.nodes[w].red = t.nodes[xp].red
				t.nodes[xp].red = false
				t.nodes[t.nodes[w].left].red = false
				t.rightRotate(xp)
				x = t.root
			}
		}
	}
	t.nodes[x].red = false
}

// Successor returns the next event in distance order after z, or nilEvent.
func (t *EventTree) Successor(z eventHandle) eventHandle {
	if t.nodes[z].right != nilEvent {
		z = t.nodes[z].right
		for t.nodes[z].left != nilEvent {
			z = t.nodes[z].left
		}
		return z
	}
	y := t.nodes[z].parent
	for y != nilEvent && z == t.nodes[y].right {
		z = y
		y = t.nodes[y].parent
	}
	return y
}

// Predecessor returns the previous event in distance order before z, or
// nilEvent.
func (t *EventTree) Predecessor(z eventHandle) eventHandle {
	if t.nodes[z].left != nilEvent {
		z = t.nodes[z].left
		for t.nodes[z].right != nilEvent {
			z = t.nodes[z].right
		}
		return z
	}
	y := t.nodes[z].parent
	for y != nilEvent && z == t.nodes[y].left {
		z = y
		y = t.nodes[y].parent
	}
	return y
}

// FindEvent returns any one event whose distance equals key, or nilEvent.
func (t *EventTree) FindEvent(key float64) eventHandle {
	n := t.root
	for n != nilEvent {
		if t.nodes[n].distance == key {
			return n
		} else if t.nodes[n].distance > key {
			n = t.nodes[n].left
		} else {
			n = t.nodes[n].right
		}
	}
	return nilEvent
}

// Min returns the smallest-distance event, or nilEvent if the tree is empty.
func (t *EventTree) Min() eventHandle {
	n := t.root
	if n == nilEvent {
		return nilEvent
	}
	for t.nodes[n].left != nilEvent {
		n = t.nodes[n].left
	}
	return n
}

// Empty reports whether the tree currently holds no events.
func (t *EventTree) Empty() bool {
	return t.root == nilEvent
}

// Event returns the (distance, vertex, frontSeg) stored at handle h.
func (t *EventTree) Event(h eventHandle) (distance float64, vertex VertexHandle, frontSeg SegHandle) {
	n := t.nodes[h]
	return n.distance, n.vertex, n.frontSeg
}

// Clear empties the tree, moving every node onto the free list in one pass
// (§3 Lifecycles: "the event tree is cleared and reused once per
// splitter").
func (t *EventTree) Clear() {
	t.reclaim(t.root)
	t.root = nilEvent
}

func (t *EventTree) reclaim(n eventHandle) {
	if n == nilEvent {
		return
	}
	left, right := t.nodes[n].left, t.nodes[n].right
	t.reclaim(left)
	t.reclaim(right)
	t.nodes[n].left = t.spare
	t.spare = n
}

// InOrder calls fn for every event in ascending distance order.
func (t *EventTree) InOrder(fn func(h eventHandle)) {
	for n := t.Min(); n != nilEvent; n = t.Successor(n) {
		fn(n)
	}
}

// Len returns the number of events currently stored (not counting spares).
func (t *EventTree) Len() int {
	n := 0
	t.InOrder(func(eventHandle) { n++ })
	return n
}
