// Package selection tracks which nodes of the document hierarchy are
// selected. The tree mirrors the hierarchy lazily: a node exists only once
// an address below it has been touched, and every node carries the count of
// selected nodes in its subtree so size queries never traverse.
package selection

import (
	"gpxgrip/internal/hierarchy"
)

// Tree is one node of the selection tree. The zero value is not usable;
// build roots with NewTree.
type Tree struct {
	item     hierarchy.Item
	selected bool
	size     int
	children map[hierarchy.ID]*Tree
}

// NewTree returns an empty selection tree rooted at the hierarchy root.
func NewTree() *Tree {
	return newNode(hierarchy.RootItem{})
}

func newNode(item hierarchy.Item) *Tree {
	return &Tree{item: item, children: make(map[hierarchy.ID]*Tree)}
}

// Item returns the address this node represents.
func (t *Tree) Item() hierarchy.Item { return t.item }

// Size returns the number of selected nodes in this subtree, including the
// node itself. It is maintained incrementally by every mutation.
func (t *Tree) Size() int { return t.size }

// Set selects or deselects the exact node addressed by item, creating
// intermediate nodes along the path as needed. Ancestor sizes are adjusted
// on the way down, so no second traversal happens. Addresses that cannot be
// reached (malformed branch ids) are ignored.
func (t *Tree) Set(item hierarchy.Item, value bool) {
	if item.Level() == t.item.Level() {
		if t.selected != value {
			t.selected = value
			if value {
				t.size++
			} else {
				t.size--
			}
		}
		return
	}
	id, ok := item.IDAtLevel(t.item.Level())
	if !ok {
		return
	}
	child := t.children[id]
	if child == nil {
		extended, err := t.item.Extend(id)
		if err != nil {
			return
		}
		child = newNode(extended)
		t.children[id] = child
	}
	before := child.size
	child.Set(item, value)
	t.size += child.size - before
}

// Toggle flips the selection state of the exact node addressed by item.
func (t *Tree) Toggle(item hierarchy.Item) {
	t.Set(item, !t.Has(item))
}

// Has reports whether the exact node addressed by item is selected. It never
// creates nodes.
func (t *Tree) Has(item hierarchy.Item) bool {
	if item.Level() == t.item.Level() {
		return t.selected
	}
	id, ok := item.IDAtLevel(t.item.Level())
	if !ok {
		return false
	}
	child := t.children[id]
	if child == nil {
		return false
	}
	return child.Has(item)
}

// HasAnyParent reports whether any ancestor of item is selected, including
// item itself when self is true. It walks the address path and short-circuits
// on the first selected node.
func (t *Tree) HasAnyParent(item hierarchy.Item, self bool) bool {
	if t.selected && (t.item.Level() < item.Level() || (self && t.item.Level() == item.Level())) {
		return true
	}
	if t.item.Level() >= item.Level() {
		return false
	}
	id, ok := item.IDAtLevel(t.item.Level())
	if !ok {
		return false
	}
	if child := t.children[id]; child != nil {
		return child.HasAnyParent(item, self)
	}
	return false
}

// HasAnyChildren reports whether any node in the subtree rooted at item is
// selected, including item itself when self is true. Branches whose key under
// item is listed in ignore are skipped.
func (t *Tree) HasAnyChildren(item hierarchy.Item, self bool, ignore ...hierarchy.ID) bool {
	if t.item.Level() >= item.Level() {
		if t.selected && (t.item.Level() > item.Level() || (self && t.item.Level() == item.Level())) {
			return true
		}
		atItem := t.item.Level() == item.Level()
		for id, child := range t.children {
			if atItem && containsID(ignore, id) {
				continue
			}
			if child.HasAnyChildren(item, self, ignore...) {
				return true
			}
		}
		return false
	}
	id, ok := item.IDAtLevel(t.item.Level())
	if !ok {
		return false
	}
	if child := t.children[id]; child != nil {
		return child.HasAnyChildren(item, self, ignore...)
	}
	return false
}

func containsID(ids []hierarchy.ID, id hierarchy.ID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Selected returns every selected address in pre-order. Sibling order
// follows map iteration and is unspecified; callers needing a stable order
// must sort.
func (t *Tree) Selected() []hierarchy.Item {
	items := make([]hierarchy.Item, 0, t.size)
	t.ForEach(func(item hierarchy.Item) {
		items = append(items, item)
	})
	return items
}

// ForEach invokes fn for every selected address in pre-order.
func (t *Tree) ForEach(fn func(item hierarchy.Item)) {
	if t.selected {
		fn(t.item)
	}
	for _, child := range t.children {
		child.ForEach(fn)
	}
}

// Child returns the child node for id, or nil.
func (t *Tree) Child(id hierarchy.ID) *Tree {
	return t.children[id]
}

// DeleteChild removes the child subtree for id, discounting its selected
// count from this node. Used to prune state for deleted files or tracks.
func (t *Tree) DeleteChild(id hierarchy.ID) {
	child := t.children[id]
	if child == nil {
		return
	}
	t.size -= child.size
	delete(t.children, id)
}

// Clear deselects every node and zeroes all counters, keeping the allocated
// node structure for reuse.
func (t *Tree) Clear() {
	t.selected = false
	t.size = 0
	for _, child := range t.children {
		child.Clear()
	}
}
