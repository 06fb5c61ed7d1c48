package dirtree

import "github.com/arkdir/dirtree/pkg/dirpath"

// descend performs hand-over-hand descent from the tree root to path
// in the given lock mode. It returns the target node, still locked in
// mode, together with the ordered chain of nodes (root..target
// inclusive) whose subtree refcount was bumped and which therefore
// need unwinding once the caller is done with the target. found is
// false if some component along path doesn't exist, in which case
// every lock taken by this call has already been released and every
// refcount it bumped has already been unwound.
func (t *Tree) descend(path string, mode lockMode) (target *Node, entered []*Node, found bool) {
	return t.descendComponents(t.root, dirpath.Components(path), mode, true)
}

// descendComponents walks comps starting at start. When ownStart is
// true, start is locked (as a reader if comps is non-empty, otherwise
// in mode) and entered by this call, exactly like descend's root.
// When ownStart is false, start is assumed to already be locked and
// entered by the caller (used by Move, which pins the LCA across two
// sub-descents); this call never locks, enters, or unlocks start
// itself in that case.
//
// Every interior component is locked as a reader; only the final
// component is locked as a writer, and only if mode is modeWriter. A
// predecessor's lock is released as soon as its child's lock is
// acquired — except start when ownStart is false, since that lock
// belongs to the caller.
func (t *Tree) descendComponents(start *Node, comps []string, mode lockMode, ownStart bool) (target *Node, entered []*Node, found bool) {
	if ownStart {
		startMode := modeReader
		if len(comps) == 0 {
			startMode = mode
		}
		start.lockMode(startMode)
		start.enter()
		entered = append(entered, start)
	}

	cur := start
	curMode := modeReader
	curOwnedByCaller := !ownStart

	for i, name := range comps {
		isLast := i == len(comps)-1
		childMode := modeReader
		if isLast && mode == modeWriter {
			childMode = modeWriter
		}

		child, ok := cur.children.Get(name)
		if !ok {
			if !curOwnedByCaller {
				cur.unlockMode(curMode)
			}
			t.unwindNodes(entered)
			return nil, nil, false
		}

		child.lockMode(childMode)
		child.enter()
		entered = append(entered, child)

		if !curOwnedByCaller {
			cur.unlockMode(curMode)
		}

		cur = child
		curMode = childMode
		curOwnedByCaller = false
	}

	return cur, entered, true
}

// unwindNodes decrements the subtree refcount of every node this call
// is responsible for, from the deepest node back up to the shallowest
// — the mirror image of the order in which they were entered.
func (t *Tree) unwindNodes(entered []*Node) {
	for i := len(entered) - 1; i >= 0; i-- {
		entered[i].leave()
	}
}

// release unwinds entered and releases target's lock. It is the
// common tail of List/Create/Remove: by the time it's called, the
// caller is done reading or mutating target.
func (t *Tree) release(entered []*Node, target *Node, mode lockMode) {
	t.unwindNodes(entered)
	target.unlockMode(mode)
}

// componentsAfter returns path's components with ancestor's prefix
// removed. ancestor must be an ancestor-or-equal of path.
func componentsAfter(path, ancestor string) []string {
	pc := dirpath.Components(path)
	ac := dirpath.Components(ancestor)
	return pc[len(ac):]
}
