package dirtree

import (
	"github.com/sirupsen/logrus"

	"github.com/arkdir/dirtree/pkg/childmap"
	"github.com/arkdir/dirtree/pkg/dirpath"
)

// List returns the canonical, comma-joined, lexicographically sorted
// listing of path's children. It fails with ErrInvalidArgument for a
// malformed path and ErrNotFound if path doesn't exist.
func (t *Tree) List(path string) (string, error) {
	start := t.log.call("list", logrus.Fields{"path": path})

	if !dirpath.Valid(path) {
		t.log.finish("list", start, StatusInvalidArgument, nil)
		return "", statusError(StatusInvalidArgument, path)
	}

	target, entered, found := t.descend(path, modeReader)
	if !found {
		t.log.finish("list", start, StatusNotFound, nil)
		return "", statusError(StatusNotFound, path)
	}

	listing := childmap.List(target.children)
	t.release(entered, target, modeReader)

	t.log.finish("list", start, StatusOK, nil)
	return listing, nil
}

// Create makes an empty directory at path. The parent directory must
// already exist; path itself must not.
func (t *Tree) Create(path string) error {
	start := t.log.call("create", logrus.Fields{"path": path})

	if !dirpath.Valid(path) || path == dirpath.Root {
		status := StatusInvalidArgument
		if path == dirpath.Root {
			status = StatusExists
		}
		t.log.finish("create", start, status, nil)
		return statusError(status, path)
	}

	parentPath, name, _ := dirpath.SplitParent(path)

	parent, entered, found := t.descend(parentPath, modeWriter)
	if !found {
		t.log.finish("create", start, StatusNotFound, nil)
		return statusError(StatusNotFound, parentPath)
	}

	if _, exists := parent.children.Get(name); exists {
		t.release(entered, parent, modeWriter)
		t.log.finish("create", start, StatusExists, nil)
		return statusError(StatusExists, path)
	}

	child := newNode(t.allocID(), name, parent)
	parent.children.Insert(name, child)

	t.release(entered, parent, modeWriter)
	t.log.finish("create", start, StatusOK, nil)
	return nil
}

// Remove deletes the empty directory at path.
func (t *Tree) Remove(path string) error {
	start := t.log.call("remove", logrus.Fields{"path": path})

	if path == dirpath.Root {
		t.log.finish("remove", start, StatusBusy, nil)
		return statusError(StatusBusy, path)
	}
	if !dirpath.Valid(path) {
		t.log.finish("remove", start, StatusInvalidArgument, nil)
		return statusError(StatusInvalidArgument, path)
	}

	parentPath, name, _ := dirpath.SplitParent(path)

	parent, entered, found := t.descend(parentPath, modeWriter)
	if !found {
		t.log.finish("remove", start, StatusNotFound, nil)
		return statusError(StatusNotFound, parentPath)
	}

	child, exists := parent.children.Get(name)
	if !exists {
		t.release(entered, parent, modeWriter)
		t.log.finish("remove", start, StatusNotFound, nil)
		return statusError(StatusNotFound, path)
	}

	child.lockWriter()
	if child.children.Size() > 0 {
		child.unlockWriter()
		t.release(entered, parent, modeWriter)
		t.log.finish("remove", start, StatusNotEmpty, nil)
		return statusError(StatusNotEmpty, path)
	}

	parent.children.Remove(name)
	child.unlockWriter()

	t.release(entered, parent, modeWriter)
	t.log.finish("remove", start, StatusOK, nil)
	return nil
}

// Move relocates the directory at source to target, which must not
// already exist. Moving a directory into its own subtree is rejected.
// Moving a directory onto itself (source == target) is a successful
// no-op.
func (t *Tree) Move(source, target string) error {
	start := t.log.call("move", logrus.Fields{"source": source, "target": target})

	status, err := t.move(source, target)
	t.log.finish("move", start, status, err)
	return err
}

func (t *Tree) move(source, target string) (Status, error) {
	if !dirpath.Valid(source) || !dirpath.Valid(target) {
		return StatusInvalidArgument, statusError(StatusInvalidArgument, source+" "+target)
	}
	if source == dirpath.Root {
		return StatusBusy, statusError(StatusBusy, source)
	}
	if target == dirpath.Root {
		return StatusExists, statusError(StatusExists, target)
	}
	if source == target {
		return t.moveNoop(source)
	}

	// IsAncestor is non-strict, so this only ever fires for a target
	// that is a proper descendant of source now that source == target
	// has already been handled above.
	if dirpath.IsAncestor(source, target) {
		return StatusInvalidArgument, statusError(StatusInvalidArgument, target)
	}

	// target is a strict ancestor of source: target must already exist
	// (every ancestor of an existing node exists), so this always
	// resolves to Exists. This also sidesteps a structural edge case
	// in the generic LCA protocol below: when target is an ancestor of
	// the LCA, target's parent lies *above* the LCA and can no longer
	// be reached by descending from it (see DESIGN.md).
	if dirpath.IsAncestor(target, source) {
		return t.moveOntoOwnAncestor(source, target)
	}

	return t.moveAcrossSubtrees(source, target)
}

// moveNoop implements move(s, s): a successful no-op if s exists,
// NotFound otherwise.
func (t *Tree) moveNoop(path string) (Status, error) {
	target, entered, found := t.descend(path, modeReader)
	if !found {
		return StatusNotFound, statusError(StatusNotFound, path)
	}
	t.release(entered, target, modeReader)
	return StatusOK, nil
}

func (t *Tree) moveOntoOwnAncestor(source, target string) (Status, error) {
	node, entered, found := t.descend(source, modeReader)
	if !found {
		return StatusNotFound, statusError(StatusNotFound, source)
	}
	t.release(entered, node, modeReader)
	return StatusExists, statusError(StatusExists, target)
}

func (t *Tree) moveAcrossSubtrees(source, target string) (Status, error) {
	lcaPath := dirpath.LCA(source, target)

	lca, lcaEntered, ok := t.descend(lcaPath, modeWriter)
	if !ok {
		return StatusNotFound, statusError(StatusNotFound, lcaPath)
	}

	sourceParent, sourceName, _ := dirpath.SplitParent(source)
	targetParent, targetName, _ := dirpath.SplitParent(target)
	sameParent := sourceParent == targetParent

	spComps := componentsAfter(sourceParent, lcaPath)
	sp, spEntered, okSP := t.descendComponents(lca, spComps, modeWriter, false)
	if !okSP {
		t.unwindNodes(lcaEntered)
		lca.unlockMode(modeWriter)
		return StatusNotFound, statusError(StatusNotFound, sourceParent)
	}

	var tp *Node
	var tpEntered []*Node
	var tpComps []string
	if sameParent {
		tp = sp
	} else {
		tpComps = componentsAfter(targetParent, lcaPath)
		var okTP bool
		tp, tpEntered, okTP = t.descendComponents(lca, tpComps, modeWriter, false)
		if !okTP {
			if len(spComps) > 0 {
				t.unwindNodes(spEntered)
				sp.unlockMode(modeWriter)
			}
			t.unwindNodes(lcaEntered)
			lca.unlockMode(modeWriter)
			return StatusNotFound, statusError(StatusNotFound, targetParent)
		}
	}

	release := func() {
		if !sameParent {
			t.unwindNodes(tpEntered)
			if len(tpComps) > 0 {
				tp.unlockMode(modeWriter)
			}
		}
		t.unwindNodes(spEntered)
		if len(spComps) > 0 {
			sp.unlockMode(modeWriter)
		}
		t.unwindNodes(lcaEntered)
		lca.unlockMode(modeWriter)
	}

	sourceNode, exists := sp.children.Get(sourceName)
	if !exists {
		release()
		return StatusNotFound, statusError(StatusNotFound, source)
	}

	if _, exists := tp.children.Get(targetName); exists {
		release()
		return StatusExists, statusError(StatusExists, target)
	}

	// Source subtree must be quiescent before its ownership rebinds:
	// SP's writer lock keeps out new entrants, so this only waits for
	// operations already inside the subtree to drain.
	sourceNode.waitQuiescent()

	sp.children.Remove(sourceName)
	sourceNode.parent = tp
	sourceNode.name = targetName
	tp.children.Insert(targetName, sourceNode)

	release()
	return StatusOK, nil
}
