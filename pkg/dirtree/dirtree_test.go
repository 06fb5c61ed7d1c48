package dirtree

import (
	"errors"
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

// snapshot walks a subtree into a plain map for structural-equality
// comparisons. It must only be called when no operation is in flight.
func snapshot(n *Node) map[string]any {
	out := map[string]any{}
	n.children.Each(func(name string, child *Node) {
		out[name] = snapshot(child)
	})
	return out
}

func mustCreate(t *testing.T, tree *Tree, path string) {
	t.Helper()
	if err := tree.Create(path); err != nil {
		t.Fatalf("Create(%q) = %v, want nil", path, err)
	}
}

// An empty root lists as empty.
func TestListRootEmpty(t *testing.T) {
	tree := New()
	defer tree.Close()

	got, err := tree.List("/")
	if err != nil || got != "" {
		t.Fatalf("List(/) = %q, %v, want \"\", nil", got, err)
	}
}

// Created children show up in their parent's listing.
func TestCreateAndList(t *testing.T) {
	tree := New()
	defer tree.Close()

	mustCreate(t, tree, "/a/")
	mustCreate(t, tree, "/b/")

	got, err := tree.List("/")
	if err != nil || got != "a,b" {
		t.Fatalf("List(/) = %q, %v, want \"a,b\", nil", got, err)
	}
}

// A non-empty directory refuses removal and keeps its children.
func TestRemoveNotEmpty(t *testing.T) {
	tree := New()
	defer tree.Close()

	mustCreate(t, tree, "/a/")
	mustCreate(t, tree, "/a/b/")

	if err := tree.Remove("/a/"); !errors.Is(err, ErrNotEmpty) {
		t.Fatalf("Remove(/a/) = %v, want ErrNotEmpty", err)
	}

	got, err := tree.List("/a/")
	if err != nil || got != "b" {
		t.Fatalf("List(/a/) = %q, %v, want \"b\", nil", got, err)
	}
}

// Moving a directory into its own subtree is rejected.
func TestMoveIntoDescendantRejected(t *testing.T) {
	tree := New()
	defer tree.Close()

	mustCreate(t, tree, "/a/")
	mustCreate(t, tree, "/a/b/")

	if err := tree.Move("/a/", "/a/b/c/"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Move(/a/, /a/b/c/) = %v, want ErrInvalidArgument", err)
	}
}

// Moving across unrelated subtrees relocates the node and its children.
func TestMoveAcrossSubtrees(t *testing.T) {
	tree := New()
	defer tree.Close()

	mustCreate(t, tree, "/a/")
	mustCreate(t, tree, "/b/")
	mustCreate(t, tree, "/a/x/")

	if err := tree.Move("/a/x/", "/b/x/"); err != nil {
		t.Fatalf("Move(/a/x/, /b/x/) = %v, want nil", err)
	}

	if got, _ := tree.List("/a/"); got != "" {
		t.Fatalf("List(/a/) = %q, want \"\"", got)
	}
	if got, _ := tree.List("/b/"); got != "x" {
		t.Fatalf("List(/b/) = %q, want \"x\"", got)
	}
}

// Malformed paths are rejected everywhere they're accepted as input.
func TestInvalidPaths(t *testing.T) {
	tree := New()
	defer tree.Close()

	for _, p := range []string{"a/", "/A/", "/a//b/"} {
		if _, err := tree.List(p); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("List(%q) = %v, want ErrInvalidArgument", p, err)
		}
	}
	if err := tree.Create(""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Create(\"\") = %v, want ErrInvalidArgument", err)
	}
}

func TestCreateExists(t *testing.T) {
	tree := New()
	defer tree.Close()

	mustCreate(t, tree, "/a/")
	if err := tree.Create("/a/"); !errors.Is(err, ErrExists) {
		t.Fatalf("Create(/a/) twice = %v, want ErrExists", err)
	}
	if err := tree.Create("/"); !errors.Is(err, ErrExists) {
		t.Fatalf("Create(/) = %v, want ErrExists", err)
	}
}

func TestCreateParentMissing(t *testing.T) {
	tree := New()
	defer tree.Close()

	if err := tree.Create("/a/b/"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Create(/a/b/) with missing parent = %v, want ErrNotFound", err)
	}
}

func TestRemoveRootBusy(t *testing.T) {
	tree := New()
	defer tree.Close()

	if err := tree.Remove("/"); !errors.Is(err, ErrBusy) {
		t.Fatalf("Remove(/) = %v, want ErrBusy", err)
	}
}

func TestMoveRootBusyAndExists(t *testing.T) {
	tree := New()
	defer tree.Close()

	mustCreate(t, tree, "/a/")
	if err := tree.Move("/", "/a/"); !errors.Is(err, ErrBusy) {
		t.Fatalf("Move(/, /a/) = %v, want ErrBusy", err)
	}
	if err := tree.Move("/a/", "/"); !errors.Is(err, ErrExists) {
		t.Fatalf("Move(/a/, /) = %v, want ErrExists", err)
	}
}

func TestMoveOntoExistingTarget(t *testing.T) {
	tree := New()
	defer tree.Close()

	mustCreate(t, tree, "/a/")
	mustCreate(t, tree, "/b/")
	if err := tree.Move("/a/", "/b/"); !errors.Is(err, ErrExists) {
		t.Fatalf("Move(/a/, /b/) = %v, want ErrExists", err)
	}
}

// move(s, s) is a no-op success, per the documented open-question
// resolution (see DESIGN.md).
func TestMoveNoop(t *testing.T) {
	tree := New()
	defer tree.Close()

	mustCreate(t, tree, "/a/")
	if err := tree.Move("/a/", "/a/"); err != nil {
		t.Fatalf("Move(/a/, /a/) = %v, want nil", err)
	}

	if _, err := tree.List("/a/"); err != nil {
		t.Fatalf("List(/a/) after no-op move = %v", err)
	}
}

func TestMoveOntoOwnAncestor(t *testing.T) {
	tree := New()
	defer tree.Close()

	mustCreate(t, tree, "/a/")
	mustCreate(t, tree, "/a/b/")
	mustCreate(t, tree, "/a/b/c/")

	// target "/a/" is an ancestor of source "/a/b/c/": must already
	// exist, so this always resolves to Exists.
	if err := tree.Move("/a/b/c/", "/a/"); !errors.Is(err, ErrExists) {
		t.Fatalf("Move(/a/b/c/, /a/) = %v, want ErrExists", err)
	}
}

// Invariant 5: create(p); remove(p) returns to the pre-state.
func TestCreateRemoveRoundTrip(t *testing.T) {
	tree := New()
	defer tree.Close()

	mustCreate(t, tree, "/a/")
	mustCreate(t, tree, "/a/b/")
	before := snapshot(tree.root)

	mustCreate(t, tree, "/a/b/c/")
	if err := tree.Remove("/a/b/c/"); err != nil {
		t.Fatalf("Remove(/a/b/c/) = %v", err)
	}

	after := snapshot(tree.root)
	if diff := pretty.Compare(before, after); diff != "" {
		t.Fatalf("tree changed after create;remove round trip:\n%s", diff)
	}
}

// Invariant 6: move(s, t); move(t, s) returns to the pre-state.
func TestMoveRoundTrip(t *testing.T) {
	tree := New()
	defer tree.Close()

	mustCreate(t, tree, "/a/")
	mustCreate(t, tree, "/b/")
	mustCreate(t, tree, "/a/x/")
	before := snapshot(tree.root)

	if err := tree.Move("/a/x/", "/b/x/"); err != nil {
		t.Fatalf("Move(/a/x/, /b/x/) = %v", err)
	}
	if err := tree.Move("/b/x/", "/a/x/"); err != nil {
		t.Fatalf("Move(/b/x/, /a/x/) = %v", err)
	}

	after := snapshot(tree.root)
	if diff := pretty.Compare(before, after); diff != "" {
		t.Fatalf("tree changed after move;move-back round trip:\n%s", diff)
	}
}
